package controllers

import (
	"historium/backend/config"
	"historium/backend/utils"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxUploadSize = 5 * 1024 * 1024

var allowedImageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type UploadController struct {
	Cfg *config.Config
}

func NewUploadController(cfg *config.Config) *UploadController {
	return &UploadController{Cfg: cfg}
}

// UploadImage принимает одно изображение из поля "image"
func (uc *UploadController) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return utils.BadRequest(c, "No image file provided")
	}

	if file.Size > maxUploadSize {
		return utils.BadRequest(c, "File too large. Maximum size is 5MB.")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return utils.BadRequest(c, "Only image files (JPEG, PNG, GIF, WebP) are allowed!")
	}

	if err := os.MkdirAll(uc.Cfg.UploadDir, 0o755); err != nil {
		return utils.InternalServerError(c, "Upload failed")
	}

	filename := "image-" + uuid.New().String() + ext
	if err := c.SaveFile(file, filepath.Join(uc.Cfg.UploadDir, filename)); err != nil {
		return utils.InternalServerError(c, "Upload failed")
	}

	return c.JSON(fiber.Map{
		"message":      "Image uploaded successfully",
		"imagePath":    "/uploads/" + filename,
		"filename":     filename,
		"originalName": file.Filename,
		"size":         file.Size,
	})
}

// DeleteImage удаляет ранее загруженный файл
func (uc *UploadController) DeleteImage(c *fiber.Ctx) error {
	// Base отсекает попытки выйти из каталога загрузок
	filename := filepath.Base(c.Params("filename"))
	path := filepath.Join(uc.Cfg.UploadDir, filename)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return utils.NotFound(c, "Image not found")
	}

	if err := os.Remove(path); err != nil {
		return utils.InternalServerError(c, "Delete failed")
	}

	return c.JSON(fiber.Map{
		"message": "Image deleted successfully",
	})
}
