package controllers

import (
	"errors"
	"historium/backend/config"
	"historium/backend/models"
	"historium/backend/utils"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UsersController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUsersController(db *gorm.DB, cfg *config.Config) *UsersController {
	return &UsersController{DB: db, Cfg: cfg}
}

// GetAllUsers — список пользователей для админки
func (uc *UsersController) GetAllUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := uc.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		return utils.InternalServerError(c, "Server error")
	}

	result := []fiber.Map{}
	for _, user := range users {
		var commentCount int64
		uc.DB.Model(&models.Comment{}).Where("user_id = ?", user.ID).Count(&commentCount)

		result = append(result, fiber.Map{
			"id":           user.ID,
			"name":         user.Name,
			"email":        user.Email,
			"role":         user.Role,
			"isDeleted":    user.IsDeleted,
			"createdAt":    user.CreatedAt,
			"commentCount": commentCount,
		})
	}

	return c.JSON(fiber.Map{
		"users": result,
	})
}

// ToggleUser включает или отключает учётную запись
func (uc *UsersController) ToggleUser(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c, "Server error")
	}

	user.IsDeleted = !user.IsDeleted
	if err := uc.DB.Save(&user).Error; err != nil {
		return utils.InternalServerError(c, "Server error")
	}

	return c.JSON(fiber.Map{
		"message": "User status updated",
	})
}

// DeleteUser удаляет учётную запись без возможности восстановления
func (uc *UsersController) DeleteUser(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c, "Server error")
	}

	if err := uc.DB.Delete(&user).Error; err != nil {
		return utils.InternalServerError(c, "Server error")
	}

	return c.JSON(fiber.Map{
		"message": "User deleted permanently",
	})
}
