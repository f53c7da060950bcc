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

type CategoriesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCategoriesController(db *gorm.DB, cfg *config.Config) *CategoriesController {
	return &CategoriesController{DB: db, Cfg: cfg}
}

func (cc *CategoriesController) GetCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := cc.DB.Order("name ASC").Find(&categories).Error; err != nil {
		return utils.InternalServerError(c, "Server error")
	}

	result := []fiber.Map{}
	for _, category := range categories {
		var pageCount int64
		cc.DB.Model(&models.Page{}).Where("category_id = ?", category.ID).Count(&pageCount)

		result = append(result, fiber.Map{
			"id":        category.ID,
			"name":      category.Name,
			"pageCount": pageCount,
		})
	}

	return c.JSON(fiber.Map{
		"categories": result,
	})
}

func (cc *CategoriesController) GetCategory(c *fiber.Ctx) error {
	categoryID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid category ID")
	}

	var category models.Category
	err = cc.DB.
		Preload("Pages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Pages.CreatedBy").
		First(&category, categoryID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Category not found")
		}
		return utils.InternalServerError(c, "Server error")
	}

	pages := []fiber.Map{}
	for _, page := range category.Pages {
		var commentCount int64
		cc.DB.Model(&models.Comment{}).Where("page_id = ?", page.ID).Count(&commentCount)

		pages = append(pages, fiber.Map{
			"id":        page.ID,
			"title":     page.Title,
			"imagePath": page.ImagePath,
			"createdAt": page.CreatedAt,
			"createdBy": fiber.Map{
				"id":   page.CreatedBy.ID,
				"name": page.CreatedBy.Name,
			},
			"commentCount": commentCount,
		})
	}

	return c.JSON(fiber.Map{
		"id":    category.ID,
		"name":  category.Name,
		"pages": pages,
	})
}
