package controllers

import (
	"errors"
	"historium/backend/config"
	"historium/backend/middleware"
	"historium/backend/models"
	"historium/backend/utils"
	"math"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PagesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewPagesController(db *gorm.DB, cfg *config.Config) *PagesController {
	return &PagesController{DB: db, Cfg: cfg}
}

type pageInput struct {
	Title      string `json:"title" validate:"required,min=1"`
	Content    string `json:"content" validate:"required,min=10"`
	CategoryID uint   `json:"categoryId" validate:"required,min=1"`
	ImagePath  string `json:"imagePath" validate:"required"`
}

func (pc *PagesController) pageJSON(page models.Page) fiber.Map {
	var commentCount int64
	pc.DB.Model(&models.Comment{}).Where("page_id = ?", page.ID).Count(&commentCount)

	return fiber.Map{
		"id":        page.ID,
		"title":     page.Title,
		"content":   page.Content,
		"imagePath": page.ImagePath,
		"createdAt": page.CreatedAt,
		"category": fiber.Map{
			"id":   page.Category.ID,
			"name": page.Category.Name,
		},
		"createdBy": fiber.Map{
			"id":   page.CreatedBy.ID,
			"name": page.CreatedBy.Name,
		},
		"commentCount": commentCount,
	}
}

// GetPages godoc
// @Summary List pages
// @Description Paginated page list with category filter and title/content search
// @Tags pages
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param categoryId query int false "Category ID"
// @Param search query string false "Search string"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /pages [get]
func (pc *PagesController) GetPages(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = 12
	}

	query := pc.DB.Model(&models.Page{})

	if categoryID, err := strconv.Atoi(c.Query("categoryId")); err == nil {
		query = query.Where("category_id = ?", categoryID)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("LOWER(title) LIKE LOWER(?) OR LOWER(content) LIKE LOWER(?)", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.InternalServerError(c, "Server error")
	}

	var pages []models.Page
	err = query.
		Preload("Category").
		Preload("CreatedBy").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&pages).Error
	if err != nil {
		return utils.InternalServerError(c, "Server error")
	}

	result := []fiber.Map{}
	for _, p := range pages {
		result = append(result, pc.pageJSON(p))
	}

	return c.JSON(fiber.Map{
		"pages": result,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

// GetPagesByComments godoc
// @Summary Pages ranked by comment count
// @Tags pages
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /pages/by-comments [get]
func (pc *PagesController) GetPagesByComments(c *fiber.Ctx) error {
	var ranked []struct {
		ID           uint   `json:"id"`
		Title        string `json:"title"`
		ImagePath    string `json:"imagePath"`
		CommentCount int64  `json:"commentCount"`
	}

	err := pc.DB.Raw(`
		SELECT p.id, p.title, p.image_path, COUNT(c.id) as comment_count
		FROM pages p
		LEFT JOIN comments c ON c.page_id = p.id
		GROUP BY p.id, p.title, p.image_path
		ORDER BY comment_count DESC
		LIMIT 100
	`).Scan(&ranked).Error
	if err != nil {
		return utils.InternalServerError(c, "Server error")
	}

	return c.JSON(fiber.Map{
		"pages": ranked,
	})
}

// GetPage godoc
// @Summary Page details
// @Description Page with category, author and the role-filtered comment thread
// @Tags pages
// @Produce json
// @Param id path int true "Page ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /pages/{id} [get]
func (pc *PagesController) GetPage(c *fiber.Ctx) error {
	pageID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid page ID")
	}

	var page models.Page
	err = pc.DB.Preload("Category").Preload("CreatedBy").First(&page, pageID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Page not found")
		}
		return utils.InternalServerError(c, "Server error")
	}

	caller, _ := middleware.CallerFromCtx(c)
	comments, err := loadPageComments(pc.DB, page.ID, caller.CanModerate())
	if err != nil {
		return utils.InternalServerError(c, "Server error")
	}

	result := pc.pageJSON(page)
	result["comments"] = comments

	return c.JSON(result)
}

// CreatePage godoc
// @Summary Create a page
// @Tags pages
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /pages [post]
func (pc *PagesController) CreatePage(c *fiber.Ctx) error {
	caller, ok := middleware.CallerFromCtx(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input pageInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if err := validator.New().Struct(input); err != nil {
		return utils.ValidationFailed(c, utils.FieldErrorsFrom(err))
	}

	var category models.Category
	if err := pc.DB.First(&category, input.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.BadRequest(c, "Category not found")
		}
		return utils.InternalServerError(c, "Server error")
	}

	page := models.Page{
		Title:       input.Title,
		Content:     input.Content,
		ImagePath:   input.ImagePath,
		CategoryID:  input.CategoryID,
		CreatedByID: caller.ID,
	}

	if err := pc.DB.Create(&page).Error; err != nil {
		return utils.InternalServerError(c, "Could not create page")
	}

	pc.DB.Preload("Category").Preload("CreatedBy").First(&page, page.ID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Page created successfully",
		"page":    pc.pageJSON(page),
	})
}

// UpdatePage godoc
// @Summary Update a page
// @Tags pages
// @Accept json
// @Produce json
// @Param id path int true "Page ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /pages/{id} [put]
func (pc *PagesController) UpdatePage(c *fiber.Ctx) error {
	pageID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid page ID")
	}

	var input pageInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if err := validator.New().Struct(input); err != nil {
		return utils.ValidationFailed(c, utils.FieldErrorsFrom(err))
	}

	var page models.Page
	if err := pc.DB.First(&page, pageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Page not found")
		}
		return utils.InternalServerError(c, "Server error")
	}

	var category models.Category
	if err := pc.DB.First(&category, input.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.BadRequest(c, "Category not found")
		}
		return utils.InternalServerError(c, "Server error")
	}

	page.Title = input.Title
	page.Content = input.Content
	page.ImagePath = input.ImagePath
	page.CategoryID = input.CategoryID

	if err := pc.DB.Save(&page).Error; err != nil {
		return utils.InternalServerError(c, "Could not update page")
	}

	pc.DB.Preload("Category").Preload("CreatedBy").First(&page, page.ID)

	return c.JSON(fiber.Map{
		"message": "Page updated successfully",
		"page":    pc.pageJSON(page),
	})
}

// DeletePage godoc
// @Summary Delete a page
// @Tags pages
// @Produce json
// @Param id path int true "Page ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /pages/{id} [delete]
func (pc *PagesController) DeletePage(c *fiber.Ctx) error {
	pageID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid page ID")
	}

	var page models.Page
	if err := pc.DB.First(&page, pageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Page not found")
		}
		return utils.InternalServerError(c, "Server error")
	}

	// Комментарии страницы удаляются вместе с ней
	err = pc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("page_id = ?", page.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&page).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not delete page")
	}

	return c.JSON(fiber.Map{
		"message": "Page deleted successfully",
	})
}
