package controllers

import (
	"errors"
	"historium/backend/config"
	"historium/backend/middleware"
	"historium/backend/models"
	"historium/backend/utils"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CommentsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCommentsController(db *gorm.DB, cfg *config.Config) *CommentsController {
	return &CommentsController{DB: db, Cfg: cfg}
}

// containsBannedWord ищет запрещённые слова как подстроки без учёта регистра.
// Границы слов не учитываются, поэтому "тупой" внутри более длинного слова
// тоже считается совпадением.
func containsBannedWord(text string, words map[string][]string) bool {
	lowered := strings.ToLower(text)
	for _, terms := range words {
		for _, term := range terms {
			if term != "" && strings.Contains(lowered, term) {
				return true
			}
		}
	}
	return false
}

func commentJSON(comment models.Comment) fiber.Map {
	return fiber.Map{
		"id":        comment.ID,
		"text":      comment.Text,
		"flagged":   comment.Flagged,
		"pageId":    comment.PageID,
		"parentId":  comment.ParentID,
		"createdAt": comment.CreatedAt,
		"user": fiber.Map{
			"id":   comment.User.ID,
			"name": comment.User.Name,
		},
	}
}

// loadPageComments возвращает дерево комментариев страницы: корневые по убыванию
// даты, ответы в хронологическом порядке. Для обычных посетителей помеченные
// комментарии скрываются на обоих уровнях независимо.
func loadPageComments(db *gorm.DB, pageID uint, canModerate bool) ([]fiber.Map, error) {
	query := db.Where("page_id = ? AND parent_id IS NULL", pageID)
	if !canModerate {
		query = query.Where("flagged = ?", false)
	}

	var comments []models.Comment
	err := query.
		Preload("User").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			if !canModerate {
				db = db.Where("flagged = ?", false)
			}
			return db.Order("created_at ASC")
		}).
		Preload("Replies.User").
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	result := []fiber.Map{}
	for _, comment := range comments {
		replies := []fiber.Map{}
		for _, reply := range comment.Replies {
			replies = append(replies, commentJSON(reply))
		}

		item := commentJSON(comment)
		item["replies"] = replies
		result = append(result, item)
	}

	return result, nil
}

// GetPageComments godoc
// @Summary Get comments for a page
// @Description Returns the comment thread for a page, filtered by the caller's role
// @Tags comments
// @Produce json
// @Param pageId path int true "Page ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /comments/page/{pageId} [get]
func (cc *CommentsController) GetPageComments(c *fiber.Ctx) error {
	pageID, err := strconv.Atoi(c.Params("pageId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid page ID")
	}

	caller, _ := middleware.CallerFromCtx(c)

	comments, err := loadPageComments(cc.DB, uint(pageID), caller.CanModerate())
	if err != nil {
		return utils.InternalServerError(c, "Server error")
	}

	return c.JSON(fiber.Map{
		"comments": comments,
	})
}

// GetAllComments godoc
// @Summary List comments for moderation
// @Description Flat list across all pages, optionally limited to one page or to flagged comments
// @Tags comments
// @Produce json
// @Param pageId query int false "Page ID"
// @Param flaggedOnly query bool false "Only flagged comments"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /comments/all [get]
func (cc *CommentsController) GetAllComments(c *fiber.Ctx) error {
	query := cc.DB.Preload("User").Preload("Page")

	if pageID, err := strconv.Atoi(c.Query("pageId")); err == nil {
		query = query.Where("page_id = ?", pageID)
	}
	if c.Query("flaggedOnly") == "true" {
		query = query.Where("flagged = ?", true)
	}

	var comments []models.Comment
	if err := query.Order("created_at DESC").Find(&comments).Error; err != nil {
		return utils.InternalServerError(c, "Server error")
	}

	result := []fiber.Map{}
	for _, comment := range comments {
		var replyCount int64
		cc.DB.Model(&models.Comment{}).Where("parent_id = ?", comment.ID).Count(&replyCount)

		item := commentJSON(comment)
		item["replyCount"] = replyCount
		item["page"] = fiber.Map{
			"id":    comment.Page.ID,
			"title": comment.Page.Title,
		}
		result = append(result, item)
	}

	return c.JSON(fiber.Map{
		"comments": result,
	})
}

// CreateComment godoc
// @Summary Create a comment
// @Description Creates a comment or a reply; text is scanned against the banned word lists
// @Tags comments
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /comments [post]
func (cc *CommentsController) CreateComment(c *fiber.Ctx) error {
	caller, ok := middleware.CallerFromCtx(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		Text     string `json:"text"`
		PageID   uint   `json:"pageId"`
		ParentID *uint  `json:"parentId"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	text := strings.TrimSpace(input.Text)
	if length := utf8.RuneCountInString(text); length < 1 || length > 1000 {
		return utils.ValidationFailed(c, []utils.FieldError{
			{Field: "text", Message: "Comment must be between 1 and 1000 characters"},
		})
	}
	if input.PageID == 0 {
		return utils.ValidationFailed(c, []utils.FieldError{
			{Field: "pageId", Message: "Valid page ID is required"},
		})
	}

	flagged := containsBannedWord(text, cc.Cfg.BannedWords)

	comment := models.Comment{
		Text:     text,
		Flagged:  flagged,
		PageID:   input.PageID,
		UserID:   caller.ID,
		ParentID: input.ParentID,
	}

	// Проверка существования и вставка в одной транзакции, чтобы страница или
	// родительский комментарий не исчезли между проверкой и записью.
	err := cc.DB.Transaction(func(tx *gorm.DB) error {
		var page models.Page
		if err := tx.First(&page, input.PageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Page not found")
			}
			return err
		}

		if input.ParentID != nil {
			var parent models.Comment
			if err := tx.First(&parent, *input.ParentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusNotFound, "Parent comment not found")
				}
				return err
			}
			if parent.PageID != input.PageID {
				return fiber.NewError(fiber.StatusBadRequest, "Parent comment belongs to a different page")
			}
		}

		return tx.Create(&comment).Error
	})
	if err != nil {
		if ferr, ok := err.(*fiber.Error); ok {
			return utils.Message(c, ferr.Code, ferr.Message)
		}
		return utils.InternalServerError(c, "Server error")
	}

	if err := cc.DB.Preload("User").First(&comment, comment.ID).Error; err != nil {
		return utils.InternalServerError(c, "Server error")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Comment created successfully",
		"flagged": flagged,
		"comment": commentJSON(comment),
	})
}

// ApproveComment godoc
// @Summary Approve a flagged comment
// @Description Clears the flagged mark; approving an already approved comment succeeds
// @Tags comments
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /comments/{id}/approve [patch]
func (cc *CommentsController) ApproveComment(c *fiber.Ctx) error {
	commentID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid comment ID")
	}

	var comment models.Comment
	if err := cc.DB.Preload("User").First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Comment not found")
		}
		return utils.InternalServerError(c, "Server error")
	}

	comment.Flagged = false
	if err := cc.DB.Save(&comment).Error; err != nil {
		return utils.InternalServerError(c, "Server error")
	}

	return c.JSON(fiber.Map{
		"message": "Comment approved",
		"updated": commentJSON(comment),
	})
}

// DeleteComment godoc
// @Summary Delete a comment
// @Description Removes the comment together with its replies
// @Tags comments
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /comments/{id} [delete]
func (cc *CommentsController) DeleteComment(c *fiber.Ctx) error {
	commentID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid comment ID")
	}

	var comment models.Comment
	if err := cc.DB.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Comment not found")
		}
		return utils.InternalServerError(c, "Server error")
	}

	// Ответы удаляются вместе с родителем
	err = cc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ?", comment.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&comment).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Server error")
	}

	return c.JSON(fiber.Map{
		"message": "Comment deleted successfully",
	})
}
