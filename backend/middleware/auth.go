package middleware

import (
	"errors"
	"historium/backend/config"
	"historium/backend/models"
	"historium/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	RoleUser  = "USER"
	RoleModer = "MODER"
	RoleAdmin = "ADMIN"
)

// Caller — явный контекст вызывающего: обработчики берут его из locals
// и передают в логику, ничего не читая из глобального состояния.
type Caller struct {
	ID   uint
	Role string
}

// CanModerate сообщает, доступны ли действия модерации
func (cl Caller) CanModerate() bool {
	return cl.Role == RoleModer || cl.Role == RoleAdmin
}

const callerKey = "caller"

// CallerFromCtx возвращает контекст вызывающего, если запрос аутентифицирован
func CallerFromCtx(c *fiber.Ctx) (Caller, bool) {
	caller, ok := c.Locals(callerKey).(Caller)
	return caller, ok
}

func loadCaller(c *fiber.Ctx, db *gorm.DB, cfg *config.Config) (Caller, error) {
	userID, err := utils.ExtractUserIDFromToken(c, cfg)
	if err != nil {
		return Caller{}, err
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Caller{}, fiber.NewError(fiber.StatusUnauthorized, "User not found")
		}
		return Caller{}, fiber.NewError(fiber.StatusInternalServerError, "Could not query database")
	}

	if user.IsDeleted {
		return Caller{}, fiber.NewError(fiber.StatusUnauthorized, "Account is disabled")
	}

	return Caller{ID: user.ID, Role: user.Role}, nil
}

func AuthMiddleware(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := loadCaller(c, db, cfg)
		if err != nil {
			if ferr, ok := err.(*fiber.Error); ok && ferr.Code == fiber.StatusInternalServerError {
				return utils.InternalServerError(c, "Server error")
			}
			return utils.Unauthorized(c, "Unauthorized")
		}

		c.Locals(callerKey, caller)
		return c.Next()
	}
}

// OptionalAuthMiddleware пропускает запрос и без токена: роль влияет только
// на видимость помеченных комментариев.
func OptionalAuthMiddleware(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if caller, err := loadCaller(c, db, cfg); err == nil {
			c.Locals(callerKey, caller)
		}
		return c.Next()
	}
}

// ModerMiddleware требует роль MODER или ADMIN
func ModerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, ok := CallerFromCtx(c)
		if !ok {
			return utils.Unauthorized(c, "Unauthorized")
		}
		if !caller.CanModerate() {
			return utils.Forbidden(c, "Moderator access required")
		}
		return c.Next()
	}
}

// AdminMiddleware требует роль ADMIN
func AdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, ok := CallerFromCtx(c)
		if !ok {
			return utils.Unauthorized(c, "Unauthorized")
		}
		if caller.Role != RoleAdmin {
			return utils.Forbidden(c, "Admin access required")
		}
		return c.Next()
	}
}
