package utils

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Все ошибки уходят клиенту в виде {"message": "..."} — детали остаются в логах.

// FieldError описывает одну ошибку валидации поля
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Message отправляет ответ с заданным статусом и сообщением
func Message(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"message": message,
	})
}

// BadRequest отправляет ответ 400 Bad Request
func BadRequest(c *fiber.Ctx, message string) error {
	return Message(c, fiber.StatusBadRequest, message)
}

// NotFound отправляет ответ 404 Not Found
func NotFound(c *fiber.Ctx, message string) error {
	return Message(c, fiber.StatusNotFound, message)
}

// Unauthorized отправляет ответ 401 Unauthorized
func Unauthorized(c *fiber.Ctx, message string) error {
	return Message(c, fiber.StatusUnauthorized, message)
}

// Forbidden отправляет ответ 403 Forbidden
func Forbidden(c *fiber.Ctx, message string) error {
	return Message(c, fiber.StatusForbidden, message)
}

// InternalServerError отправляет ответ 500 Internal Server Error
func InternalServerError(c *fiber.Ctx, message string) error {
	return Message(c, fiber.StatusInternalServerError, message)
}

// ValidationFailed отправляет 400 со списком ошибок по полям
func ValidationFailed(c *fiber.Ctx, errors []FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errors,
	})
}

// FieldErrorsFrom переводит ошибки validator в список для ответа
func FieldErrorsFrom(err error) []FieldError {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Message: err.Error()}}
	}

	var errors []FieldError
	for _, fe := range verrs {
		errors = append(errors, FieldError{
			Field:   fe.Field(),
			Message: "failed on '" + fe.Tag() + "' validation",
		})
	}
	return errors
}
