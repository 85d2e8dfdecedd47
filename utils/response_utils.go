package utils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Envelope is the uniform response shape: exactly one of Data or Error is
// set, mirroring Success, so clients can branch on a single flag.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
	Message string      `json:"message"`
}

// Ok sends a 200 success envelope.
func Ok(c *fiber.Ctx, data interface{}, message string) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// Created sends a 201 success envelope.
func Created(c *fiber.Ctx, data interface{}, message string) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// BadRequest sends a 400 error envelope.
func BadRequest(c *fiber.Ctx, err interface{}, message string) error {
	return respondError(c, fiber.StatusBadRequest, err, message)
}

// Unauthorized sends a 401 error envelope.
func Unauthorized(c *fiber.Ctx, err interface{}, message string) error {
	return respondError(c, fiber.StatusUnauthorized, err, message)
}

// NotFound sends a 404 error envelope.
func NotFound(c *fiber.Ctx, message string) error {
	return respondError(c, fiber.StatusNotFound, message, message)
}

// ServerError sends a 500 error envelope. The underlying error is for the
// server log; clients only ever see the generic message.
func ServerError(c *fiber.Ctx, message string) error {
	return respondError(c, fiber.StatusInternalServerError, message, message)
}

func respondError(c *fiber.Ctx, statusCode int, err interface{}, message string) error {
	return c.Status(statusCode).JSON(Envelope{
		Success: false,
		Error:   err,
		Message: message,
	})
}

// FormatValidationErrors formats validation errors from validator/v10.
func FormatValidationErrors(err error) []string {
	var errors []string
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			element := fmt.Sprintf("Field '%s' failed on the '%s' tag", err.Field(), err.Tag())
			if err.Param() != "" {
				element = fmt.Sprintf("%s (value: %s)", element, err.Param())
			}
			errors = append(errors, element)
		}
	}
	return errors
}
