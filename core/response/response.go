package response

import (
	"catalog-service/core/apperr"

	"github.com/gofiber/fiber/v2"
)

// Envelope is the JSON shape every API response uses.
type Envelope struct {
	Code      int    `json:"code"`
	IsSuccess bool   `json:"is_success"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
}

// Success writes a 200 success envelope.
func Success(c *fiber.Ctx, data any, message string) error {
	return write(c, fiber.StatusOK, true, message, data)
}

// Created writes a 201 success envelope.
func Created(c *fiber.Ctx, data any, message string) error {
	return write(c, fiber.StatusCreated, true, message, data)
}

// Error writes a failure envelope with the given status.
func Error(c *fiber.Ctx, status int, message string) error {
	return write(c, status, false, message, []any{})
}

// Unauthorized writes a 401 failure envelope.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// FromError maps a service error to a failure envelope. Client-kind errors
// surface their own message; internal failures get the fallback so storage
// details never leak to the caller.
func FromError(c *fiber.Ctx, err error, fallback string) error {
	status := apperr.HTTPStatus(err)
	if apperr.IsClient(err) {
		return Error(c, status, err.Error())
	}
	return Error(c, status, fallback)
}

func write(c *fiber.Ctx, status int, ok bool, message string, data any) error {
	if data == nil {
		data = []any{}
	}
	return c.Status(status).JSON(Envelope{
		Code:      status,
		IsSuccess: ok,
		Message:   message,
		Data:      data,
	})
}
