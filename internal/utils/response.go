package utils

import (
	"errors"
	"net/http"

	apperrors "wasit/internal/errors"
	"wasit/internal/transferapi"

	"github.com/gofiber/fiber/v2"
)

// Respond sends a JSON response with the specified status code.
func Respond(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

// Success sends a successful JSON response.
func Success(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusOK, data)
}

// Created sends a 201 JSON response.
func Created(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusCreated, data)
}

// Fail writes the {message, code} error body. DomainErrors keep their status
// and code; anything else is reported as a 500 without leaking details.
func Fail(c *fiber.Ctx, err error) error {
	if de, ok := apperrors.As(err); ok {
		return Respond(c, apperrors.StatusOf(de), transferapi.ErrorBody{Message: de.Message, Code: de.Code})
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return Respond(c, fe.Code, transferapi.ErrorBody{Message: fe.Message})
	}
	return Respond(c, http.StatusInternalServerError, transferapi.ErrorBody{
		Message: "internal server error",
		Code:    "INTERNAL",
	})
}

// BadRequest sends a JSON error response with status 400.
func BadRequest(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusBadRequest, transferapi.ErrorBody{Message: message, Code: apperrors.ErrInvalidRequest.Code})
}

// Unauthorized sends a JSON error response with status 401.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusUnauthorized, transferapi.ErrorBody{Message: message, Code: "UNAUTHORIZED"})
}

// Forbidden sends a JSON error response with status 403.
func Forbidden(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusForbidden, transferapi.ErrorBody{Message: message, Code: "FORBIDDEN"})
}
