package handlers

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-ats/internal/ats"
	"alfredoptarigan/resume-ats/internal/repositories"
	"alfredoptarigan/resume-ats/internal/services"
)

const (
	// UserHeader carries the caller identity set by the fronting gateway.
	UserHeader  = "X-User-ID"
	userIDLocal = "user_id"
)

// RequireUser rejects requests without a caller identity and stores it in Locals.
func RequireUser(c *fiber.Ctx) error {
	userID := strings.TrimSpace(c.Get(UserHeader))
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": UserHeader + " header is required",
		})
	}
	c.Locals(userIDLocal, userID)
	return c.Next()
}

// UserID returns the identity stored by RequireUser.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDLocal).(string)
	return id
}

// errorResponse maps domain errors onto HTTP statuses.
func errorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ats.ErrEmptyKeywordSet):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, ats.ErrInputTooLarge):
		status = fiber.StatusRequestEntityTooLarge
	case errors.Is(err, ats.ErrInvalidInput):
		status = fiber.StatusBadRequest
	case errors.Is(err, repositories.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrResumeNotReady):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrUnsupportedFileType):
		status = fiber.StatusUnsupportedMediaType
	}

	if status == fiber.StatusInternalServerError {
		slog.Error("❌ request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(status).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
