package handlers

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/assets"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/content"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/services"
	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

const msgInternal = "Internal server error"

// ErrorHandler maps errors returned by handlers onto the response envelope.
// Server errors are logged, reported to Sentry and answered opaquely; the
// detail is only echoed back in development.
func ErrorHandler(cfg *config.Config) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var ve *content.ValidationError
		if errors.As(err, &ve) {
			return dto.ValidationFailed(c, ve.Fields)
		}

		status, message := classify(cfg, err)
		if status < fiber.StatusInternalServerError {
			return dto.Fail(c, status, message)
		}

		userID, _ := c.Locals("user_id").(string)
		slog.Error("request failed",
			"request_id", requestID(c),
			"user_id", userID,
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"error", err.Error(),
		)
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.WithScope(func(scope *sentry.Scope) {
				scope.SetTag("request_id", requestID(c))
				hub.CaptureException(err)
			})
		}

		resp := dto.Response{Success: false, Message: message}
		if cfg.IsDevelopment() {
			resp.Error = err.Error()
		}
		return c.Status(status).JSON(resp)
	}
}

func classify(cfg *config.Config, err error) (int, string) {
	var fe *fiber.Error
	switch {
	case errors.Is(err, assets.ErrUnsupportedFileType):
		return fiber.StatusBadRequest, "Only image files are allowed (jpeg, jpg, png, gif, webp)"
	case errors.Is(err, assets.ErrFileTooLarge):
		return fiber.StatusBadRequest, fmt.Sprintf("File too large. Maximum size is %s", humanBytes(cfg.UploadMaxBytes))
	case errors.Is(err, assets.ErrTooManyFiles):
		return fiber.StatusBadRequest, fmt.Sprintf("Too many files. Maximum is %d", cfg.UploadMaxFiles)
	case errors.Is(err, services.ErrInvalidToken):
		return fiber.StatusUnauthorized, "Invalid or expired token. Please login again."
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, content.ErrNotFound):
		return fiber.StatusNotFound, err.Error()
	case errors.As(err, &fe):
		if fe.Code >= fiber.StatusInternalServerError {
			return fe.Code, msgInternal
		}
		return fe.Code, fe.Message
	case errors.Is(err, assets.ErrUpstream):
		return fiber.StatusBadGateway, "Image storage is unavailable. Please try again later."
	default:
		return fiber.StatusInternalServerError, msgInternal
	}
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}

func humanBytes(n int64) string {
	const mib = 1 << 20
	if n >= mib && n%mib == 0 {
		return fmt.Sprintf("%dMB", n/mib)
	}
	return fmt.Sprintf("%d bytes", n)
}
