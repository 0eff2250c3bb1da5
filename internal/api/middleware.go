package api

import (
	"context"
	"errors"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RegisterMiddlewares attaches the request timeout, error handling and
// request logging middlewares.
func RegisterMiddlewares(app *fiber.App, requestTimeout time.Duration) {
	if requestTimeout > 0 {
		app.Use(requestTimeoutMiddleware(requestTimeout))
	}
	app.Use(errorHandlingMiddleware())
	app.Use(requestLoggerMiddleware())
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware renders handler errors through the taxonomy
// mapping and recovers panics into a 500.
func errorHandlingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				zap.L().Error("Panic recovered",
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()))
				err = errors.New("panic")
			}
			if err != nil {
				status, body := renderError(err)
				if status >= http.StatusInternalServerError {
					zap.L().Error("Request failed",
						zap.String("path", c.Path()),
						zap.String("method", c.Method()),
						zap.Error(err))
				}
				c.Status(status)
				_ = c.JSON(fiber.Map{"error": body})
				err = nil
			}
		}()
		return c.Next()
	}
}

func renderError(err error) (int, ErrorBody) {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code := "REQUEST_FAILED"
		if fiberErr.Code == http.StatusBadRequest {
			code = "VALIDATION_FAILED"
		}
		return fiberErr.Code, ErrorBody{Code: code, Message: fiberErr.Message}
	}
	return mapError(err)
}

func requestLoggerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		zap.L().Info("Request handled",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)))
		return err
	}
}
