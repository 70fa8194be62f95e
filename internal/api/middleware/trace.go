package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/directorylabs/user-directory/internal/api/response"
)

const traceHeader = "X-Trace-Id"

// Trace propagates the caller's trace id into the request context so every
// envelope echoes it back. Absent header yields an empty trace id; the
// service never invents one.
func Trace() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(response.TraceIDKey, c.Request().Header.Get(traceHeader))
			return next(c)
		}
	}
}
