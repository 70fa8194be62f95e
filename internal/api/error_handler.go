package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/directorylabs/user-directory/internal/api/response"
	"github.com/directorylabs/user-directory/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status and symbolic code.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the canonical error envelope on every failure path.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, msg, code := resolveError(err, log, c)
		_ = response.Fail(c, status, msg, code)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code := domain.CodeUserInvalidData
		if he.Code == http.StatusNotFound {
			code = domain.CodeUserNotFound
		}
		return he.Code, fmt.Sprintf("%v", he.Message), code
	}

	// Known domain errors → deterministic status + code.
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found", domain.CodeUserNotFound
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, "User with this name already exists", domain.CodeUserDuplicate
	case errors.Is(err, domain.ErrInvalidPagination):
		return http.StatusBadRequest, "Page and pageSize must be greater than 0", domain.CodeUserInvalidPagination
	case errors.Is(err, domain.ErrInvalidUserData):
		return http.StatusBadRequest, trimWrap(err), domain.CodeUserInvalidData
	case errors.Is(err, domain.ErrInternal):
		return http.StatusInternalServerError, "Failed to create user response", domain.CodeUserInternalError
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Internal server error", domain.CodeUserInternalError
}

// trimWrap strips the sentinel suffix from wrapped invalid-data errors so the
// client sees only the human-readable part.
func trimWrap(err error) string {
	msg := err.Error()
	suffix := ": " + domain.ErrInvalidUserData.Error()
	if len(msg) > len(suffix) && msg[len(msg)-len(suffix):] == suffix {
		return msg[:len(msg)-len(suffix)]
	}
	return msg
}
