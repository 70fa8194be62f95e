// Package response defines the canonical API envelopes. Every success payload
// carries its data plus a meta block with the symbolic operation code, the
// propagated trace id, and a server timestamp; failures mirror the shape with
// an error block instead of data.
package response

import (
	"time"

	"github.com/labstack/echo/v4"
)

// TraceIDKey is the echo context key under which the trace middleware stores
// the inbound trace id.
const TraceIDKey = "trace_id"

// Meta accompanies every response for observability correlation.
type Meta struct {
	Code      string `json:"code"`
	TraceID   string `json:"traceId"`
	Timestamp string `json:"timestamp"`
}

// Success is the envelope for all 2xx responses.
type Success struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
	Meta    Meta   `json:"meta"`
}

// ErrorBody describes a failure without leaking internals.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details []any  `json:"details,omitempty"`
}

// Error is the envelope for all 4xx/5xx responses.
type Error struct {
	Error ErrorBody `json:"error"`
	Meta  Meta      `json:"meta"`
}

// OK renders a success envelope with the given status, payload, message, and
// symbolic code.
func OK(c echo.Context, status int, data any, message, code string) error {
	return c.JSON(status, Success{
		Data:    data,
		Message: message,
		Meta:    meta(c, code),
	})
}

// Fail renders an error envelope with the given status, message, and code.
func Fail(c echo.Context, status int, message, code string) error {
	return c.JSON(status, Error{
		Error: ErrorBody{Code: code, Message: message},
		Meta:  meta(c, code),
	})
}

func meta(c echo.Context, code string) Meta {
	traceID, _ := c.Get(TraceIDKey).(string)
	return Meta{
		Code:      code,
		TraceID:   traceID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
