package middleware

import (
	"context"

	"ashiato/business/recommendation"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TraceMiddleware attaches a request-scoped trace id to the context so
// downstream debug logs can be correlated.
func TraceMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			traceID := c.Request().Header.Get("X-Trace-Id")
			if traceID == "" {
				traceID = uuid.NewString()
			}

			ctx := context.WithValue(c.Request().Context(), recommendation.TraceIDKey, traceID)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set("X-Trace-Id", traceID)

			return next(c)
		}
	}
}
