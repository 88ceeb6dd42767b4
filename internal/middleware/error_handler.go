package middleware

import (
	"net/http"

	"ashiato/pkg/logger"
	jsonres "ashiato/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the Echo HTTPErrorHandler: echo.HTTPError keeps its
// status, anything else becomes a generic 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"

	if httpErr, ok := err.(*echo.HTTPError); ok {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("Unhandled request error", err)
	}

	if err := c.JSON(code, jsonres.Error(http.StatusText(code), message, nil)); err != nil {
		logger.Error("Failed to write error response", err)
	}
}
