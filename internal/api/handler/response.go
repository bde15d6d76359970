package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/univadmin/records-system/internal/core/query"
)

// envelope is the canonical success body of every entity endpoint.
type envelope struct {
	StatusCode int         `json:"statusCode"`
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Meta       *query.Meta `json:"meta,omitempty"`
	Data       any         `json:"data"`
}

func sendResponse(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, envelope{
		StatusCode: status,
		Success:    true,
		Message:    message,
		Data:       data,
	})
}

func sendPage(c echo.Context, message string, meta query.Meta, data any) error {
	return c.JSON(http.StatusOK, envelope{
		StatusCode: http.StatusOK,
		Success:    true,
		Message:    message,
		Meta:       &meta,
		Data:       data,
	})
}
