package rest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"blog-service/internal/domain/entities"
	"github.com/labstack/echo/v4"
)

// Response represents a standard API response format
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Code    int         `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func sendJSONResponse(c echo.Context, data interface{}, statusCode int) error {
	return c.JSON(statusCode, Response{
		Status: "success",
		Data:   data,
		Code:   statusCode,
	})
}

func sendJSONError(c echo.Context, errMsg string, statusCode int) error {
	return c.JSON(statusCode, Response{
		Status:  "error",
		Message: errMsg,
		Code:    statusCode,
	})
}

// statusFor maps an error to its HTTP status and client-facing message.
func statusFor(err error) (int, string) {
	var validationErr *entities.ValidationError
	var notFoundErr *entities.NotFoundError
	var conflictErr *entities.ConflictError
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity, validationErr.Error()
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, notFoundErr.Error()
	case errors.As(err, &conflictErr):
		return http.StatusConflict, conflictErr.Error()
	case errors.As(err, &httpErr):
		return httpErr.Code, fmt.Sprint(httpErr.Message)
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "request timed out"
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, "request cancelled"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	statusCode, message := statusFor(err)
	if statusCode >= http.StatusInternalServerError {
		log.Printf("Error handling %s %s: %v", c.Request().Method, c.Path(), err)
	}
	s.metrics.failed()

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(statusCode)
	} else {
		err = sendJSONError(c, message, statusCode)
	}
	if err != nil {
		log.Printf("Error writing error response: %v", err)
	}
}
