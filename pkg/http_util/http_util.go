package http_util

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ghaniswara/workmatch/pkg/validator"
	"github.com/labstack/echo"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Property string `json:"property"`
	Detail   string `json:"detail"`
}

type HTTPErrorResponse struct {
	Message string          `json:"message"`
	Errors  []ErrorResponse `json:"errors,omitempty"`
}

func Encode[T any](c echo.Context, status int, v T) error {
	return c.JSON(status, v)
}

func Fail(c echo.Context, status int, message string) error {
	return c.JSON(status, HTTPErrorResponse{Message: message})
}

// Decode binds the request body. On failure it writes a 400 response and
// returns the bind error so handlers can stop.
func Decode[T any](c echo.Context) (T, error) {
	var v T
	if err := c.Bind(&v); err != nil {
		c.JSON(http.StatusBadRequest, HTTPErrorResponse{
			Message: "Bad Request",
			Errors:  []ErrorResponse{{Property: "request", Detail: "check your request"}},
		})
		return v, fmt.Errorf("decode json: %w", err)
	}
	return v, nil
}

func DecodeBody[T any](body []byte) (T, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return v, fmt.Errorf("decode json: %w", err)
	}
	return v, nil
}

// ValidateRequest writes a 400 response listing every problem and returns
// false when v is invalid.
func ValidateRequest(c echo.Context, v validator.Validate) bool {
	problems := v.Validate(c.Request().Context())
	if len(problems) == 0 {
		return true
	}

	resp := HTTPErrorResponse{Message: validator.First(problems)}
	for property, details := range problems {
		for _, detail := range details {
			resp.Errors = append(resp.Errors, ErrorResponse{Property: property, Detail: detail})
		}
	}

	c.JSON(http.StatusBadRequest, resp)
	return false
}

// ErrorMessage extracts a human readable message from an error response body.
// JSON bodies with "message" or "error" are preferred; short plain text bodies
// are returned as-is.
func ErrorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		return payload.Error
	}

	var quoted string
	if err := json.Unmarshal(body, &quoted); err == nil {
		return quoted
	}

	text := strings.TrimSpace(string(body))
	if text == "" || strings.HasPrefix(text, "<") || len(text) > 512 {
		return ""
	}
	return text
}
