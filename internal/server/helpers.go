package server

import (
	"strconv"
	"time"

	"wenje/internal/models"

	"github.com/gofiber/fiber/v2"
)

// successResponse is the wire shape of every successful response.
type successResponse struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message,omitempty"`
	Data       any    `json:"data,omitempty"`
}

// listResponse is the wire shape of successful responses that carry a count.
type listResponse struct {
	Results    int    `json:"results"`
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message,omitempty"`
	Data       any    `json:"data,omitempty"`
}

func respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(successResponse{
		Status:     "Success",
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

func respondList(c *fiber.Ctx, status int, message string, results int, data any) error {
	return c.Status(status).JSON(listResponse{
		Results:    results,
		Status:     "Success",
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

// parseIDParam parses a numeric route parameter.
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("Invalid " + name + " parameter.")
	}
	return uint(id), nil
}

// parseBeforeQuery parses the optional RFC 3339 "before" pagination cursor.
// A zero time means "from now".
func parseBeforeQuery(c *fiber.Ctx) (time.Time, error) {
	raw := c.Query("before")
	if raw == "" {
		return time.Time{}, nil
	}
	before, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, models.NewValidationError("Invalid before cursor, expected an RFC 3339 timestamp.")
	}
	return before, nil
}
