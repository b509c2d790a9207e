package server

import "github.com/gofiber/fiber/v3"

// envelope is the uniform response shape: exactly one of Data or Error is
// set, discriminated by Success.
type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *respError `json:"error,omitempty"`
}

type respError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func respond(c fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(envelope{Success: true, Data: data})
}

func respondError(c fiber.Ctx, status int, code, message string, details ...string) error {
	return c.Status(status).JSON(envelope{
		Success: false,
		Error:   &respError{Code: code, Message: message, Details: details},
	})
}
