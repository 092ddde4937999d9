package presenter

import "github.com/gofiber/fiber/v2"

type ErrorResponse struct {
	Error string `json:"error"`
}

// ReplyResponse is the body of every chat answer, including gate answers.
type ReplyResponse struct {
	Reply  string `json:"reply"`
	Source string `json:"source,omitempty"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Error: message})
}

func Reply(c *fiber.Ctx, status int, reply, source string) error {
	return JSON(c, status, ReplyResponse{Reply: reply, Source: source})
}
