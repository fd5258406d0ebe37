package utils

import "github.com/gofiber/fiber/v2"

// Every endpoint answers with the same envelope: {success, data?, message?, error?}.
// Success bodies never set "error"; failures never claim success.

// Success writes a 200 envelope with optional data.
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return SuccessStatus(c, fiber.StatusOK, message, data)
}

// SuccessStatus writes a success envelope with an explicit status code.
func SuccessStatus(c *fiber.Ctx, status int, message string, data interface{}) error {
	body := fiber.Map{
		"success": true,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	return c.Status(status).JSON(body)
}

// Error writes a failure envelope with the given status code.
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}
