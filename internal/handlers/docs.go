package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/swaggo/swag"
)

// Docs serves the OpenAPI document registered with swag.
func Docs(c *fiber.Ctx) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString(err.Error())
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.SendString(doc)
}
