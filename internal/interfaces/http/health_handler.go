package http

import "github.com/gofiber/fiber/v2"

// Health godoc
// @Summary      Health check
// @Tags         platform
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/health [get]
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
