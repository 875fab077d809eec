package server

import (
	"quill/internal/cache"

	"github.com/gofiber/fiber/v2"
)

// ClearIndexCache handles POST /internal/cache/clear
// Drops the cached index page so the next request re-renders from current
// data. Safe to call when nothing is cached.
func (s *Server) ClearIndexCache(c *fiber.Ctx) error {
	cache.ClearIndexPage(c.Context())
	return c.JSON(fiber.Map{
		"status": "cleared",
	})
}
