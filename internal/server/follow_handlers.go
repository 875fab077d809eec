package server

import (
	"quill/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// FollowAuthor handles GET /profile/:username/follow
// Self-follow and duplicate edges are no-ops; either way the caller lands
// back on the profile.
func (s *Server) FollowAuthor(c *fiber.Ctx) error {
	username := c.Params("username")
	userID := middleware.CurrentUserID(c)

	author, err := s.followService.Follow(c.Context(), userID, username)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Redirect(profilePath(author.Username), fiber.StatusFound)
}

// UnfollowAuthor handles GET /profile/:username/unfollow
// A missing edge is a no-op; only an unknown username is a 404.
func (s *Server) UnfollowAuthor(c *fiber.Ctx) error {
	username := c.Params("username")
	userID := middleware.CurrentUserID(c)

	author, err := s.followService.Unfollow(c.Context(), userID, username)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Redirect(profilePath(author.Username), fiber.StatusFound)
}
