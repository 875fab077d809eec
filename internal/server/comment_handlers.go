package server

import (
	"quill/internal/forms"
	"quill/internal/middleware"
	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AddComment handles POST /posts/:id/comment
// The post and author bindings come from the route and the caller. An
// invalid form is answered with field errors rather than dropped.
func (s *Server) AddComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var form forms.CommentForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	userID := middleware.CurrentUserID(c)
	_, err = s.commentService.AddComment(c.Context(), userID, id, form)
	if err != nil {
		if appErr, ok := isValidationError(err); ok {
			return respondFormErrors(c, appErr, forms.CommentFormFields())
		}
		return respondServiceError(c, err)
	}

	return c.Redirect(postDetailPath(id), fiber.StatusFound)
}
