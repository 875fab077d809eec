package server

import (
	"encoding/json"

	"quill/internal/cache"
	"quill/internal/forms"
	"quill/internal/middleware"
	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Index handles GET /
// The serialized response body is cached whole under a fixed key for 20
// seconds; within that window every index request gets the same bytes.
// Writes do not invalidate it, the TTL is the only expiry.
func (s *Server) Index(c *fiber.Ctx) error {
	if body, ok := cache.GetIndexPage(c.Context()); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(body)
	}

	page, err := s.postService.Index(c.Context(), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	body, err := json.Marshal(page)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	cache.SetIndexPage(c.Context(), body)

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

// GroupPosts handles GET /group/:slug
func (s *Server) GroupPosts(c *fiber.Ctx) error {
	group, page, err := s.postService.GroupPosts(c.Context(), c.Params("slug"), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"group":    group,
		"posts":    page.Posts,
		"page_obj": page.Meta,
	})
}

// Profile handles GET /profile/:username
// The following flag reflects the authenticated viewer and is always false
// for anonymous requests.
func (s *Server) Profile(c *fiber.Ctx) error {
	viewerID := middleware.CurrentUserID(c)
	profile, err := s.postService.Profile(c.Context(), c.Params("username"), viewerID, parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// PostDetail handles GET /posts/:id
func (s *Server) PostDetail(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	detail, err := s.postService.Detail(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(detail)
}

// NewPostForm handles GET /create
func (s *Server) NewPostForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"form": forms.PostFormFields(),
	})
}

// CreatePost handles POST /create
// The author is always the authenticated caller; a submitted author field is
// ignored by form binding. On success the client is sent to the author's
// profile.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var form forms.PostForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	userID := middleware.CurrentUserID(c)
	post, err := s.postService.CreatePost(c.Context(), userID, form)
	if err != nil {
		if appErr, ok := isValidationError(err); ok {
			return respondFormErrors(c, appErr, forms.PostFormFields())
		}
		return respondServiceError(c, err)
	}

	return c.Redirect(profilePath(post.User.Username), fiber.StatusFound)
}

// EditPostForm handles GET /posts/:id/edit
// Non-authors are silently sent to the post detail instead of seeing the
// form.
func (s *Server) EditPostForm(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	if post.UserID != middleware.CurrentUserID(c) {
		return c.Redirect(postDetailPath(id), fiber.StatusFound)
	}

	return c.JSON(fiber.Map{
		"form":    forms.PostFormFields(),
		"post":    post,
		"is_edit": true,
	})
}

// EditPost handles POST /posts/:id/edit
// A non-author submission mutates nothing and redirects to the detail, same
// as the GET form.
func (s *Server) EditPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var form forms.PostForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	userID := middleware.CurrentUserID(c)
	_, err = s.postService.EditPost(c.Context(), userID, id, form)
	if err != nil {
		if isAuthorizationError(err) {
			return c.Redirect(postDetailPath(id), fiber.StatusFound)
		}
		if appErr, ok := isValidationError(err); ok {
			return respondFormErrors(c, appErr, forms.PostFormFields())
		}
		return respondServiceError(c, err)
	}

	return c.Redirect(postDetailPath(id), fiber.StatusFound)
}

// Feed handles GET /follow
// Lists posts whose authors the caller follows, newest first.
func (s *Server) Feed(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	page, err := s.postService.Feed(c.Context(), userID, parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}
