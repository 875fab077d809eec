package server

import (
	"errors"
	"fmt"

	"quill/internal/forms"
	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parsePage extracts the ?page query parameter. Non-numeric or missing
// values mean page 1; out-of-range pages are clamped further down.
func parsePage(c *fiber.Ctx) int {
	return c.QueryInt("page", 1)
}

// parseID extracts the :id route parameter as a positive uint. A non-numeric
// id is not a routable post, so it gets the same 404 an unknown id would.
// On failure it writes the response and returns errResponseWritten.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", c.Params(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// respondServiceError maps service-layer error codes onto HTTP statuses.
// Handlers with route-specific behavior (silent redirects, form re-render)
// intercept the relevant codes before falling back here.
func respondServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			return models.RespondWithError(c, fiber.StatusNotFound, appErr)
		case "VALIDATION_ERROR":
			return models.RespondWithError(c, fiber.StatusUnprocessableEntity, appErr)
		case "UNAUTHORIZED":
			return models.RespondWithError(c, fiber.StatusForbidden, appErr)
		}
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}

// respondFormErrors answers an invalid submission with the field errors and
// the form descriptor so the client can re-render inline.
func respondFormErrors(c *fiber.Ctx, appErr *models.AppError, form map[string]forms.Field) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"error":  appErr.Message,
		"code":   appErr.Code,
		"fields": appErr.Fields,
		"form":   form,
	})
}

// isValidationError extracts a VALIDATION_ERROR AppError from err.
func isValidationError(err error) (*models.AppError, bool) {
	var appErr *models.AppError
	if errors.As(err, &appErr) && appErr.Code == "VALIDATION_ERROR" {
		return appErr, true
	}
	return nil, false
}

// isAuthorizationError reports whether err is the non-author UNAUTHORIZED code.
func isAuthorizationError(err error) bool {
	var appErr *models.AppError
	return errors.As(err, &appErr) && appErr.Code == "UNAUTHORIZED"
}

func postDetailPath(id uint) string {
	return fmt.Sprintf("/posts/%d", id)
}

func profilePath(username string) string {
	return "/profile/" + username
}
