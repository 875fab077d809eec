// Package forms binds and validates user-submitted post and comment forms.
package forms

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// PostForm carries the submitter-controlled fields of a post. The author is
// always bound by the handler, never taken from the submission.
type PostForm struct {
	Text     string `json:"text" form:"text" validate:"required"`
	GroupID  *uint  `json:"group_id" form:"group_id"`
	ImageURL string `json:"image_url" form:"image_url"`
}

// CommentForm carries the submitter-controlled fields of a comment. Post and
// author bindings come from the route and the authenticated caller.
type CommentForm struct {
	Text string `json:"text" form:"text" validate:"required"`
}

// Field describes one form field for empty-form rendering.
type Field struct {
	Label    string `json:"label"`
	HelpText string `json:"help_text,omitempty"`
	Required bool   `json:"required"`
}

// PostFormFields is the descriptor returned when rendering an empty or
// pre-filled post form.
func PostFormFields() map[string]Field {
	return map[string]Field{
		"text":      {Label: "Post text", HelpText: "The text of your post", Required: true},
		"group_id":  {Label: "Group", HelpText: "Pick a group for the post", Required: false},
		"image_url": {Label: "Image", Required: false},
	}
}

// CommentFormFields is the descriptor for the comment form shown on the
// post detail page.
func CommentFormFields() map[string]Field {
	return map[string]Field{
		"text": {Label: "Comment text", Required: true},
	}
}

// Validate returns a field -> message map, empty on success. Whitespace-only
// text counts as empty.
func (f *PostForm) Validate() map[string]string {
	f.Text = strings.TrimSpace(f.Text)
	return fieldErrors(validate.Struct(f))
}

// Validate returns a field -> message map, empty on success.
func (f *CommentForm) Validate() map[string]string {
	f.Text = strings.TrimSpace(f.Text)
	return fieldErrors(validate.Struct(f))
}

// fieldErrors flattens validator errors into per-field messages suitable for
// inline form rendering. It never panics on unexpected error types.
func fieldErrors(err error) map[string]string {
	if err == nil {
		return map[string]string{}
	}

	out := map[string]string{}
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["__all__"] = "Invalid submission"
		return out
	}

	for _, fe := range validationErrs {
		field := strings.ToLower(fe.Field())
		switch field {
		case "groupid":
			field = "group_id"
		case "imageurl":
			field = "image_url"
		}
		switch fe.Tag() {
		case "required":
			out[field] = "This field is required"
		default:
			out[field] = "Invalid value"
		}
	}
	return out
}
