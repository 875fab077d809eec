package service

import (
	"context"

	"quill/internal/forms"
	"quill/internal/models"
	"quill/internal/repository"
)

// CommentService owns comment creation rules.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// NewCommentService creates a new comment service.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

// AddComment validates the form and attaches a comment by userID to postID.
// The post and author bindings always come from the caller, not the form.
func (s *CommentService) AddComment(ctx context.Context, userID, postID uint, form forms.CommentForm) (*models.Comment, error) {
	// The post must exist before anything else; an unknown id is a 404 even
	// for an invalid form.
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	if fieldErrs := form.Validate(); len(fieldErrs) > 0 {
		return nil, models.NewFieldValidationError(fieldErrs)
	}

	comment := &models.Comment{
		Text:   form.Text,
		PostID: postID,
		UserID: userID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
