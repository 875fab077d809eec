// Package service implements the business rules between handlers and repositories.
package service

import (
	"context"

	"quill/internal/forms"
	"quill/internal/models"
	"quill/internal/pagination"
	"quill/internal/repository"
)

// PostService owns post listing, creation and editing rules.
type PostService struct {
	postRepo    repository.PostRepository
	groupRepo   repository.GroupRepository
	userRepo    repository.UserRepository
	commentRepo repository.CommentRepository
	followRepo  repository.FollowRepository
}

// PostPage is one paginated window of posts.
type PostPage struct {
	Posts []*models.Post  `json:"posts"`
	Meta  pagination.Meta `json:"page_obj"`
}

// ProfilePage is an author's paginated posts plus the viewer's follow state.
type ProfilePage struct {
	Author    *models.User `json:"author"`
	Following bool         `json:"following"`
	PostPage
}

// PostDetail is a post with its comments and the empty comment form.
type PostDetail struct {
	Post        *models.Post           `json:"post"`
	Comments    []*models.Comment      `json:"comments"`
	CommentForm map[string]forms.Field `json:"form"`
}

// NewPostService creates a new post service.
func NewPostService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	commentRepo repository.CommentRepository,
	followRepo repository.FollowRepository,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		groupRepo:   groupRepo,
		userRepo:    userRepo,
		commentRepo: commentRepo,
		followRepo:  followRepo,
	}
}

// Index returns the requested page of all posts, newest first.
func (s *PostService) Index(ctx context.Context, page int) (*PostPage, error) {
	count, err := s.postRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	meta, limit, offset := pagination.Window(page, count)
	posts, err := s.postRepo.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return &PostPage{Posts: posts, Meta: meta}, nil
}

// GroupPosts returns a group and the requested page of its posts.
func (s *PostService) GroupPosts(ctx context.Context, slug string, page int) (*models.Group, *PostPage, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	count, err := s.postRepo.CountByGroupID(ctx, group.ID)
	if err != nil {
		return nil, nil, err
	}
	meta, limit, offset := pagination.Window(page, count)
	posts, err := s.postRepo.ListByGroupID(ctx, group.ID, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	return group, &PostPage{Posts: posts, Meta: meta}, nil
}

// Profile returns an author's posts plus whether viewerID follows them.
// viewerID of zero means an anonymous viewer.
func (s *PostService) Profile(ctx context.Context, username string, viewerID uint, page int) (*ProfilePage, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	count, err := s.postRepo.CountByAuthorID(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	meta, limit, offset := pagination.Window(page, count)
	posts, err := s.postRepo.ListByAuthorID(ctx, author.ID, limit, offset)
	if err != nil {
		return nil, err
	}

	following := false
	if viewerID != 0 {
		following, err = s.followRepo.Exists(ctx, viewerID, author.ID)
		if err != nil {
			return nil, err
		}
	}

	return &ProfilePage{
		Author:    author,
		Following: following,
		PostPage:  PostPage{Posts: posts, Meta: meta},
	}, nil
}

// Detail returns one post with its comments, newest first.
func (s *PostService) Detail(ctx context.Context, id uint) (*PostDetail, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByPostID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PostDetail{
		Post:        post,
		Comments:    comments,
		CommentForm: forms.CommentFormFields(),
	}, nil
}

// Feed returns the requested page of posts by authors userID follows.
func (s *PostService) Feed(ctx context.Context, userID uint, page int) (*PostPage, error) {
	count, err := s.postRepo.CountFeed(ctx, userID)
	if err != nil {
		return nil, err
	}
	meta, limit, offset := pagination.Window(page, count)
	posts, err := s.postRepo.ListFeed(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return &PostPage{Posts: posts, Meta: meta}, nil
}

// CreatePost validates the form and persists a post owned by userID.
// The author always comes from the authenticated caller, never the form.
func (s *PostService) CreatePost(ctx context.Context, userID uint, form forms.PostForm) (*models.Post, error) {
	if fieldErrs := form.Validate(); len(fieldErrs) > 0 {
		return nil, models.NewFieldValidationError(fieldErrs)
	}

	post := &models.Post{
		Text:     form.Text,
		UserID:   userID,
		GroupID:  form.GroupID,
		ImageURL: form.ImageURL,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// EditPost validates the form and mutates the post's submitter-controlled
// fields. A non-author caller gets an authorization error and no mutation.
func (s *PostService) EditPost(ctx context.Context, userID, postID uint, form forms.PostForm) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, models.NewUnauthorizedError("Only the author can edit a post")
	}

	if fieldErrs := form.Validate(); len(fieldErrs) > 0 {
		return nil, models.NewFieldValidationError(fieldErrs)
	}

	post.Text = form.Text
	post.GroupID = form.GroupID
	post.ImageURL = form.ImageURL
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}
