package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"math"
	"strings"

	"anoa.com/campuscircle/internal/dto"
	"anoa.com/campuscircle/internal/model"
	"anoa.com/campuscircle/internal/repository"
	"anoa.com/campuscircle/pkg/apperror"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

const (
	defaultFeedLimit = 20
	maxFeedLimit     = 100
)

type PostService interface {
	List(ctx context.Context, viewerID uuid.UUID, page, limit int) (*dto.PaginatedPostsResponse, error)
	Get(ctx context.Context, viewerID, postID uuid.UUID) (*dto.PostResponse, error)
	ListByUser(ctx context.Context, viewerID, userID uuid.UUID) ([]dto.PostResponse, error)
	Create(ctx context.Context, userID uuid.UUID, input dto.CreatePostRequest) (*dto.PostResponse, error)
	Update(ctx context.Context, actorID, postID uuid.UUID, input dto.UpdatePostRequest) (*dto.PostResponse, error)
	Delete(ctx context.Context, actorID, postID uuid.UUID) error
	ToggleLike(ctx context.Context, actorID, postID uuid.UUID) (*dto.LikeResponse, error)
	AddComment(ctx context.Context, actorID, postID uuid.UUID, input dto.CreateCommentRequest) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, actorID, postID, commentID uuid.UUID) error
}

type postService struct {
	posts     repository.PostRepository
	sanitizer *bluemonday.Policy
}

func NewPostService(posts repository.PostRepository) PostService {
	return &postService{
		posts:     posts,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// cleanContent strips any markup from user text and trims it. Posts and
// comments are plain text on the wire.
func (s *postService) cleanContent(content string) string {
	sanitized := s.sanitizer.Sanitize(content)
	return strings.TrimSpace(html.UnescapeString(sanitized))
}

func (s *postService) List(ctx context.Context, viewerID uuid.UUID, page, limit int) (*dto.PaginatedPostsResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}

	posts, total, err := s.posts.FindPage(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PostResponse, 0, len(posts))
	for _, p := range posts {
		responses = append(responses, postResponse(p, viewerID))
	}

	return &dto.PaginatedPostsResponse{
		Posts:       responses,
		CurrentPage: page,
		TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
		TotalPosts:  total,
	}, nil
}

func (s *postService) Get(ctx context.Context, viewerID, postID uuid.UUID) (*dto.PostResponse, error) {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	resp := postResponse(*post, viewerID)
	return &resp, nil
}

func (s *postService) ListByUser(ctx context.Context, viewerID, userID uuid.UUID) ([]dto.PostResponse, error) {
	posts, err := s.posts.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PostResponse, 0, len(posts))
	for _, p := range posts {
		responses = append(responses, postResponse(p, viewerID))
	}
	return responses, nil
}

func (s *postService) Create(ctx context.Context, userID uuid.UUID, input dto.CreatePostRequest) (*dto.PostResponse, error) {
	content := s.cleanContent(input.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", apperror.ErrInvalidInput)
	}

	post := &model.Post{
		UserID:   userID,
		Content:  content,
		ImageURL: strings.TrimSpace(input.ImageURL),
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	// Reload with author and student for the response
	created, err := s.posts.FindByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	resp := postResponse(*created, userID)
	return &resp, nil
}

func (s *postService) Update(ctx context.Context, actorID, postID uuid.UUID, input dto.UpdatePostRequest) (*dto.PostResponse, error) {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.UserID != actorID {
		return nil, fmt.Errorf("%w: only the owner can edit this post", apperror.ErrForbidden)
	}

	if input.Content != nil {
		content := s.cleanContent(*input.Content)
		if content == "" {
			return nil, fmt.Errorf("%w: content is required", apperror.ErrInvalidInput)
		}
		post.Content = content
	}
	if input.ImageURL != nil {
		post.ImageURL = strings.TrimSpace(*input.ImageURL)
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}

	resp := postResponse(*post, actorID)
	return &resp, nil
}

func (s *postService) Delete(ctx context.Context, actorID, postID uuid.UUID) error {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return err
	}

	if post.UserID != actorID {
		return fmt.Errorf("%w: only the owner can delete this post", apperror.ErrForbidden)
	}

	return s.posts.Delete(ctx, postID)
}

func (s *postService) ToggleLike(ctx context.Context, actorID, postID uuid.UUID) (*dto.LikeResponse, error) {
	if _, err := s.findPost(ctx, postID); err != nil {
		return nil, err
	}

	isLiked, likes, err := s.posts.ToggleLike(ctx, postID, actorID)
	if err != nil {
		return nil, err
	}

	return &dto.LikeResponse{Likes: likes, IsLiked: isLiked}, nil
}

func (s *postService) AddComment(ctx context.Context, actorID, postID uuid.UUID, input dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	content := s.cleanContent(input.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment content is required", apperror.ErrInvalidInput)
	}

	if _, err := s.findPost(ctx, postID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		PostID:  postID,
		UserID:  actorID,
		Content: content,
	}

	if err := s.posts.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	created, err := s.posts.FindComment(ctx, postID, comment.ID)
	if err != nil {
		return nil, err
	}

	resp := commentResponse(*created)
	return &resp, nil
}

func (s *postService) DeleteComment(ctx context.Context, actorID, postID, commentID uuid.UUID) error {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return err
	}

	comment, err := s.posts.FindComment(ctx, postID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: comment not found", apperror.ErrNotFound)
		}
		return err
	}

	// Either the comment's author or the post's owner may remove it
	if comment.UserID != actorID && post.UserID != actorID {
		return fmt.Errorf("%w: not allowed to delete this comment", apperror.ErrForbidden)
	}

	return s.posts.DeleteComment(ctx, commentID)
}

func (s *postService) findPost(ctx context.Context, postID uuid.UUID) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: post not found", apperror.ErrNotFound)
		}
		return nil, err
	}
	return post, nil
}
