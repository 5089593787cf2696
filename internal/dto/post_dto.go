package dto

import (
	"github.com/google/uuid"
)

type CreatePostRequest struct {
	Content  string `json:"content" binding:"required"`
	ImageURL string `json:"imageUrl" binding:"omitempty,url"`
}

type UpdatePostRequest struct {
	Content  *string `json:"content"`
	ImageURL *string `json:"imageUrl"`
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type AuthorResponse struct {
	ID       uuid.UUID      `json:"id"`
	Username string         `json:"username"`
	Student  StudentSummary `json:"student"`
}

type CommentResponse struct {
	ID        uuid.UUID      `json:"id"`
	Content   string         `json:"content"`
	User      AuthorResponse `json:"user"`
	CreatedAt string         `json:"createdAt"`
}

type PostResponse struct {
	ID        uuid.UUID         `json:"id"`
	Content   string            `json:"content"`
	ImageURL  string            `json:"imageUrl"`
	User      AuthorResponse    `json:"user"`
	Likes     int               `json:"likes"`
	IsLiked   bool              `json:"isLiked"`
	Comments  []CommentResponse `json:"comments"`
	CreatedAt string            `json:"createdAt"`
	UpdatedAt string            `json:"updatedAt"`
}

type FeedQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

type PaginatedPostsResponse struct {
	Posts       []PostResponse `json:"posts"`
	CurrentPage int            `json:"currentPage"`
	TotalPages  int            `json:"totalPages"`
	TotalPosts  int64          `json:"totalPosts"`
}

type LikeResponse struct {
	Likes   int64 `json:"likes"`
	IsLiked bool  `json:"isLiked"`
}
