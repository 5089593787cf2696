package service

import (
	"time"

	"anoa.com/campuscircle/internal/dto"
	"anoa.com/campuscircle/internal/model"
	"github.com/google/uuid"
)

func studentSummary(s model.Student) dto.StudentSummary {
	return dto.StudentSummary{
		Name:         s.Name,
		RollNumber:   s.RollNumber,
		Department:   s.Department,
		Batch:        s.Batch,
		ProfileImage: s.ProfileImage,
	}
}

func authorResponse(u model.User) dto.AuthorResponse {
	return dto.AuthorResponse{
		ID:       u.ID,
		Username: u.Username,
		Student:  studentSummary(u.Student),
	}
}

func profileResponse(u *model.User, followers, following int64, isFollowing *bool) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		ID:             u.ID,
		Username:       u.Username,
		Bio:            u.Bio,
		Role:           u.Role,
		Student:        studentSummary(u.Student),
		FollowersCount: followers,
		FollowingCount: following,
		IsFollowing:    isFollowing,
	}
}

func commentResponse(c model.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		User:      authorResponse(c.User),
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}

func postResponse(p model.Post, viewerID uuid.UUID) dto.PostResponse {
	comments := make([]dto.CommentResponse, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, commentResponse(c))
	}

	isLiked := false
	for _, like := range p.Likes {
		if like.UserID == viewerID {
			isLiked = true
			break
		}
	}

	return dto.PostResponse{
		ID:        p.ID,
		Content:   p.Content,
		ImageURL:  p.ImageURL,
		User:      authorResponse(p.User),
		Likes:     len(p.Likes),
		IsLiked:   isLiked,
		Comments:  comments,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
}
