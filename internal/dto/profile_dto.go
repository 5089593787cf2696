package dto

import (
	"io"

	"github.com/google/uuid"
)

// StudentSummary is the roster subset exposed alongside an account. The DOB
// never leaves the admin surface.
type StudentSummary struct {
	Name         string `json:"name"`
	RollNumber   string `json:"rollNumber"`
	Department   string `json:"department"`
	Batch        string `json:"batch"`
	ProfileImage string `json:"profileImage"`
}

type ProfileResponse struct {
	ID             uuid.UUID      `json:"id"`
	Username       string         `json:"username"`
	Bio            string         `json:"bio"`
	Role           string         `json:"role"`
	Student        StudentSummary `json:"student"`
	FollowersCount int64          `json:"followersCount"`
	FollowingCount int64          `json:"followingCount"`
	IsFollowing    *bool          `json:"isFollowing,omitempty"`
}

type UpdateProfileRequest struct {
	Bio          *string `json:"bio" form:"bio" binding:"omitempty,max=500"`
	ProfileImage *string `json:"profileImage" form:"profileImage"`
}

// AvatarFile represents an uploaded avatar image.
type AvatarFile struct {
	Reader   io.Reader
	FileName string
}

type FollowResponse struct {
	IsFollowing    bool  `json:"isFollowing"`
	FollowersCount int64 `json:"followersCount"`
}

// DirectoryEntry is one search hit: an account joined with its roster entry.
type DirectoryEntry struct {
	ID       uuid.UUID      `json:"id"`
	Username string         `json:"username"`
	Bio      string         `json:"bio"`
	Student  StudentSummary `json:"student"`
}
