package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"anoa.com/campuscircle/internal/dto"
	"anoa.com/campuscircle/internal/repository"
	"anoa.com/campuscircle/pkg/apperror"
	"anoa.com/campuscircle/pkg/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileService interface {
	// GetProfile returns a user's profile as seen by viewerID. The
	// isFollowing flag is omitted when the viewer looks at themselves.
	GetProfile(ctx context.Context, userID, viewerID uuid.UUID) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input dto.UpdateProfileRequest, avatar *dto.AvatarFile) (*dto.ProfileResponse, error)
	ToggleFollow(ctx context.Context, actorID, targetID uuid.UUID) (*dto.FollowResponse, error)
}

type profileService struct {
	users        repository.UserRepository
	imageStorage storage.ImageStorage
}

func NewProfileService(users repository.UserRepository, imageStorage storage.ImageStorage) ProfileService {
	return &profileService{
		users:        users,
		imageStorage: imageStorage,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID, viewerID uuid.UUID) (*dto.ProfileResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	followers, following, err := s.users.FollowCounts(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	var isFollowing *bool
	if viewerID != user.ID {
		f, err := s.users.IsFollowing(ctx, viewerID, user.ID)
		if err != nil {
			return nil, err
		}
		isFollowing = &f
	}

	return profileResponse(user, followers, following, isFollowing), nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input dto.UpdateProfileRequest, avatar *dto.AvatarFile) (*dto.ProfileResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	if input.Bio != nil {
		user.Bio = strings.TrimSpace(*input.Bio)
	}

	student := user.Student
	if input.ProfileImage != nil {
		student.ProfileImage = *input.ProfileImage
	}

	// Uploaded avatar wins over a profileImage URL in the same request
	if avatar != nil && avatar.Reader != nil {
		if s.imageStorage == nil {
			return nil, fmt.Errorf("%w: avatar uploads are not configured", apperror.ErrInvalidInput)
		}
		url, err := s.imageStorage.UploadImage(ctx, avatar.Reader, "avatars", avatar.FileName)
		if err != nil {
			return nil, err
		}
		student.ProfileImage = url
	}

	oldImage := user.Student.ProfileImage

	if err := s.users.UpdateProfile(ctx, user, &student); err != nil {
		return nil, err
	}
	user.Student = student

	// Best-effort removal of the replaced asset
	if s.imageStorage != nil && oldImage != "" && oldImage != student.ProfileImage {
		_ = s.imageStorage.DeleteImage(ctx, oldImage)
	}

	followers, following, err := s.users.FollowCounts(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return profileResponse(user, followers, following, nil), nil
}

func (s *profileService) ToggleFollow(ctx context.Context, actorID, targetID uuid.UUID) (*dto.FollowResponse, error) {
	if actorID == targetID {
		return nil, fmt.Errorf("%w: cannot follow yourself", apperror.ErrInvalidInput)
	}

	if _, err := s.users.FindByID(ctx, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	isFollowing, followersCount, err := s.users.ToggleFollow(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}

	return &dto.FollowResponse{
		IsFollowing:    isFollowing,
		FollowersCount: followersCount,
	}, nil
}
