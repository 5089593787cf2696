package service

import (
	"context"
	"errors"
	"testing"

	"anoa.com/campuscircle/internal/dto"
	"anoa.com/campuscircle/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// studentRepoStub is a stub for repository.StudentRepository.
type studentRepoStub struct {
	createFn            func(context.Context, *model.Student) error
	findByIDFn          func(context.Context, uuid.UUID) (*model.Student, error)
	findByRollNumberFn  func(context.Context, string) (*model.Student, error)
	findByCredentialsFn func(context.Context, string, string) (*model.Student, error)
	findPageFn          func(context.Context, int, int) ([]model.Student, int64, error)
	searchFn            func(context.Context, string, int) ([]model.Student, error)
	updateFn            func(context.Context, *model.Student) error
	deleteCascadeFn     func(context.Context, uuid.UUID) error
	countFn             func(context.Context) (int64, error)
	countLoggedInFn     func(context.Context) (int64, error)
}

func (s *studentRepoStub) Create(ctx context.Context, student *model.Student) error {
	return s.createFn(ctx, student)
}
func (s *studentRepoStub) FindByID(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	return s.findByIDFn(ctx, id)
}
func (s *studentRepoStub) FindByRollNumber(ctx context.Context, rollNumber string) (*model.Student, error) {
	return s.findByRollNumberFn(ctx, rollNumber)
}
func (s *studentRepoStub) FindByCredentials(ctx context.Context, rollNumber, dob string) (*model.Student, error) {
	return s.findByCredentialsFn(ctx, rollNumber, dob)
}
func (s *studentRepoStub) FindPage(ctx context.Context, offset, limit int) ([]model.Student, int64, error) {
	return s.findPageFn(ctx, offset, limit)
}
func (s *studentRepoStub) Search(ctx context.Context, query string, limit int) ([]model.Student, error) {
	return s.searchFn(ctx, query, limit)
}
func (s *studentRepoStub) Update(ctx context.Context, student *model.Student) error {
	return s.updateFn(ctx, student)
}
func (s *studentRepoStub) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return s.deleteCascadeFn(ctx, id)
}
func (s *studentRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *studentRepoStub) CountLoggedIn(ctx context.Context) (int64, error) {
	return s.countLoggedInFn(ctx)
}

func noopStudentRepo() *studentRepoStub {
	return &studentRepoStub{
		createFn: func(_ context.Context, _ *model.Student) error { return nil },
		findByIDFn: func(_ context.Context, _ uuid.UUID) (*model.Student, error) {
			return &model.Student{}, nil
		},
		findByRollNumberFn: func(_ context.Context, _ string) (*model.Student, error) {
			return nil, gorm.ErrRecordNotFound
		},
		findByCredentialsFn: func(_ context.Context, _, _ string) (*model.Student, error) {
			return nil, gorm.ErrRecordNotFound
		},
		findPageFn: func(_ context.Context, _, _ int) ([]model.Student, int64, error) {
			return nil, 0, nil
		},
		searchFn:        func(_ context.Context, _ string, _ int) ([]model.Student, error) { return nil, nil },
		updateFn:        func(_ context.Context, _ *model.Student) error { return nil },
		deleteCascadeFn: func(_ context.Context, _ uuid.UUID) error { return nil },
		countFn:         func(_ context.Context) (int64, error) { return 0, nil },
		countLoggedInFn: func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	provisionFn        func(context.Context, *model.Student, string) (*model.User, error)
	findByIDFn         func(context.Context, uuid.UUID) (*model.User, error)
	findByStudentIDFn  func(context.Context, uuid.UUID) (*model.User, error)
	findByStudentIDsFn func(context.Context, []uuid.UUID) ([]model.User, error)
	findAllFn          func(context.Context) ([]model.User, error)
	updateProfileFn    func(context.Context, *model.User, *model.Student) error
	followCountsFn     func(context.Context, uuid.UUID) (int64, int64, error)
	isFollowingFn      func(context.Context, uuid.UUID, uuid.UUID) (bool, error)
	toggleFollowFn     func(context.Context, uuid.UUID, uuid.UUID) (bool, int64, error)
	countFn            func(context.Context) (int64, error)
}

func (s *userRepoStub) Provision(ctx context.Context, student *model.Student, role string) (*model.User, error) {
	return s.provisionFn(ctx, student, role)
}
func (s *userRepoStub) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.findByIDFn(ctx, id)
}
func (s *userRepoStub) FindByStudentID(ctx context.Context, studentID uuid.UUID) (*model.User, error) {
	return s.findByStudentIDFn(ctx, studentID)
}
func (s *userRepoStub) FindByStudentIDs(ctx context.Context, studentIDs []uuid.UUID) ([]model.User, error) {
	return s.findByStudentIDsFn(ctx, studentIDs)
}
func (s *userRepoStub) FindAll(ctx context.Context) ([]model.User, error) {
	return s.findAllFn(ctx)
}
func (s *userRepoStub) UpdateProfile(ctx context.Context, user *model.User, student *model.Student) error {
	return s.updateProfileFn(ctx, user, student)
}
func (s *userRepoStub) FollowCounts(ctx context.Context, userID uuid.UUID) (int64, int64, error) {
	return s.followCountsFn(ctx, userID)
}
func (s *userRepoStub) IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followingID)
}
func (s *userRepoStub) ToggleFollow(ctx context.Context, followerID, followingID uuid.UUID) (bool, int64, error) {
	return s.toggleFollowFn(ctx, followerID, followingID)
}
func (s *userRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		provisionFn: func(_ context.Context, student *model.Student, role string) (*model.User, error) {
			return &model.User{ID: uuid.New(), StudentID: student.ID, Username: student.RollNumber, Role: role, Student: *student}, nil
		},
		findByIDFn: func(_ context.Context, _ uuid.UUID) (*model.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
		findByStudentIDFn: func(_ context.Context, _ uuid.UUID) (*model.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
		findByStudentIDsFn: func(_ context.Context, _ []uuid.UUID) ([]model.User, error) { return nil, nil },
		findAllFn:          func(_ context.Context) ([]model.User, error) { return nil, nil },
		updateProfileFn:    func(_ context.Context, _ *model.User, _ *model.Student) error { return nil },
		followCountsFn:     func(_ context.Context, _ uuid.UUID) (int64, int64, error) { return 0, 0, nil },
		isFollowingFn:      func(_ context.Context, _, _ uuid.UUID) (bool, error) { return false, nil },
		toggleFollowFn:     func(_ context.Context, _, _ uuid.UUID) (bool, int64, error) { return true, 1, nil },
		countFn:            func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn        func(context.Context, *model.Post) error
	findByIDFn      func(context.Context, uuid.UUID) (*model.Post, error)
	findPageFn      func(context.Context, int, int) ([]model.Post, int64, error)
	findByUserIDFn  func(context.Context, uuid.UUID) ([]model.Post, error)
	findAllFn       func(context.Context) ([]model.Post, error)
	updateFn        func(context.Context, *model.Post) error
	deleteFn        func(context.Context, uuid.UUID) error
	toggleLikeFn    func(context.Context, uuid.UUID, uuid.UUID) (bool, int64, error)
	addCommentFn    func(context.Context, *model.Comment) error
	findCommentFn   func(context.Context, uuid.UUID, uuid.UUID) (*model.Comment, error)
	deleteCommentFn func(context.Context, uuid.UUID) error
	countFn         func(context.Context) (int64, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *model.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	return s.findByIDFn(ctx, id)
}
func (s *postRepoStub) FindPage(ctx context.Context, offset, limit int) ([]model.Post, int64, error) {
	return s.findPageFn(ctx, offset, limit)
}
func (s *postRepoStub) FindByUserID(ctx context.Context, userID uuid.UUID) ([]model.Post, error) {
	return s.findByUserIDFn(ctx, userID)
}
func (s *postRepoStub) FindAll(ctx context.Context) ([]model.Post, error) {
	return s.findAllFn(ctx)
}
func (s *postRepoStub) Update(ctx context.Context, post *model.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) ToggleLike(ctx context.Context, postID, userID uuid.UUID) (bool, int64, error) {
	return s.toggleLikeFn(ctx, postID, userID)
}
func (s *postRepoStub) AddComment(ctx context.Context, comment *model.Comment) error {
	return s.addCommentFn(ctx, comment)
}
func (s *postRepoStub) FindComment(ctx context.Context, postID, commentID uuid.UUID) (*model.Comment, error) {
	return s.findCommentFn(ctx, postID, commentID)
}
func (s *postRepoStub) DeleteComment(ctx context.Context, commentID uuid.UUID) error {
	return s.deleteCommentFn(ctx, commentID)
}
func (s *postRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, _ *model.Post) error { return nil },
		findByIDFn: func(_ context.Context, id uuid.UUID) (*model.Post, error) {
			return &model.Post{ID: id}, nil
		},
		findPageFn:     func(_ context.Context, _, _ int) ([]model.Post, int64, error) { return nil, 0, nil },
		findByUserIDFn: func(_ context.Context, _ uuid.UUID) ([]model.Post, error) { return nil, nil },
		findAllFn:      func(_ context.Context) ([]model.Post, error) { return nil, nil },
		updateFn:       func(_ context.Context, _ *model.Post) error { return nil },
		deleteFn:       func(_ context.Context, _ uuid.UUID) error { return nil },
		toggleLikeFn:   func(_ context.Context, _, _ uuid.UUID) (bool, int64, error) { return true, 1, nil },
		addCommentFn:   func(_ context.Context, _ *model.Comment) error { return nil },
		findCommentFn: func(_ context.Context, postID, commentID uuid.UUID) (*model.Comment, error) {
			return &model.Comment{ID: commentID, PostID: postID}, nil
		},
		deleteCommentFn: func(_ context.Context, _ uuid.UUID) error { return nil },
		countFn:         func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// directoryStub is a stub for DirectoryService.
type directoryStub struct {
	indexed []uuid.UUID
	removed []uuid.UUID
}

func (s *directoryStub) Search(_ context.Context, _ string) ([]dto.DirectoryEntry, error) {
	return nil, nil
}

func (s *directoryStub) IndexStudent(student *model.Student) error {
	s.indexed = append(s.indexed, student.ID)
	return nil
}

func (s *directoryStub) RemoveStudent(id uuid.UUID) error {
	s.removed = append(s.removed, id)
	return nil
}

func assertErrorIs(t *testing.T, err, target error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, target), "expected %v, got %v", target, err)
}
