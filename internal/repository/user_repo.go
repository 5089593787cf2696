package repository

import (
	"context"

	"anoa.com/campuscircle/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	// Provision creates the account for a student's first login and flips the
	// hasLoggedIn flag in the same transaction.
	Provision(ctx context.Context, student *model.Student, role string) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByStudentID(ctx context.Context, studentID uuid.UUID) (*model.User, error)
	FindByStudentIDs(ctx context.Context, studentIDs []uuid.UUID) ([]model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	UpdateProfile(ctx context.Context, user *model.User, student *model.Student) error
	FollowCounts(ctx context.Context, userID uuid.UUID) (followers, following int64, err error)
	IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
	// ToggleFollow flips the directed edge follower->following and returns the
	// resulting state plus the target's follower count. Both happen in one
	// transaction so no half-written edge can be observed.
	ToggleFollow(ctx context.Context, followerID, followingID uuid.UUID) (bool, int64, error)
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Provision(ctx context.Context, student *model.Student, role string) (*model.User, error) {
	user := &model.User{
		StudentID: student.ID,
		Username:  student.RollNumber,
		Bio:       "",
		Role:      role,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Model(&model.Student{}).
			Where("id = ?", student.ID).
			Update("has_logged_in", true).Error
	})
	if err != nil {
		return nil, err
	}

	student.HasLoggedIn = true
	user.Student = *student
	return user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByStudentID(ctx context.Context, studentID uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where("student_id = ?", studentID).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByStudentIDs(ctx context.Context, studentIDs []uuid.UUID) ([]model.User, error) {
	var users []model.User
	if len(studentIDs) == 0 {
		return users, nil
	}
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where("student_id IN ?", studentIDs).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *model.User, student *model.Student) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			return err
		}
		if student != nil {
			if err := tx.Save(student).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *userRepository) FollowCounts(ctx context.Context, userID uuid.UUID) (int64, int64, error) {
	var followers, following int64
	if err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("following_id = ?", userID).
		Count(&followers).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ?", userID).
		Count(&following).Error; err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}

func (r *userRepository) IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) ToggleFollow(ctx context.Context, followerID, followingID uuid.UUID) (bool, int64, error) {
	var isFollowing bool
	var followersCount int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Follow{}).
			Where("follower_id = ? AND following_id = ?", followerID, followingID).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			if err := tx.Where("follower_id = ? AND following_id = ?", followerID, followingID).
				Delete(&model.Follow{}).Error; err != nil {
				return err
			}
			isFollowing = false
		} else {
			edge := model.Follow{FollowerID: followerID, FollowingID: followingID}
			if err := tx.Create(&edge).Error; err != nil {
				return err
			}
			isFollowing = true
		}

		return tx.Model(&model.Follow{}).
			Where("following_id = ?", followingID).
			Count(&followersCount).Error
	})
	if err != nil {
		return false, 0, err
	}

	return isFollowing, followersCount, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
