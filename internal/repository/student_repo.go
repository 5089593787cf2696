package repository

import (
	"context"

	"anoa.com/campuscircle/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Student, error)
	FindByRollNumber(ctx context.Context, rollNumber string) (*model.Student, error)
	FindByCredentials(ctx context.Context, rollNumber, dob string) (*model.Student, error)
	FindPage(ctx context.Context, offset, limit int) ([]model.Student, int64, error)
	Search(ctx context.Context, query string, limit int) ([]model.Student, error)
	Update(ctx context.Context, student *model.Student) error
	DeleteCascade(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	CountLoggedIn(ctx context.Context) (int64, error)
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	var student model.Student
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) FindByRollNumber(ctx context.Context, rollNumber string) (*model.Student, error) {
	var student model.Student
	if err := r.db.WithContext(ctx).Where("roll_number = ?", rollNumber).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) FindByCredentials(ctx context.Context, rollNumber, dob string) (*model.Student, error) {
	var student model.Student
	if err := r.db.WithContext(ctx).
		Where("roll_number = ? AND dob = ?", rollNumber, dob).
		First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) FindPage(ctx context.Context, offset, limit int) ([]model.Student, int64, error) {
	var students []model.Student
	var total int64

	if err := r.db.WithContext(ctx).Model(&model.Student{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&students).Error; err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

func (r *studentRepository) Search(ctx context.Context, query string, limit int) ([]model.Student, error) {
	var students []model.Student
	pattern := "%" + query + "%"
	if err := r.db.WithContext(ctx).
		Where("name ILIKE ? OR roll_number ILIKE ?", pattern, pattern).
		Limit(limit).
		Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (r *studentRepository) Update(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

// DeleteCascade removes the student together with its account, the account's
// posts (with their comments and likes) and follow edges, all in one
// transaction. Nothing referencing the student survives.
func (r *studentRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var student model.Student
		if err := tx.Where("id = ?", id).First(&student).Error; err != nil {
			return err
		}

		var user model.User
		err := tx.Where("student_id = ?", id).First(&user).Error
		if err != nil && err != gorm.ErrRecordNotFound {
			return err
		}

		if err == nil {
			var postIDs []uuid.UUID
			if err := tx.Model(&model.Post{}).
				Where("user_id = ?", user.ID).
				Pluck("id", &postIDs).Error; err != nil {
				return err
			}

			if len(postIDs) > 0 {
				if err := tx.Where("post_id IN ?", postIDs).Delete(&model.Comment{}).Error; err != nil {
					return err
				}
				if err := tx.Where("post_id IN ?", postIDs).Delete(&model.PostLike{}).Error; err != nil {
					return err
				}
				if err := tx.Where("id IN ?", postIDs).Delete(&model.Post{}).Error; err != nil {
					return err
				}
			}

			// Comments and likes the account left on other posts go too
			if err := tx.Where("user_id = ?", user.ID).Delete(&model.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", user.ID).Delete(&model.PostLike{}).Error; err != nil {
				return err
			}
			if err := tx.Where("follower_id = ? OR following_id = ?", user.ID, user.ID).
				Delete(&model.Follow{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&model.User{}, "id = ?", user.ID).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&model.Student{}, "id = ?", id).Error
	})
}

func (r *studentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Student{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *studentRepository) CountLoggedIn(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Student{}).
		Where("has_logged_in = ?", true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
