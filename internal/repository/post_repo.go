package repository

import (
	"context"

	"anoa.com/campuscircle/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	FindPage(ctx context.Context, offset, limit int) ([]model.Post, int64, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]model.Post, error)
	FindAll(ctx context.Context) ([]model.Post, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ToggleLike flips the caller's membership in the post's like set and
	// returns the resulting state plus the new like count.
	ToggleLike(ctx context.Context, postID, userID uuid.UUID) (bool, int64, error)
	AddComment(ctx context.Context, comment *model.Comment) error
	FindComment(ctx context.Context, postID, commentID uuid.UUID) (*model.Comment, error)
	DeleteComment(ctx context.Context, commentID uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("User.Student").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			// Display order is creation order, always
			return db.Order("comments.created_at ASC, comments.id ASC")
		}).
		Preload("Comments.User.Student").
		Preload("Likes")
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.withRelations(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) FindPage(ctx context.Context, offset, limit int) ([]model.Post, int64, error) {
	var posts []model.Post
	var total int64

	if err := r.db.WithContext(ctx).Model(&model.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.withRelations(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (r *postRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]model.Post, error) {
	var posts []model.Post
	if err := r.withRelations(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) FindAll(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	if err := r.withRelations(ctx).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// Delete removes the post and its embedded comments and likes as one unit.
func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.PostLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, "id = ?", id).Error
	})
}

func (r *postRepository) ToggleLike(ctx context.Context, postID, userID uuid.UUID) (bool, int64, error) {
	var isLiked bool
	var likes int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.PostLike{}).
			Where("post_id = ? AND user_id = ?", postID, userID).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			if err := tx.Where("post_id = ? AND user_id = ?", postID, userID).
				Delete(&model.PostLike{}).Error; err != nil {
				return err
			}
			isLiked = false
		} else {
			like := model.PostLike{PostID: postID, UserID: userID}
			if err := tx.Create(&like).Error; err != nil {
				return err
			}
			isLiked = true
		}

		return tx.Model(&model.PostLike{}).
			Where("post_id = ?", postID).
			Count(&likes).Error
	})
	if err != nil {
		return false, 0, err
	}

	return isLiked, likes, nil
}

func (r *postRepository) AddComment(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *postRepository) FindComment(ctx context.Context, postID, commentID uuid.UUID) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).
		Preload("User.Student").
		Where("id = ? AND post_id = ?", commentID, postID).
		First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *postRepository) DeleteComment(ctx context.Context, commentID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Comment{}, "id = ?", commentID).Error
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Post{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
