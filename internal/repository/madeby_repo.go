package repository

import (
	"context"

	"anoa.com/campuscircle/internal/model"
	"gorm.io/gorm"
)

type MadeByRepository interface {
	Find(ctx context.Context) (*model.MadeBy, error)
}

type madeByRepository struct {
	db *gorm.DB
}

func NewMadeByRepository(db *gorm.DB) MadeByRepository {
	return &madeByRepository{db: db}
}

func (r *madeByRepository) Find(ctx context.Context) (*model.MadeBy, error) {
	var record model.MadeBy
	if err := r.db.WithContext(ctx).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}
