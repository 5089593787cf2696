package service

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/campuscircle/internal/model"
	"anoa.com/campuscircle/internal/repository"
	"anoa.com/campuscircle/pkg/apperror"
	"gorm.io/gorm"
)

type MadeByService interface {
	Get(ctx context.Context) (*model.MadeBy, error)
}

type madeByService struct {
	madeBy repository.MadeByRepository
}

func NewMadeByService(madeBy repository.MadeByRepository) MadeByService {
	return &madeByService{madeBy: madeBy}
}

func (s *madeByService) Get(ctx context.Context) (*model.MadeBy, error) {
	record, err := s.madeBy.Find(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: developer info not found", apperror.ErrNotFound)
		}
		return nil, err
	}
	return record, nil
}
