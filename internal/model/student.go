package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Student is the institution-issued roster entry. The (rollNumber, dob) pair
// is the login secret; rollNumber is stored upper-cased and trimmed.
type Student struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RollNumber   string    `gorm:"size:50;uniqueIndex;not null" json:"rollNumber"`
	DOB          string    `gorm:"size:10;not null" json:"dob"` // YYYY-MM-DD
	Name         string    `gorm:"size:100;not null" json:"name"`
	Department   string    `gorm:"size:100;not null" json:"department"`
	Batch        string    `gorm:"size:20;not null" json:"batch"`
	ProfileImage string    `gorm:"type:text" json:"profileImage"`
	HasLoggedIn  bool      `gorm:"default:false" json:"hasLoggedIn"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (s *Student) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID, err = uuid.NewV7()
	}
	return
}
