package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User is the social account layered on top of a Student, created lazily on
// first login. Exactly one per Student (unique studentId).
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"studentId"`
	Student   Student   `gorm:"constraint:OnDelete:CASCADE" json:"student,omitempty"`
	Username  string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Bio       string    `gorm:"size:500" json:"bio"`
	Role      string    `gorm:"size:20;not null;default:student" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID, err = uuid.NewV7()
	}
	return
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Follow is one directed edge of the follow graph. The edge table is the
// source of truth; follower/following counts are derived, never stored.
type Follow struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FollowerID  uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_follower_following;not null" json:"followerId"`
	Follower    User      `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"-"`
	FollowingID uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_follower_following;not null" json:"followingId"`
	Following   User      `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
