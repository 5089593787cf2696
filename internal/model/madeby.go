package model

import "time"

// MadeBy is a singleton informational record about the developer.
type MadeBy struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	DeveloperName string    `gorm:"size:100;not null" json:"developerName"`
	Github        string    `gorm:"size:255;not null" json:"github"`
	Instagram     string    `gorm:"size:255;not null" json:"instagram"`
	Message       string    `gorm:"type:text;not null" json:"message"`
	Email         string    `gorm:"size:255" json:"email,omitempty"`
	Portfolio     string    `gorm:"size:255" json:"portfolio,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (MadeBy) TableName() string {
	return "made_by"
}
