package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ModelTest is one run of a Test against a specific model and temperature.
type ModelTest struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	TestID      string    `gorm:"type:varchar(36);not null;index" json:"testId"`
	Model       string    `gorm:"size:255;not null" json:"model"`
	Temperature float64   `gorm:"not null" json:"temperature"`
	Messages    []Message `gorm:"foreignKey:ModelTestID;constraint:OnDelete:CASCADE;" json:"messages,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (m *ModelTest) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
