package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Test is a named system prompt under evaluation.
type Test struct {
	ID           string      `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name         string      `gorm:"size:255;not null" json:"name"`
	SystemPrompt string      `gorm:"type:text;not null" json:"systemPrompt"`
	ModelTests   []ModelTest `gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE;" json:"modelTests,omitempty"`
	CreatedAt    time.Time   `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

func (t *Test) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TestSummary is the list view of a Test.
type TestSummary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	SystemPrompt string    `json:"systemPrompt"`
	CreatedAt    time.Time `json:"createdAt"`
	MessageCount int64     `json:"messageCount"`
}
