package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a user turn sent to the model within a ModelTest.
type Message struct {
	ID          string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	ModelTestID string     `gorm:"type:varchar(36);not null;index" json:"modelTestId"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Included    bool       `gorm:"not null" json:"included"`
	Responses   []Response `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE;" json:"responses,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// CandidateMessage is a generated, not yet persisted, message suggestion.
type CandidateMessage struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Included  bool      `json:"included"`
}
