package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Rating string

const (
	RatingBad  Rating = "bad"
	RatingMild Rating = "mild"
	RatingGood Rating = "good"
)

func (r Rating) Valid() bool {
	return r == RatingBad || r == RatingMild || r == RatingGood
}

// Response is a model's reply to one Message.
type Response struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	MessageID string    `gorm:"type:varchar(36);not null;index" json:"messageId"`
	Model     string    `gorm:"size:255;not null" json:"model"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Notes     *string   `gorm:"type:text" json:"notes,omitempty"`
	Rating    *Rating   `gorm:"size:16" json:"rating,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r *Response) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
