package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Submission categories
const (
	CategoryWaitlist     = "waitlist"
	CategorySubscription = "subscription"
)

// Submission is one enriched lead-capture record. Payload holds the full
// record (original fields plus timestamp and source) as a JSON object.
type Submission struct {
	ID          string    `gorm:"type:text;primaryKey" json:"id"`
	Category    string    `gorm:"not null;index" json:"category"`
	Email       string    `gorm:"index" json:"email"`
	Payload     string    `gorm:"type:text;not null" json:"payload"`
	SubmittedAt time.Time `gorm:"not null;index" json:"submitted_at"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
