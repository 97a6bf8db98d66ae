package domain

import "time"

// EmotionEntry is an append-only log line of a student's emotional state.
type EmotionEntry struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Emotion   string    `gorm:"not null" json:"emotion"`
	Note      *string   `json:"note,omitempty"`
	StudentID int64     `gorm:"not null" json:"studentId"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

func (EmotionEntry) TableName() string { return "emotions" }
