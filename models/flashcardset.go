package models

import (
	"time"
)

// FlashcardSet represents a generated batch of flashcards on one topic.
// KnownCount always equals the number of owned cards marked known.
type FlashcardSet struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID *uint  `json:"userId"`
	Topic  string `gorm:"not null;size:200" json:"topic"`

	// RequestedCount is what the caller asked for; TotalCount is what the
	// generator actually returned.
	RequestedCount int `gorm:"not null;default:0" json:"requestedCount"`
	TotalCount     int `gorm:"not null" json:"totalCount"`
	KnownCount     int `gorm:"not null;default:0" json:"knownCount"`

	CreatedAt time.Time `json:"createdAt"`

	Cards []Flashcard `gorm:"foreignKey:SetID" json:"cards"`
}
