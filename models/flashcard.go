package models

// Flashcard represents an individual flashcard owned by a FlashcardSet
type Flashcard struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	SetID    uint   `gorm:"not null;index" json:"setId"`
	Question string `gorm:"type:text;not null" json:"question"`
	Answer   string `gorm:"type:text;not null" json:"answer"`
	Known    bool   `gorm:"not null;default:false" json:"known"`
}
