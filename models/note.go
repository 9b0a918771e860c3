package models

import "time"

const (
	NoteSourcePDF       = "pdf"
	NoteSourceLocalFile = "local_file"
	NoteSourceAI        = "ai"
)

type Note struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `json:"userId"`
	Title     string    `gorm:"not null;size:255" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Source    string    `gorm:"not null;size:20" json:"source"`
	FileName  string    `gorm:"size:255" json:"fileName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
