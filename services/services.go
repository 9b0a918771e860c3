package services

import (
	"errors"
	"time"

	"github.com/andrewpaige1/studybuddy-api/generation"
	"github.com/andrewpaige1/studybuddy-api/logger"
	"gorm.io/gorm"
)

// Clock abstracts time retrieval so derived dates are deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Services bundles the domain services the HTTP layer dispatches to.
type Services struct {
	StudyPlans *StudyPlanService
	Notes      *NotesService
	Flashcards *FlashcardService
	Chat       *ChatService
	Dashboard  *DashboardService
	Export     *ExportService
}

func New(db *gorm.DB, gen generation.Generator, clock Clock, log *logger.Logger) *Services {
	if clock == nil {
		clock = RealClock{}
	}
	s := &Services{
		StudyPlans: NewStudyPlanService(db, gen, clock, log),
		Notes:      NewNotesService(db, gen, clock, log),
		Flashcards: NewFlashcardService(db, gen, log),
		Chat:       NewChatService(db, gen, clock, log),
		Dashboard:  NewDashboardService(db),
	}
	s.Export = NewExportService(s.StudyPlans, s.Notes, s.Chat, s.Flashcards, clock)
	return s
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func footerStamp(t time.Time) string {
	return t.Format("2006-01-02 15:04 MST")
}
