package services

import (
	"context"
	"strings"

	"github.com/andrewpaige1/studybuddy-api/apierr"
	"github.com/andrewpaige1/studybuddy-api/export"
	"github.com/andrewpaige1/studybuddy-api/utils"
)

const (
	ExportStudy      = "study"
	ExportNotes      = "notes"
	ExportChat       = "chat"
	ExportFlashcards = "flashcards"
)

type ExportResult struct {
	Content  string `json:"content"`
	Filename string `json:"filename"`
}

// ExportService fetches one record and hands it to the matching renderer.
// The content is plain text whatever format is requested; format only
// shapes the file name.
type ExportService struct {
	plans      *StudyPlanService
	notes      *NotesService
	chat       *ChatService
	flashcards *FlashcardService
	clock      Clock
}

func NewExportService(plans *StudyPlanService, notes *NotesService, chat *ChatService, flashcards *FlashcardService, clock Clock) *ExportService {
	return &ExportService{plans: plans, notes: notes, chat: chat, flashcards: flashcards, clock: clock}
}

func (s *ExportService) Export(ctx context.Context, kind string, id uint, format string) (*ExportResult, error) {
	var prefix, title, content string

	switch strings.ToLower(strings.TrimSpace(kind)) {
	case ExportStudy:
		plan, err := s.plans.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		prefix, title, content = export.PrefixStudy, plan.CourseName, export.Study(*plan)
	case ExportNotes:
		note, err := s.notes.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		prefix, title, content = export.PrefixNotes, note.Title, export.Notes(*note)
	case ExportChat:
		messages, err := s.chat.History(ctx)
		if err != nil {
			return nil, err
		}
		if len(messages) == 0 {
			return nil, apierr.NotFound("chat history")
		}
		conversationID := utils.ConversationID(ctx)
		prefix, title, content = export.PrefixChat, conversationID, export.Chat(conversationID, messages)
	case ExportFlashcards:
		set, err := s.flashcards.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		prefix, title, content = export.PrefixFlashcards, set.Topic, export.Flashcards(*set)
	default:
		return nil, apierr.Validation("unknown export type %q", kind)
	}

	if strings.TrimSpace(content) == "" {
		return nil, apierr.NotFound("export content")
	}
	return &ExportResult{
		Content:  content,
		Filename: export.Filename(prefix, title, format, s.clock.Now()),
	}, nil
}
