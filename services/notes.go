package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/andrewpaige1/studybuddy-api/apierr"
	"github.com/andrewpaige1/studybuddy-api/generation"
	"github.com/andrewpaige1/studybuddy-api/logger"
	"github.com/andrewpaige1/studybuddy-api/models"
	"gorm.io/gorm"
)

const defaultAINoteTitle = "AI Generated Notes"

// NotesService has three producers (pdf mock, local file, ai) that all
// persist the same Note shape. Notes are never updated.
type NotesService struct {
	db    *gorm.DB
	gen   generation.Generator
	clock Clock
	log   *logger.Logger
}

func NewNotesService(db *gorm.DB, gen generation.Generator, clock Clock, log *logger.Logger) *NotesService {
	return &NotesService{db: db, gen: gen, clock: clock, log: log.With("service", "NotesService")}
}

// FromPDF stores placeholder content for an uploaded PDF. No extraction is
// performed; the body depends only on fileName.
func (s *NotesService) FromPDF(ctx context.Context, fileName string) (*models.Note, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return nil, apierr.Validation("fileName is required")
	}
	return s.save(ctx, models.Note{
		Title:    fileName,
		Content:  pdfPlaceholder(fileName),
		Source:   models.NoteSourcePDF,
		FileName: fileName,
	})
}

func (s *NotesService) FromLocalFile(ctx context.Context, fileName, content string) (*models.Note, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" || strings.TrimSpace(content) == "" {
		return nil, apierr.Validation("fileName and fileContent are required")
	}
	body := fmt.Sprintf("# %s\n\n%s\n\n---\n*Processed on %s*", fileName, content, footerStamp(s.clock.Now()))
	return s.save(ctx, models.Note{
		Title:    fileName,
		Content:  body,
		Source:   models.NoteSourceLocalFile,
		FileName: fileName,
	})
}

func (s *NotesService) FromAI(ctx context.Context, topic, content string) (*models.Note, error) {
	topic = strings.TrimSpace(topic)
	content = strings.TrimSpace(content)
	if topic == "" && content == "" {
		return nil, apierr.Validation("topic or content is required")
	}

	text, err := s.gen.Generate(ctx, aiNotesPrompt(topic, content), false)
	if err != nil {
		s.log.Warn("notes generation failed", "topic", topic, "error", err)
		return nil, apierr.Generation(err)
	}

	title := topic
	if title == "" {
		title = defaultAINoteTitle
	}
	body := fmt.Sprintf("%s\n\n---\n*Generated on %s*", text, footerStamp(s.clock.Now()))
	return s.save(ctx, models.Note{
		Title:   title,
		Content: body,
		Source:  models.NoteSourceAI,
	})
}

func (s *NotesService) List(ctx context.Context) ([]models.Note, error) {
	notes := []models.Note{}
	if err := s.db.WithContext(ctx).Order("created_at desc, id desc").Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

func (s *NotesService) Get(ctx context.Context, id uint) (*models.Note, error) {
	var note models.Note
	if err := s.db.WithContext(ctx).First(&note, id).Error; err != nil {
		if isNotFound(err) {
			return nil, apierr.NotFound("note")
		}
		return nil, fmt.Errorf("get note %d: %w", id, err)
	}
	return &note, nil
}

func (s *NotesService) Delete(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&models.Note{}, id).Error; err != nil {
		return fmt.Errorf("delete note %d: %w", id, err)
	}
	return nil
}

func (s *NotesService) save(ctx context.Context, note models.Note) (*models.Note, error) {
	note.CreatedAt = s.clock.Now()
	if err := s.db.WithContext(ctx).Create(&note).Error; err != nil {
		return nil, fmt.Errorf("create %s note: %w", note.Source, err)
	}
	return &note, nil
}

func pdfPlaceholder(fileName string) string {
	return fmt.Sprintf(`# %[1]s

## Document Overview
This note was created from the uploaded PDF "%[1]s". Text extraction is not available yet, so the sections below are a template to fill in while reading.

## Key Points
- Skim the headings of %[1]s and list the main sections
- Summarize each section in two or three sentences
- Write down definitions, formulas and dates worth memorizing

## Questions to Review
1. What is the central argument or topic of the document?
2. Which examples support it?
3. What would you ask the author?`, fileName)
}

func aiNotesPrompt(topic, content string) string {
	var b strings.Builder
	b.WriteString("Write well-structured study notes in markdown.\n")
	if topic != "" {
		fmt.Fprintf(&b, "Topic: %s\n", topic)
	}
	if content != "" {
		fmt.Fprintf(&b, "Source material:\n%s\n", content)
	}
	b.WriteString(`Use exactly these sections:
## Summary
A short overview in plain language.
## Key Concepts
A bullet list of the important ideas, each with a one-line explanation.
## Practice Questions
Five numbered questions a student could use to test themselves.`)
	return b.String()
}
