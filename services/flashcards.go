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

const (
	DefaultFlashcardTopic = "General Study"
	DefaultFlashcardCount = 5
)

type FlashcardService struct {
	db  *gorm.DB
	gen generation.Generator
	log *logger.Logger
}

func NewFlashcardService(db *gorm.DB, gen generation.Generator, log *logger.Logger) *FlashcardService {
	return &FlashcardService{db: db, gen: gen, log: log.With("service", "FlashcardService")}
}

type generatedCard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Generate asks for count cards on topic and stores whatever the generator
// returned: TotalCount is the number of cards received, not count.
func (s *FlashcardService) Generate(ctx context.Context, topic string, count int) (*models.FlashcardSet, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = DefaultFlashcardTopic
	}
	if count <= 0 {
		count = DefaultFlashcardCount
	}

	text, err := s.gen.Generate(ctx, flashcardPrompt(topic, count), true)
	if err != nil {
		s.log.Warn("flashcard generation failed", "topic", topic, "error", err)
		return nil, apierr.Generation(err)
	}
	var cards []generatedCard
	if err := generation.DecodeStructured(text, &cards); err != nil {
		s.log.Warn("flashcard output rejected", "topic", topic, "error", err)
		return nil, apierr.Generation(err)
	}
	if len(cards) == 0 {
		return nil, apierr.Generation(fmt.Errorf("%w: no flashcards returned", generation.ErrGenerationFailed))
	}
	for i, c := range cards {
		if strings.TrimSpace(c.Question) == "" || strings.TrimSpace(c.Answer) == "" {
			return nil, apierr.Generation(fmt.Errorf("%w: card %d lacks a question or answer", generation.ErrGenerationFailed, i+1))
		}
	}
	if len(cards) != count {
		s.log.Info("flashcard count differs from request", "requested", count, "generated", len(cards))
	}

	set := models.FlashcardSet{
		Topic:          topic,
		RequestedCount: count,
		TotalCount:     len(cards),
	}

	// Start a database transaction
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin transaction: %w", tx.Error)
	}
	if err := tx.Create(&set).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("create flashcard set: %w", err)
	}
	set.Cards = make([]models.Flashcard, 0, len(cards))
	for _, c := range cards {
		card := models.Flashcard{SetID: set.ID, Question: c.Question, Answer: c.Answer}
		if err := tx.Create(&card).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("create flashcard: %w", err)
		}
		set.Cards = append(set.Cards, card)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("commit flashcard set: %w", err)
	}
	return &set, nil
}

// SaveStatus sets one card's known flag and recomputes the set's known count
// from its cards, both inside one transaction.
func (s *FlashcardService) SaveStatus(ctx context.Context, setID, cardID uint, known bool) (*models.FlashcardSet, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var set models.FlashcardSet
		if err := tx.Select("id").First(&set, setID).Error; err != nil {
			if isNotFound(err) {
				return apierr.NotFound("flashcard set")
			}
			return err
		}

		res := tx.Model(&models.Flashcard{}).
			Where("id = ? AND set_id = ?", cardID, setID).
			Update("known", known)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apierr.NotFound("flashcard")
		}

		return tx.Exec(
			"UPDATE flashcard_sets SET known_count = (SELECT COUNT(*) FROM flashcards WHERE set_id = ? AND known = ?) WHERE id = ?",
			setID, true, setID,
		).Error
	})
	if err != nil {
		if apierr.StatusOf(err) < 500 {
			return nil, err
		}
		return nil, fmt.Errorf("save flashcard status: %w", err)
	}
	return s.Get(ctx, setID)
}

func (s *FlashcardService) Get(ctx context.Context, id uint) (*models.FlashcardSet, error) {
	var set models.FlashcardSet
	if err := s.db.WithContext(ctx).Preload("Cards", orderByID).First(&set, id).Error; err != nil {
		if isNotFound(err) {
			return nil, apierr.NotFound("flashcard set")
		}
		return nil, fmt.Errorf("get flashcard set %d: %w", id, err)
	}
	return &set, nil
}

// History returns every set, newest first, with its cards loaded.
func (s *FlashcardService) History(ctx context.Context) ([]models.FlashcardSet, error) {
	sets := []models.FlashcardSet{}
	err := s.db.WithContext(ctx).
		Preload("Cards", orderByID).
		Order("created_at desc, id desc").
		Find(&sets).Error
	if err != nil {
		return nil, fmt.Errorf("list flashcard sets: %w", err)
	}
	for i := range sets {
		if sets[i].Cards == nil {
			sets[i].Cards = []models.Flashcard{}
		}
	}
	return sets, nil
}

// Delete removes the set's cards and then the set. Missing sets are ignored.
func (s *FlashcardService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("set_id = ?", id).Delete(&models.Flashcard{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.FlashcardSet{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("delete flashcard set %d: %w", id, err)
	}
	return nil
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id asc")
}

func flashcardPrompt(topic string, count int) string {
	return fmt.Sprintf(`Create %d study flashcards about "%s".
Each card tests one fact or concept. Keep questions short and answers to one or two sentences.
Respond with a JSON array only, where every element is an object with exactly two string fields:
  "question" and "answer".`, count, topic)
}
