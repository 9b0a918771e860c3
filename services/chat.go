package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/andrewpaige1/studybuddy-api/apierr"
	"github.com/andrewpaige1/studybuddy-api/generation"
	"github.com/andrewpaige1/studybuddy-api/logger"
	"github.com/andrewpaige1/studybuddy-api/models"
	"github.com/andrewpaige1/studybuddy-api/utils"
	"gorm.io/gorm"
)

// chatRoles maps persisted role names to the generator's role names. It is
// the only place either vocabulary is translated to the other.
var chatRoles = map[string]string{
	models.ChatRoleUser:      generation.RoleUser,
	models.ChatRoleAssistant: generation.RoleModel,
}

func toGeneratorRole(persisted string) (string, bool) {
	role, ok := chatRoles[persisted]
	return role, ok
}

func toPersistedRole(generator string) (string, bool) {
	for persisted, role := range chatRoles {
		if role == generator {
			return persisted, true
		}
	}
	return "", false
}

// ChatService keeps one ordered history per conversation. The conversation
// is taken from the request context.
type ChatService struct {
	db    *gorm.DB
	gen   generation.Generator
	clock Clock
	log   *logger.Logger
}

func NewChatService(db *gorm.DB, gen generation.Generator, clock Clock, log *logger.Logger) *ChatService {
	return &ChatService{db: db, gen: gen, clock: clock, log: log.With("service", "ChatService")}
}

// Send answers message in the context of the conversation's history. The user
// message and the reply are stored together only after the reply arrives, so
// a failed generation leaves the history untouched.
func (s *ChatService) Send(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", apierr.Validation("message is required")
	}
	conversationID := utils.ConversationID(ctx)
	if len(conversationID) > models.MaxConversationIDLength {
		return "", apierr.Validation("conversation id must be at most %d characters", models.MaxConversationIDLength)
	}
	askedAt := s.clock.Now()

	history, err := s.History(ctx)
	if err != nil {
		return "", err
	}
	turns := make([]generation.Turn, 0, len(history))
	for _, m := range history {
		role, ok := toGeneratorRole(m.Role)
		if !ok {
			s.log.Warn("skipping chat message with unknown role", "id", m.ID, "role", m.Role)
			continue
		}
		turns = append(turns, generation.Turn{Role: role, Text: m.Content})
	}

	reply, err := s.gen.Converse(ctx, turns, message)
	if err != nil {
		s.log.Warn("chat generation failed", "conversation_id", conversationID, "error", err)
		return "", apierr.Generation(err)
	}

	replyRole, _ := toPersistedRole(generation.RoleModel)
	answeredAt := s.clock.Now()
	if answeredAt.Before(askedAt) {
		answeredAt = askedAt
	}
	exchange := []models.ChatMessage{
		{ConversationID: conversationID, Role: models.ChatRoleUser, Content: message, CreatedAt: askedAt},
		{ConversationID: conversationID, Role: replyRole, Content: reply, CreatedAt: answeredAt},
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range exchange {
			if err := tx.Create(&exchange[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("store chat exchange: %w", err)
	}
	return reply, nil
}

// History returns the conversation oldest first.
func (s *ChatService) History(ctx context.Context) ([]models.ChatMessage, error) {
	messages := []models.ChatMessage{}
	err := s.db.WithContext(ctx).
		Where("conversation_id = ?", utils.ConversationID(ctx)).
		Order("created_at asc, id asc").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("load chat history: %w", err)
	}
	return messages, nil
}

// Clear deletes every message of the conversation named by the request. A
// request that names no conversation clears the whole history.
func (s *ChatService) Clear(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	if id, ok := utils.ExplicitConversationID(ctx); ok {
		db = db.Where("conversation_id = ?", id)
	} else {
		db = db.Where("1 = 1")
	}
	if err := db.Delete(&models.ChatMessage{}).Error; err != nil {
		return fmt.Errorf("clear chat history: %w", err)
	}
	return nil
}
