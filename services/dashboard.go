package services

import (
	"context"
	"fmt"

	"github.com/andrewpaige1/studybuddy-api/models"
	"gorm.io/gorm"
)

type DashboardStats struct {
	TotalNotes        int64 `json:"totalNotes"`
	TotalStudyPlans   int64 `json:"totalStudyPlans"`
	TotalFlashcards   int64 `json:"totalFlashcards"`
	KnownFlashcards   int64 `json:"knownFlashcards"`
	TotalTasks        int   `json:"totalTasks"`
	CompletedTasks    int   `json:"completedTasks"`
	TotalChatMessages int64 `json:"totalChatMessages"`
}

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	db := s.db.WithContext(ctx)
	var stats DashboardStats

	if err := db.Model(&models.Note{}).Count(&stats.TotalNotes).Error; err != nil {
		return nil, fmt.Errorf("count notes: %w", err)
	}
	if err := db.Model(&models.ChatMessage{}).Count(&stats.TotalChatMessages).Error; err != nil {
		return nil, fmt.Errorf("count chat messages: %w", err)
	}

	var cards struct {
		Total int64
		Known int64
	}
	err := db.Model(&models.FlashcardSet{}).
		Select("COALESCE(SUM(total_count), 0) AS total, COALESCE(SUM(known_count), 0) AS known").
		Scan(&cards).Error
	if err != nil {
		return nil, fmt.Errorf("sum flashcards: %w", err)
	}
	stats.TotalFlashcards = cards.Total
	stats.KnownFlashcards = cards.Known

	var plans []models.StudyPlan
	if err := db.Select("id", "plan", "progress", "completed").Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("load study plans: %w", err)
	}
	stats.TotalStudyPlans = int64(len(plans))
	for i := range plans {
		tasks := plans[i].TaskCount()
		stats.TotalTasks += tasks
		stats.CompletedTasks += CompletedTasks(tasks, plans[i].Progress, plans[i].Completed)
	}
	return &stats, nil
}

// CompletedTasks estimates finished tasks from a plan's progress percentage.
// A completed plan counts all of its tasks.
func CompletedTasks(tasks, progress int, completed bool) int {
	if completed {
		return tasks
	}
	if progress <= 0 {
		return 0
	}
	if progress > 100 {
		progress = 100
	}
	return tasks * progress / 100
}
