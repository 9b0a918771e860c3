package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/andrewpaige1/studybuddy-api/apierr"
	"github.com/andrewpaige1/studybuddy-api/generation"
	"github.com/andrewpaige1/studybuddy-api/logger"
	"github.com/andrewpaige1/studybuddy-api/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type StudyPlanService struct {
	db    *gorm.DB
	gen   generation.Generator
	clock Clock
	log   *logger.Logger
}

func NewStudyPlanService(db *gorm.DB, gen generation.Generator, clock Clock, log *logger.Logger) *StudyPlanService {
	return &StudyPlanService{db: db, gen: gen, clock: clock, log: log.With("service", "StudyPlanService")}
}

type GeneratePlanInput struct {
	CourseName  string
	Deadline    string
	HoursPerDay int
}

// ParseDeadline accepts a calendar date (YYYY-MM-DD, read in loc) or an
// RFC3339 timestamp.
func ParseDeadline(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.ParseInLocation(time.DateOnly, raw, loc); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

const secondsPerDay = 24 * 60 * 60

// MaxHoursPerDay bounds hoursPerDay to one calendar day.
const MaxHoursPerDay = 24

// DaysUntil is ceil((deadline - now) / 1 day). It works on Unix seconds
// rather than time.Duration, which saturates after about 292 years.
func DaysUntil(deadline, now time.Time) int {
	secs := deadline.Unix() - now.Unix()
	nanos := deadline.Nanosecond() - now.Nanosecond()
	if nanos < 0 {
		secs--
		nanos += int(time.Second)
	}
	days := secs / secondsPerDay
	if rem := secs % secondsPerDay; rem > 0 || (rem == 0 && nanos > 0) {
		days++
	}
	return int(days)
}

// WeeksFor is the number of week entries requested for a plan.
func WeeksFor(daysUntil int) int {
	return (daysUntil + 6) / 7
}

func (s *StudyPlanService) Generate(ctx context.Context, in GeneratePlanInput) (*models.StudyPlan, error) {
	courseName := strings.TrimSpace(in.CourseName)
	if courseName == "" || strings.TrimSpace(in.Deadline) == "" || in.HoursPerDay == 0 {
		return nil, apierr.Validation("courseName, deadline and hoursPerDay are required")
	}
	if in.HoursPerDay < 0 || in.HoursPerDay > MaxHoursPerDay {
		return nil, apierr.Validation("hoursPerDay must be between 1 and %d", MaxHoursPerDay)
	}

	now := s.clock.Now()
	deadline, err := ParseDeadline(in.Deadline, now.Location())
	if err != nil {
		return nil, apierr.Validation("deadline %q is not a valid date", in.Deadline)
	}
	daysUntil := DaysUntil(deadline, now)
	if daysUntil <= 0 {
		return nil, apierr.Validation("deadline is in the past")
	}
	totalHours := daysUntil * in.HoursPerDay
	weeks := WeeksFor(daysUntil)

	prompt := studyPlanPrompt(courseName, deadline, daysUntil, in.HoursPerDay, totalHours, weeks)
	text, err := s.gen.Generate(ctx, prompt, true)
	if err != nil {
		s.log.Warn("study plan generation failed", "course", courseName, "error", err)
		return nil, apierr.Generation(err)
	}
	var entries []models.WeekEntry
	if err := generation.DecodeStructured(text, &entries); err != nil {
		s.log.Warn("study plan output rejected", "course", courseName, "error", err)
		return nil, apierr.Generation(err)
	}
	if len(entries) == 0 {
		return nil, apierr.Generation(fmt.Errorf("%w: no weeks in study plan", generation.ErrGenerationFailed))
	}

	generated := 0.0
	for _, e := range entries {
		generated += e.Hours
	}
	if len(entries) != weeks || generated != float64(totalHours) {
		s.log.Info("study plan differs from request",
			"requested_weeks", weeks, "generated_weeks", len(entries),
			"total_hours", totalHours, "generated_hours", generated)
	}

	plan := models.StudyPlan{
		CourseName:     courseName,
		Deadline:       datatypes.Date(deadline),
		HoursPerDay:    in.HoursPerDay,
		DaysUntil:      daysUntil,
		TotalHours:     totalHours,
		RequestedWeeks: weeks,
		GeneratedHours: generated,
		Plan:           entries,
		CreatedAt:      now,
	}
	if err := s.db.WithContext(ctx).Create(&plan).Error; err != nil {
		return nil, fmt.Errorf("create study plan: %w", err)
	}
	return &plan, nil
}

func (s *StudyPlanService) List(ctx context.Context) ([]models.StudyPlan, error) {
	plans := []models.StudyPlan{}
	if err := s.db.WithContext(ctx).Order("created_at desc, id desc").Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("list study plans: %w", err)
	}
	return plans, nil
}

func (s *StudyPlanService) Get(ctx context.Context, id uint) (*models.StudyPlan, error) {
	var plan models.StudyPlan
	if err := s.db.WithContext(ctx).First(&plan, id).Error; err != nil {
		if isNotFound(err) {
			return nil, apierr.NotFound("study plan")
		}
		return nil, fmt.Errorf("get study plan %d: %w", id, err)
	}
	return &plan, nil
}

// UpdateProgress writes progress and completed verbatim; neither is derived
// from the other.
func (s *StudyPlanService) UpdateProgress(ctx context.Context, id uint, progress int, completed bool) (*models.StudyPlan, error) {
	if progress < 0 || progress > 100 {
		return nil, apierr.Validation("progress must be between 0 and 100")
	}
	plan, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Model(plan).Updates(map[string]interface{}{
		"progress":  progress,
		"completed": completed,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("update study plan %d: %w", id, err)
	}
	plan.Progress = progress
	plan.Completed = completed
	return plan, nil
}

// Delete removes the plan if present. Deleting a missing plan is not an error.
func (s *StudyPlanService) Delete(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&models.StudyPlan{}, id).Error; err != nil {
		return fmt.Errorf("delete study plan %d: %w", id, err)
	}
	return nil
}

func studyPlanPrompt(course string, deadline time.Time, daysUntil, hoursPerDay, totalHours, weeks int) string {
	return fmt.Sprintf(`Create a study plan for the course "%s".
The deadline is %s, which is %d days away. The student can study %d hours per day, %d hours in total.
Split the plan into exactly %d weeks. The hours of all weeks must add up to %d.
Respond with a JSON array only, one object per week, each with:
  "week": integer starting at 1,
  "topic": string,
  "hours": number,
  "tasks": array of short, concrete task strings.`,
		course, deadline.Format(time.DateOnly), daysUntil, hoursPerDay, totalHours, weeks, totalHours)
}
