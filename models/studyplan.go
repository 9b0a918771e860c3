package models

import (
	"time"

	"gorm.io/datatypes"
)

// WeekEntry is one generated week of a study plan.
type WeekEntry struct {
	Week  int      `json:"week"`
	Topic string   `json:"topic"`
	Hours float64  `json:"hours"`
	Tasks []string `json:"tasks"`
}

type StudyPlan struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      *uint          `json:"userId"`
	CourseName  string         `gorm:"not null;size:200" json:"courseName"`
	Deadline    datatypes.Date `gorm:"not null" json:"deadline"`
	HoursPerDay int            `gorm:"not null" json:"hoursPerDay"`
	DaysUntil   int            `gorm:"not null" json:"daysUntil"`
	TotalHours  int            `gorm:"not null" json:"totalHours"`

	// What the generator was asked for versus what it returned.
	RequestedWeeks int     `gorm:"not null;default:0" json:"requestedWeeks"`
	GeneratedHours float64 `gorm:"not null;default:0" json:"generatedHours"`

	Plan      datatypes.JSONSlice[WeekEntry] `json:"plan"`
	Progress  int                            `gorm:"not null;default:0" json:"progress"`
	Completed bool                           `gorm:"not null;default:false" json:"completed"`
	CreatedAt time.Time                      `json:"createdAt"`
}

// TaskCount is the number of tasks across all weeks.
func (p *StudyPlan) TaskCount() int {
	n := 0
	for _, w := range p.Plan {
		n += len(w.Tasks)
	}
	return n
}
