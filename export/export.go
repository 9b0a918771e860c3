// Package export renders persisted records as flat, human-readable text.
// Renderers are pure: the same record always yields the same text.
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/andrewpaige1/studybuddy-api/models"
)

const rule = "=================================================="

const (
	PrefixStudy      = "study-plan"
	PrefixNotes      = "notes"
	PrefixChat       = "chat-history"
	PrefixFlashcards = "flashcards"
)

func Study(p models.StudyPlan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "STUDY PLAN: %s\n%s\n", p.CourseName, rule)
	fmt.Fprintf(&b, "Deadline: %s\n", time.Time(p.Deadline).Format(time.DateOnly))
	fmt.Fprintf(&b, "Days Until Deadline: %d\n", p.DaysUntil)
	fmt.Fprintf(&b, "Hours Per Day: %d\n", p.HoursPerDay)
	fmt.Fprintf(&b, "Total Hours: %d\n", p.TotalHours)
	fmt.Fprintf(&b, "Progress: %d%%\n", p.Progress)
	fmt.Fprintf(&b, "Status: %s\n", planStatus(p.Completed))
	fmt.Fprintf(&b, "Created: %s\n", stamp(p.CreatedAt))

	for _, w := range p.Plan {
		fmt.Fprintf(&b, "\nWEEK %d: %s (%s hours)\n", w.Week, w.Topic, hours(w.Hours))
		for _, task := range w.Tasks {
			fmt.Fprintf(&b, "  - %s\n", task)
		}
	}
	return b.String()
}

func Notes(n models.Note) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n", n.Title, rule)
	fmt.Fprintf(&b, "Source: %s\n", n.Source)
	if n.FileName != "" {
		fmt.Fprintf(&b, "File: %s\n", n.FileName)
	}
	fmt.Fprintf(&b, "Created: %s\n\n", stamp(n.CreatedAt))
	b.WriteString(n.Content)
	b.WriteString("\n")
	return b.String()
}

// Chat renders messages in the order given; callers pass them oldest first.
func Chat(conversationID string, messages []models.ChatMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CHAT HISTORY (%s)\n%s\n", conversationID, rule)
	for _, m := range messages {
		fmt.Fprintf(&b, "\n[%s] %s:\n%s\n", stamp(m.CreatedAt), speaker(m.Role), m.Content)
	}
	return b.String()
}

func Flashcards(s models.FlashcardSet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "FLASHCARDS: %s\n%s\n", s.Topic, rule)
	fmt.Fprintf(&b, "Total Cards: %d\n", s.TotalCount)
	fmt.Fprintf(&b, "Known: %d\n", s.KnownCount)
	fmt.Fprintf(&b, "Created: %s\n", stamp(s.CreatedAt))
	for i, c := range s.Cards {
		fmt.Fprintf(&b, "\n%d. Q: %s\n   A: %s\n   Status: %s\n", i+1, c.Question, c.Answer, cardStatus(c.Known))
	}
	return b.String()
}

// Filename builds <prefix>-<slug>-<epoch-ms>.<format>. Whitespace runs in the
// title become single hyphens; an empty format means txt.
func Filename(prefix, title, format string, at time.Time) string {
	slug := strings.Join(strings.Fields(title), "-")
	slug = strings.NewReplacer("/", "-", "\\", "-").Replace(slug)
	if slug == "" {
		slug = "untitled"
	}
	format = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(format)), ".")
	if format == "" {
		format = "txt"
	}
	return fmt.Sprintf("%s-%s-%d.%s", prefix, slug, at.UnixMilli(), format)
}

func stamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}

func hours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

func planStatus(completed bool) string {
	if completed {
		return "Completed"
	}
	return "In Progress"
}

func cardStatus(known bool) string {
	if known {
		return "Known"
	}
	return "Learning"
}

func speaker(role string) string {
	if role == models.ChatRoleAssistant {
		return "Assistant"
	}
	return "You"
}
