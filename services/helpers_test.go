package services

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/andrewpaige1/studybuddy-api/config"
	"github.com/andrewpaige1/studybuddy-api/generation"
	"github.com/andrewpaige1/studybuddy-api/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// dbCounter gives each test its own shared-cache in-memory database.
var dbCounter atomic.Int64

func newTestDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:services%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

// stubClock returns a fixed time until advanced.
type stubClock struct {
	mu  sync.Mutex
	now time.Time
}

func fixedClock() *stubClock {
	return &stubClock{now: time.Date(2026, 10, 15, 10, 30, 0, 0, time.UTC)}
}

func (c *stubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stubClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	db    *gorm.DB
	gen   *generation.Stub
	clock *stubClock
	svc   *Services
}

func newFixture(t testing.TB, responses ...string) *fixture {
	t.Helper()
	f := &fixture{
		db:    newTestDB(t),
		gen:   generation.NewStub(responses...),
		clock: fixedClock(),
	}
	f.svc = New(f.db, f.gen, f.clock, logger.Nop())
	return f
}

const threeCards = `[
  {"question":"What is the powerhouse of the cell?","answer":"Mitochondria"},
  {"question":"Where are proteins made?","answer":"Ribosomes"},
  {"question":"What holds genetic material?","answer":"The nucleus"}
]`

const oneWeekPlan = `[{"week":1,"topic":"Foundations","hours":14,"tasks":["Read chapter 1","Practice set 1","Flashcard review"]}]`
