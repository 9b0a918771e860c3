package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/andrewpaige1/studybuddy-api/config"
	"github.com/andrewpaige1/studybuddy-api/generation"
	"github.com/andrewpaige1/studybuddy-api/logger"
	"github.com/andrewpaige1/studybuddy-api/middleware"
	"github.com/andrewpaige1/studybuddy-api/services"
)

type testServer struct {
	gen     *generation.Stub
	handler http.Handler
}

func newTestServer(t *testing.T, responses ...string) *testServer {
	t.Helper()
	db, err := config.Connect(filepath.Join(t.TempDir(), "handlers.db"))
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	sqlDB, _ := db.DB()
	t.Cleanup(func() { sqlDB.Close() })

	gen := generation.NewStub(responses...)
	log := logger.Nop()
	mux := http.NewServeMux()
	New(services.New(db, gen, nil, log), log).Routes(mux)
	return &testServer{
		gen:     gen,
		handler: middleware.Chain(mux, middleware.RequestID, middleware.Conversation),
	}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, headers ...string) (int, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("%s %s: response is not JSON: %s", method, path, rec.Body.String())
	}
	return rec.Code, out
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format(time.DateOnly)
}

const planJSON = `[{"week":1,"topic":"Basics","hours":10,"tasks":["Read","Practice"]},{"week":2,"topic":"Review","hours":10,"tasks":["Quiz"]}]`

const cardsJSON = `[{"question":"Q1","answer":"A1"},{"question":"Q2","answer":"A2"}]`

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	code, body := s.do(t, http.MethodGet, "/health", nil)
	if code != http.StatusOK || body["success"] != true {
		t.Errorf("GET /health = %d %v", code, body)
	}
}

func TestStudyPlanEndpoints(t *testing.T) {
	s := newTestServer(t, planJSON)

	code, body := s.do(t, http.MethodPost, "/generate-study-plan", map[string]interface{}{
		"courseName": "Algebra", "deadline": futureDate(10), "hoursPerDay": 2,
	})
	if code != http.StatusOK || body["success"] != true {
		t.Fatalf("generate = %d %v", code, body)
	}
	plan := body["studyPlan"].(map[string]interface{})
	id := plan["id"].(float64)
	if plan["courseName"] != "Algebra" || len(plan["plan"].([]interface{})) != 2 {
		t.Errorf("studyPlan = %v", plan)
	}

	code, body = s.do(t, http.MethodGet, "/studyplans", nil)
	if code != http.StatusOK || len(body["studyPlans"].([]interface{})) != 1 {
		t.Errorf("list = %d %v", code, body)
	}

	code, body = s.do(t, http.MethodPost, "/update-study-progress", map[string]interface{}{"id": id, "progress": 40, "completed": false})
	if code != http.StatusOK || body["plan"].(map[string]interface{})["progress"].(float64) != 40 {
		t.Errorf("update = %d %v", code, body)
	}

	code, body = s.do(t, http.MethodPost, "/update-study-progress", map[string]interface{}{"id": 999, "progress": 10})
	if code != http.StatusNotFound || body["success"] != false {
		t.Errorf("update missing = %d %v", code, body)
	}

	for i := 0; i < 2; i++ {
		code, body = s.do(t, http.MethodDelete, "/studyplan/1", nil)
		if code != http.StatusOK || body["success"] != true {
			t.Errorf("delete #%d = %d %v", i, code, body)
		}
	}
}

func TestGenerateStudyPlan_Errors(t *testing.T) {
	s := newTestServer(t, "not json")

	code, body := s.do(t, http.MethodPost, "/generate-study-plan", map[string]interface{}{"courseName": "Algebra"})
	if code != http.StatusBadRequest || body["error"] == "" {
		t.Errorf("missing fields = %d %v", code, body)
	}
	code, _ = s.do(t, http.MethodPost, "/generate-study-plan", map[string]interface{}{
		"courseName": "Algebra", "deadline": "2001-01-01", "hoursPerDay": 2,
	})
	if code != http.StatusBadRequest {
		t.Errorf("past deadline = %d", code)
	}
	code, body = s.do(t, http.MethodPost, "/generate-study-plan", map[string]interface{}{
		"courseName": "Algebra", "deadline": futureDate(5), "hoursPerDay": 2,
	})
	if code != http.StatusInternalServerError || body["error"] != "Failed to generate study plan" {
		t.Errorf("bad output = %d %v", code, body)
	}
}

func TestNotesEndpoints(t *testing.T) {
	s := newTestServer(t, "## Summary\nCells.")

	code, body := s.do(t, http.MethodPost, "/upload-pdf", map[string]string{"fileName": "bio.pdf", "fileContent": "ignored"})
	if code != http.StatusOK || body["note"].(map[string]interface{})["source"] != "pdf" {
		t.Errorf("upload-pdf = %d %v", code, body)
	}
	code, _ = s.do(t, http.MethodPost, "/upload-local-file", map[string]string{"fileName": "a.txt"})
	if code != http.StatusBadRequest {
		t.Errorf("upload-local-file missing content = %d", code)
	}
	code, _ = s.do(t, http.MethodPost, "/generate-ai-notes", map[string]string{})
	if code != http.StatusBadRequest {
		t.Errorf("generate-ai-notes empty = %d", code)
	}
	code, body = s.do(t, http.MethodPost, "/generate-ai-notes", map[string]string{"topic": "Cells"})
	if code != http.StatusOK || body["note"].(map[string]interface{})["title"] != "Cells" {
		t.Errorf("generate-ai-notes = %d %v", code, body)
	}

	code, body = s.do(t, http.MethodGet, "/notes-history", nil)
	if code != http.StatusOK || len(body["notes"].([]interface{})) != 2 {
		t.Errorf("notes-history = %d %v", code, body)
	}
	code, _ = s.do(t, http.MethodDelete, "/note/abc", nil)
	if code != http.StatusBadRequest {
		t.Errorf("delete bad id = %d", code)
	}
}

func TestFlashcardEndpoints(t *testing.T) {
	s := newTestServer(t, cardsJSON)

	code, body := s.do(t, http.MethodPost, "/generate-flashcards", map[string]interface{}{"topic": "Bio", "count": 5})
	if code != http.StatusOK {
		t.Fatalf("generate-flashcards = %d %v", code, body)
	}
	set := body["flashcardSet"].(map[string]interface{})
	if set["totalCount"].(float64) != 2 {
		t.Errorf("totalCount = %v, want 2", set["totalCount"])
	}
	setID := set["id"].(float64)
	cardID := set["cards"].([]interface{})[1].(map[string]interface{})["id"].(float64)

	code, body = s.do(t, http.MethodPost, "/save-flashcard-status", map[string]interface{}{"setId": setID, "cardId": cardID, "known": true})
	if code != http.StatusOK || body["flashcardSet"].(map[string]interface{})["knownCount"].(float64) != 1 {
		t.Errorf("save-flashcard-status = %d %v", code, body)
	}

	code, body = s.do(t, http.MethodPost, "/save-flashcard-status", map[string]interface{}{"setId": 404, "cardId": cardID, "known": true})
	if code != http.StatusNotFound || body["success"] != false {
		t.Errorf("save-flashcard-status missing set = %d %v", code, body)
	}

	code, body = s.do(t, http.MethodGet, "/flashcards-history", nil)
	if code != http.StatusOK || len(body["flashcards"].([]interface{})) != 1 {
		t.Errorf("flashcards-history = %d %v", code, body)
	}
	code, _ = s.do(t, http.MethodDelete, "/flashcard/1", nil)
	if code != http.StatusOK {
		t.Errorf("delete = %d", code)
	}
	_, body = s.do(t, http.MethodGet, "/flashcards-history", nil)
	if len(body["flashcards"].([]interface{})) != 0 {
		t.Errorf("history after delete = %v", body)
	}
}

func TestChatEndpoints(t *testing.T) {
	s := newTestServer(t, "Hello there", "Exam reply")

	code, _ := s.do(t, http.MethodPost, "/chat", map[string]string{"message": ""})
	if code != http.StatusBadRequest {
		t.Errorf("empty message = %d", code)
	}
	code, body := s.do(t, http.MethodPost, "/chat", map[string]string{"message": "hi"})
	if code != http.StatusOK || body["response"] != "Hello there" {
		t.Errorf("chat = %d %v", code, body)
	}
	s.do(t, http.MethodPost, "/chat", map[string]string{"message": "exam?"}, middleware.ConversationIDHeader, "exam")

	_, body = s.do(t, http.MethodGet, "/chat-history", nil)
	history := body["chatHistory"].([]interface{})
	if len(history) != 2 || history[0].(map[string]interface{})["role"] != "user" {
		t.Errorf("chat-history = %v", history)
	}

	code, _ = s.do(t, http.MethodDelete, "/chat-history", nil, middleware.ConversationIDHeader, "exam")
	if code != http.StatusOK {
		t.Errorf("clear exam = %d", code)
	}
	_, body = s.do(t, http.MethodGet, "/chat-history", nil, middleware.ConversationIDHeader, "exam")
	if len(body["chatHistory"].([]interface{})) != 0 {
		t.Errorf("exam history after clear = %v", body)
	}
	_, body = s.do(t, http.MethodGet, "/chat-history", nil)
	if len(body["chatHistory"].([]interface{})) != 2 {
		t.Errorf("global history after exam clear = %v", body)
	}

	s.do(t, http.MethodDelete, "/chat-history", nil)
	_, body = s.do(t, http.MethodGet, "/chat-history", nil)
	if len(body["chatHistory"].([]interface{})) != 0 {
		t.Errorf("history after clear = %v", body)
	}

	code, body = s.do(t, http.MethodPost, "/chat", map[string]string{"message": "again"})
	if code != http.StatusInternalServerError || body["error"] != "Failed to get AI response" {
		t.Errorf("generation failure = %d %v", code, body)
	}
}

func TestDashboardAndExport(t *testing.T) {
	s := newTestServer(t, cardsJSON)

	code, body := s.do(t, http.MethodGet, "/dashboard-stats", nil)
	if code != http.StatusOK || body["totalNotes"].(float64) != 0 {
		t.Errorf("empty dashboard = %d %v", code, body)
	}

	s.do(t, http.MethodPost, "/generate-flashcards", map[string]interface{}{"topic": "Bio"})
	s.do(t, http.MethodPost, "/upload-pdf", map[string]string{"fileName": "bio.pdf"})
	_, body = s.do(t, http.MethodGet, "/dashboard-stats", nil)
	if body["totalFlashcards"].(float64) != 2 || body["totalNotes"].(float64) != 1 {
		t.Errorf("dashboard = %v", body)
	}

	code, body = s.do(t, http.MethodPost, "/download-export", map[string]interface{}{"type": "flashcards", "id": 1, "format": "txt"})
	if code != http.StatusOK || body["content"] == "" {
		t.Errorf("export = %d %v", code, body)
	}
	code, _ = s.do(t, http.MethodPost, "/download-export", map[string]interface{}{"type": "video", "id": 1})
	if code != http.StatusBadRequest {
		t.Errorf("unknown type = %d", code)
	}
	code, _ = s.do(t, http.MethodPost, "/download-export", map[string]interface{}{"type": "chat"})
	if code != http.StatusNotFound {
		t.Errorf("empty chat export = %d", code)
	}
}
