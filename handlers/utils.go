package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/andrewpaige1/studybuddy-api/apierr"
	"github.com/andrewpaige1/studybuddy-api/logger"
	"github.com/andrewpaige1/studybuddy-api/services"
	"github.com/andrewpaige1/studybuddy-api/utils"
)

// Handler serves the HTTP API on top of the domain services.
type Handler struct {
	svc *services.Services
	log *logger.Logger
}

func New(svc *services.Services, log *logger.Logger) *Handler {
	return &Handler{svc: svc, log: log.With("component", "handlers")}
}

// Routes registers every endpoint on mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)

	// Study plans
	mux.HandleFunc("POST /generate-study-plan", h.GenerateStudyPlan)
	mux.HandleFunc("GET /studyplans", h.GetStudyPlans)
	mux.HandleFunc("POST /update-study-progress", h.UpdateStudyProgress)
	mux.HandleFunc("DELETE /studyplan/{id}", h.DeleteStudyPlan)

	// Notes
	mux.HandleFunc("POST /upload-pdf", h.UploadPDF)
	mux.HandleFunc("POST /upload-local-file", h.UploadLocalFile)
	mux.HandleFunc("POST /generate-ai-notes", h.GenerateAINotes)
	mux.HandleFunc("GET /notes-history", h.GetNotesHistory)
	mux.HandleFunc("DELETE /note/{id}", h.DeleteNote)

	// Flashcards
	mux.HandleFunc("POST /generate-flashcards", h.GenerateFlashcards)
	mux.HandleFunc("GET /flashcards-history", h.GetFlashcardsHistory)
	mux.HandleFunc("POST /save-flashcard-status", h.SaveFlashcardStatus)
	mux.HandleFunc("DELETE /flashcard/{id}", h.DeleteFlashcardSet)

	// Chat
	mux.HandleFunc("POST /chat", h.Chat)
	mux.HandleFunc("GET /chat-history", h.GetChatHistory)
	mux.HandleFunc("DELETE /chat-history", h.ClearChatHistory)

	mux.HandleFunc("GET /dashboard-stats", h.GetDashboardStats)
	mux.HandleFunc("POST /download-export", h.DownloadExport)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeSuccess writes {"success":true} merged with fields.
func writeSuccess(w http.ResponseWriter, fields map[string]interface{}) {
	body := map[string]interface{}{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	writeJSON(w, http.StatusOK, body)
}

// writeError reports 4xx errors with their own message. For 5xx the cause is
// only logged and the client gets fallback.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := apierr.StatusOf(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		id, _ := utils.GetRequestID(r)
		h.log.Error(fallback, "request_id", id, "path", r.URL.Path, "error", err)
		message = fallback
	}
	writeJSON(w, status, map[string]interface{}{"success": false, "error": message})
}

func decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apierr.Validation("request body is required")
		}
		return apierr.Validation("invalid request body")
	}
	return nil
}

func pathID(r *http.Request) (uint, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apierr.Validation("invalid id %q", raw)
	}
	return uint(id), nil
}
