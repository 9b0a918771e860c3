package handlers

import (
	"net/http"

	"github.com/andrewpaige1/studybuddy-api/apierr"
)

func (h *Handler) GenerateFlashcards(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Topic string `json:"topic"`
		Count int    `json:"count"`
	}
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err, "")
		return
	}

	set, err := h.svc.Flashcards.Generate(r.Context(), req.Topic, req.Count)
	if err != nil {
		h.writeError(w, r, err, "Failed to generate flashcards")
		return
	}
	writeSuccess(w, map[string]interface{}{"flashcardSet": set})
}

func (h *Handler) GetFlashcardsHistory(w http.ResponseWriter, r *http.Request) {
	sets, err := h.svc.Flashcards.History(r.Context())
	if err != nil {
		h.writeError(w, r, err, "Failed to fetch flashcards")
		return
	}
	writeSuccess(w, map[string]interface{}{"flashcards": sets})
}

func (h *Handler) SaveFlashcardStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SetID  *uint `json:"setId"`
		CardID *uint `json:"cardId"`
		Known  bool  `json:"known"`
	}
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err, "")
		return
	}
	if req.SetID == nil || req.CardID == nil {
		h.writeError(w, r, apierr.Validation("setId and cardId are required"), "")
		return
	}

	set, err := h.svc.Flashcards.SaveStatus(r.Context(), *req.SetID, *req.CardID, req.Known)
	if err != nil {
		h.writeError(w, r, err, "Failed to save flashcard status")
		return
	}
	writeSuccess(w, map[string]interface{}{"flashcardSet": set})
}

func (h *Handler) DeleteFlashcardSet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}
	if err := h.svc.Flashcards.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err, "Failed to delete flashcard set")
		return
	}
	writeSuccess(w, nil)
}
