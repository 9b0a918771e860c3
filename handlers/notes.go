package handlers

import (
	"net/http"
)

type fileUploadRequest struct {
	FileName    string `json:"fileName"`
	FileContent string `json:"fileContent"`
}

// UploadPDF stores placeholder notes for the named file; the uploaded bytes
// are not read.
func (h *Handler) UploadPDF(w http.ResponseWriter, r *http.Request) {
	var req fileUploadRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err, "")
		return
	}
	note, err := h.svc.Notes.FromPDF(r.Context(), req.FileName)
	if err != nil {
		h.writeError(w, r, err, "Failed to process PDF")
		return
	}
	writeSuccess(w, map[string]interface{}{"note": note})
}

func (h *Handler) UploadLocalFile(w http.ResponseWriter, r *http.Request) {
	var req fileUploadRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err, "")
		return
	}
	note, err := h.svc.Notes.FromLocalFile(r.Context(), req.FileName, req.FileContent)
	if err != nil {
		h.writeError(w, r, err, "Failed to process file")
		return
	}
	writeSuccess(w, map[string]interface{}{"note": note})
}

func (h *Handler) GenerateAINotes(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Topic   string `json:"topic"`
		Content string `json:"content"`
	}
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err, "")
		return
	}
	note, err := h.svc.Notes.FromAI(r.Context(), req.Topic, req.Content)
	if err != nil {
		h.writeError(w, r, err, "Failed to generate notes")
		return
	}
	writeSuccess(w, map[string]interface{}{"note": note})
}

func (h *Handler) GetNotesHistory(w http.ResponseWriter, r *http.Request) {
	notes, err := h.svc.Notes.List(r.Context())
	if err != nil {
		h.writeError(w, r, err, "Failed to fetch notes")
		return
	}
	writeSuccess(w, map[string]interface{}{"notes": notes})
}

func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}
	if err := h.svc.Notes.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err, "Failed to delete note")
		return
	}
	writeSuccess(w, nil)
}
