package handlers

import (
	"net/http"

	"github.com/andrewpaige1/studybuddy-api/apierr"
)

// GetDashboardStats returns the aggregate counters flat alongside success.
func (h *Handler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Dashboard.Stats(r.Context())
	if err != nil {
		h.writeError(w, r, err, "Failed to fetch dashboard stats")
		return
	}
	writeSuccess(w, map[string]interface{}{
		"totalNotes":        stats.TotalNotes,
		"totalStudyPlans":   stats.TotalStudyPlans,
		"totalFlashcards":   stats.TotalFlashcards,
		"knownFlashcards":   stats.KnownFlashcards,
		"totalTasks":        stats.TotalTasks,
		"completedTasks":    stats.CompletedTasks,
		"totalChatMessages": stats.TotalChatMessages,
	})
}

func (h *Handler) DownloadExport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type   string `json:"type"`
		ID     uint   `json:"id"`
		Format string `json:"format"`
	}
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err, "")
		return
	}
	if req.Type == "" {
		h.writeError(w, r, apierr.Validation("type is required"), "")
		return
	}

	res, err := h.svc.Export.Export(r.Context(), req.Type, req.ID, req.Format)
	if err != nil {
		h.writeError(w, r, err, "Failed to export")
		return
	}
	writeSuccess(w, map[string]interface{}{"content": res.Content, "filename": res.Filename})
}
