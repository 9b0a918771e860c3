package handlers

import (
	"net/http"
)

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err, "")
		return
	}
	reply, err := h.svc.Chat.Send(r.Context(), req.Message)
	if err != nil {
		h.writeError(w, r, err, "Failed to get AI response")
		return
	}
	writeSuccess(w, map[string]interface{}{"response": reply})
}

func (h *Handler) GetChatHistory(w http.ResponseWriter, r *http.Request) {
	messages, err := h.svc.Chat.History(r.Context())
	if err != nil {
		h.writeError(w, r, err, "Failed to fetch chat history")
		return
	}
	writeSuccess(w, map[string]interface{}{"chatHistory": messages})
}

func (h *Handler) ClearChatHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Chat.Clear(r.Context()); err != nil {
		h.writeError(w, r, err, "Failed to clear chat history")
		return
	}
	writeSuccess(w, nil)
}
