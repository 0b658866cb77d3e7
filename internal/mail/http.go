package mail

import (
	"encoding/json"
	"net/http"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Today handles GET /api/mail/today.
func (h *Handler) Today(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	letter, ok := h.svc.TodayLetter()
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"letter": nil})
		return
	}
	resp := map[string]any{"letter": letter}
	if prompt, ok := h.svc.Prompt(letter.Day); ok {
		resp["prompt"] = prompt
	}
	writeJSON(w, http.StatusOK, resp)
}

// Archive handles GET /api/mail/archive.
func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"archive": h.svc.Archive()})
}

// Read handles POST /api/mail/read.
func (h *Handler) Read(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req struct {
		Day int `json:"day"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Day < 1 {
		writeErr(w, http.StatusBadRequest, "day required")
		return
	}
	if letter, ok := h.svc.Letter(req.Day); ok {
		newly := h.svc.MarkRead(req.Day)
		writeJSON(w, http.StatusOK, map[string]any{"letter": letter, "newlyRead": newly})
		return
	}
	writeErr(w, http.StatusNotFound, "no letter for that day")
}

// Reply handles POST /api/mail/reply.
func (h *Handler) Reply(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req struct {
		Day     int    `json:"day"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Day < 1 {
		writeErr(w, http.StatusBadRequest, "day required")
		return
	}
	if !h.svc.SaveReply(req.Day, req.Content) {
		writeErr(w, http.StatusNotFound, "no letter for that day")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}
