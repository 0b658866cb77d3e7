package game

import (
	"encoding/json"
	"net/http"
)

// Handler serves the orchestrated endpoints: drag commits, day sync, and
// full resets.
type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

// Drag handles POST /api/room/drag.
func (h *Handler) Drag(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req DragRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if req.UID == 0 && req.ItemID == "" {
		writeErr(w, http.StatusBadRequest, "itemId required for a tray drag")
		return
	}
	writeJSON(w, http.StatusOK, h.engine.CommitDrag(req))
}

// Layout handles GET /api/room/layout.
func (h *Handler) Layout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"layout": h.engine.User.Layout()})
}

// SyncDay handles POST /api/day/sync.
func (h *Handler) SyncDay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	day, changed := h.engine.SyncDay()
	writeJSON(w, http.StatusOK, map[string]any{"day": day, "changed": changed})
}

// Reset handles POST /api/reset.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if err := h.engine.ResetAll(); err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
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
