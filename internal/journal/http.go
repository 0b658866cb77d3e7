package journal

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// Handler serves the journal API. Confirm is injected because the reward
// cascade spans stores the journal must not reach into.
type Handler struct {
	store   *Store
	confirm func(entryID string) (int, []string, error)
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// SetConfirmFunc wires the cross-store confirmation flow.
func (h *Handler) SetConfirmFunc(fn func(entryID string) (int, []string, error)) {
	h.confirm = fn
}

// EntriesRoot handles /api/journal/entries.
func (h *Handler) EntriesRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"entries": h.store.All()})
	case http.MethodPost:
		var req struct {
			Content     string   `json:"content"`
			NotebookIDs []string `json:"notebookIds"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		entry := h.store.Create(req.Content, req.NotebookIDs)
		writeJSON(w, http.StatusCreated, entry)
	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// Trash handles /api/journal/trash.
func (h *Handler) Trash(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": h.store.Trash()})
}

// EntriesSub handles /api/journal/entries/{id} and its actions.
func (h *Handler) EntriesSub(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/journal/entries/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		writeErr(w, http.StatusNotFound, "entry id required")
		return
	}

	switch {
	case action == "" && r.Method == http.MethodGet:
		entry, ok := h.store.Get(id)
		if !ok {
			writeErr(w, http.StatusNotFound, "entry not found")
			return
		}
		writeJSON(w, http.StatusOK, entry)

	case action == "" && r.Method == http.MethodPut:
		var req struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		h.respond(w, h.store.Update(id, req.Content), id)

	case action == "" && r.Method == http.MethodDelete:
		h.respond(w, h.store.Delete(id), id)

	case action == "hard" && r.Method == http.MethodDelete:
		if err := h.store.HardDelete(id); err != nil {
			h.respondErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"deleted": id})

	case action == "restore" && r.Method == http.MethodPost:
		h.respond(w, h.store.Restore(id), id)

	case action == "confirm" && r.Method == http.MethodPost:
		if h.confirm == nil {
			writeErr(w, http.StatusInternalServerError, "confirm not wired")
			return
		}
		ink, unlocked, err := h.confirm(id)
		if err != nil {
			h.respondErr(w, err)
			return
		}
		entry, _ := h.store.Get(id)
		writeJSON(w, http.StatusOK, map[string]any{
			"entry":             entry,
			"inkAwarded":        ink,
			"unlockedFragments": unlocked,
		})

	case action == "toggle-notebook" && r.Method == http.MethodPost:
		var req struct {
			NotebookID string `json:"notebookId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NotebookID == "" {
			writeErr(w, http.StatusBadRequest, "notebookId required")
			return
		}
		h.respond(w, h.store.ToggleNotebook(id, req.NotebookID), id)

	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) respond(w http.ResponseWriter, err error, id string) {
	if err != nil {
		h.respondErr(w, err)
		return
	}
	entry, ok := h.store.Get(id)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *Handler) respondErr(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		writeErr(w, http.StatusNotFound, "entry not found")
		return
	}
	writeErr(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}
