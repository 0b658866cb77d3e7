package userdata

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Handler serves the raw user state and the notebook endpoints.
type Handler struct {
	store *Store
	// onNotebookDeleted lets the journal re-home entries after a delete.
	onNotebookDeleted func(notebookID string)
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) SetNotebookDeletedFunc(fn func(notebookID string)) {
	h.onNotebookDeleted = fn
}

// State handles GET /api/state.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"state":     h.store.Snapshot(),
		"isNewUser": h.store.IsNewUser(),
	})
}

// Achievements handles GET /api/achievements.
func (h *Handler) Achievements(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"unlocked": h.store.AchievementIDs(),
		"catalog":  Achievements,
	})
}

// IntroWatched handles POST /api/intro/watched.
func (h *Handler) IntroWatched(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.store.MarkIntroWatched()
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// Draft handles /api/draft: the unconfirmed editor buffer, autosaved by
// the shell on every pause.
func (h *Handler) Draft(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"draft": h.store.Draft()})
	case http.MethodPut:
		var req struct {
			Draft string `json:"draft"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		h.store.SetDraft(req.Draft)
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// Scripts handles /api/scripts: the story scripts the player has seen.
func (h *Handler) Scripts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"unlocked": h.store.UnlockedScripts()})
	case http.MethodPost:
		var req struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.ID) == "" {
			writeErr(w, http.StatusBadRequest, "script id required")
			return
		}
		newly := h.store.UnlockScript(req.ID)
		writeJSON(w, http.StatusOK, map[string]any{"unlocked": newly})
	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// NotebooksRoot handles /api/notebooks.
func (h *Handler) NotebooksRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"notebooks": h.store.Notebooks()})
	case http.MethodPost:
		var req struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		writeJSON(w, http.StatusCreated, h.store.CreateNotebook(req.Name))
	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// NotebooksSub handles /api/notebooks/{id}.
func (h *Handler) NotebooksSub(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/notebooks/")
	if id == "" || strings.Contains(id, "/") {
		writeErr(w, http.StatusNotFound, "notebook id required")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
			writeErr(w, http.StatusBadRequest, "name required")
			return
		}
		if !h.store.RenameNotebook(id, req.Name) {
			writeErr(w, http.StatusNotFound, "notebook not found")
			return
		}
		nb, _ := h.store.Notebook(id)
		writeJSON(w, http.StatusOK, nb)

	case http.MethodDelete:
		if id == InboxNotebookID {
			writeErr(w, http.StatusForbidden, "the inbox cannot be deleted")
			return
		}
		if !h.store.DeleteNotebook(id) {
			writeErr(w, http.StatusNotFound, "notebook not found")
			return
		}
		if h.onNotebookDeleted != nil {
			h.onNotebookDeleted(id)
		}
		writeJSON(w, http.StatusOK, map[string]any{"deleted": id})

	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}
