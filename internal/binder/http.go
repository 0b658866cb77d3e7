package binder

import (
	"encoding/json"
	"errors"
	"net/http"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// Manuscript handles /api/binder/manuscript: GET reads the desk, PUT
// replaces text, title, or cover in one call.
func (h *Handler) Manuscript(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.store.Manuscript())
	case http.MethodPut:
		var req struct {
			Title   *string `json:"title"`
			Cover   *string `json:"cover"`
			Content *string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if req.Title != nil {
			h.store.SetTitle(*req.Title)
		}
		if req.Cover != nil {
			h.store.SetCover(*req.Cover)
		}
		if req.Content != nil {
			h.store.UpdateManuscript(*req.Content)
		}
		writeJSON(w, http.StatusOK, h.store.Manuscript())
	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// Append handles POST /api/binder/append.
func (h *Handler) Append(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}
	h.store.AppendFragment(req.Text)
	writeJSON(w, http.StatusOK, h.store.Manuscript())
}

// Publish handles POST /api/binder/publish.
func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	book, err := h.store.Publish()
	if err != nil {
		if errors.Is(err, ErrTooShort) {
			writeErr(w, http.StatusUnprocessableEntity, "manuscript too short to publish")
			return
		}
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, book)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}
