package shop

import (
	"encoding/json"
	"errors"
	"net/http"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Catalog handles GET /api/shop.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": h.svc.Catalog()})
}

// Buy handles POST /api/shop/buy.
func (h *Handler) Buy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req struct {
		ItemID string `json:"itemId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ItemID == "" {
		writeErr(w, http.StatusBadRequest, "itemId required")
		return
	}
	switch err := h.svc.Buy(req.ItemID); {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "itemId": req.ItemID})
	case errors.Is(err, ErrUnknownItem):
		writeErr(w, http.StatusNotFound, "unknown item")
	case errors.Is(err, ErrAlreadyOwned):
		writeErr(w, http.StatusConflict, "item already owned")
	case errors.Is(err, ErrInsufficientInk):
		writeErr(w, http.StatusPaymentRequired, "not enough ink")
	default:
		writeErr(w, http.StatusInternalServerError, err.Error())
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
