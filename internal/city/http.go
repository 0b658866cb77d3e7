package city

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

// Locations handles GET /api/city/locations.
func (h *Handler) Locations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"locations": h.svc.Locations()})
}

// Visit handles POST /api/city/visit.
func (h *Handler) Visit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req struct {
		LocationID string `json:"locationId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.LocationID == "" {
		writeErr(w, http.StatusBadRequest, "locationId required")
		return
	}
	res, err := h.svc.Visit(req.LocationID)
	if err != nil {
		if errors.Is(err, ErrUnknownLocation) {
			writeErr(w, http.StatusNotFound, "unknown location")
			return
		}
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}
