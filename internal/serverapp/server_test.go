package serverapp

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/666feiyu666/Ithaca-Journal-win/internal/blob"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/config"
	"github.com/666feiyu666/Ithaca-Journal-win/internal/game"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	h, err := newHandler(Options{
		Config: cfg,
		Logger: log.New(os.Stderr, "", 0),
		Clock:  game.NewFakeClock(time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)),
	}, blob.NewMemoryStore())
	require.NoError(t, err)
	return h
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var payload map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload), "body: %s", rec.Body.String())
	}
	return rec, payload
}

func TestHealthz(t *testing.T) {
	h := newTestHandler(t)
	rec, payload := doJSON(t, h, http.MethodGet, "/healthz", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, payload["ok"])
	assert.Equal(t, "ithaca", payload["service"])
}

func TestState_FreshSave(t *testing.T) {
	h := newTestHandler(t)
	rec, payload := doJSON(t, h, http.MethodGet, "/api/state", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, payload["isNewUser"])
	state := payload["state"].(map[string]any)
	assert.Equal(t, float64(1), state["day"])
}

func TestScripts_UnlockPersistsAcrossReads(t *testing.T) {
	h := newTestHandler(t)

	rec, payload := doJSON(t, h, http.MethodPost, "/api/scripts", `{"id":"script_elvish"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, payload["unlocked"])

	rec, payload = doJSON(t, h, http.MethodPost, "/api/scripts", `{"id":"script_elvish"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, payload["unlocked"])

	rec, payload = doJSON(t, h, http.MethodGet, "/api/scripts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"script_elvish"}, payload["unlocked"])

	rec, _ = doJSON(t, h, http.MethodPost, "/api/scripts", `{"id":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJournalFlow_CreateConfirm(t *testing.T) {
	h := newTestHandler(t)

	rec, entry := doJSON(t, h, http.MethodPost, "/api/journal/entries", `{"content":"a quiet first evening in the new room"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := entry["id"].(string)

	rec, payload := doJSON(t, h, http.MethodPost, "/api/journal/entries/"+id+"/confirm", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, payload["inkAwarded"])
	assert.Contains(t, payload["unlockedFragments"], "frag_pineapple_01")

	rec, state := doJSON(t, h, http.MethodGet, "/api/state", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Greater(t, state["state"].(map[string]any)["totalWords"], float64(0))
}

func TestRoomDrag_PlacesFurniture(t *testing.T) {
	h := newTestHandler(t)
	body := `{
		"itemId": "item_rug_default",
		"kind": "floor",
		"pointerX": 200, "pointerY": 260,
		"room": {"left":0,"top":0,"right":400,"bottom":400},
		"item": {"w":0,"h":0},
		"recycle": {"left":500,"top":500,"right":600,"bottom":600},
		"direction": 1
	}`

	rec, payload := doJSON(t, h, http.MethodPost, "/api/room/drag", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "valid", payload["zone"])
	require.NotNil(t, payload["placed"])

	rec, layout := doJSON(t, h, http.MethodGet, "/api/room/layout", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, layout["layout"], 1)
}

func TestShopBuy_InsufficientInk(t *testing.T) {
	h := newTestHandler(t)
	rec, payload := doJSON(t, h, http.MethodPost, "/api/shop/buy", `{"itemId":"item_plant_01"}`)

	require.Equal(t, http.StatusPaymentRequired, rec.Code)
	assert.Equal(t, "not enough ink", payload["error"])
}

func TestNotebookDelete_InboxForbidden(t *testing.T) {
	h := newTestHandler(t)
	rec, _ := doJSON(t, h, http.MethodDelete, "/api/notebooks/nb_inbox", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestNotebookDelete_RehomesEntries(t *testing.T) {
	h := newTestHandler(t)
	rec, nb := doJSON(t, h, http.MethodPost, "/api/notebooks", `{"name":"Travel"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	nbID := nb["id"].(string)

	rec, entry := doJSON(t, h, http.MethodPost, "/api/journal/entries", fmt.Sprintf(`{"content":"x","notebookIds":[%q]}`, nbID))
	require.Equal(t, http.StatusCreated, rec.Code)
	entryID := entry["id"].(string)

	rec, _ = doJSON(t, h, http.MethodDelete, "/api/notebooks/"+nbID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, got := doJSON(t, h, http.MethodGet, "/api/journal/entries/"+entryID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"nb_inbox"}, got["notebookIds"])
}

func TestReset_ReturnsToFreshState(t *testing.T) {
	h := newTestHandler(t)
	doJSON(t, h, http.MethodPost, "/api/journal/entries", `{"content":"gone soon"}`)

	rec, _ := doJSON(t, h, http.MethodPost, "/api/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, payload := doJSON(t, h, http.MethodGet, "/api/journal/entries", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, payload["entries"])
}
