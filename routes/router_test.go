package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DhavalSuthar-24/livescore/config"
	"github.com/DhavalSuthar-24/livescore/internal/match"
	"github.com/DhavalSuthar-24/livescore/internal/realtime"
	"github.com/DhavalSuthar-24/livescore/internal/scoring"
	"github.com/DhavalSuthar-24/livescore/pkg/token"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "router-secret"

func setup(t *testing.T) (*gin.Engine, *realtime.Hub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.App.FrontendURL = "http://scores.example"
	cfg.App.Store = config.StoreMemory
	cfg.JWT.AccessTokenSecret = secret
	cfg.Realtime.HeartbeatSeconds = 1

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := realtime.NewHub(8, logger)
	go hub.Run(ctx)

	reg := prometheus.NewRegistry()
	svc := match.NewService(match.NewMemoryRepository(), scoring.NewEngine(), hub, match.NewMetrics(reg), logger)
	r, err := SetupRoutes(Dependencies{Config: cfg, Matches: svc, Hub: hub, Registry: reg})
	require.NoError(t, err)
	return r, hub
}

func bearer(t *testing.T, userID uint, role string) string {
	t.Helper()
	tok, err := token.GenerateJWT(userID, role, secret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestHealthAndMetrics(t *testing.T) {
	r, _ := setup(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","store":"memory"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "livescore_fanout_failures_total")
}

func TestAPIRequiresToken(t *testing.T) {
	r, _ := setup(t)
	for _, path := range []string{"/api/matches/1", "/api/stream"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestCORSPreflight(t *testing.T) {
	r, _ := setup(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/matches/1/ball", nil)
	req.Header.Set("Origin", "http://scores.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization,If-Match")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://scores.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCommittedMatchReachesParticipants(t *testing.T) {
	r, hub := setup(t)
	viewer, err := hub.Subscribe(5)
	require.NoError(t, err)
	defer hub.Unsubscribe(viewer)

	body, err := json.Marshal(map[string]any{
		"match_code": "CUP-7",
		"overs":      5,
		"team_one":   map[string]any{"name": "Lions", "players": []map[string]string{{"name": "L1"}, {"name": "L2"}}},
		"team_two":   map[string]any{"name": "Tigers", "players": []map[string]string{{"name": "T1"}, {"name": "T2"}}},
		"viewers":    []uint{5},
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/matches", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, 1, "organizer"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	select {
	case ev := <-viewer.Send:
		assert.Equal(t, match.EventMatchUpdated, ev.Name)
		var got match.MatchResponse
		require.NoError(t, json.Unmarshal(ev.Data, &got))
		assert.Equal(t, "CUP-7", got.MatchCode)
		assert.Equal(t, int64(1), got.Version)
	case <-time.After(2 * time.Second):
		t.Fatal("viewer did not receive the new match")
	}
}
