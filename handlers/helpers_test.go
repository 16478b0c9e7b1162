package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"maycoin-backend/handlers"
	"maycoin-backend/middleware"
	"maycoin-backend/models"
	"maycoin-backend/services"
	"maycoin-backend/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

const testAdminPassword = "letmein"

// countingStore records how many store calls a request made.
type countingStore struct {
	inner services.PlayerStore
	calls atomic.Int64
}

func (s *countingStore) GetPlayer(ctx context.Context, id string) (*models.Player, error) {
	s.calls.Add(1)
	return s.inner.GetPlayer(ctx, id)
}

func (s *countingStore) UpsertPlayer(ctx context.Context, p *models.Player) error {
	s.calls.Add(1)
	return s.inner.UpsertPlayer(ctx, p)
}

func (s *countingStore) GetBlock(ctx context.Context, id string) (*models.BlockedPlayer, error) {
	s.calls.Add(1)
	return s.inner.GetBlock(ctx, id)
}

func (s *countingStore) SetBlock(ctx context.Context, id, username, reason string) error {
	s.calls.Add(1)
	return s.inner.SetBlock(ctx, id, username, reason)
}

func (s *countingStore) ClearBlock(ctx context.Context, id string) error {
	s.calls.Add(1)
	return s.inner.ClearBlock(ctx, id)
}

func (s *countingStore) DeletePlayer(ctx context.Context, id string) error {
	s.calls.Add(1)
	return s.inner.DeletePlayer(ctx, id)
}

func (s *countingStore) AdjustCoins(ctx context.Context, id string, delta int64) (int64, error) {
	s.calls.Add(1)
	return s.inner.AdjustCoins(ctx, id, delta)
}

func (s *countingStore) ListPlayersWithBlockStatus(ctx context.Context) ([]models.Player, error) {
	s.calls.Add(1)
	return s.inner.ListPlayersWithBlockStatus(ctx)
}

type testApp struct {
	app   *fiber.App
	store *countingStore
	gorm  *services.GormPlayerStore
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gormStore := services.NewGormPlayerStore(testutil.NewTestDB(t))
	return newTestAppWithStore(t, gormStore, gormStore)
}

func newTestAppWithStore(t *testing.T, inner services.PlayerStore, gormStore *services.GormPlayerStore) *testApp {
	t.Helper()
	store := &countingStore{inner: inner}
	app := handlers.NewApp(handlers.AppDeps{
		PlayerService: services.NewPlayerService(store),
		AdminService:  services.NewAdminService(store),
		AdminPassword: testAdminPassword,
		Metrics:       middleware.NewMetrics(),
	})
	return &testApp{app: app, store: store, gorm: gormStore}
}

type response struct {
	status int
	header http.Header
	raw    []byte
	body   map[string]any
}

func (ta *testApp) do(t *testing.T, method, target string, body any, headers map[string]string) response {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := response{status: resp.StatusCode, header: resp.Header, raw: raw}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out.body))
	}
	return out
}

func admin() map[string]string {
	return map[string]string{middleware.AdminPasswordHeader: testAdminPassword}
}
