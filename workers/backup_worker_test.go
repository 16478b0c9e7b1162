package workers

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"maycoin-backend/config"
	"maycoin-backend/models"
	"maycoin-backend/services"
	"maycoin-backend/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uploaded struct {
	key         string
	body        []byte
	contentType string
}

type fakeUploader struct {
	mu      sync.Mutex
	objects []uploaded
	err     error
}

func (f *fakeUploader) Upload(_ context.Context, key string, body []byte, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.objects = append(f.objects, uploaded{key: key, body: body, contentType: contentType})
	return nil
}

func (f *fakeUploader) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

func newAdmin(t *testing.T) (*services.AdminService, *services.GormPlayerStore) {
	t.Helper()
	store := services.NewGormPlayerStore(testutil.NewTestDB(t))
	return services.NewAdminService(store), store
}

func TestSnapshotUploadsPlayerListing(t *testing.T) {
	admin, store := newAdmin(t)
	ctx := context.Background()
	require.NoError(t, store.UpsertPlayer(ctx, &models.Player{PlayerID: "p1", Username: "alice", Coins: 30, ClickPower: 1}))
	require.NoError(t, store.UpsertPlayer(ctx, &models.Player{PlayerID: "p2", Username: "bob", Coins: 70, ClickPower: 1}))
	require.NoError(t, store.SetBlock(ctx, "p1", "alice", "spam"))

	up := &fakeUploader{}
	w := NewBackupWorker(admin, up, config.BackupConfig{Prefix: "Player Snapshots"})
	w.now = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) }

	key, err := w.Snapshot(ctx)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^player-snapshots/20260304T050607Z-[0-9a-f-]{36}\.json$`), key)

	require.Equal(t, 1, up.count())
	obj := up.objects[0]
	assert.Equal(t, key, obj.key)
	assert.Equal(t, "application/json", obj.contentType)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(obj.body, &snap))
	assert.True(t, snap.TakenAt.Equal(time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)))
	require.Len(t, snap.Players, 2)
	assert.Equal(t, "p2", snap.Players[0].PlayerID)
	assert.False(t, snap.Players[0].IsBlocked)
	assert.Equal(t, "p1", snap.Players[1].PlayerID)
	assert.True(t, snap.Players[1].IsBlocked)
}

func TestSnapshotOfEmptyStoreHasEmptyList(t *testing.T) {
	admin, _ := newAdmin(t)
	up := &fakeUploader{}
	w := NewBackupWorker(admin, up, config.BackupConfig{})

	key, err := w.Snapshot(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, key, "/")
	assert.JSONEq(t, `[]`, string(mustField(t, up.objects[0].body, "players")))
}

func TestSnapshotPropagatesFailures(t *testing.T) {
	admin, _ := newAdmin(t)
	up := &fakeUploader{err: errors.New("bucket gone")}
	w := NewBackupWorker(admin, up, config.BackupConfig{Prefix: "x"})

	_, err := w.Snapshot(context.Background())
	assert.EqualError(t, err, "bucket gone")

	unavailable := NewBackupWorker(services.NewAdminService(services.NewUnavailableStore()), &fakeUploader{}, config.BackupConfig{})
	_, err = unavailable.Snapshot(context.Background())
	assert.ErrorIs(t, err, services.ErrStoreNotConfigured)
}

func TestStartWithoutIntervalIsIdle(t *testing.T) {
	admin, _ := newAdmin(t)
	w := NewBackupWorker(admin, &fakeUploader{}, config.BackupConfig{Bucket: "b"})

	require.NoError(t, w.Start(context.Background()))
	assert.Nil(t, w.scheduler)
	assert.NoError(t, w.Stop())
}

func TestStartRunsOnSchedule(t *testing.T) {
	admin, _ := newAdmin(t)
	up := &fakeUploader{}
	w := NewBackupWorker(admin, up, config.BackupConfig{Interval: 50 * time.Millisecond, Bucket: "b"})

	require.NoError(t, w.Start(context.Background()))
	t.Cleanup(func() { _ = w.Stop() })

	assert.Eventually(t, func() bool { return up.count() >= 2 }, 3*time.Second, 20*time.Millisecond)
}

func mustField(t *testing.T, raw []byte, field string) json.RawMessage {
	t.Helper()
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	return doc[field]
}
