// workers/backup_worker.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"maycoin-backend/config"
	"maycoin-backend/services"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// PlayerLister is the read side the snapshot needs; *services.AdminService satisfies it.
type PlayerLister interface {
	ListPlayers(ctx context.Context) ([]services.PlayerSummary, error)
}

// ObjectUploader stores one object; *utils.R2Uploader satisfies it.
type ObjectUploader interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) error
}

// Snapshot is the JSON document written on every backup run.
type Snapshot struct {
	TakenAt time.Time                `json:"takenAt"`
	Players []services.PlayerSummary `json:"players"`
}

type BackupWorker struct {
	players  PlayerLister
	uploader ObjectUploader
	interval time.Duration
	prefix   string
	now      func() time.Time

	scheduler gocron.Scheduler
}

func NewBackupWorker(players PlayerLister, uploader ObjectUploader, cfg config.BackupConfig) *BackupWorker {
	return &BackupWorker{
		players:  players,
		uploader: uploader,
		interval: cfg.Interval,
		prefix:   slug.Make(cfg.Prefix),
		now:      time.Now,
	}
}

// ObjectKey is <prefix>/<UTC timestamp>-<uuid>.json, or just the file name with an empty prefix.
func (w *BackupWorker) ObjectKey(at time.Time) string {
	name := fmt.Sprintf("%s-%s.json", at.UTC().Format("20060102T150405Z"), uuid.NewString())
	if w.prefix == "" {
		return name
	}
	return w.prefix + "/" + name
}

// Snapshot exports the current player listing and returns the key it was stored under.
func (w *BackupWorker) Snapshot(ctx context.Context) (string, error) {
	players, err := w.players.ListPlayers(ctx)
	if err != nil {
		return "", fmt.Errorf("list players: %w", err)
	}
	if players == nil {
		players = []services.PlayerSummary{}
	}

	takenAt := w.now().UTC()
	body, err := json.Marshal(Snapshot{TakenAt: takenAt, Players: players})
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	key := w.ObjectKey(takenAt)
	if err := w.uploader.Upload(ctx, key, body, "application/json"); err != nil {
		return "", err
	}
	log.Printf("📦 [BACKUP] snapshot of %d players stored at %s", len(players), key)
	return key, nil
}

// Start schedules Snapshot every interval. A zero interval leaves the worker idle.
func (w *BackupWorker) Start(ctx context.Context) error {
	if w.interval <= 0 {
		log.Println("⏸️  [BACKUP] interval not set, scheduled backups disabled")
		return nil
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create backup scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(func() {
			if _, err := w.Snapshot(ctx); err != nil {
				log.Printf("⚠️ [BACKUP] snapshot failed: %v", err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return fmt.Errorf("schedule backup job: %w", err)
	}

	sched.Start()
	w.scheduler = sched
	log.Printf("🔁 [BACKUP] snapshots scheduled every %s", w.interval)
	return nil
}

// Stop waits for a running snapshot to finish and stops the schedule.
func (w *BackupWorker) Stop() error {
	if w.scheduler == nil {
		return nil
	}
	err := w.scheduler.Shutdown()
	w.scheduler = nil
	return err
}
