package janitor

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/GravityPDF/gravity-pdf-images/internal/imageinfo"
	"github.com/GravityPDF/gravity-pdf-images/internal/storage"
)

// Purger removes finished queue entries.
type Purger interface {
	PurgeFinished(ctx context.Context, before time.Time) (int64, error)
}

// Janitor handles periodic cleanup of old jobs and orphaned files
type Janitor struct {
	queue      Purger
	uploadDir  string
	interval   time.Duration
	retention  time.Duration
	tempMaxAge time.Duration
	logger     zerolog.Logger
	stopChan   chan struct{}
	doneChan   chan struct{}
}

// Config holds janitor configuration
type Config struct {
	Queue     Purger
	UploadDir string
	Interval  time.Duration
	// Retention is how long completed and failed jobs are kept.
	Retention time.Duration
	// TempMaxAge is the age after which AtomicWrite leftovers are removed.
	TempMaxAge time.Duration
	Logger     zerolog.Logger
}

// New creates a new Janitor instance
func New(cfg Config) *Janitor {
	if cfg.Interval == 0 {
		cfg.Interval = 6 * time.Hour
	}
	if cfg.Retention == 0 {
		cfg.Retention = 7 * 24 * time.Hour
	}
	if cfg.TempMaxAge == 0 {
		cfg.TempMaxAge = 15 * time.Minute
	}

	return &Janitor{
		queue:      cfg.Queue,
		uploadDir:  cfg.UploadDir,
		interval:   cfg.Interval,
		retention:  cfg.Retention,
		tempMaxAge: cfg.TempMaxAge,
		logger:     cfg.Logger.With().Str("component", "janitor").Logger(),
		stopChan:   make(chan struct{}),
		doneChan:   make(chan struct{}),
	}
}

// Start begins the cleanup scheduler in a goroutine
func (j *Janitor) Start(ctx context.Context) {
	go j.run(ctx)
}

// Stop gracefully stops the janitor
func (j *Janitor) Stop() {
	close(j.stopChan)
	<-j.doneChan // wait for cleanup to finish
}

// run is the main loop that runs cleanup tasks
func (j *Janitor) run(ctx context.Context) {
	defer close(j.doneChan)

	// Run cleanup immediately on startup
	j.RunOnce(ctx)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.RunOnce(ctx)
		case <-j.stopChan:
			j.logger.Info().Msg("received stop signal, shutting down")
			return
		case <-ctx.Done():
			j.logger.Info().Msg("context cancelled, shutting down")
			return
		}
	}
}

// RunOnce executes all cleanup tasks
func (j *Janitor) RunOnce(ctx context.Context) {
	j.logger.Debug().Msg("starting cleanup cycle")
	start := time.Now().UTC()

	j.purgeFinishedJobs(ctx)
	j.deleteOrphanedVariants()
	j.cleanupTempFiles()

	j.logger.Debug().Dur("duration", time.Since(start)).Msg("cleanup cycle completed")
}

// purgeFinishedJobs removes completed and failed jobs older than the retention period
func (j *Janitor) purgeFinishedJobs(ctx context.Context) {
	if j.queue == nil {
		return
	}
	n, err := j.queue.PurgeFinished(ctx, time.Now().UTC().Add(-j.retention))
	if err != nil {
		j.logger.Error().Err(err).Msg("failed to purge finished jobs")
		return
	}
	if n > 0 {
		j.logger.Info().Int64("count", n).Msg("purged finished jobs")
	}
}

// deleteOrphanedVariants removes resized images whose original upload is gone
func (j *Janitor) deleteOrphanedVariants() {
	if j.uploadDir == "" {
		return
	}

	deleted := 0
	err := filepath.WalkDir(j.uploadDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip on error
		}
		if d.IsDir() {
			return nil
		}
		original, ok := imageinfo.OriginalName(d.Name())
		if !ok {
			return nil
		}
		if storage.IsFile(filepath.Join(filepath.Dir(path), original)) {
			return nil
		}
		if err := os.Remove(path); err != nil {
			j.logger.Error().Err(err).Str("path", path).Msg("failed to delete orphaned resized image")
			return nil
		}
		deleted++
		return nil
	})
	if err != nil {
		j.logger.Error().Err(err).Msg("failed to scan upload dir")
	}
	if deleted > 0 {
		j.logger.Info().Int("count", deleted).Msg("deleted orphaned resized images")
	}
}

// cleanupTempFiles removes stale temporary files left by interrupted writes
func (j *Janitor) cleanupTempFiles() {
	if j.uploadDir == "" {
		return
	}
	n, err := storage.CleanStaleTempFiles(j.uploadDir, j.tempMaxAge)
	if err != nil && !os.IsNotExist(err) {
		j.logger.Error().Err(err).Msg("failed to cleanup temp files")
		return
	}
	if n > 0 {
		j.logger.Info().Int("count", n).Msg("removed stale temp files")
	}
}
