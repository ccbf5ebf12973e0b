package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/GravityPDF/gravity-pdf-images/internal/metrics"
	"github.com/GravityPDF/gravity-pdf-images/internal/queue"
)

// Handler processes one job. A non-nil error marks the job failed.
type Handler func(ctx context.Context, job queue.Job) error

// Queue is the part of queue.Store the worker consumes.
type Queue interface {
	Next(ctx context.Context) (queue.Job, error)
	Complete(ctx context.Context, id string) error
	Fail(ctx context.Context, id, msg string) error
}

// Worker drains the resize queue in the background
type Worker struct {
	queue    Queue
	handle   Handler
	metrics  *metrics.Recorder
	logger   zerolog.Logger
	interval time.Duration
	trigger  chan struct{}  // wakes the worker immediately
	wg       sync.WaitGroup // waits for the loop to finish
}

// NewWorker creates a new background worker. interval is the fallback poll
// period; it defaults to 2 seconds.
func NewWorker(q Queue, handle Handler, rec *metrics.Recorder, interval time.Duration, logger zerolog.Logger) *Worker {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Worker{
		queue:    q,
		handle:   handle,
		metrics:  rec,
		logger:   logger.With().Str("component", "worker").Logger(),
		interval: interval,
		trigger:  make(chan struct{}, 1),
	}
}

// Start runs the background worker loop in a goroutine
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info().Dur("interval", w.interval).Msg("started background resize queue")

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				w.logger.Info().Msg("context cancelled, stopping loop")
				return
			case <-ticker.C:
				w.processBatch(ctx)
			case <-w.trigger:
				w.processBatch(ctx)
			}
		}
	}()
}

// Stop waits for the worker to finish current tasks
func (w *Worker) Stop() {
	w.logger.Info().Msg("waiting for active jobs to finish")
	w.wg.Wait()
	w.logger.Info().Msg("stopped")
}

// TriggerSignal wakes up the worker to process pending jobs immediately
func (w *Worker) TriggerSignal() {
	select {
	case w.trigger <- struct{}{}:
	default:
		// already triggered
	}
}

// Drain processes jobs until the queue is empty or ctx is done. It returns
// the number of jobs processed.
func (w *Worker) Drain(ctx context.Context) int {
	return w.processBatch(ctx)
}

func (w *Worker) processBatch(ctx context.Context) int {
	n := 0
	for ctx.Err() == nil {
		if !w.processNextJob(ctx) {
			break
		}
		n++
	}
	return n
}

func (w *Worker) processNextJob(ctx context.Context) bool {
	job, err := w.queue.Next(ctx)
	if err != nil {
		if !errors.Is(err, queue.ErrNoJob) && ctx.Err() == nil {
			w.logger.Error().Err(err).Msg("error checking queue")
		}
		return false
	}

	w.logger.Debug().Str("job", job.ID).Str("image", job.Path).Int("attempt", job.Attempts).Msg("processing job")

	if hErr := w.handle(ctx, job); hErr != nil {
		w.failJob(ctx, job.ID, hErr.Error())
	} else {
		w.completeJob(ctx, job.ID)
	}
	return true
}

func (w *Worker) failJob(ctx context.Context, id, msg string) {
	w.metrics.Record(metrics.EventFailed, 1)
	if err := w.queue.Fail(ctx, id, msg); err != nil {
		w.logger.Error().Err(err).Str("job", id).Msg("failed to update status to failed")
	}
}

func (w *Worker) completeJob(ctx context.Context, id string) {
	w.metrics.Record(metrics.EventCompleted, 1)
	if err := w.queue.Complete(ctx, id); err != nil {
		w.logger.Error().Err(err).Str("job", id).Msg("failed to update status to completed")
	}
}
