package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/GravityPDF/gravity-pdf-images/internal/metrics"
	"github.com/GravityPDF/gravity-pdf-images/internal/queue"
	"github.com/GravityPDF/gravity-pdf-images/internal/testutil"
)

func TestWorker_Drain(t *testing.T) {
	ctx := context.Background()
	store := queue.NewStore(testutil.SetupTestDB(t))
	if _, err := store.Enqueue(ctx,
		queue.Job{ID: "ok", Path: "/uploads/ok.jpg"},
		queue.Job{ID: "bad", Path: "/uploads/bad.jpg"},
	); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	var seen []string
	handler := func(ctx context.Context, job queue.Job) error {
		seen = append(seen, job.Path)
		if job.ID == "bad" {
			return errors.New("decode image: unexpected EOF")
		}
		return nil
	}
	rec := metrics.New()
	w := NewWorker(store, handler, rec, time.Second, zerolog.Nop())

	if n := w.Drain(ctx); n != 2 {
		t.Fatalf("expected 2 jobs processed, got %d", n)
	}
	if len(seen) != 2 {
		t.Fatalf("expected handler called twice, got %v", seen)
	}

	ok, err := store.Get(ctx, "ok")
	if err != nil {
		t.Fatalf("get ok: %v", err)
	}
	if ok.Status != queue.StatusCompleted {
		t.Fatalf("expected completed, got %s", ok.Status)
	}
	bad, err := store.Get(ctx, "bad")
	if err != nil {
		t.Fatalf("get bad: %v", err)
	}
	if bad.Status != queue.StatusFailed || bad.ErrorMessage != "decode image: unexpected EOF" {
		t.Fatalf("expected failed job with message, got %+v", bad)
	}

	s := rec.Snapshot()
	if s.Completed != 1 || s.Failed != 1 {
		t.Fatalf("unexpected metrics: %+v", s)
	}
}

func TestWorker_Integration(t *testing.T) {
	store := queue.NewStore(testutil.SetupTestDB(t))

	var mu sync.Mutex
	done := make(chan string, 1)
	handler := func(ctx context.Context, job queue.Job) error {
		mu.Lock()
		defer mu.Unlock()
		done <- job.ID
		return nil
	}

	w := NewWorker(store, handler, nil, time.Hour, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	defer func() {
		cancel()
		w.Stop()
	}()

	if _, err := store.Enqueue(context.Background(), queue.Job{ID: "image-resize-cat.png", Path: "/uploads/cat.png"}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	w.TriggerSignal()

	select {
	case id := <-done:
		if id != "image-resize-cat.png" {
			t.Fatalf("unexpected job %s", id)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for worker to process job")
	}

	// the status update follows the handler; poll until it lands
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		j, err := store.Get(context.Background(), "image-resize-cat.png")
		if err == nil && j.Status == queue.StatusCompleted {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("job was not marked completed")
}

type brokenQueue struct{}

func (brokenQueue) Next(ctx context.Context) (queue.Job, error) {
	return queue.Job{}, errors.New("database is locked")
}
func (brokenQueue) Complete(ctx context.Context, id string) error { return nil }
func (brokenQueue) Fail(ctx context.Context, id, msg string) error { return nil }

func TestWorker_QueueErrorStopsBatch(t *testing.T) {
	w := NewWorker(brokenQueue{}, func(context.Context, queue.Job) error {
		t.Fatal("handler must not run")
		return nil
	}, nil, 0, zerolog.Nop())
	if n := w.Drain(context.Background()); n != 0 {
		t.Fatalf("expected no jobs processed, got %d", n)
	}
}
