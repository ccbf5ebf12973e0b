package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GravityPDF/gravity-pdf-images/internal/imageinfo"
	"github.com/GravityPDF/gravity-pdf-images/internal/queue"
	"github.com/GravityPDF/gravity-pdf-images/internal/testutil"
)

type recordingQueue struct {
	mu   sync.Mutex
	jobs []queue.Job
}

func (q *recordingQueue) Enqueue(ctx context.Context, jobs ...queue.Job) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, jobs...)
	return len(jobs), nil
}

func (q *recordingQueue) snapshot() []queue.Job {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]queue.Job(nil), q.jobs...)
}

func TestWanted(t *testing.T) {
	resized, err := imageinfo.ResizedPath("/uploads/cat.png")
	require.NoError(t, err)

	assert.True(t, Wanted("/uploads/cat.png"))
	assert.True(t, Wanted("/uploads/DOG.JPG"))
	assert.False(t, Wanted(resized))
	assert.False(t, Wanted("/uploads/.tmp-123"))
	assert.False(t, Wanted("/uploads/notes.pdf"))
}

func TestWatcherQueuesNewImages(t *testing.T) {
	dir := t.TempDir()
	q := &recordingQueue{}
	triggered := make(chan struct{}, 10)

	w, err := NewWatcher(dir, q, func() { triggered <- struct{}{} }, zerolog.Nop())
	require.NoError(t, err)
	w.SetDebounce(50 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	photo := testutil.WriteJPEG(t, dir, "photo.jpg", 10, 10)
	testutil.WriteFile(t, dir, "notes.pdf", []byte("%PDF"))
	resized, _ := imageinfo.ResizedPath(photo)
	testutil.WriteFile(t, filepath.Dir(resized), filepath.Base(resized), []byte("x"))

	select {
	case <-triggered:
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for resize job")
	}

	// give stray events a chance to arrive
	time.Sleep(200 * time.Millisecond)
	jobs := q.snapshot()
	require.Len(t, jobs, 1, "one debounced job for the original only")
	assert.Equal(t, imageinfo.JobID(photo), jobs[0].ID)
	assert.Equal(t, photo, jobs[0].Path)
}

func TestWatcherFollowsNewDirectories(t *testing.T) {
	dir := t.TempDir()
	q := &recordingQueue{}
	triggered := make(chan struct{}, 10)

	w, err := NewWatcher(dir, q, func() { triggered <- struct{}{} }, zerolog.Nop())
	require.NoError(t, err)
	w.SetDebounce(50 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	photo := testutil.WritePNG(t, filepath.Join(dir, "2026", "10"), "scan.png", 10, 10)

	deadline := time.After(5 * time.Second)
	for {
		select {
		case <-triggered:
		case <-deadline:
			t.Fatal("timeout waiting for job in new directory")
		}
		for _, j := range q.snapshot() {
			if j.Path == photo {
				return
			}
		}
	}
}
