// Package resize turns the image uploads of a form entry into resized copies
// that sit next to the originals under a deterministic name.
package resize

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/GravityPDF/gravity-pdf-images/internal/form"
	"github.com/GravityPDF/gravity-pdf-images/internal/imageinfo"
	"github.com/GravityPDF/gravity-pdf-images/internal/queue"
	"github.com/GravityPDF/gravity-pdf-images/internal/settings"
	"github.com/GravityPDF/gravity-pdf-images/internal/storage"
)

// Codec loads src, orients it, fits it inside a constraint x constraint box
// and writes the result to dst.
type Codec interface {
	Resize(src, dst string, constraint int) error
}

// Resolver converts an upload reference to a local file path.
type Resolver interface {
	LocalPath(ref string) (string, bool)
}

// Status is the outcome of a single resize attempt.
type Status int

const (
	Skipped Status = iota
	Resized
	Failed
)

func (s Status) String() string {
	switch s {
	case Resized:
		return "resized"
	case Failed:
		return "failed"
	default:
		return "skipped"
	}
}

// Result describes what happened to one image.
type Result struct {
	Path   string
	Target string
	Status Status
	Err    error
}

// Resizer produces resized copies of uploaded images.
type Resizer struct {
	codec      Codec
	resolver   Resolver
	constraint int
	logger     zerolog.Logger
}

// New returns a Resizer. A constraint <= 0 uses settings.DefaultConstraint.
// resolver may be nil, in which case upload references are used as given.
func New(codec Codec, resolver Resolver, constraint int, logger zerolog.Logger) *Resizer {
	if constraint <= 0 {
		constraint = settings.DefaultConstraint
	}
	return &Resizer{
		codec:      codec,
		resolver:   resolver,
		constraint: constraint,
		logger:     logger.With().Str("component", "resize").Logger(),
	}
}

// Constraint returns the bounding box size images are fitted into.
func (r *Resizer) Constraint() int {
	return r.constraint
}

// CollectImageUploads returns the local paths of every image uploaded to a
// fileupload or post_image field of entry. References the resolver cannot
// place inside the upload directory are skipped.
func (r *Resizer) CollectImageUploads(f form.Form, e form.Entry) []string {
	var images []string
	for _, field := range f.UploadFields() {
		for _, ref := range e.Uploads(field) {
			path, ok := r.localPath(ref)
			if ok && imageinfo.IsImageFile(path) {
				images = append(images, path)
			}
		}
	}
	return images
}

func (r *Resizer) localPath(ref string) (string, bool) {
	if r.resolver == nil {
		return ref, ref != ""
	}
	return r.resolver.LocalPath(ref)
}

// QueueJobs returns one resize job per image upload of entry. An image
// listed twice yields a single job.
func (r *Resizer) QueueJobs(f form.Form, e form.Entry) []queue.Job {
	seen := map[string]bool{}
	var jobs []queue.Job
	for _, path := range r.CollectImageUploads(f, e) {
		id := imageinfo.JobID(path)
		if seen[id] {
			continue
		}
		seen[id] = true
		jobs = append(jobs, queue.Job{ID: id, Path: path})
	}
	return jobs
}

// HandleImageResize resizes path unless its resized variant already exists.
func (r *Resizer) HandleImageResize(ctx context.Context, path string) Result {
	target, err := imageinfo.ResizedPath(path)
	if err != nil {
		return r.fail(path, err)
	}
	if storage.IsFile(target) {
		return Result{Path: path, Target: target, Status: Skipped}
	}
	return r.ResizeImage(ctx, path)
}

// ResizeImage writes a resized copy of path to its resized variant. A
// missing source is skipped silently. Any other failure is logged and
// reported in the Result, never returned to the caller as a panic or error.
func (r *Resizer) ResizeImage(ctx context.Context, path string) Result {
	if err := ctx.Err(); err != nil {
		return Result{Path: path, Status: Skipped, Err: err}
	}
	if !storage.IsFile(path) {
		return Result{Path: path, Status: Skipped}
	}

	target, err := imageinfo.ResizedPath(path)
	if err != nil {
		return r.fail(path, err)
	}

	if err := r.resize(path, target); err != nil {
		res := r.fail(path, err)
		res.Target = target
		return res
	}

	r.logger.Debug().Str("image", path).Str("target", target).Msg("image resized")
	return Result{Path: path, Target: target, Status: Resized}
}

func (r *Resizer) resize(path, target string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("codec panic: %v", rec)
		}
	}()
	return r.codec.Resize(path, target, r.constraint)
}

func (r *Resizer) fail(path string, err error) Result {
	r.logger.Error().Str("image", path).Err(err).Msg("Could not resize image")
	return Result{Path: path, Status: Failed, Err: err}
}

// ResizeEntry synchronously runs HandleImageResize for every image upload of
// entry.
func (r *Resizer) ResizeEntry(ctx context.Context, f form.Form, e form.Entry) []Result {
	var results []Result
	for _, path := range r.CollectImageUploads(f, e) {
		results = append(results, r.HandleImageResize(ctx, path))
	}
	return results
}

// HandleJob runs a queued job. It returns an error only when the resize
// failed so the queue can record it.
func (r *Resizer) HandleJob(ctx context.Context, job queue.Job) error {
	res := r.HandleImageResize(ctx, job.Path)
	if res.Status == Failed || res.Err != nil {
		return res.Err
	}
	return nil
}
