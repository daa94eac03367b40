// Package publish uploads cut artifacts through a storage backend, resolves
// their durable URLs, and cleans up local files once they are persisted
// remotely.
package publish

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ZacxDev/workout-clipper/internal/logging"
	"github.com/ZacxDev/workout-clipper/internal/storage"
	"github.com/ZacxDev/workout-clipper/internal/timeline"
)

const (
	DefaultMaxAttempts = 3
	DefaultBackoff     = 2 * time.Second
)

// Options tunes upload retry behavior and local cleanup.
type Options struct {
	// MaxAttempts is the total number of tries per upload.
	MaxAttempts int
	// Backoff is the initial delay between attempts; it doubles each retry.
	Backoff time.Duration
	// RemoveLocal deletes the local clip and thumbnail after a successful
	// upload. Set it when the backend is remote and the local copies are
	// only staging files.
	RemoveLocal bool
}

// Publisher uploads segment results and records their URLs.
type Publisher struct {
	store  storage.Storage
	opts   Options
	logger zerolog.Logger

	// sleep seam for tests
	sleep func(time.Duration)
}

// PublishedSegment is a segment result plus the URLs its artifacts were
// published under. ThumbnailURL is empty when the thumbnail upload failed;
// the thumbnail is not critical.
type PublishedSegment struct {
	timeline.SegmentResult
	VideoURL     string `json:"video_url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// Report is the outcome of publishing a batch of segment results.
type Report struct {
	Segments     []PublishedSegment `json:"segments"`
	UploadErrors []string           `json:"upload_errors,omitempty"`
}

// New creates a publisher over the given storage backend.
func New(store storage.Storage, opts Options) *Publisher {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.Backoff <= 0 {
		opts.Backoff = DefaultBackoff
	}
	return &Publisher{
		store:  store,
		opts:   opts,
		logger: logging.WithComponent("publish"),
		sleep:  time.Sleep,
	}
}

// Publish uploads each result's clip under folder/segments and its thumbnail
// under folder/thumbnails. A failed video upload drops that segment from the
// report; a failed thumbnail upload only clears its URL. Upload errors are
// collected, never fatal.
func (p *Publisher) Publish(folder string, results []timeline.SegmentResult) *Report {
	report := &Report{Segments: make([]PublishedSegment, 0, len(results))}

	for _, result := range results {
		videoKey, err := p.saveWithRetry(result.VideoPath, folder+"/segments")
		if err != nil {
			p.logger.Error().Err(err).Int("segment", result.SegmentIndex).Msg("failed to upload video segment")
			report.UploadErrors = append(report.UploadErrors,
				fmt.Sprintf("failed to upload video segment %d: %v", result.SegmentIndex, err))
			continue
		}
		videoURL := p.store.URL(videoKey)
		p.logger.Info().Int("segment", result.SegmentIndex).Str("url", videoURL).Msg("uploaded video segment")

		thumbnailURL := ""
		thumbKey, err := p.saveWithRetry(result.ThumbnailPath, folder+"/thumbnails")
		if err != nil {
			p.logger.Warn().Err(err).Int("segment", result.SegmentIndex).Msg("failed to upload thumbnail")
			report.UploadErrors = append(report.UploadErrors,
				fmt.Sprintf("failed to upload thumbnail %d: %v", result.SegmentIndex, err))
		} else {
			thumbnailURL = p.store.URL(thumbKey)
		}

		report.Segments = append(report.Segments, PublishedSegment{
			SegmentResult: result,
			VideoURL:      videoURL,
			ThumbnailURL:  thumbnailURL,
		})

		if p.opts.RemoveLocal {
			p.removeLocal(result.VideoPath)
			p.removeLocal(result.ThumbnailPath)
		}
	}

	return report
}

// Unpublish deletes previously published artifacts by their stored URLs.
// Deletes are best effort: a failed delete of stale output is logged and
// skipped, never surfaced.
func (p *Publisher) Unpublish(urls []string) {
	for _, u := range urls {
		if u == "" {
			continue
		}
		key := p.keyFor(u)
		removed, err := p.store.Delete(key)
		if err != nil {
			p.logger.Warn().Err(err).Str("key", key).Msg("failed to delete stored artifact")
			continue
		}
		p.logger.Debug().Str("key", key).Bool("removed", removed).Msg("deleted stored artifact")
	}
}

// keyFor recovers a storage key from a stored URL.
func (p *Publisher) keyFor(url string) string {
	if mapper, ok := p.store.(storage.KeyMapper); ok {
		return mapper.KeyFromURL(url)
	}
	return strings.TrimPrefix(url, "/download/")
}

func (p *Publisher) saveWithRetry(path, folder string) (string, error) {
	filename := filepath.Base(path)

	var lastErr error
	backoff := p.opts.Backoff
	for attempt := 1; attempt <= p.opts.MaxAttempts; attempt++ {
		if attempt > 1 {
			p.sleep(backoff)
			backoff *= 2
			p.logger.Info().Str("file", filename).Int("attempt", attempt).Msg("retrying upload")
		}

		key, err := p.store.SaveFile(path, filename, folder)
		if err == nil {
			return key, nil
		}
		lastErr = err
	}

	return "", lastErr
}

func (p *Publisher) removeLocal(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		p.logger.Warn().Err(err).Str("path", path).Msg("failed to remove local artifact")
	}
}
