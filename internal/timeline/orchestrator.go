package timeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/ZacxDev/workout-clipper/internal/ffmpeg"
	"github.com/ZacxDev/workout-clipper/internal/logging"
	"github.com/ZacxDev/workout-clipper/pkg/util"
)

// Cutter extracts a time-bounded sub-clip from a source video.
type Cutter interface {
	Cut(inputPath, outputPath string, opts ffmpeg.CutOptions) error
}

// Thumbnailer extracts a single scaled frame from a clip.
type Thumbnailer interface {
	Thumbnail(videoPath, outputPath string, timestamp float64, width, height int) error
}

// Options configures an orchestrator run. Zero-valued strings and dimensions
// fall back to the defaults below. CRF is used as given when non-negative
// (zero is a valid lossless setting); a negative CRF selects DefaultCRF.
type Options struct {
	Codec           string
	Preset          string
	CRF             int
	ThumbnailWidth  int
	ThumbnailHeight int
}

const (
	DefaultCodec           = "libx264"
	DefaultPreset          = "medium"
	DefaultCRF             = 23
	DefaultThumbnailWidth  = 320
	DefaultThumbnailHeight = 180
)

// Orchestrator drives the cutter and thumbnailer over a user-approved segment
// list, one segment at a time, isolating per-segment failures.
type Orchestrator struct {
	cutter Cutter
	thumbs Thumbnailer
	opts   Options
	logger zerolog.Logger

	// availability check seam; defaults to probing for the real binary
	available func() bool
}

// NewOrchestrator creates an orchestrator using the given cutter and
// thumbnailer implementations.
func NewOrchestrator(cutter Cutter, thumbs Thumbnailer, opts Options) *Orchestrator {
	if opts.Codec == "" {
		opts.Codec = DefaultCodec
	}
	if opts.Preset == "" {
		opts.Preset = DefaultPreset
	}
	if opts.CRF < 0 {
		opts.CRF = DefaultCRF
	}
	if opts.ThumbnailWidth == 0 {
		opts.ThumbnailWidth = DefaultThumbnailWidth
	}
	if opts.ThumbnailHeight == 0 {
		opts.ThumbnailHeight = DefaultThumbnailHeight
	}

	return &Orchestrator{
		cutter:    cutter,
		thumbs:    thumbs,
		opts:      opts,
		logger:    logging.WithComponent("timeline"),
		available: ffmpeg.Available,
	}
}

// Process cuts the source video into one clip plus thumbnail per tagged
// segment and returns a result per segment that fully succeeded, in input
// order. Untagged segments are skipped and failed segments are logged and
// dropped; neither aborts the batch. An error is returned only for
// environment problems that no segment could survive.
func (o *Orchestrator) Process(videoPath string, segments []Segment, outputFolder, baseName string) ([]SegmentResult, error) {
	if !o.available() {
		return nil, errors.WithStack(ffmpeg.ErrFFmpegUnavailable)
	}

	if err := os.MkdirAll(outputFolder, 0755); err != nil {
		return nil, errors.Wrap(err, "error creating output directory")
	}

	if baseName == "" {
		baseName = strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	}
	baseName = util.SanitizeFilename(baseName)

	results := make([]SegmentResult, 0, len(segments))
	for i, segment := range segments {
		idx := i + 1

		if segment.Details.Empty() {
			o.logger.Info().Int("segment", idx).Msg("skipping segment (no details)")
			continue
		}

		exerciseName := segment.Details.Name
		if exerciseName == "" {
			exerciseName = fmt.Sprintf("segment_%d", idx)
		}
		safeName := util.SanitizeFilename(exerciseName)

		outputFilename := fmt.Sprintf("%s_seg%03d_%s.mp4", baseName, idx, safeName)
		outputPath := filepath.Join(outputFolder, outputFilename)

		o.logger.Info().
			Int("segment", idx).
			Int("total", len(segments)).
			Str("exercise", exerciseName).
			Float64("start", segment.Start).
			Float64("end", segment.End).
			Bool("remove_audio", segment.Details.RemoveAudio).
			Msg("processing segment")

		err := o.cutter.Cut(videoPath, outputPath, ffmpeg.CutOptions{
			StartTime:   segment.Start,
			EndTime:     segment.End,
			RemoveAudio: segment.Details.RemoveAudio,
			Codec:       o.opts.Codec,
			Preset:      o.opts.Preset,
			CRF:         o.opts.CRF,
		})
		if err != nil {
			o.logger.Error().Err(err).Int("segment", idx).Msg("failed to cut segment")
			continue
		}

		// Thumbnail the cut clip at its first frame, not the source at the
		// segment midpoint, so the image reflects exactly what the clip shows.
		thumbnailFilename := fmt.Sprintf("%s_seg%03d_thumb.jpg", baseName, idx)
		thumbnailPath := filepath.Join(outputFolder, thumbnailFilename)

		if err := o.thumbs.Thumbnail(outputPath, thumbnailPath, 0.0, o.opts.ThumbnailWidth, o.opts.ThumbnailHeight); err != nil {
			o.logger.Error().Err(err).Int("segment", idx).Msg("failed to generate thumbnail")
			continue
		}

		info, err := os.Stat(outputPath)
		if err != nil {
			o.logger.Error().Err(err).Int("segment", idx).Msg("failed to stat segment output")
			continue
		}

		results = append(results, SegmentResult{
			SegmentIndex:  idx,
			VideoPath:     outputPath,
			ThumbnailPath: thumbnailPath,
			StartTime:     segment.Start,
			EndTime:       segment.End,
			Duration:      segment.End - segment.Start,
			ExerciseName:  exerciseName,
			MuscleGroups:  segment.Details.MuscleGroups,
			Equipment:     segment.Details.Equipment,
			RemoveAudio:   segment.Details.RemoveAudio,
			FileSize:      info.Size(),
		})
	}

	o.logger.Info().
		Int("processed", len(results)).
		Int("total", len(segments)).
		Msg("timeline processing completed")

	return results, nil
}
