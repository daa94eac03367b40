package ffmpeg

import (
	"fmt"
	"math"
	"os/exec"

	"github.com/rs/zerolog"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/ZacxDev/workout-clipper/internal/logging"
)

// Processor wraps FFmpeg functionality for probing, cutting and thumbnailing.
type Processor struct {
	verbose bool
	logger  zerolog.Logger

	// Seams for tests; default to the real ffmpeg/ffprobe invocations.
	probeFn func(inputPath string) (string, error)
	runFn   func(stream *ffmpeg.Stream) error
}

// NewProcessor creates a new FFmpeg processor
func NewProcessor(verbose bool) *Processor {
	return &Processor{
		verbose: verbose,
		logger:  logging.WithComponent("ffmpeg"),
		probeFn: func(inputPath string) (string, error) {
			return ffmpeg.Probe(inputPath)
		},
		runFn: func(stream *ffmpeg.Stream) error {
			return stream.Run()
		},
	}
}

// Available reports whether the ffmpeg binary can be invoked at all.
func Available() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// FormatTimestamp converts seconds to the FFmpeg timestamp form HH:MM:SS.mmm,
// with zero-padded hours and minutes and millisecond precision.
func FormatTimestamp(seconds float64) string {
	hours := int(seconds / 3600)
	minutes := int(math.Mod(seconds, 3600) / 60)
	secs := math.Mod(seconds, 60)
	return fmt.Sprintf("%02d:%02d:%06.3f", hours, minutes, secs)
}
