package ffmpeg

import (
	"bytes"
	"fmt"
	"os"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Thumbnail extracts a single frame at the given timestamp and stretches it to
// exactly width x height (aspect ratio is not preserved).
func (p *Processor) Thumbnail(videoPath, outputPath string, timestamp float64, width, height int) error {
	input := ffmpeg.Input(videoPath, ffmpeg.KwArgs{
		"ss": FormatTimestamp(timestamp),
	})

	stream := input.Output(outputPath, ffmpeg.KwArgs{
		"vframes": 1,
		"vf":      fmt.Sprintf("scale=%d:%d", width, height),
	}).OverWriteOutput()

	p.logger.Debug().
		Float64("timestamp", timestamp).
		Str("output", outputPath).
		Msg("generating thumbnail")

	var stderr bytes.Buffer
	if err := p.runFn(stream.WithErrorOutput(&stderr)); err != nil {
		return &ProcessingError{Op: "thumbnail", Path: videoPath, Stderr: stderr.String(), Err: err}
	}

	if _, err := os.Stat(outputPath); err != nil {
		return processingErrorf("thumbnail", videoPath, stderr.String(), "thumbnail was not created: %s", outputPath)
	}

	return nil
}
