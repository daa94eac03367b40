package ffmpeg

import (
	"bytes"
	"os"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// CutOptions carries the encode parameters for a single segment cut.
type CutOptions struct {
	StartTime   float64
	EndTime     float64
	RemoveAudio bool
	Codec       string
	Preset      string
	CRF         int
}

// Cut extracts a time-bounded segment from a video, re-encoding video with the
// given codec/preset/crf. Cut points generally do not fall on keyframes, so
// the video stream is never copied; audio is either stripped or re-encoded to
// AAC at 128k rather than stream-copied, which can desynchronize off-keyframe
// cuts.
func (p *Processor) Cut(inputPath, outputPath string, opts CutOptions) error {
	inputKwargs, outputKwargs := cutKwargs(opts)
	stream := ffmpeg.Input(inputPath, inputKwargs).
		Output(outputPath, outputKwargs).
		OverWriteOutput()

	p.logger.Debug().
		Float64("start", opts.StartTime).
		Float64("end", opts.EndTime).
		Str("output", outputPath).
		Str("cmd", stream.String()).
		Msg("cutting segment")

	var stderr bytes.Buffer
	if err := p.runFn(stream.WithErrorOutput(&stderr)); err != nil {
		return &ProcessingError{Op: "cut", Path: inputPath, Stderr: stderr.String(), Err: err}
	}

	// ffmpeg can exit zero without producing output (e.g. a seek past the end
	// of the source); treat that as a failure rather than a silent no-op.
	if _, err := os.Stat(outputPath); err != nil {
		return processingErrorf("cut", inputPath, stderr.String(), "output file was not created: %s", outputPath)
	}

	return nil
}

// cutKwargs builds the ffmpeg input and output arguments for a cut. The seek
// goes before the input (fast seek, small accuracy cost on the first GOP) and
// time values use the exact HH:MM:SS.mmm form.
func cutKwargs(opts CutOptions) (ffmpeg.KwArgs, ffmpeg.KwArgs) {
	inputKwargs := ffmpeg.KwArgs{
		"ss": FormatTimestamp(opts.StartTime),
	}

	outputKwargs := ffmpeg.KwArgs{
		"t":      FormatTimestamp(opts.EndTime - opts.StartTime),
		"c:v":    opts.Codec,
		"preset": opts.Preset,
		"crf":    opts.CRF,
	}

	if opts.RemoveAudio {
		outputKwargs["an"] = ""
	} else {
		outputKwargs["c:a"] = "aac"
		outputKwargs["b:a"] = "128k"
	}

	return inputKwargs, outputKwargs
}
