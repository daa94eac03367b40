package ffmpeg

import (
	"errors"
	"fmt"
)

// ErrFFmpegUnavailable means the ffmpeg binary cannot be invoked at all. It is
// fatal to a whole batch and is never retried per segment.
var ErrFFmpegUnavailable = errors.New("ffmpeg is not installed or not accessible")

// ProcessingError reports a failed probe, cut or thumbnail invocation. It
// carries the tool's diagnostic output when available.
type ProcessingError struct {
	Op     string
	Path   string
	Stderr string
	Err    error
}

func (e *ProcessingError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

func processingErrorf(op, path, stderr, format string, args ...interface{}) *ProcessingError {
	return &ProcessingError{
		Op:     op,
		Path:   path,
		Stderr: stderr,
		Err:    fmt.Errorf(format, args...),
	}
}
