package ffmpeg

import (
	"errors"
	"testing"
)

func newTestProcessor(probeOutput string, probeErr error) *Processor {
	p := NewProcessor(false)
	p.probeFn = func(inputPath string) (string, error) {
		return probeOutput, probeErr
	}
	return p
}

func TestProbe(t *testing.T) {
	out := `{
		"streams": [
			{"codec_type": "audio", "codec_name": "aac"},
			{"codec_type": "video", "codec_name": "h264", "width": 1920, "height": 1080,
			 "r_frame_rate": "30/1", "duration": "120.500000"}
		],
		"format": {"duration": "120.533333"}
	}`

	info, err := newTestProcessor(out, nil).Probe("test.mp4")
	if err != nil {
		t.Fatalf("Probe returned error: %v", err)
	}

	if info.Duration != 120.5 {
		t.Errorf("Duration = %v, want 120.5", info.Duration)
	}
	if info.Width != 1920 || info.Height != 1080 {
		t.Errorf("dimensions = %dx%d, want 1920x1080", info.Width, info.Height)
	}
	if info.FPS != 30 {
		t.Errorf("FPS = %v, want 30", info.FPS)
	}
	if info.Codec != "h264" {
		t.Errorf("Codec = %q, want h264", info.Codec)
	}
	if info.Resolution != "1920x1080" {
		t.Errorf("Resolution = %q, want 1920x1080", info.Resolution)
	}
}

func TestProbeFormatDurationFallback(t *testing.T) {
	out := `{
		"streams": [
			{"codec_type": "video", "codec_name": "vp9", "width": 1280, "height": 720,
			 "r_frame_rate": "30000/1001"}
		],
		"format": {"duration": "42.0"}
	}`

	info, err := newTestProcessor(out, nil).Probe("test.webm")
	if err != nil {
		t.Fatalf("Probe returned error: %v", err)
	}
	if info.Duration != 42 {
		t.Errorf("Duration = %v, want 42", info.Duration)
	}
	if got, want := info.FPS, 30000.0/1001.0; got != want {
		t.Errorf("FPS = %v, want %v", got, want)
	}
}

func TestProbeFrameRateWithoutDenominator(t *testing.T) {
	out := `{
		"streams": [
			{"codec_type": "video", "codec_name": "h264", "width": 640, "height": 480,
			 "r_frame_rate": "25", "duration": "10.0"}
		]
	}`

	info, err := newTestProcessor(out, nil).Probe("test.mp4")
	if err != nil {
		t.Fatalf("Probe returned error: %v", err)
	}
	if info.FPS != 25 {
		t.Errorf("FPS = %v, want 25 (denominator should default to 1)", info.FPS)
	}
}

func TestProbeNoVideoStream(t *testing.T) {
	out := `{"streams": [{"codec_type": "audio", "codec_name": "mp3"}]}`

	_, err := newTestProcessor(out, nil).Probe("audio.mp3")
	var perr *ProcessingError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ProcessingError, got %T (%v)", err, err)
	}
	if perr.Op != "probe" {
		t.Errorf("Op = %q, want probe", perr.Op)
	}
}

func TestProbeUnparseableOutput(t *testing.T) {
	_, err := newTestProcessor("not json", nil).Probe("test.mp4")
	var perr *ProcessingError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ProcessingError, got %T (%v)", err, err)
	}
}

func TestProbeToolFailure(t *testing.T) {
	_, err := newTestProcessor("", errors.New("exit status 1")).Probe("missing.mp4")
	var perr *ProcessingError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ProcessingError, got %T (%v)", err, err)
	}
}
