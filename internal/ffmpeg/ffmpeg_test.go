package ffmpeg

import "testing"

func TestNewProcessorDefaults(t *testing.T) {
	p := NewProcessor(false)
	if p.probeFn == nil {
		t.Error("probeFn not initialized")
	}
	if p.runFn == nil {
		t.Error("runFn not initialized")
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00.000"},
		{3661.5, "01:01:01.500"},
		{15.5, "00:00:15.500"},
		{59.25, "00:00:59.250"},
		{60, "00:01:00.000"},
		{3600, "01:00:00.000"},
		{7322.125, "02:02:02.125"},
	}

	for _, tt := range tests {
		if got := FormatTimestamp(tt.seconds); got != tt.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
