package util

import "testing"

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Push-ups", "Push-ups"},
		{"Goblet Squats", "Goblet_Squats"},
		{"my file@2x.mp4", "my_file_2x.mp4"},
		{"a/b\\c.mp4", "a_b_c.mp4"},
		{"  spaced  out  ", "spaced_out"},
		{"___already___odd___", "already_odd"},
		{"clean-name_1.0.mp4", "clean-name_1.0.mp4"},
		{"überGym!", "berGym"},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
