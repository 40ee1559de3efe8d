package testutil

import "testing"

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "watching", "watching"},
		{"color", "\x1b[38;2;66;184;131mwatching\x1b[0m", "watching"},
		{"cursor control", "\x1b[?25l\x1b[2Kidle", "idle"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripANSI(tt.input); got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFindLine(t *testing.T) {
	output := "scrobblr  idle\nmpv  Dark S01E02\nvlc  - waiting"

	if got := FindLine(output, "vlc"); got != "vlc  - waiting" {
		t.Errorf("FindLine(vlc) = %q", got)
	}
	if got := FindLine(output, "kodi"); got != "" {
		t.Errorf("FindLine(kodi) = %q, want empty", got)
	}
}
