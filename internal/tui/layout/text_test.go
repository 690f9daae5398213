package layout

import "testing"

func TestStripANSI(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"hello", "hello"},
		{"\x1b[1mbold\x1b[0m", "bold"},
		{"\x1b[38;2;255;0;0mtruecolor\x1b[0m", "truecolor"},
		{"a \x1b[1;4mb\x1b[0m c", "a b c"},
		{"\x1b[1m\x1b[0m", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := StripANSI(tt.input); got != tt.want {
			t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestVisibleLength(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"marks", 5},
		{"\x1b[31mmarks\x1b[0m", 5},
		{"▸ ■", 3},
		{"日本", 4}, // wide runes take two cells
		{"", 0},
	}

	for _, tt := range tests {
		if got := VisibleLength(tt.input); got != tt.want {
			t.Errorf("VisibleLength(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestTruncateText(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name      string
		text      string
		maxWidth  int
		want      string
		truncated bool
	}{
		{"fits", "Go", 10, "Go", false},
		{"exact fit", "Hacker", 6, "Hacker", false},
		{"cut with ellipsis", "The Go Programming Language", 10, "The Go ...", true},
		{"room for ellipsis only", "Hacker News", 3, "...", true},
		{"ellipsis cut short", "Hacker News", 2, "..", true},
		{"zero width", "Hacker News", 0, "", true},
		{"empty fits anything", "", 0, "", false},
		{"wide runes", "日本語のページ", 5, "日...", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := TruncateText(tt.text, tt.maxWidth, cfg)
			if got != tt.want || truncated != tt.truncated {
				t.Errorf("TruncateText(%q, %d) = (%q, %v), want (%q, %v)",
					tt.text, tt.maxWidth, got, truncated, tt.want, tt.truncated)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"go", 4, "go  "},
		{"news", 4, "news"},
		{"overflow", 4, "overflow"},
		{"\x1b[1mgo\x1b[0m", 3, "\x1b[1mgo\x1b[0m "},
		{"日本", 5, "日本 "},
	}

	for _, tt := range tests {
		if got := PadRight(tt.text, tt.width); got != tt.want {
			t.Errorf("PadRight(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestFitSegments(t *testing.T) {
	tests := []struct {
		name        string
		segments    []string
		maxWidth    int
		wantKept    int
		wantDropped int
	}{
		{"all fit", []string{" go ", " news "}, 20, 2, 0},
		{"separator counts", []string{" go ", " news "}, 11, 2, 0},
		{"drops tail", []string{" go ", " news ", " x "}, 12, 2, 1},
		{"nothing fits", []string{" golang "}, 3, 0, 1},
		{"styled chips", []string{"\x1b[41m go \x1b[0m", "\x1b[42m tech \x1b[0m"}, 9, 1, 1},
		{"empty", nil, 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kept, dropped := FitSegments(tt.segments, " ", tt.maxWidth)
			if len(kept) != tt.wantKept || dropped != tt.wantDropped {
				t.Errorf("FitSegments(%q, %d) = (%d kept, %d dropped), want (%d, %d)",
					tt.segments, tt.maxWidth, len(kept), dropped, tt.wantKept, tt.wantDropped)
			}
		})
	}
}
