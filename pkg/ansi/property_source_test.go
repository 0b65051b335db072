package ansi

import "testing"

func TestPropertySource_Element(t *testing.T) {
	ps := NewPropertySource("ansi", false)

	tests := []struct {
		key    string
		want   Element
		wantOK bool
	}{
		{"AnsiStyle.BOLD", Bold, true},
		{"AnsiColor.RED", Red, true},
		{"AnsiColor.BRIGHT_CYAN", BrightCyan, true},
		{"AnsiBackground.GREEN", BackgroundGreen, true},
		{"Ansi.ITALIC", Italic, true},
		{"Ansi.YELLOW", Yellow, true},
		{"Ansi.DEFAULT", DefaultColor, true},
		{"Ansi.BG_MAGENTA", BackgroundMagenta, true},
		{"AnsiColor.PURPLE", nil, false},
		{"Other.RED", nil, false},
		{"", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := ps.Element(tt.key)
			if ok != tt.wantOK {
				t.Fatalf("Element(%q) ok = %v, want %v", tt.key, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Element(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestPropertySource_Property(t *testing.T) {
	withMode(t, ModeAlways)

	names := NewPropertySource("ansi", false)
	if v, ok := names.Property("AnsiColor.BLUE"); !ok || v != "BLUE" {
		t.Errorf("Property() = %q, %v, want BLUE, true", v, ok)
	}

	encoded := NewPropertySource("ansi", true)
	if v, ok := encoded.Property("Ansi.BG_RED"); !ok || v != "\033[41m" {
		t.Errorf("Property() = %q, %v, want escape, true", v, ok)
	}

	if encoded.Name() != "ansi" {
		t.Errorf("Name() = %q", encoded.Name())
	}
}
