package ansi

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

const (
	encodeStart = "\033["
	encodeEnd   = "m"
	encodeJoin  = ";"
)

// reset is appended after any encoded output to restore the terminal.
var reset = "0;" + DefaultColor.Code()

// Mode controls whether ANSI escapes are emitted.
type Mode int

const (
	// ModeDetect emits escapes only when stdout is a capable terminal.
	ModeDetect Mode = iota
	// ModeAlways always emits escapes.
	ModeAlways
	// ModeNever never emits escapes.
	ModeNever
)

func (m Mode) String() string {
	switch m {
	case ModeDetect:
		return "detect"
	case ModeAlways:
		return "always"
	case ModeNever:
		return "never"
	default:
		return "unknown"
	}
}

// ParseMode parses "detect", "always" or "never" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "detect", "":
		return ModeDetect, nil
	case "always":
		return ModeAlways, nil
	case "never":
		return ModeNever, nil
	default:
		return ModeDetect, fmt.Errorf("ansi: unknown mode %q", s)
	}
}

// Output state is process-wide. SetMode and SetConsoleAvailable are meant to
// be called once at startup; Reset restores the initial state and clears the
// cached detection result.
var state struct {
	mu               sync.Mutex
	mode             Mode
	consoleAvailable *bool
	capable          *bool
}

// isTerminal reports whether stdout is attached to a terminal.
var isTerminal = func() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// SetMode sets the output mode.
func SetMode(m Mode) {
	state.mu.Lock()
	defer state.mu.Unlock()
	state.mode = m
}

// CurrentMode returns the output mode.
func CurrentMode() Mode {
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.mode
}

// SetConsoleAvailable overrides console detection. Nil restores detection.
// The cached capability is cleared.
func SetConsoleAvailable(available *bool) {
	state.mu.Lock()
	defer state.mu.Unlock()
	state.consoleAvailable = available
	state.capable = nil
}

// Reset restores ModeDetect and clears all cached detection state.
func Reset() {
	state.mu.Lock()
	defer state.mu.Unlock()
	state.mode = ModeDetect
	state.consoleAvailable = nil
	state.capable = nil
}

// Enabled reports whether escapes are currently emitted.
func Enabled() bool {
	state.mu.Lock()
	defer state.mu.Unlock()
	switch state.mode {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	}
	if state.capable == nil {
		c := detectCapable(state.consoleAvailable)
		state.capable = &c
	}
	return *state.capable
}

func detectCapable(consoleAvailable *bool) bool {
	if consoleAvailable != nil && !*consoleAvailable {
		return false
	}
	if consoleAvailable == nil && !isTerminal() {
		return false
	}
	return runtime.GOOS != "windows"
}

// Encode returns the escape sequence for a single element, or "" when output
// is disabled.
func Encode(e Element) string {
	if !Enabled() {
		return ""
	}
	return encodeStart + e.Code() + encodeEnd
}

// String renders parts into a string. Consecutive elements are merged into a
// single escape sequence and a reset is appended when any element was
// present. When output is disabled, elements are dropped. Nil parts are
// always dropped.
func String(parts ...any) string {
	var sb strings.Builder
	if Enabled() {
		buildEnabled(&sb, parts)
	} else {
		buildDisabled(&sb, parts)
	}
	return sb.String()
}

func buildEnabled(sb *strings.Builder, parts []any) {
	writingAnsi := false
	containsEncoding := false
	for _, p := range parts {
		if p == nil {
			continue
		}
		if e, ok := p.(Element); ok {
			containsEncoding = true
			if !writingAnsi {
				sb.WriteString(encodeStart)
				writingAnsi = true
			} else {
				sb.WriteString(encodeJoin)
			}
			sb.WriteString(e.Code())
			continue
		}
		if writingAnsi {
			sb.WriteString(encodeEnd)
			writingAnsi = false
		}
		fmt.Fprint(sb, p)
	}
	if containsEncoding {
		if writingAnsi {
			sb.WriteString(encodeJoin)
		} else {
			sb.WriteString(encodeStart)
		}
		sb.WriteString(reset)
		sb.WriteString(encodeEnd)
	}
}

func buildDisabled(sb *strings.Builder, parts []any) {
	for _, p := range parts {
		if p == nil {
			continue
		}
		if _, ok := p.(Element); ok {
			continue
		}
		fmt.Fprint(sb, p)
	}
}
