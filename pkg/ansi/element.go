package ansi

import "strconv"

// Element is an ANSI escape parameter: a style, a foreground color or a
// background color.
type Element interface {
	// Code returns the SGR parameter, e.g. "31" for red.
	Code() string
	// String returns the element name, e.g. "RED".
	String() string
}

// Style is a text style element.
type Style int

const (
	Normal    Style = 0
	Bold      Style = 1
	Faint     Style = 2
	Italic    Style = 3
	Underline Style = 4
)

var styleNames = map[Style]string{
	Normal:    "NORMAL",
	Bold:      "BOLD",
	Faint:     "FAINT",
	Italic:    "ITALIC",
	Underline: "UNDERLINE",
}

// Code returns the SGR parameter for the style.
func (s Style) Code() string { return strconv.Itoa(int(s)) }

func (s Style) String() string { return nameOr(styleNames[s], int(s)) }

// Color is a foreground color element.
type Color int

const (
	DefaultColor  Color = 39
	Black         Color = 30
	Red           Color = 31
	Green         Color = 32
	Yellow        Color = 33
	Blue          Color = 34
	Magenta       Color = 35
	Cyan          Color = 36
	White         Color = 37
	BrightBlack   Color = 90
	BrightRed     Color = 91
	BrightGreen   Color = 92
	BrightYellow  Color = 93
	BrightBlue    Color = 94
	BrightMagenta Color = 95
	BrightCyan    Color = 96
	BrightWhite   Color = 97
)

var colorNames = map[Color]string{
	DefaultColor:  "DEFAULT",
	Black:         "BLACK",
	Red:           "RED",
	Green:         "GREEN",
	Yellow:        "YELLOW",
	Blue:          "BLUE",
	Magenta:       "MAGENTA",
	Cyan:          "CYAN",
	White:         "WHITE",
	BrightBlack:   "BRIGHT_BLACK",
	BrightRed:     "BRIGHT_RED",
	BrightGreen:   "BRIGHT_GREEN",
	BrightYellow:  "BRIGHT_YELLOW",
	BrightBlue:    "BRIGHT_BLUE",
	BrightMagenta: "BRIGHT_MAGENTA",
	BrightCyan:    "BRIGHT_CYAN",
	BrightWhite:   "BRIGHT_WHITE",
}

// Code returns the SGR parameter for the color.
func (c Color) Code() string { return strconv.Itoa(int(c)) }

func (c Color) String() string { return nameOr(colorNames[c], int(c)) }

// Background is a background color element.
type Background int

const (
	DefaultBackground       Background = 49
	BackgroundBlack         Background = 40
	BackgroundRed           Background = 41
	BackgroundGreen         Background = 42
	BackgroundYellow        Background = 43
	BackgroundBlue          Background = 44
	BackgroundMagenta       Background = 45
	BackgroundCyan          Background = 46
	BackgroundWhite         Background = 47
	BackgroundBrightBlack   Background = 100
	BackgroundBrightRed     Background = 101
	BackgroundBrightGreen   Background = 102
	BackgroundBrightYellow  Background = 103
	BackgroundBrightBlue    Background = 104
	BackgroundBrightMagenta Background = 105
	BackgroundBrightCyan    Background = 106
	BackgroundBrightWhite   Background = 107
)

var backgroundNames = map[Background]string{
	DefaultBackground:       "DEFAULT",
	BackgroundBlack:         "BLACK",
	BackgroundRed:           "RED",
	BackgroundGreen:         "GREEN",
	BackgroundYellow:        "YELLOW",
	BackgroundBlue:          "BLUE",
	BackgroundMagenta:       "MAGENTA",
	BackgroundCyan:          "CYAN",
	BackgroundWhite:         "WHITE",
	BackgroundBrightBlack:   "BRIGHT_BLACK",
	BackgroundBrightRed:     "BRIGHT_RED",
	BackgroundBrightGreen:   "BRIGHT_GREEN",
	BackgroundBrightYellow:  "BRIGHT_YELLOW",
	BackgroundBrightBlue:    "BRIGHT_BLUE",
	BackgroundBrightMagenta: "BRIGHT_MAGENTA",
	BackgroundBrightCyan:    "BRIGHT_CYAN",
	BackgroundBrightWhite:   "BRIGHT_WHITE",
}

// Code returns the SGR parameter for the background.
func (b Background) Code() string { return strconv.Itoa(int(b)) }

func (b Background) String() string { return nameOr(backgroundNames[b], int(b)) }

func nameOr(name string, code int) string {
	if name == "" {
		return "UNKNOWN(" + strconv.Itoa(code) + ")"
	}
	return name
}
