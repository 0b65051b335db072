// Package ansi renders ANSI-colored terminal output.
//
// Whether escapes are emitted is controlled by a process-wide Mode that is
// set once at startup:
//
//	ansi.SetMode(ansi.ModeAlways)
//	fmt.Println(ansi.String(ansi.Green, "ready", ansi.DefaultColor))
//
// In ModeDetect, output is enabled only when stdout is a terminal on a
// non-Windows platform. The detection result is cached until Reset or
// SetConsoleAvailable is called.
package ansi
