package ux

import (
	"fmt"
	"io"
	"time"
)

// ANSI color helpers
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

func timestamp() string {
	return time.Now().Format("15:04:05")
}

// Done prints a timestamped success line.
func Done(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s[%s]%s  %s✓ %s%s\n", Dim, timestamp(), Reset, Green, fmt.Sprintf(format, args...), Reset)
}

// Warn prints a timestamped warning line.
func Warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s[%s]%s  %s⚠ %s%s\n", Dim, timestamp(), Reset, Yellow, fmt.Sprintf(format, args...), Reset)
}

// Rerendered prints the watch-mode banner shown before each new render.
func Rerendered(w io.Writer, path string) {
	fmt.Fprintf(w, "\n%s[%s]%s %s══ %s changed, re-rendered ══%s\n",
		Dim, timestamp(), Reset, Cyan, path, Reset)
}
