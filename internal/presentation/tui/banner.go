package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the ruleforge banner and version to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{"             _       __                      ", "#f59e0b"},
		{"  _ __ _   _| | ___ / _| ___  _ __ __ _  ___ ", "#f97316"},
		{" | '__| | | | |/ _ \\ |_ / _ \\| '__/ _` |/ _ \\", "#ef4444"},
		{" | |  | |_| | |  __/  _| (_) | | | (_| |  __/", "#e11d48"},
		{" |_|   \\__,_|_|\\___|_|  \\___/|_|  \\__, |\\___|", "#be123c"},
		{"                                  |___/      ", "#9f1239"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  v"+strings.TrimSpace(version)).Faint())
	fmt.Fprintln(w)
}
