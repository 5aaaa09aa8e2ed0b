package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// Status writes a one-line colored result: a green check when err is nil,
// a red cross with the error otherwise.
func Status(w io.Writer, msg string, err error) {
	out := termenv.NewOutput(w)
	if err == nil {
		fmt.Fprintf(w, "%s %s\n", out.String("✔").Foreground(out.Color("2")).Bold(), msg)
		return
	}
	fmt.Fprintf(w, "%s %s: %v\n", out.String("✘").Foreground(out.Color("1")).Bold(), msg, err)
}
