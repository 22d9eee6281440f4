package main

import (
	"fmt"
	"io"

	"github.com/jonathan/hookgen/internal/pipeline"
)

// printProgress writes one line per pipeline state transition.
func printProgress(w io.Writer, event pipeline.ProgressEvent) {
	line := fmt.Sprintf("[%s]", event.State)
	if event.Rung != "" {
		line += fmt.Sprintf(" %s", event.Rung)
		if event.Attempt > 0 {
			line += fmt.Sprintf(" #%d", event.Attempt)
		}
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", line, event.Message)
}
