package main

import (
	"fmt"
	"io"
	"os"
)

// loggerGen builds the say function used for all operator-facing output.
// Every line carries the DEPLOY: prefix so deploy output is easy to grep out
// of a busy CI log. An alternate writer can be passed in by tests.
func loggerGen(out ...io.Writer) func(...string) {
	w := io.Writer(os.Stdout)
	if len(out) > 0 {
		w = out[0]
	}

	return func(msg ...string) {
		if len(msg) == 0 || opts.quiet {
			return
		}
		fmt.Fprintf(w, "DEPLOY: %s\n", msg[0])
	}
}
