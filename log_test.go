package main

import (
	"bytes"
	"testing"
)

func TestLoggerGenPrefixesLines(t *testing.T) {
	resetOpts(t)
	buf := &bytes.Buffer{}
	log := loggerGen(buf)

	log("Uploaded index.html")
	log("Upload complete: 1 ok, 0 errors")

	want := "DEPLOY: Uploaded index.html\nDEPLOY: Upload complete: 1 ok, 0 errors\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestLoggerGenQuiet(t *testing.T) {
	resetOpts(t)
	opts.quiet = true

	buf := &bytes.Buffer{}
	log := loggerGen(buf)

	log("should not appear")

	if buf.Len() != 0 {
		t.Errorf("expected no output in quiet mode, got %q", buf.String())
	}
}

func TestLoggerGenNoArgs(t *testing.T) {
	resetOpts(t)
	buf := &bytes.Buffer{}
	log := loggerGen(buf)

	log()

	if buf.Len() != 0 {
		t.Errorf("expected no output for an empty call, got %q", buf.String())
	}
}
