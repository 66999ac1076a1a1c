package main

import (
	"flag"
	"fmt"
	"os"
)

// Exit codes
const (
	Success = iota
	SetupFailed
	CmdLineOptionError
)

// wildcardPath invalidates the whole distribution. Computing a minimal
// invalidation set from the uploaded keys is not worth the bookkeeping for a
// deploy that rewrites the site anyway.
const wildcardPath = "/*"

func main() {
	if err := validateCmdLineFlags(opts); err != nil {
		fmt.Printf("Required field missing: %v.\n\nUsage:\n", err)
		flag.PrintDefaults()
		os.Exit(CmdLineOptionError)
	}

	if _, err := deploy(opts.Source, opts.BucketName, opts.Prefix); err != nil {
		abort(fmt.Errorf("deploy failed: %w", err))
	}

	finishDeploy()

	say("All done!")
}

// finishDeploy runs the post-upload invalidation step unless it was opted out.
func finishDeploy() {
	if opts.skipInvalidate {
		say("Skipping invalidation.")
		return
	}
	invalidate(opts.DistID, []string{wildcardPath})
}
