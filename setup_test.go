package main

import (
	"io"
	"os"
	"testing"
)

func init() {
	opts.BucketName = "example-bucket"
	opts.Source = "public"
	say = loggerGen(io.Discard)
}

// resetOpts restores the option fields the tests poke at.
func resetOpts(t *testing.T) {
	t.Helper()
	prev := *opts
	t.Cleanup(func() { *opts = prev })
}

func TestValidateCmdLineFlags(t *testing.T) {
	resetOpts(t)
	dir := t.TempDir()

	opts.BucketName = "example-bucket"
	opts.Source = dir
	if err := validateCmdLineFlags(opts); err != nil {
		t.Errorf("Expected %v to pass validation: %v", opts, err)
	}

	opts.BucketName = ""
	if err := validateCmdLineFlags(opts); err == nil {
		t.Error("Expected missing bucket to fail validation")
	}
}

func TestValidateCmdLineFlag(t *testing.T) {
	dir := t.TempDir()

	if err := validateCmdLineFlag("Source", dir); err != nil {
		t.Errorf("Expected %s to pass validation: %v", dir, err)
	}

	if err := validateCmdLineFlag("Source", dir+"/bogus"); err == nil {
		t.Error("Expected missing source dir to fail validation")
	}

	f, err := os.CreateTemp(dir, "plain")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	if err := validateCmdLineFlag("Source", f.Name()); err == nil {
		t.Error("Expected a plain file source to fail validation")
	}

	if err := validateCmdLineFlag("Bucket Name", "foobar"); err != nil {
		t.Error("Expected foobar bucket name to pass validation")
	}

	if err := validateCmdLineFlag("Bucket Name", ""); err == nil {
		t.Error("Expected empty bucket name to fail validation")
	}
}

func TestApplyEnvDefaults(t *testing.T) {
	resetOpts(t)

	t.Setenv(envBucket, "env-bucket")
	t.Setenv(envPrefix, "env-prefix/")
	t.Setenv(envDistID, "EDFDVBD6EXAMPLE")

	o := &options{Prefix: defaultPrefix}
	applyEnvDefaults(o)

	if o.BucketName != "env-bucket" {
		t.Errorf("expected bucket from env, got %q", o.BucketName)
	}
	if o.Prefix != "env-prefix/" {
		t.Errorf("expected prefix from env, got %q", o.Prefix)
	}
	if o.DistID != "EDFDVBD6EXAMPLE" {
		t.Errorf("expected dist id from env, got %q", o.DistID)
	}
}

func TestApplyEnvDefaultsUnsetKeepsDefaults(t *testing.T) {
	t.Setenv(envBucket, "")
	t.Setenv(envPrefix, "")
	t.Setenv(envDistID, "")

	o := &options{Prefix: defaultPrefix, BucketName: "from-config"}
	applyEnvDefaults(o)

	if o.Prefix != defaultPrefix {
		t.Errorf("expected default prefix to survive, got %q", o.Prefix)
	}
	if o.BucketName != "from-config" {
		t.Errorf("expected config bucket to survive, got %q", o.BucketName)
	}
	if o.DistID != "" {
		t.Errorf("expected empty dist id, got %q", o.DistID)
	}
}

func TestCfgFileFromArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"absent", []string{"-bucket", "b"}, ""},
		{"separate value", []string{"-cfgfile", "alt.json"}, "alt.json"},
		{"equals form", []string{"-cfgfile=alt.json"}, "alt.json"},
		{"double dash", []string{"--cfgfile", "alt.json"}, "alt.json"},
		{"double dash equals", []string{"--cfgfile=alt.json", "-bucket", "b"}, "alt.json"},
		{"dangling flag", []string{"-cfgfile"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfgFileFromArgs(tt.args); got != tt.want {
				t.Errorf("cfgFileFromArgs(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}
