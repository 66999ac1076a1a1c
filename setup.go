package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

// Environment variables consulted as defaults.
const (
	envBucket = "S3_BUCKET"
	envPrefix = "S3_PREFIX"
	envDistID = "CLOUDFRONT_DIST_ID"
)

// defaultPrefix is where this project's site lives inside the bucket.
const defaultPrefix = "lift-drag-thrust-grav/"

// isTestMode checks if the program is running under go test
func isTestMode() bool {
	// Check if running under go test by looking for test flags
	for _, arg := range os.Args {
		if strings.HasPrefix(arg, "-test.") {
			return true
		}
	}
	return false
}

var opts = &options{
	Prefix:  defaultPrefix,
	Source:  "public",
	Region:  os.Getenv("AWS_DEFAULT_REGION"),
	Profile: os.Getenv("AWS_DEFAULT_PROFILE"),
	cfgFile: ".s3deploy.json",
}

// AWS configuration
var awsCfg aws.Config

// Remote collaborators, swapped out for mocks in tests.
var s3Uploader S3Uploader

var cfInvalidator CFInvalidator

// resolver maps file paths to content types.
var resolver = newContentTypeResolver()

// nowFn supplies the invalidation caller reference; tests pin it.
var nowFn = time.Now

var say func(...string)

// applyEnvDefaults overlays environment variables onto opts. Runs after the
// config file is restored and before flags are parsed, so the precedence is
// flags over environment over config file over built-in defaults.
func applyEnvDefaults(o *options) {
	if v := os.Getenv(envBucket); v != "" {
		o.BucketName = v
	}
	if v := os.Getenv(envPrefix); v != "" {
		o.Prefix = v
	}
	if v := os.Getenv(envDistID); v != "" {
		o.DistID = v
	}
}

// cfgFileFromArgs pre-scans the command line for an alternate config file so
// it can be restored before the real flag parse.
func cfgFileFromArgs(args []string) string {
	for i, arg := range args {
		for _, name := range []string{"-cfgfile", "--cfgfile"} {
			if arg == name && i+1 < len(args) {
				return args[i+1]
			}
			if strings.HasPrefix(arg, name+"=") {
				return strings.TrimPrefix(arg, name+"=")
			}
		}
	}
	return ""
}

// processCmdLineFlags wraps the command line flags handling.
func processCmdLineFlags(opts *options) {
	flag.StringVar(&opts.BucketName, "bucket", opts.BucketName, "S3 bucket to deploy to (env "+envBucket+")")
	flag.StringVar(&opts.Prefix, "prefix", opts.Prefix, "S3 key prefix (env "+envPrefix+")")
	flag.StringVar(&opts.Source, "dir", opts.Source, "Local directory to upload")
	flag.StringVar(&opts.DistID, "dist-id", opts.DistID, "CloudFront distribution ID (env "+envDistID+")")
	flag.StringVar(&opts.Region, "region", opts.Region, "AWS region")
	flag.StringVar(&opts.Profile, "profile", opts.Profile, "AWS shared profile")
	flag.StringVar(&opts.cfgFile, "cfgfile", opts.cfgFile, "Config file location")
	flag.BoolVar(&opts.skipInvalidate, "skip-invalidate", opts.skipInvalidate, "Skip the CloudFront invalidation")
	flag.BoolVar(&opts.SkipHiddenDirs, "skip-hidden-dirs", opts.SkipHiddenDirs, "Do not descend into dot-directories")
	flag.BoolVar(&opts.dryRun, "dry", opts.dryRun, "Dry run (do not upload/invalidate)")
	flag.BoolVar(&opts.verbose, "verbose", opts.verbose, "Also log skipped files")
	flag.BoolVar(&opts.quiet, "quiet", opts.quiet, "Suppress all output")
	flag.BoolVar(&opts.saveCfg, "save", opts.saveCfg, "Saves the current commandline options to a config file")
	flag.BoolVar(&opts.version, "version", opts.version, "Print version information and exit")
	flag.Parse()
}

// validateCmdLineFlags validates some of the flags, mostly paths. Defers actual validation to validateCmdLineFlag()
func validateCmdLineFlags(opts *options) error {
	flags := map[string]string{
		"Bucket Name": opts.BucketName,
		"Source":      opts.Source,
	}
	for label, val := range flags {
		if err := validateCmdLineFlag(label, val); err != nil {
			return err
		}
	}
	return nil
}

// validateCmdLineFlag handles the actual validation of flags.
func validateCmdLineFlag(label, val string) error {
	switch label {
	case "Bucket Name":
		if val == "" {
			return fmt.Errorf("%s is not set (provide -bucket or set %s)", label, envBucket)
		}
	default:
		info, err := os.Stat(val)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory: %s", label, val)
		}
	}
	return nil
}

func initAWSClient() {
	ctx := context.Background()
	var err error

	// The deploy has no retry policy of its own and the SDK should not
	// smuggle one in underneath it.
	configOpts := []func(*config.LoadOptions) error{
		config.WithRetryMaxAttempts(1),
	}

	if opts.Region != "" {
		configOpts = append(configOpts, config.WithRegion(opts.Region))
	}

	if opts.Profile != "" {
		configOpts = append(configOpts, config.WithSharedConfigProfile(opts.Profile))
	}

	// Load AWS config with credential chain (automatically includes: shared credentials, EC2 role, env vars)
	awsCfg, err = config.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		abort(fmt.Errorf("failed to load AWS config: %w", err))
	}

	// Verify credentials are available
	_, err = awsCfg.Credentials.Retrieve(ctx)
	if err != nil {
		abort(fmt.Errorf("unable to initialize AWS credentials - please check environment: %w", err))
	}

	s3Uploader = NewS3Uploader(awsCfg)
	cfInvalidator = NewCFInvalidator(awsCfg)
}

func abort(msg error) {
	say(msg.Error())
	os.Exit(SetupFailed)
}

func init() {
	// Skip full initialization in test mode - tests will set up their own mocks
	if isTestMode() {
		say = loggerGen()
		return
	}

	say = loggerGen()

	if alt := cfgFileFromArgs(os.Args[1:]); alt != "" {
		opts.cfgFile = alt
	}
	if err := opts.restore(opts.cfgFile); err != nil {
		abort(err)
	}
	applyEnvDefaults(opts)
	processCmdLineFlags(opts)

	// Handle version flag early, before AWS initialization
	if opts.version {
		fmt.Println(GetVersion())
		os.Exit(Success)
	}

	if opts.saveCfg {
		if err := opts.dump(opts.cfgFile); err != nil {
			abort(err)
		}
	}
	initAWSClient()
}
