package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aws/smithy-go"
)

// cacheControl is set on every uploaded object. Edge caches must revalidate,
// so a deploy followed by the wildcard invalidation never serves stale assets.
const cacheControl = "no-cache"

// deployResult accumulates the outcome of a full tree walk.
type deployResult struct {
	uploaded int
	errors   int
	failed   []string
}

// uploadFile pushes a single local file to s3://bucket/key with its resolved
// content type. It returns false on any failure; a failed file never aborts
// the surrounding deploy.
func uploadFile(localPath, bucket, key string) bool {
	contentType := resolver.resolve(localPath)

	if opts.dryRun {
		say(fmt.Sprintf("Pretending to upload %s -> s3://%s/%s (%s)", localPath, bucket, key, contentType))
		return true
	}

	ctx := context.Background()
	f, err := os.Open(localPath) // #nosec G304 - paths come from walking the user's source dir
	if err != nil {
		say(fmt.Sprintf("ERROR uploading %s: %s", localPath, errorDetail(err)))
		return false
	}
	defer f.Close()

	input := &UploadInput{
		Bucket:       bucket,
		Key:          key,
		Body:         f,
		ContentType:  &contentType,
		CacheControl: strPtr(cacheControl),
	}

	if _, err = s3Uploader.Upload(ctx, input); err != nil {
		say(fmt.Sprintf("ERROR uploading %s: %s", localPath, errorDetail(err)))
		return false
	}

	say(fmt.Sprintf("Uploaded %s -> s3://%s/%s (%s)", localPath, bucket, key, contentType))
	return true
}

// deploy walks rootDir and uploads every regular, non-hidden file to the
// bucket under prefix. Object keys always use forward slashes, whatever the
// host's path separator is. The walk runs to completion even when individual
// uploads fail; only an unreadable root is an error.
func deploy(rootDir, bucket, prefix string) (deployResult, error) {
	res := deployResult{}

	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == rootDir {
				return err
			}
			say(fmt.Sprintf("ERROR reading %s: %v", path, err))
			res.errors++
			return nil
		}

		name := d.Name()

		if d.IsDir() {
			if opts.SkipHiddenDirs && path != rootDir && strings.HasPrefix(name, ".") {
				if opts.verbose {
					say(fmt.Sprintf("Skipping hidden directory %s", path))
				}
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if strings.HasPrefix(name, ".") {
			if opts.verbose {
				say(fmt.Sprintf("Skipping hidden file %s", path))
			}
			return nil
		}

		rel, err := filepath.Rel(rootDir, path)
		if err != nil {
			say(fmt.Sprintf("ERROR resolving %s: %v", path, err))
			res.errors++
			return nil
		}

		key := filepath.ToSlash(rel)
		if prefix != "" {
			key = prefix + key
		}

		if uploadFile(path, bucket, key) {
			res.uploaded++
		} else {
			res.errors++
			res.failed = append(res.failed, path)
		}

		return nil
	})
	if err != nil {
		return res, err
	}

	say(fmt.Sprintf("Upload complete: %d ok, %d errors", res.uploaded, res.errors))
	for _, path := range res.failed {
		say(fmt.Sprintf("Failed: %s", path))
	}

	return res, nil
}

// invalidate submits one CloudFront invalidation for the given path patterns.
// An empty distribution id means invalidation is not configured; that is not
// an error. Failures are logged and swallowed, they never fail the deploy.
func invalidate(distributionID string, paths []string) {
	if distributionID == "" {
		say("No CloudFront distribution ID provided; skipping invalidation")
		return
	}

	if opts.dryRun {
		say(fmt.Sprintf("Pretending to invalidate %s: %s", distributionID, strings.Join(paths, ", ")))
		return
	}

	// CloudFront dedupes batches by caller reference, so each run needs a
	// fresh one. Epoch seconds are unique enough for a sequential tool.
	callerRef := strconv.FormatInt(nowFn().Unix(), 10)

	id, err := cfInvalidator.CreateInvalidation(context.Background(), distributionID, paths, callerRef)
	if err != nil {
		say(fmt.Sprintf("ERROR creating invalidation: %s", errorDetail(err)))
		return
	}

	say(fmt.Sprintf("Created invalidation %s: %s", id, strings.Join(paths, ", ")))
}

// errorDetail renders err for a log line, surfacing the provider error code
// when the AWS SDK gives us one.
func errorDetail(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("%s: %s", apiErr.ErrorCode(), apiErr.ErrorMessage())
	}
	return err.Error()
}

func strPtr(s string) *string {
	return &s
}
