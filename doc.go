/*
S3Deploy pushes a local directory of static site assets to an S3 bucket and
then asks CloudFront to invalidate its caches, so that the next request
anywhere on the edge picks up the freshly deployed files.

The pipeline is deliberately simple and fully sequential: walk the source
directory, upload every non-hidden file one at a time, print a summary, then
submit a single wildcard invalidation. There is no diffing against the remote
bucket and no retrying of failed uploads; a file that fails to transfer is
logged, counted and left behind while the rest of the deploy continues. The
exit status only reflects configuration problems, never individual transfer
failures, which makes the tool safe to run unconditionally from CI.

Credentials come from the AWS default chain (environment, shared config,
instance role). The bucket, key prefix, source directory and distribution id
can be given as flags, environment variables or a JSON config file, in that
order of precedence.
*/
package main
