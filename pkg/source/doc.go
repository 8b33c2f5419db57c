// Package source resolves document references into readable streams for the
// CLI and the inspection server.
//
// A reference is one of:
//
//   - "-"                  standard input
//   - "s3://bucket/key"    an S3 object
//   - "http(s)://..."      an HTTP resource
//   - anything else        a local file path
package source
