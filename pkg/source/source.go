package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// ErrBadReference reports a reference that cannot be resolved to a source.
var ErrBadReference = errors.New("source: bad reference")

// Source is anything that can deliver a document stream. The caller owns
// the returned reader and must close it.
type Source interface {
	// Load opens the document stream.
	Load(ctx context.Context) (io.ReadCloser, error)

	// Name identifies the source in logs and error messages.
	Name() string
}

// Options tune reference resolution.
type Options struct {
	// HTTPClient is used for http/https references. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client

	// S3Client is used for s3 references. When nil, a client is built from
	// the ambient AWS configuration on first load.
	S3Client S3API
}

// Option mutates Options.
type Option func(*Options)

// WithHTTPClient sets the HTTP client used for http/https references.
func WithHTTPClient(c *http.Client) Option {
	return func(o *Options) { o.HTTPClient = c }
}

// WithS3Client sets the S3 client used for s3 references.
func WithS3Client(c S3API) Option {
	return func(o *Options) { o.S3Client = c }
}

// Resolve maps a reference string to a Source. The reference decides the
// scheme; see the package comment.
func Resolve(ref string, opts ...Option) (Source, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	switch {
	case ref == "-":
		return &ReaderSource{R: os.Stdin, Label: "stdin"}, nil
	case strings.HasPrefix(ref, "s3://"):
		bucket, key, err := splitS3(ref)
		if err != nil {
			return nil, err
		}
		return &S3Source{Bucket: bucket, Key: key, Client: o.S3Client}, nil
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return &HTTPSource{URL: ref, Client: o.HTTPClient}, nil
	case ref == "":
		return nil, fmt.Errorf("%w: empty reference", ErrBadReference)
	default:
		return &FileSource{Path: ref}, nil
	}
}

// FileSource reads a local file.
type FileSource struct {
	Path string
}

func (s *FileSource) Load(ctx context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("source: open %s: %w", s.Path, err)
	}
	return f, nil
}

func (s *FileSource) Name() string { return s.Path }

// HTTPSource fetches a document over HTTP.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s *HTTPSource) Load(ctx context.Context) (io.ReadCloser, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("source: %s: %w", s.URL, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("source: get %s: %w", s.URL, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("source: get %s: unexpected status %s", s.URL, resp.Status)
	}
	return resp.Body, nil
}

func (s *HTTPSource) Name() string { return s.URL }

// ReaderSource wraps an already-open stream, typically stdin.
type ReaderSource struct {
	R     io.Reader
	Label string
}

func (s *ReaderSource) Load(ctx context.Context) (io.ReadCloser, error) {
	if s.R == nil {
		return nil, fmt.Errorf("%w: nil reader", ErrBadReference)
	}
	return io.NopCloser(s.R), nil
}

func (s *ReaderSource) Name() string {
	if s.Label == "" {
		return "reader"
	}
	return s.Label
}

// splitS3 splits "s3://bucket/key/with/slashes".
func splitS3(ref string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(ref, "s3://")
	slash := strings.IndexByte(rest, '/')
	if slash <= 0 || slash == len(rest)-1 {
		return "", "", fmt.Errorf("%w: %q needs s3://bucket/key form", ErrBadReference, ref)
	}
	return rest[:slash], rest[slash+1:], nil
}
