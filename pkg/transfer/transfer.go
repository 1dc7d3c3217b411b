// Package transfer fetches remote content over HTTP with progress callbacks.
package transfer

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/arthur-debert/gpm/pkg/errors"
	"github.com/arthur-debert/gpm/pkg/logging"
	"github.com/arthur-debert/gpm/pkg/types"
)

// DefaultTimeout bounds a whole request including the body
const DefaultTimeout = 10 * time.Minute

const chunkSize = 32 * 1024

// Client implements types.Transfer
type Client struct {
	http      *http.Client
	userAgent string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(cl *Client) { cl.userAgent = ua }
}

// New creates a transfer client
func New(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: DefaultTimeout},
		userAgent: "gpm",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ types.Transfer = (*Client)(nil)

// Get downloads url into memory. onProgress, when set, receives a
// non-decreasing percentage; 100 is always the last value on success.
// Without a Content-Length only 0 and 100 are reported.
func (c *Client) Get(ctx context.Context, url string, onProgress types.ProgressFunc) ([]byte, error) {
	logger := logging.GetLogger("transfer")
	done := logging.LogOperationStart(logger, "GET "+url)
	defer done()

	progress := newTracker(onProgress)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTransport, "invalid URL %s", url)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTransport, "request to %s failed", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Newf(errors.ErrTransport, "GET %s: %s", url, resp.Status).
			WithDetail("status", resp.StatusCode)
	}

	total := resp.ContentLength
	progress.report(0)

	var buf bytes.Buffer
	if total > 0 {
		buf.Grow(int(total))
	}
	chunk := make([]byte, chunkSize)
	var read int64
	for {
		n, rerr := resp.Body.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			read += int64(n)
			if total > 0 {
				progress.report(int(read * 100 / total))
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return nil, errors.Wrapf(rerr, errors.ErrTransport, "reading %s failed", url)
		}
	}

	progress.report(100)
	logger.Debug().Str("url", url).Int64("bytes", read).Msg("Download complete")
	return buf.Bytes(), nil
}

// tracker forwards only increasing, clamped values
type tracker struct {
	fn   types.ProgressFunc
	last int
}

func newTracker(fn types.ProgressFunc) *tracker {
	return &tracker{fn: fn, last: -1}
}

func (t *tracker) report(p int) {
	if t.fn == nil {
		return
	}
	if p > 100 {
		p = 100
	}
	if p <= t.last {
		return
	}
	t.last = p
	t.fn(p)
}
