package transfer_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/arthur-debert/gpm/pkg/errors"
	"github.com/arthur-debert/gpm/pkg/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ReportsMonotonicProgress(t *testing.T) {
	body := strings.Repeat("x", 200*1024)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gpm-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Length", "204800")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	var seen []int
	c := transfer.New(transfer.WithUserAgent("gpm-test"))
	data, err := c.Get(context.Background(), srv.URL+"/pkg.zip", func(p int) {
		seen = append(seen, p)
	})
	require.NoError(t, err)
	assert.Equal(t, body, string(data))

	require.NotEmpty(t, seen)
	assert.Equal(t, 0, seen[0])
	assert.Equal(t, 100, seen[len(seen)-1])
	for i := 1; i < len(seen); i++ {
		assert.Greater(t, seen[i], seen[i-1], "progress must increase")
	}
}

func TestGet_UnknownLength(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Transfer-Encoding", "chunked")
		_, _ = w.Write([]byte("part one "))
		w.(http.Flusher).Flush()
		_, _ = w.Write([]byte("part two"))
	}))
	defer srv.Close()

	var seen []int
	data, err := transfer.New().Get(context.Background(), srv.URL, func(p int) { seen = append(seen, p) })
	require.NoError(t, err)
	assert.Equal(t, "part one part two", string(data))
	assert.Equal(t, []int{0, 100}, seen)
}

func TestGet_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := transfer.New().Get(context.Background(), srv.URL, nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTransport))
	assert.Equal(t, http.StatusNotFound, errors.GetErrorDetails(err)["status"])
}

func TestGet_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := transfer.New().Get(ctx, srv.URL, nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTransport))
}

func TestGet_BadURL(t *testing.T) {
	_, err := transfer.New().Get(context.Background(), "://nope", nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTransport))
}
