package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/gpm/pkg/errors"
	"github.com/arthur-debert/gpm/pkg/logging"
	"github.com/arthur-debert/gpm/pkg/types"
	"github.com/google/uuid"
)

// DefaultCacheTTL is how long a downloaded index is reused
const DefaultCacheTTL = 24 * time.Hour

// LoadOptions controls where the index comes from
type LoadOptions struct {
	// Source is a local file path or an http(s) URL
	Source string
	// Destination is the root installed versions are read from
	Destination string
	// PlatformName names the platform dependency
	PlatformName string
	// CacheDir stores downloaded indexes; empty disables caching
	CacheDir string
	// CacheTTL defaults to DefaultCacheTTL
	CacheTTL time.Duration
	// ForceRefresh ignores any cached copy
	ForceRefresh bool
	// Transfer fetches remote indexes
	Transfer types.Transfer

	now func() time.Time
}

// Load reads the index from opts.Source and builds a catalog
func Load(ctx context.Context, opts LoadOptions) (*Catalog, error) {
	if opts.Source == "" {
		return nil, errors.New(errors.ErrIndexLoad, "no package index configured (set index in the config file or pass --index)")
	}

	data, err := readSource(ctx, opts)
	if err != nil {
		return nil, err
	}

	idx, err := ParseIndex(data)
	if err != nil {
		return nil, err
	}
	return New(idx, opts.Destination, opts.PlatformName), nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// CachePath returns where the index downloaded from url is cached. The
// name is a stable UUID derived from the URL.
func CachePath(cacheDir, url string) string {
	return filepath.Join(cacheDir, "index", uuid.NewSHA1(uuid.NameSpaceURL, []byte(url)).String()+".yaml")
}

func readSource(ctx context.Context, opts LoadOptions) ([]byte, error) {
	logger := logging.GetLogger("catalog.load")

	if !isRemote(opts.Source) {
		data, err := os.ReadFile(opts.Source)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrIndexLoad, "failed to read index %s", opts.Source)
		}
		return data, nil
	}

	now := time.Now
	if opts.now != nil {
		now = opts.now
	}
	ttl := opts.CacheTTL
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}

	var cached string
	if opts.CacheDir != "" {
		cached = CachePath(opts.CacheDir, opts.Source)
		if !opts.ForceRefresh {
			if info, err := os.Stat(cached); err == nil && now().Sub(info.ModTime()) < ttl {
				if data, err := os.ReadFile(cached); err == nil {
					logger.Debug().Str("cache", cached).Msg("Using cached index")
					return data, nil
				}
			}
		}
	}

	if opts.Transfer == nil {
		return nil, errors.New(errors.ErrInternal, "remote index requires a transfer client")
	}

	data, err := opts.Transfer.Get(ctx, opts.Source, nil)
	if err != nil {
		if cached != "" {
			if stale, rerr := os.ReadFile(cached); rerr == nil {
				logger.Warn().Err(err).Str("cache", cached).Msg("Index download failed, using stale cache")
				return stale, nil
			}
		}
		return nil, errors.Wrapf(err, errors.ErrIndexLoad, "failed to download index %s", opts.Source)
	}

	if cached != "" {
		if err := os.MkdirAll(filepath.Dir(cached), 0755); err == nil {
			if err := os.WriteFile(cached, data, 0644); err != nil {
				logger.Warn().Err(err).Str("cache", cached).Msg("Could not cache index")
			}
		}
	}
	return data, nil
}
