package catalog

import "time"

// WithClock sets the clock used for cache expiry
func (o LoadOptions) WithClock(now func() time.Time) LoadOptions {
	o.now = now
	return o
}
