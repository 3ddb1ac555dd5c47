// Package cache provides the byte-level cache behind the layout pipeline.
//
// A layout pass is cheap but not free, and the serve mode recomputes on
// every request without it. The pipeline memoizes each stage here: fetched
// member lists keyed by their source, computed layouts keyed by the
// members hash plus the layout options. Three backends exist:
//   - file: per-user cache directory for CLI usage
//   - redis: shared cache for multi-instance serve deployments
//   - null: caching disabled (tests, --no-cache)
package cache

import (
	"context"
	"time"
)

// TTLs per cached stage. Member lists go stale when the family data is
// edited, so they expire fast; a layout is fully determined by its key.
const (
	TTLMembers = 1 * time.Hour
	TTLLayout  = 24 * time.Hour
)

// Cache is the byte-level caching interface all backends implement.
type Cache interface {
	// Get retrieves data for a key. The second return value reports
	// whether the key was found; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under a key with a TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the options that change a computed layout and
// therefore participate in its cache key.
type LayoutKeyOpts struct {
	ViewportWidth float64 `json:"viewport_width"`
	Density       string  `json:"density"`
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// MembersKey keys a fetched member list by its source description.
	MembersKey(source string) string

	// LayoutKey keys a computed layout by the members hash and options.
	LayoutKey(membersHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a keyer with the standard scheme.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// MembersKey generates a key for member-list caching.
func (k *DefaultKeyer) MembersKey(source string) string {
	return hashKey("members", source)
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(membersHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", membersHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix so multiple sites (or a staging
// and a production tree) can share one backend without key collisions.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// MembersKey generates a prefixed key for member-list caching.
func (k *ScopedKeyer) MembersKey(source string) string {
	return k.prefix + k.inner.MembersKey(source)
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(membersHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(membersHash, opts)
}
