// Package cache provides content-addressed caching for layout and render
// results.
//
// Parsing a circuit is cheap, but rasterizing one through graphviz is not,
// and the server recomputes element lists for every viewer request. Both
// results are pure functions of the circuit content and the options, so they
// cache under content-hash keys with no invalidation concerns beyond TTL.
//
// Three backends implement [Cache]:
//   - [FileCache]: directory-backed, for the CLI and single-instance servers
//   - [RedisCache]: for multi-instance server deployments
//   - [NullCache]: disables caching
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by all backends.
//
// Get returns (data, true, nil) on a hit, (nil, false, nil) on a miss, and a
// non-nil error only for backend failures. A TTL of 0 on Set stores the
// entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// LayoutKeyOpts carries the layout options that affect element positions.
type LayoutKeyOpts struct {
	Width  float64
	Height float64
}

// ArtifactKeyOpts carries the render options that affect artifact bytes.
type ArtifactKeyOpts struct {
	Format string
}

// Keyer builds cache keys for the pipeline stages. Keys embed a hash of the
// circuit content, so a changed graph file never serves stale results.
type Keyer interface {
	// LayoutKey generates a key for a computed element list.
	LayoutKey(circuitHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact (dot, svg, png).
	ArtifactKey(circuitHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates sha256-hashed keys with stage prefixes.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for a computed element list.
func (k *DefaultKeyer) LayoutKey(circuitHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", circuitHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(circuitHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", circuitHash, opts)
}
