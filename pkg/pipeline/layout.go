package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/HaomingX/KnowledgeCircuitVis/pkg/cache"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/circuit"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/layout"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/observability"
)

// BuildElementsWithCacheInfo computes the element list with caching and
// returns cache hit info.
func (r *Runner) BuildElementsWithCacheInfo(ctx context.Context, edges []circuit.Edge, opts Options) ([]layout.Element, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.LayoutKey(circuitHash(edges), cache.LayoutKeyOpts{
		Width:  opts.Width,
		Height: opts.Height,
	})

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		var cached []layout.Element
		if err := json.Unmarshal(data, &cached); err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			return cached, true, nil
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	observability.Pipeline().OnLayoutStart(ctx, len(circuit.Nodes(edges)))
	start := time.Now()
	elements, err := layout.Build(edges, opts.layoutOptions())
	observability.Pipeline().OnLayoutComplete(ctx, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := json.Marshal(elements); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, r.cacheTTL(TTLElements)); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return elements, false, nil
}

// BuildElements is a convenience wrapper that discards the cache hit info.
func (r *Runner) BuildElements(ctx context.Context, edges []circuit.Edge, opts Options) ([]layout.Element, error) {
	elements, _, err := r.BuildElementsWithCacheInfo(ctx, edges, opts)
	return elements, err
}
