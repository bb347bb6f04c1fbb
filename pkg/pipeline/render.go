package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/HaomingX/KnowledgeCircuitVis/pkg/cache"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/circuit"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/observability"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/render/dot"
)

// RenderArtifactWithCacheInfo renders a static artifact with caching and
// returns cache hit info. Supported formats are dot, svg, and png.
func (r *Runner) RenderArtifactWithCacheInfo(ctx context.Context, edges []circuit.Edge, opts Options) ([]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	if opts.Format == "" || opts.Format == FormatJSON {
		return nil, false, fmt.Errorf("format %q is not a render artifact", opts.Format)
	}

	cacheKey := r.Keyer.ArtifactKey(circuitHash(edges), cache.ArtifactKeyOpts{
		Format: opts.Format,
	})

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	observability.Pipeline().OnRenderStart(ctx, opts.Format)
	start := time.Now()
	data, err := renderArtifact(ctx, edges, opts.Format)
	observability.Pipeline().OnRenderComplete(ctx, opts.Format, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if err := r.Cache.Set(ctx, cacheKey, data, r.cacheTTL(TTLArtifact)); err == nil {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return data, false, nil
}

// RenderArtifact is a convenience wrapper that discards the cache hit info.
func (r *Runner) RenderArtifact(ctx context.Context, edges []circuit.Edge, opts Options) ([]byte, error) {
	data, _, err := r.RenderArtifactWithCacheInfo(ctx, edges, opts)
	return data, err
}

func renderArtifact(ctx context.Context, edges []circuit.Edge, format string) ([]byte, error) {
	d := dot.ToDOT(edges)
	switch format {
	case FormatDOT:
		return []byte(d), nil
	case FormatSVG:
		return dot.RenderSVG(ctx, d)
	case FormatPNG:
		return dot.RenderPNG(ctx, d)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}
