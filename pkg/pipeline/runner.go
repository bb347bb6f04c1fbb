package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/HaomingX/KnowledgeCircuitVis/pkg/cache"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/circuit"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the per-stage cache TTLs when positive. The server sets
	// this from its cache.ttl config; zero keeps the package defaults.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → layout → render pipeline with caching.
// The render stage only runs when opts.Format names a static artifact.
func (r *Runner) Execute(ctx context.Context, src Source, opts Options) (*Result, error) {
	parseStart := time.Now()
	edges, err := r.ParseSource(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	parseTime := time.Since(parseStart)

	r.Logger.Info("parsed circuit",
		"source", src.Kind,
		"nodes", len(circuit.Nodes(edges)),
		"edges", len(edges),
		"duration", parseTime)

	result, err := r.ExecuteEdges(ctx, edges, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.ParseTime = parseTime
	return result, nil
}

// ExecuteEdges runs the layout and render stages on an already-parsed edge
// list. Uploads retain only their edge list, so their follow-up requests
// enter here.
func (r *Runner) ExecuteEdges(ctx context.Context, edges []circuit.Edge, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Edges:       edges,
		Stats:       statsFor(edges),
		CircuitHash: circuitHash(edges),
	}

	// Layout stage
	layoutStart := time.Now()
	elements, layoutHit, err := r.BuildElementsWithCacheInfo(ctx, edges, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Elements = elements
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"elements", len(elements),
		"duration", result.Stats.LayoutTime)

	// Render stage, only when a static artifact was requested
	if opts.Format != "" && opts.Format != FormatJSON {
		renderStart := time.Now()
		artifact, renderHit, err := r.RenderArtifactWithCacheInfo(ctx, edges, opts)
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		result.Artifact = artifact
		result.Stats.RenderTime = time.Since(renderStart)
		result.CacheInfo.RenderHit = renderHit

		r.Logger.Info("rendered artifact",
			"format", opts.Format,
			"bytes", len(artifact),
			"duration", result.Stats.RenderTime)
	}

	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// cacheTTL returns the TTL for cache writes: the configured override when
// set, otherwise the stage default.
func (r *Runner) cacheTTL(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// circuitHash computes the content hash of an edge list for cache keys.
// The JSON encoding of the ordered edge list is the canonical form.
func circuitHash(edges []circuit.Edge) string {
	// Marshaling a []Edge cannot fail.
	data, _ := json.Marshal(edges)
	return cache.Hash(data)
}
