// Package pipeline provides the core visualization pipeline for the circuit
// viewer.
//
// This package implements the complete parse → layout → render pipeline that
// is shared by the CLI and the HTTP server. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Extract the edge list from graph text (a case file or upload)
//  2. Layout: Compute positioned elements for the rendering widget
//  3. Render: Generate a static artifact (dot, svg, png) when requested
//
// Each stage can be run independently or as part of the complete pipeline.
// Layout and render results are cached under content-hash keys; parsing is a
// single regexp scan and is never cached.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	src := pipeline.Source{Kind: "case", Name: "gpt2-medium/capital_city", Text: gvText}
//	opts := pipeline.Options{Width: 1400, Height: 800}
//	result, err := runner.Execute(ctx, src, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
package pipeline

import (
	"fmt"
	"time"

	"github.com/HaomingX/KnowledgeCircuitVis/pkg/circuit"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/layout"
)

// Supported artifact formats.
const (
	FormatJSON = "json" // element list, no render stage
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// Cache TTLs per stage. Keys embed content hashes, so entries never go
// stale; the TTL only bounds disk usage.
const (
	TTLElements = 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Source identifies the graph text fed into the pipeline.
type Source struct {
	// Kind labels where the text came from: "case", "upload", or "file".
	Kind string

	// Name is the display name (model/case pair, upload file name, path).
	Name string

	// Text is the raw .gv content.
	Text string
}

// Options configures the layout and render stages.
type Options struct {
	// Width and Height of the drawing area. Zero means the layout defaults.
	Width  float64
	Height float64

	// Format selects the render artifact. Empty or "json" skips the render
	// stage.
	Format string
}

// ValidateAndSetDefaults normalizes options in place.
func (o *Options) ValidateAndSetDefaults() error {
	lo := o.layoutOptions()
	if err := lo.ValidateAndSetDefaults(); err != nil {
		return err
	}
	o.Width, o.Height = lo.Width, lo.Height

	switch o.Format {
	case "", FormatJSON, FormatDOT, FormatSVG, FormatPNG:
	default:
		return fmt.Errorf("invalid format: %s (must be 'json', 'dot', 'svg', or 'png')", o.Format)
	}
	return nil
}

func (o Options) layoutOptions() layout.Options {
	return layout.Options{Width: o.Width, Height: o.Height}
}

// Stats summarizes one pipeline execution.
type Stats struct {
	Nodes  int `json:"nodes"`
	Edges  int `json:"edges"`
	Layers int `json:"layers"` // occupied non-sentinel layers

	ParseTime  time.Duration `json:"-"`
	LayoutTime time.Duration `json:"-"`
	RenderTime time.Duration `json:"-"`
}

// CacheInfo reports which stages were served from cache.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool
}

// Result holds the outputs of a pipeline execution.
type Result struct {
	Edges    []circuit.Edge
	Elements []layout.Element

	// Artifact is the rendered output for Options.Format, nil when the
	// render stage was skipped.
	Artifact []byte

	// CircuitHash is the content hash of the parsed edge list, used in
	// cache keys and API responses.
	CircuitHash string

	Stats     Stats
	CacheInfo CacheInfo
}

// statsFor derives graph statistics from an edge list.
func statsFor(edges []circuit.Edge) Stats {
	nodes := circuit.Nodes(edges)
	seen := make(map[int]struct{})
	for _, id := range nodes {
		if l := circuit.Layer(id); l != circuit.SentinelLayer {
			seen[l] = struct{}{}
		}
	}
	return Stats{Nodes: len(nodes), Edges: len(edges), Layers: len(seen)}
}
