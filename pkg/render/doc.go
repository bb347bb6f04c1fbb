// Package render provides static rendering for knowledge circuits.
//
// The interactive viewer consumes positioned elements from the layout
// package; this package covers the non-interactive path: turning a circuit
// edge list into Graphviz DOT source and rasterizing it.
//
// The [dot] subpackage generates DOT text with the same node color scheme
// the viewer uses and renders it to SVG or PNG via goccy/go-graphviz:
//
//	src := dot.ToDOT(edges)
//	svg, err := dot.RenderSVG(ctx, src)
//	png, err := dot.RenderPNG(ctx, src)
//
// [dot]: github.com/HaomingX/KnowledgeCircuitVis/pkg/render/dot
package render
