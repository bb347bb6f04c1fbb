// Package dot serializes circuits to Graphviz DOT and rasterizes them.
//
// Node identifiers are written in the angle-bracket quoted form the circuit
// discovery tooling emits ("<a0.1>"), so exported files parse back through
// the .gv edge parser unchanged. Rasterization goes through the embedded
// Graphviz (WASM) engine; no external binary is required.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/HaomingX/KnowledgeCircuitVis/pkg/circuit"
)

// fillColors maps node kinds to the same palette the interactive viewer uses.
var fillColors = map[circuit.NodeKind]string{
	circuit.KindMLP:       "#6ede87",
	circuit.KindAttention: "#ff9a3c",
	circuit.KindOutput:    "#ffcc50",
}

// ToDOT converts an edge list to Graphviz DOT. Nodes are colored by kind and
// identifiers keep the "<...>" wrapping, so the output round-trips through
// [circuit.ParseText].
func ToDOT(edges []circuit.Edge) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, id := range circuit.Nodes(edges) {
		attrs := fmt.Sprintf("label=%q", id)
		if color, ok := fillColors[circuit.Classify(id)]; ok {
			attrs += fmt.Sprintf(", fillcolor=%q", color)
		}
		fmt.Fprintf(&buf, "  \"<%s>\" [%s];\n", id, attrs)
	}

	buf.WriteString("\n")
	for _, e := range edges {
		fmt.Fprintf(&buf, "  \"<%s>\" -> \"<%s>\" [style=dashed, color=\"#888888\"];\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// The SVG tag is normalized so the result embeds cleanly in HTML.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	data, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(data), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
