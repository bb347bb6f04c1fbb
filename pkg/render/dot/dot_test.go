package dot

import (
	"strings"
	"testing"

	"github.com/HaomingX/KnowledgeCircuitVis/pkg/circuit"
)

func TestToDOTRoundTripsThroughParser(t *testing.T) {
	edges := []circuit.Edge{
		{Source: "a0.1", Target: "m0-0"},
		{Source: "m0-0", Target: "resid_post"},
		{Source: "m0-0", Target: "resid_post"}, // duplicate preserved
	}

	out := ToDOT(edges)
	got := circuit.ParseText(out)

	if len(got) != len(edges) {
		t.Fatalf("re-parsed %d edges, want %d", len(got), len(edges))
	}
	for i := range edges {
		if got[i] != edges[i] {
			t.Errorf("edge %d = %+v, want %+v", i, got[i], edges[i])
		}
	}
}

func TestToDOTColorsByKind(t *testing.T) {
	out := ToDOT([]circuit.Edge{
		{Source: "a0.1", Target: "m0-0"},
		{Source: "m0-0", Target: "resid_post"},
	})

	tests := []struct {
		id    string
		color string
	}{
		{"a0.1", "#ff9a3c"},
		{"m0-0", "#6ede87"},
		{"resid_post", "#ffcc50"},
	}
	for _, tt := range tests {
		line := `"<` + tt.id + `>" [label="` + tt.id + `", fillcolor="` + tt.color + `"];`
		if !strings.Contains(out, line) {
			t.Errorf("DOT output missing %q\n%s", line, out)
		}
	}
}

func TestToDOTEmpty(t *testing.T) {
	out := ToDOT(nil)
	if !strings.HasPrefix(out, "digraph G {") || !strings.HasSuffix(out, "}\n") {
		t.Errorf("empty edge list should still produce a valid digraph, got %s", out)
	}
	if got := circuit.ParseText(out); len(got) != 0 {
		t.Errorf("empty DOT re-parsed to %d edges, want 0", len(got))
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?>
<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg">
<g></g>
</svg>`)

	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 116.00" width="62" height="116">`
	if !strings.Contains(out, want) {
		t.Errorf("normalizeViewBox() = %s, want tag %s", out, want)
	}
}

func TestNormalizeViewBoxNoMatch(t *testing.T) {
	in := []byte("<svg></svg>")
	if got := normalizeViewBox(in); string(got) != string(in) {
		t.Errorf("input without a viewBox should pass through unchanged")
	}
}
