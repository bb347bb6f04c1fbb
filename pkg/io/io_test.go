package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HaomingX/KnowledgeCircuitVis/pkg/circuit"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/layout"
)

func TestWriteReadEdgesRoundTrip(t *testing.T) {
	edges := []circuit.Edge{
		{Source: "a0.1", Target: "m0-0"},
		{Source: "m0-0", Target: "resid_post"},
		{Source: "m0-0", Target: "resid_post"}, // duplicate kept
	}

	var buf bytes.Buffer
	if err := WriteEdges(edges, &buf); err != nil {
		t.Fatalf("WriteEdges() error = %v", err)
	}

	got, err := ReadEdges(&buf)
	if err != nil {
		t.Fatalf("ReadEdges() error = %v", err)
	}
	if len(got) != len(edges) {
		t.Fatalf("round trip returned %d edges, want %d", len(got), len(edges))
	}
	for i := range edges {
		if got[i] != edges[i] {
			t.Errorf("edge %d = %+v, want %+v", i, got[i], edges[i])
		}
	}
}

func TestWriteEdgesEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEdges(nil, &buf); err != nil {
		t.Fatalf("WriteEdges(nil) error = %v", err)
	}
	if !strings.Contains(buf.String(), `"edges": []`) {
		t.Errorf("empty edge list should encode as an empty array, got %s", buf.String())
	}
}

func TestReadEdgesRejectsMissingEndpoint(t *testing.T) {
	in := `{"edges": [{"source": "a0.1"}]}`
	if _, err := ReadEdges(strings.NewReader(in)); err == nil {
		t.Error("ReadEdges() should reject an edge without a target")
	}
}

func TestReadEdgesRejectsMalformedJSON(t *testing.T) {
	if _, err := ReadEdges(strings.NewReader("{")); err == nil {
		t.Error("ReadEdges() should fail on malformed JSON")
	}
}

func TestExportImportEdges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edges.json")
	edges := []circuit.Edge{{Source: "a2.7", Target: "m2-3"}}

	if err := ExportEdges(edges, path); err != nil {
		t.Fatalf("ExportEdges() error = %v", err)
	}
	got, err := ImportEdges(path)
	if err != nil {
		t.Fatalf("ImportEdges() error = %v", err)
	}
	if len(got) != 1 || got[0] != edges[0] {
		t.Errorf("ImportEdges() = %+v, want %+v", got, edges)
	}
}

func TestWriteElements(t *testing.T) {
	elements, err := layout.Build([]circuit.Edge{{Source: "a0.1", Target: "m0-0"}}, layout.Options{})
	if err != nil {
		t.Fatalf("layout.Build() error = %v", err)
	}

	var buf bytes.Buffer
	if err := WriteElements(elements, &buf); err != nil {
		t.Fatalf("WriteElements() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"id": "a0.1"`, `"id": "m0-0"`, `"id": "a0.1-m0-0"`, `"animated": true`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s", want)
		}
	}
}

func TestWriteElementsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteElements(nil, &buf); err != nil {
		t.Fatalf("WriteElements(nil) error = %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("empty element list should encode as [], got %s", got)
	}
}
