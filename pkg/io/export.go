package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/HaomingX/KnowledgeCircuitVis/pkg/circuit"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/layout"
)

type edgeList struct {
	Edges []circuit.Edge `json:"edges"`
}

// WriteEdges encodes an edge list as JSON and writes it to w.
// The output can be re-imported with [ReadEdges] for round-trip processing.
func WriteEdges(edges []circuit.Edge, w io.Writer) error {
	out := edgeList{Edges: edges}
	if out.Edges == nil {
		out.Edges = []circuit.Edge{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportEdges writes an edge list to a JSON file at path.
// This is a convenience wrapper around [WriteEdges] for file-based output.
func ExportEdges(edges []circuit.Edge, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteEdges(edges, f)
}

// WriteElements encodes an element list as JSON and writes it to w. The
// encoding matches the schema of the rendering widget exactly, so the output
// can be fed to it verbatim.
func WriteElements(elements []layout.Element, w io.Writer) error {
	if elements == nil {
		elements = []layout.Element{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(elements); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportElements writes an element list to a JSON file at path.
func ExportElements(elements []layout.Element, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteElements(elements, f)
}
