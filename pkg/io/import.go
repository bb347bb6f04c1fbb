package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/HaomingX/KnowledgeCircuitVis/pkg/circuit"
)

// ReadEdges decodes a JSON edge list from r.
//
// The input must be a JSON object with an "edges" array; each edge must have
// "source" and "target" fields. Edge order is preserved and duplicates are
// kept, matching the semantics of the .gv parser.
//
// ReadEdges returns an error if the JSON is malformed or an edge is missing
// an endpoint. It does not close r.
func ReadEdges(r io.Reader) ([]circuit.Edge, error) {
	var data edgeList
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	for i, e := range data.Edges {
		if e.Source == "" || e.Target == "" {
			return nil, fmt.Errorf("edge %d: missing source or target", i)
		}
	}
	return data.Edges, nil
}

// ImportEdges reads a JSON file at path and returns the decoded edge list.
// The error wraps the underlying cause with the file path for context.
func ImportEdges(path string) ([]circuit.Edge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadEdges(f)
}
