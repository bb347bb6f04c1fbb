package cli

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleGV = `digraph {
  rankdir=BT;
  "<a0.1>" -> "<m0-0>";
  "<m0-0>" -> "<resid_post>";
}`

func writeSampleGraph(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.gv")
	if err := os.WriteFile(path, []byte(sampleGV), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunParse(t *testing.T) {
	c := New(io.Discard, LogInfo)
	input := writeSampleGraph(t)

	if err := c.runParse(input, "", false); err != nil {
		t.Fatalf("runParse() error = %v", err)
	}

	out := strings.TrimSuffix(input, ".gv") + ".edges.json"
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	var body struct {
		Edges []struct {
			Source string `json:"source"`
			Target string `json:"target"`
		} `json:"edges"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(body.Edges) != 2 || body.Edges[0].Source != "a0.1" {
		t.Errorf("edges = %+v", body.Edges)
	}
}

func TestRunParseExplicitOutput(t *testing.T) {
	c := New(io.Discard, LogInfo)
	input := writeSampleGraph(t)
	out := filepath.Join(t.TempDir(), "edges.json")

	if err := c.runParse(input, out, false); err != nil {
		t.Fatalf("runParse() error = %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestRunParseMissingFile(t *testing.T) {
	c := New(io.Discard, LogInfo)
	if err := c.runParse(filepath.Join(t.TempDir(), "nope.gv"), "", false); err == nil {
		t.Error("runParse() should fail for a missing input file")
	}
}

func TestLoadEdgesRoundTrip(t *testing.T) {
	c := New(io.Discard, LogInfo)
	input := writeSampleGraph(t)
	out := filepath.Join(t.TempDir(), "edges.json")

	if err := c.runParse(input, out, false); err != nil {
		t.Fatalf("runParse() error = %v", err)
	}

	// loadEdges accepts both the raw graph and the exported JSON.
	fromGV, err := loadEdges(input)
	if err != nil {
		t.Fatalf("loadEdges(gv) error = %v", err)
	}
	fromJSON, err := loadEdges(out)
	if err != nil {
		t.Fatalf("loadEdges(json) error = %v", err)
	}
	if len(fromGV) != len(fromJSON) {
		t.Errorf("edge counts differ: %d vs %d", len(fromGV), len(fromJSON))
	}
}
