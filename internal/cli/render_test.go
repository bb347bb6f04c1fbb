package cli

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/HaomingX/KnowledgeCircuitVis/pkg/pipeline"
)

func TestValidateRenderFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"dot", false},
		{"json", true},
		{"pdf", true},
		{"", true},
	}

	for _, tt := range tests {
		err := validateRenderFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateRenderFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestRunRenderDOT(t *testing.T) {
	c := New(io.Discard, LogInfo)
	input := writeSampleGraph(t)

	opts := pipeline.Options{Format: pipeline.FormatDOT}
	if err := c.runRender(context.Background(), input, opts, "", true); err != nil {
		t.Fatalf("runRender() error = %v", err)
	}

	out := strings.TrimSuffix(input, ".gv") + ".dot"
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), `"<a0.1>" -> "<m0-0>"`) {
		t.Errorf("dot output missing edge:\n%s", data)
	}
}

func TestRunLayoutWritesElements(t *testing.T) {
	c := New(io.Discard, LogInfo)
	input := writeSampleGraph(t)

	if err := c.runLayout(context.Background(), input, pipeline.Options{}, "", true, false); err != nil {
		t.Fatalf("runLayout() error = %v", err)
	}

	out := strings.TrimSuffix(input, ".gv") + ".elements.json"
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	// 3 nodes + 2 edges
	if got := strings.Count(string(data), `"id"`); got != 5 {
		t.Errorf("element count = %d, want 5", got)
	}
}
