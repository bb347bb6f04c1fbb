package pipeline

import (
	"context"
	"time"

	"github.com/HaomingX/KnowledgeCircuitVis/pkg/circuit"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/observability"
)

// ParseSource extracts the edge list from a source's graph text.
//
// Parsing is a pure line scan and never fails on content: malformed lines are
// skipped and empty input yields an empty edge list. The method exists on the
// Runner so the stage emits observability events like the others; there is no
// parse cache.
func (r *Runner) ParseSource(ctx context.Context, src Source) ([]circuit.Edge, error) {
	observability.Pipeline().OnParseStart(ctx, src.Kind)
	start := time.Now()

	edges := circuit.ParseText(src.Text)

	observability.Pipeline().OnParseComplete(ctx, src.Kind, len(edges), time.Since(start), nil)
	return edges, nil
}
