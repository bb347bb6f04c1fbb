// Package circuit models knowledge circuits extracted from transformer
// language models: directed graphs whose node identifiers encode the model
// component they refer to.
//
// # Naming conventions
//
// Node identifiers follow the conventions emitted by circuit-discovery
// tooling:
//
//   - "mL-..." is the MLP block at layer L (digits after "m", before the
//     first "-"), e.g. "m3-5" sits at layer 3.
//   - "aL.H" is attention head H at layer L (digits after "a" before the
//     first ".", and after the last "."), e.g. "a2.7" is head 7 at layer 2.
//   - anything else (typically "resid_post") is an output node outside the
//     layer stack and is reported as [SentinelLayer] with head -1.
//
// Classification is pure string inspection. Identifiers that almost match a
// convention but carry unparseable digits (e.g. "m-x") fall back to the
// sentinel instead of failing, extending the same leniency applied to
// malformed input lines.
package circuit

import (
	"strconv"
	"strings"
)

// SentinelLayer is assigned to nodes whose identifiers match neither the
// MLP nor the attention convention. Sentinel nodes sit outside the normal
// layer stack and are pinned to a fixed position by the layout.
const SentinelLayer = 100

// Edge is a directed connection between two nodes, identified by name.
// Edges carry no weight or label.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// NodeKind classifies a node by its identifier prefix. The kind selects the
// visual style of the rendered node.
type NodeKind int

const (
	// KindDefault is any node matching no known convention.
	KindDefault NodeKind = iota
	// KindMLP is an MLP block node ("mL-...").
	KindMLP
	// KindAttention is an attention head node ("aL.H").
	KindAttention
	// KindOutput is the residual-stream output node ("resid_post").
	KindOutput
)

// String returns the kind's element type name as consumed by the rendering
// widget.
func (k NodeKind) String() string {
	switch k {
	case KindMLP:
		return "MLP"
	case KindAttention:
		return "Attention"
	case KindOutput:
		return "Output"
	default:
		return "default"
	}
}

// Layer derives the layer index from a node identifier.
//
// MLP nodes report the digits between "m" and the first "-"; attention nodes
// the digits between "a" and the first ".". Everything else, including
// identifiers whose digit portion does not parse, reports [SentinelLayer].
func Layer(id string) int {
	switch {
	case strings.HasPrefix(id, "m"):
		digits, _, _ := strings.Cut(id[1:], "-")
		if n, err := strconv.Atoi(digits); err == nil {
			return n
		}
	case strings.HasPrefix(id, "a"):
		digits, _, _ := strings.Cut(id[1:], ".")
		if n, err := strconv.Atoi(digits); err == nil {
			return n
		}
	}
	return SentinelLayer
}

// Head derives the attention head index from a node identifier: the digits
// after the last "." of an "a"-prefixed identifier. Every other identifier,
// including attention identifiers without a parseable head, reports -1.
func Head(id string) int {
	if !strings.HasPrefix(id, "a") {
		return -1
	}
	idx := strings.LastIndex(id, ".")
	if idx < 0 {
		return -1
	}
	if n, err := strconv.Atoi(id[idx+1:]); err == nil {
		return n
	}
	return -1
}

// Classify maps a node identifier to its [NodeKind]. The dispatch is purely
// prefix-based: "m" means MLP, "a" means Attention, the exact identifier
// "resid_post" is the output node, and anything else is default.
func Classify(id string) NodeKind {
	switch {
	case strings.HasPrefix(id, "m"):
		return KindMLP
	case strings.HasPrefix(id, "a"):
		return KindAttention
	case id == "resid_post":
		return KindOutput
	default:
		return KindDefault
	}
}

// Nodes returns the distinct node identifiers referenced by edges, in first
// appearance order (source before target within each edge).
func Nodes(edges []Edge) []string {
	seen := make(map[string]struct{}, len(edges)*2)
	ids := make([]string, 0, len(edges)*2)
	for _, e := range edges {
		if _, ok := seen[e.Source]; !ok {
			seen[e.Source] = struct{}{}
			ids = append(ids, e.Source)
		}
		if _, ok := seen[e.Target]; !ok {
			seen[e.Target] = struct{}{}
			ids = append(ids, e.Target)
		}
	}
	return ids
}
