// Package layout turns a circuit's edge list into the positioned, styled
// element list consumed by the rendering widget.
//
// The output is a flat list mixing node and edge elements, matching the
// element schema of the flow-graph widget rendering the diagram: nodes carry
// an id, a label, a type, a position, and a per-type style; edges carry an
// id, source/target references, and a fixed animated dashed style.
//
// Layout is deterministic: the same edge list and options always produce the
// same element list, byte for byte.
package layout

// NodeData holds the display payload of a node element.
type NodeData struct {
	Label string `json:"label"`
}

// Position is a 2-D coordinate in display units.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Style carries the visual attributes of an element. Node and edge elements
// use disjoint subsets of the fields; unset fields are omitted from the JSON
// encoding. Field names follow the CSS-in-JS conventions of the rendering
// widget.
type Style struct {
	Background      string `json:"background,omitempty"`
	Width           int    `json:"width,omitempty"`
	Display         string `json:"display,omitempty"`
	JustifyContent  string `json:"justifyContent,omitempty"`
	AlignItems      string `json:"alignItems,omitempty"`
	Stroke          string `json:"stroke,omitempty"`
	StrokeWidth     int    `json:"strokeWidth,omitempty"`
	StrokeDasharray string `json:"strokeDasharray,omitempty"`
}

// Element is one renderable unit: either a node (Data, Position set) or an
// edge (Source, Target set). A single list carries both, nodes first.
type Element struct {
	ID       string    `json:"id"`
	Type     string    `json:"type,omitempty"`
	Data     *NodeData `json:"data,omitempty"`
	Position *Position `json:"position,omitempty"`
	Source   string    `json:"source,omitempty"`
	Target   string    `json:"target,omitempty"`
	Animated bool      `json:"animated,omitempty"`
	Style    *Style    `json:"style,omitempty"`
}

// IsEdge reports whether the element is an edge element.
func (e Element) IsEdge() bool { return e.Source != "" }

// IsNode reports whether the element is a node element.
func (e Element) IsNode() bool { return !e.IsEdge() }

// NodeStyles is the fixed style table keyed by element type. The values are
// a visual contract with the rendering widget and must not be mutated; take
// a copy before modifying. Types absent from the table render unstyled.
var NodeStyles = map[string]Style{
	"Input":     nodeStyle("#f472b6", 50),
	"Embedding": nodeStyle("#4ea8de", 50),
	"Attention": nodeStyle("#ff9a3c", 50),
	"MLP":       nodeStyle("#6ede87", 50),
	"Output":    nodeStyle("#ffcc50", 80),
}

func nodeStyle(background string, width int) Style {
	return Style{
		Background:     background,
		Width:          width,
		Display:        "flex",
		JustifyContent: "center",
		AlignItems:     "center",
	}
}

// styleFor returns a private copy of the style for a node type, or an empty
// style for unknown types.
func styleFor(kind string) *Style {
	s, ok := NodeStyles[kind]
	if !ok {
		return &Style{}
	}
	return &s
}

// edgeStyle returns the fixed edge stroke style: gray, width 2, dashed.
func edgeStyle() *Style {
	return &Style{Stroke: "#888", StrokeWidth: 2, StrokeDasharray: "5, 5"}
}
