package layout

import (
	"fmt"
	"sort"
	"strings"

	"github.com/HaomingX/KnowledgeCircuitVis/pkg/circuit"
)

// Default drawing area, in display units. These match the viewer page the
// elements are rendered into.
const (
	DefaultWidth  = 1400.0
	DefaultHeight = 800.0
)

// Options configures the drawing area the layout targets.
type Options struct {
	// Width and Height of the drawing area in display units.
	// Zero means the default.
	Width  float64
	Height float64
}

// ValidateAndSetDefaults fills in zero dimensions and rejects negative ones.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Width < 0 {
		return fmt.Errorf("width must be positive, got %v", o.Width)
	}
	if o.Height < 0 {
		return fmt.Errorf("height must be positive, got %v", o.Height)
	}
	return nil
}

// Build computes the element list for an edge list.
//
// Nodes are stacked into horizontal layer bands, lowest layer at the bottom,
// one band per occupied layer. Within a band, MLP nodes sit in a fixed left
// column and attention heads spread right to left across the band in
// descending head order. Sentinel nodes (layer 100) are pinned near the
// top-right corner, outside the band stack.
//
// The returned list contains one element per distinct node followed by one
// element per input edge, duplicates included. An empty edge list, or one
// whose nodes are all sentinels, yields an empty list; Build only fails on
// invalid options.
func Build(edges []circuit.Edge, opts Options) ([]Element, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	nodes := circuit.Nodes(edges)
	if len(nodes) == 0 {
		return []Element{}, nil
	}

	// Highest layer first; within a layer, highest head first. The final
	// identifier comparison makes ordering deterministic for ties.
	sorted := make([]string, len(nodes))
	copy(sorted, nodes)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		la, lb := circuit.Layer(a), circuit.Layer(b)
		if la != lb {
			return la > lb
		}
		ha, hb := circuit.Head(a), circuit.Head(b)
		if ha != hb {
			return ha > hb
		}
		return a > b
	})

	// Layer range over non-sentinel nodes only. Sentinels are drawn outside
	// the stack and must not stretch it.
	minLayer, maxLayer, found := 0, 0, false
	for _, id := range nodes {
		l := circuit.Layer(id)
		if l == circuit.SentinelLayer {
			continue
		}
		if !found {
			minLayer, maxLayer, found = l, l, true
			continue
		}
		minLayer = min(minLayer, l)
		maxLayer = max(maxLayer, l)
	}
	if !found {
		// Every node is a sentinel: nothing to stack.
		return []Element{}, nil
	}

	span := maxLayer - minLayer + 1
	layerCounts := make([]int, span)
	layerHeights := make([]int, span)
	for _, id := range sorted {
		if l := circuit.Layer(id); l != circuit.SentinelLayer {
			layerCounts[l-minLayer]++
			layerHeights[l-minLayer] = 1
		}
	}

	// Unoccupied layers between min and max collapse to zero height.
	totalLayers := 0
	for _, h := range layerHeights {
		totalLayers += h
	}
	unit := opts.Height / float64(totalLayers)

	// cumHeight[i] = occupied layers strictly below layer minLayer+i.
	cumHeight := make([]int, span+1)
	for i, h := range layerHeights {
		cumHeight[i+1] = cumHeight[i] + h
	}

	elements := make([]Element, 0, len(sorted)+len(edges))
	attnPlaced := make([]int, span)

	for _, id := range sorted {
		var x, y float64
		if l := circuit.Layer(id); l == circuit.SentinelLayer {
			x = opts.Width * 0.7
			y = 20
		} else {
			idx := l - minLayer
			if strings.HasPrefix(id, "m") {
				x = opts.Width * 0.05
			} else {
				attnPlaced[idx]++
				x = opts.Width*0.85 - float64(attnPlaced[idx])*(opts.Width*0.8)/float64(layerCounts[idx]+1)
			}
			y = (float64(totalLayers) - float64(cumHeight[idx]) - 0.5) * unit
		}

		kind := circuit.Classify(id).String()
		el := Element{
			ID:       id,
			Type:     kind,
			Data:     &NodeData{Label: id},
			Position: &Position{X: x, Y: y},
			Style:    styleFor(kind),
		}
		// Head-marker variants float a quarter band above their peers.
		if strings.Contains(id, "H") {
			el.Position.Y -= unit / 4
		}
		elements = append(elements, el)
	}

	for _, e := range edges {
		elements = append(elements, Element{
			ID:       e.Source + "-" + e.Target,
			Source:   e.Source,
			Target:   e.Target,
			Type:     "smoothstep",
			Animated: true,
			Style:    edgeStyle(),
		})
	}

	return elements, nil
}
