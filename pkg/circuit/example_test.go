package circuit_test

import (
	"fmt"

	"github.com/HaomingX/KnowledgeCircuitVis/pkg/circuit"
)

func ExampleParseText() {
	text := `digraph {
	"<a0.1>" -> "<m0-0>";
	"<m0-0>" -> "<resid_post>";
}`
	edges := circuit.ParseText(text)
	for _, e := range edges {
		fmt.Printf("%s -> %s\n", e.Source, e.Target)
	}
	// Output:
	// a0.1 -> m0-0
	// m0-0 -> resid_post
}

func ExampleLayer() {
	fmt.Println(circuit.Layer("m3-5"))
	fmt.Println(circuit.Layer("a2.7"))
	fmt.Println(circuit.Layer("resid_post"))
	// Output:
	// 3
	// 2
	// 100
}

func ExampleClassify() {
	for _, id := range []string{"m0-0", "a2.7", "resid_post", "input"} {
		fmt.Printf("%s: %s\n", id, circuit.Classify(id))
	}
	// Output:
	// m0-0: MLP
	// a2.7: Attention
	// resid_post: Output
	// input: default
}
