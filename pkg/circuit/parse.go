package circuit

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// edgeLine matches one edge declaration: a double-quoted angle-bracket
// wrapped source, a literal arrow, and a matching target. Everything else
// on the line is ignored.
var edgeLine = regexp.MustCompile(`"<(.+?)>" -> "<(.+?)>"`)

// ParseText extracts the ordered edge list from graph text.
//
// The input is scanned line by line; a line contributes exactly one edge iff
// it contains the pattern `"<A>" -> "<B>"`, with A and B captured as source
// and target. Non-matching lines (graph attributes, comments, blanks) are
// silently skipped. Edges are returned in input order, duplicates included.
// Empty or entirely non-matching input yields an empty slice, never an
// error.
func ParseText(text string) []Edge {
	var edges []Edge
	for _, line := range strings.Split(text, "\n") {
		if m := edgeLine.FindStringSubmatch(line); m != nil {
			edges = append(edges, Edge{Source: m[1], Target: m[2]})
		}
	}
	return edges
}

// Parse reads graph text from r and extracts its edge list. The only error
// condition is a failed read; malformed content is not an error.
func Parse(r io.Reader) ([]Edge, error) {
	var edges []Edge
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if m := edgeLine.FindStringSubmatch(scanner.Text()); m != nil {
			edges = append(edges, Edge{Source: m[1], Target: m[2]})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan graph text: %w", err)
	}
	return edges, nil
}

// ParseFile reads and parses the graph file at path.
func ParseFile(path string) ([]Edge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read graph file: %w", err)
	}
	return ParseText(string(data)), nil
}
