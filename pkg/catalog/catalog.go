// Package catalog discovers circuit cases on disk.
//
// The on-disk layout mirrors the output of circuit-discovery runs: a data
// root contains one directory per model, and each immediate subdirectory of
// a model directory is a selectable case iff it contains a file named
// exactly "graph.gv".
//
//	data/
//	  gpt2-medium/
//	    capital_city/graph.gv
//	    landmark_country/graph.gv
//
// Model and case names arrive from untrusted sources (URL segments, flags)
// and are validated before touching the filesystem.
package catalog

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/HaomingX/KnowledgeCircuitVis/pkg/circuit"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/errors"
)

// GraphFileName is the file a case directory must contain to be listed.
const GraphFileName = "graph.gv"

// Case is one selectable circuit: a named subdirectory holding a graph file.
type Case struct {
	Name string `json:"name"`
	Path string `json:"path"` // absolute or root-relative path to the graph file
}

// Catalog lists models and cases under a data root.
type Catalog struct {
	root string
}

// New creates a catalog over the given data root. The root is not required
// to exist yet; listing operations report missing directories.
func New(root string) *Catalog {
	return &Catalog{root: root}
}

// Root returns the data root the catalog reads from.
func (c *Catalog) Root() string { return c.root }

// Models returns the model directory names under the root, sorted.
// Hidden directories are skipped.
func (c *Catalog) Models() ([]string, error) {
	entries, err := os.ReadDir(c.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeNotFound, "data directory %s does not exist", c.root)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list data directory")
	}

	models := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			models = append(models, e.Name())
		}
	}
	// os.ReadDir returns entries sorted by name.
	return models, nil
}

// Cases returns the cases of a model, sorted by name. A subdirectory counts
// as a case only when it contains the graph file.
func (c *Catalog) Cases(model string) ([]Case, error) {
	if err := errors.ValidateName(model); err != nil {
		return nil, err
	}

	dir := filepath.Join(c.root, model)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeModelNotFound, "model %q not found", model)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list model %q", model)
	}

	cases := make([]Case, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		path := filepath.Join(dir, e.Name(), GraphFileName)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			cases = append(cases, Case{Name: e.Name(), Path: path})
		}
	}
	return cases, nil
}

// CasePath resolves the graph file path for a model/case pair, verifying the
// file exists.
func (c *Catalog) CasePath(model, caseName string) (string, error) {
	if err := errors.ValidateName(model); err != nil {
		return "", err
	}
	if err := errors.ValidateName(caseName); err != nil {
		return "", err
	}

	path := filepath.Join(c.root, model, caseName, GraphFileName)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.New(errors.ErrCodeCaseNotFound, "no graph file found for %s/%s", model, caseName)
		}
		return "", errors.Wrap(errors.ErrCodeInternal, err, "stat %s", path)
	}
	if !info.Mode().IsRegular() {
		return "", errors.New(errors.ErrCodeCaseNotFound, "no graph file found for %s/%s", model, caseName)
	}
	return path, nil
}

// ReadCase returns the raw graph file content for a model/case pair.
func (c *Catalog) ReadCase(model, caseName string) ([]byte, error) {
	path, err := c.CasePath(model, caseName)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read graph file for %s/%s", model, caseName)
	}
	return data, nil
}

// Open reads and parses the circuit for a model/case pair.
func (c *Catalog) Open(model, caseName string) ([]circuit.Edge, error) {
	data, err := c.ReadCase(model, caseName)
	if err != nil {
		return nil, err
	}
	return circuit.ParseText(string(data)), nil
}
