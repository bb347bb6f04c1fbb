package server

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/HaomingX/KnowledgeCircuitVis/pkg/circuit"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/errors"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/layout"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/pipeline"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/upload"
)

// maxUploadBytes caps uploaded graph files. Real circuit files are a few
// kilobytes.
const maxUploadBytes = 4 << 20

// elementsResponse is the body of the element endpoints.
type elementsResponse struct {
	Source   string           `json:"source"`
	Hash     string           `json:"hash"`
	Stats    pipeline.Stats   `json:"stats"`
	Elements []layout.Element `json:"elements"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	models, err := s.catalog.Models()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"models": models})
}

func (s *Server) handleCases(w http.ResponseWriter, r *http.Request) {
	cases, err := s.catalog.Cases(chi.URLParam(r, "model"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"cases": cases})
}

func (s *Server) handleCaseElements(w http.ResponseWriter, r *http.Request) {
	model := chi.URLParam(r, "model")
	caseName := chi.URLParam(r, "case")

	opts, err := s.pipelineOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	text, err := s.catalog.ReadCase(model, caseName)
	if err != nil {
		s.writeError(w, err)
		return
	}

	src := pipeline.Source{Kind: "case", Name: model + "/" + caseName, Text: string(text)}
	result, err := s.runner.Execute(r.Context(), src, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	setCacheHeader(w, result.CacheInfo.LayoutHit)
	s.writeJSON(w, http.StatusOK, elementsResponse{
		Source:   src.Name,
		Hash:     result.CircuitHash,
		Stats:    result.Stats,
		Elements: result.Elements,
	})
}

func (s *Server) handleCaseRender(w http.ResponseWriter, r *http.Request) {
	model := chi.URLParam(r, "model")
	caseName := chi.URLParam(r, "case")

	opts, err := s.pipelineOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts.Format = r.URL.Query().Get("format")
	if opts.Format == "" {
		opts.Format = pipeline.FormatSVG
	}
	switch opts.Format {
	case pipeline.FormatDOT, pipeline.FormatSVG, pipeline.FormatPNG:
	case pipeline.FormatJSON:
		s.writeError(w, errors.New(errors.ErrCodeInvalidFormat,
			"format 'json' has no artifact; use the elements endpoint"))
		return
	default:
		s.writeError(w, errors.New(errors.ErrCodeInvalidFormat,
			"invalid format %q (must be 'dot', 'svg', or 'png')", opts.Format))
		return
	}

	text, err := s.catalog.ReadCase(model, caseName)
	if err != nil {
		s.writeError(w, err)
		return
	}

	src := pipeline.Source{Kind: "case", Name: model + "/" + caseName, Text: string(text)}
	result, err := s.runner.Execute(r.Context(), src, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	setCacheHeader(w, result.CacheInfo.RenderHit)
	w.Header().Set("Content-Type", artifactContentType(opts.Format))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Artifact); err != nil {
		s.logger.Error("write artifact", "err", err)
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidUpload, err, "parse multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidUpload, err, "missing 'file' field"))
		return
	}
	defer file.Close()

	if err := upload.ValidateFilename(header.Filename); err != nil {
		s.writeError(w, err)
		return
	}

	text, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidUpload, err, "read upload"))
		return
	}

	// A file matching no edge lines is a valid, empty circuit.
	edges := circuit.ParseText(string(text))

	up, err := s.uploads.Put(r.Context(), header.Filename, edges)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.logger.Info("accepted upload", "id", up.ID, "name", up.Name, "edges", len(edges))
	s.writeJSON(w, http.StatusCreated, map[string]any{
		"id":         up.ID,
		"name":       up.Name,
		"edges":      len(up.Edges),
		"expires_at": up.ExpiresAt,
	})
}

func (s *Server) handleUploadElements(w http.ResponseWriter, r *http.Request) {
	opts, err := s.pipelineOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	up, err := s.uploads.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.runner.ExecuteEdges(r.Context(), up.Edges, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	setCacheHeader(w, result.CacheInfo.LayoutHit)
	s.writeJSON(w, http.StatusOK, elementsResponse{
		Source:   up.Name,
		Hash:     result.CircuitHash,
		Stats:    result.Stats,
		Elements: result.Elements,
	})
}

func (s *Server) handleUploadDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.uploads.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pipelineOptions builds layout options from width/height query parameters,
// falling back to the server defaults.
func (s *Server) pipelineOptions(r *http.Request) (pipeline.Options, error) {
	opts := pipeline.Options{Width: s.layoutWidth, Height: s.layoutHeight}

	q := r.URL.Query()
	if raw := q.Get("width"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			return opts, errors.New(errors.ErrCodeInvalidDimensions, "invalid width %q", raw)
		}
		opts.Width = v
	}
	if raw := q.Get("height"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			return opts, errors.New(errors.ErrCodeInvalidDimensions, "invalid height %q", raw)
		}
		opts.Height = v
	}
	return opts, nil
}

func setCacheHeader(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
}

func artifactContentType(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	default:
		return "text/vnd.graphviz; charset=utf-8"
	}
}
