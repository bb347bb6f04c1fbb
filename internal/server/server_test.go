package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/HaomingX/KnowledgeCircuitVis/pkg/catalog"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/pipeline"
	"github.com/HaomingX/KnowledgeCircuitVis/pkg/upload"
)

const sampleGV = `digraph {
  rankdir=BT;
  "<a0.1>" -> "<m0-0>";
  "<m0-0>" -> "<resid_post>";
}`

func testServer(t *testing.T) *Server {
	t.Helper()

	dataDir := t.TempDir()
	caseDir := filepath.Join(dataDir, "gpt2-medium", "capital_city")
	if err := os.MkdirAll(caseDir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(caseDir, catalog.GraphFileName)
	if err := os.WriteFile(path, []byte(sampleGV), 0o644); err != nil {
		t.Fatal(err)
	}

	logger := log.New(io.Discard)
	return New(Options{
		Addr:    ":0",
		Catalog: catalog.New(dataDir),
		Uploads: upload.NewMemoryStore(0),
		Runner:  pipeline.NewRunner(nil, nil, logger),
		Logger:  logger,
	})
}

func doRequest(t *testing.T, s *Server, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	rec := doRequest(t, testServer(t), http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestModelsAndCases(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/models", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("models status = %d, body %s", rec.Code, rec.Body)
	}
	var models struct {
		Models []string `json:"models"`
	}
	decodeBody(t, rec, &models)
	if len(models.Models) != 1 || models.Models[0] != "gpt2-medium" {
		t.Errorf("models = %v", models.Models)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/models/gpt2-medium/cases", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("cases status = %d, body %s", rec.Code, rec.Body)
	}
	var cases struct {
		Cases []catalog.Case `json:"cases"`
	}
	decodeBody(t, rec, &cases)
	if len(cases.Cases) != 1 || cases.Cases[0].Name != "capital_city" {
		t.Errorf("cases = %+v", cases.Cases)
	}
}

func TestModelsCasesUnknownModel(t *testing.T) {
	rec := doRequest(t, testServer(t), http.MethodGet, "/api/models/nope/cases", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decodeBody(t, rec, &body)
	if body.Error.Code == "" {
		t.Error("error envelope missing code")
	}
}

func TestCaseElements(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/models/gpt2-medium/cases/capital_city/elements", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var body elementsResponse
	decodeBody(t, rec, &body)
	if body.Source != "gpt2-medium/capital_city" {
		t.Errorf("source = %q", body.Source)
	}
	if body.Hash == "" {
		t.Error("hash is empty")
	}
	if body.Stats.Nodes != 3 || body.Stats.Edges != 2 {
		t.Errorf("stats = %+v, want 3 nodes / 2 edges", body.Stats)
	}
	// 3 node elements + 2 edge elements.
	if len(body.Elements) != 5 {
		t.Errorf("elements = %d, want 5", len(body.Elements))
	}
	if got := rec.Header().Get("X-Cache"); got != "miss" {
		t.Errorf("X-Cache = %q, want miss", got)
	}
}

func TestCaseElementsRejectsBadDimensions(t *testing.T) {
	s := testServer(t)
	for _, target := range []string{
		"/api/models/gpt2-medium/cases/capital_city/elements?width=abc",
		"/api/models/gpt2-medium/cases/capital_city/elements?height=-5",
	} {
		rec := doRequest(t, s, http.MethodGet, target, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
		}
	}
}

func TestCaseElementsUnknownCase(t *testing.T) {
	rec := doRequest(t, testServer(t), http.MethodGet, "/api/models/gpt2-medium/cases/nope/elements", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestCaseRenderDOT(t *testing.T) {
	s := testServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/models/gpt2-medium/cases/capital_city/render?format=dot", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "graphviz") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `"<a0.1>" -> "<m0-0>"`) {
		t.Errorf("dot output missing edge:\n%s", rec.Body)
	}
}

func TestCaseRenderRejectsJSONFormat(t *testing.T) {
	rec := doRequest(t, testServer(t), http.MethodGet, "/api/models/gpt2-medium/cases/capital_city/render?format=json", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func uploadRequest(t *testing.T, name, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(fw, content); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func TestUploadFlow(t *testing.T) {
	s := testServer(t)

	body, contentType := uploadRequest(t, "circuit.gv", sampleGV)
	req := httptest.NewRequest(http.MethodPost, "/api/uploads", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status = %d, body %s", rec.Code, rec.Body)
	}

	var created struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Edges int    `json:"edges"`
	}
	decodeBody(t, rec, &created)
	if created.ID == "" || created.Name != "circuit.gv" || created.Edges != 2 {
		t.Fatalf("created = %+v", created)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/uploads/"+created.ID+"/elements", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("elements status = %d, body %s", rec.Code, rec.Body)
	}
	var elems elementsResponse
	decodeBody(t, rec, &elems)
	if elems.Source != "circuit.gv" || len(elems.Elements) != 5 {
		t.Errorf("elements response = source %q, %d elements", elems.Source, len(elems.Elements))
	}

	rec = doRequest(t, s, http.MethodDelete, "/api/uploads/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/uploads/"+created.ID+"/elements", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("deleted upload status = %d, want 404", rec.Code)
	}
}

func TestUploadRejectsWrongExtension(t *testing.T) {
	s := testServer(t)
	body, contentType := uploadRequest(t, "circuit.txt", sampleGV)
	req := httptest.NewRequest(http.MethodPost, "/api/uploads", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUploadEmptyCircuit(t *testing.T) {
	s := testServer(t)
	body, contentType := uploadRequest(t, "empty.gv", "digraph {}\n")
	req := httptest.NewRequest(http.MethodPost, "/api/uploads", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var created struct {
		ID    string `json:"id"`
		Edges int    `json:"edges"`
	}
	decodeBody(t, rec, &created)
	if created.Edges != 0 {
		t.Errorf("edges = %d, want 0", created.Edges)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/uploads/"+created.ID+"/elements", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("elements status = %d, want 200", rec.Code)
	}
	var resp elementsResponse
	decodeBody(t, rec, &resp)
	if len(resp.Elements) != 0 {
		t.Errorf("len(Elements) = %d, want 0", len(resp.Elements))
	}
	if resp.Stats.Nodes != 0 || resp.Stats.Edges != 0 {
		t.Errorf("stats = %+v, want zero nodes and edges", resp.Stats)
	}
}

func TestViewerPage(t *testing.T) {
	rec := doRequest(t, testServer(t), http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "/api/models") {
		t.Error("page does not reference the API")
	}
}
