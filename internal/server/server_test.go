package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/coordviz/parcoords/pkg/config"
	"github.com/coordviz/parcoords/pkg/dataset"
	"github.com/coordviz/parcoords/pkg/pipeline"
)

const studentsJSON = `[
  {"name": "A", "code": "007", "math": 2, "gender": "M"},
  {"name": "B", "code": "008", "math": 3, "gender": "F"},
  {"name": "C", "code": "009", "math": null, "gender": "M"}
]`

func testServer(t *testing.T) *Server {
	t.Helper()

	path := filepath.Join(t.TempDir(), "students.json")
	if err := os.WriteFile(path, []byte(studentsJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Datasets = map[string]config.DatasetSpec{
		"students": {File: path},
	}

	registry := map[string]pipeline.Entry{
		"students": {Source: dataset.FileSource{Path: path}},
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(registry, nil, nil, logger)
	return New(runner, cfg, logger)
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestIndexPage(t *testing.T) {
	rec := get(t, testServer(t), "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `data-id="students"`) {
		t.Error("page missing dataset button")
	}
	if !strings.Contains(body, `data-quiet-ms="250"`) {
		t.Error("page missing debounce interval")
	}
	if !strings.Contains(body, "token !== seq") {
		t.Error("page missing fetch sequencing guard")
	}
}

func TestListDatasets(t *testing.T) {
	rec := get(t, testServer(t), "/api/datasets")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		Datasets []string `json:"datasets"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Datasets) != 1 || body.Datasets[0] != "students" {
		t.Errorf("datasets = %v", body.Datasets)
	}
}

func TestDatasetData(t *testing.T) {
	rec := get(t, testServer(t), "/api/datasets/students/data")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Dataset string           `json:"dataset"`
		Records []map[string]any `json:"records"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Dataset != "students" || len(body.Records) != 3 {
		t.Errorf("dataset = %q, records = %d", body.Dataset, len(body.Records))
	}
	if body.Records[0]["math"] != float64(2) {
		t.Errorf("math = %v", body.Records[0]["math"])
	}

	// Text values survive as text even when they look numeric.
	if body.Records[0]["code"] != "007" {
		t.Errorf("code = %v (%T), want the string \"007\"", body.Records[0]["code"], body.Records[0]["code"])
	}

	// Missing values come back as null.
	if v, ok := body.Records[2]["math"]; !ok || v != nil {
		t.Errorf("null math = %v, present = %v", v, ok)
	}

	// Objects are emitted in column order, not alphabetically.
	raw := rec.Body.String()
	last := -1
	for _, key := range []string{`"name"`, `"code"`, `"math"`, `"gender"`} {
		idx := strings.Index(raw, key)
		if idx < 0 || idx < last {
			t.Fatalf("key order not preserved in %q", raw)
		}
		last = idx
	}
}

func TestChartSVG(t *testing.T) {
	rec := get(t, testServer(t), "/api/datasets/students/chart.svg?width=800")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<svg") {
		t.Error("response is not SVG")
	}
	if got := strings.Count(body, "<polyline"); got != 3 {
		t.Errorf("polyline count = %d, want 3", got)
	}
}

func TestChartInvalidWidth(t *testing.T) {
	rec := get(t, testServer(t), "/api/datasets/students/chart.svg?width=bogus")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}

	var env errorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Error.Code != "INVALID_INPUT" {
		t.Errorf("code = %q", env.Error.Code)
	}
}

func TestUnknownDataset(t *testing.T) {
	for _, path := range []string{
		"/api/datasets/missing/data",
		"/api/datasets/missing/chart.svg",
	} {
		rec := get(t, testServer(t), path)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d", path, rec.Code)
			continue
		}
		var env errorEnvelope
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatal(err)
		}
		if env.Error.Code != "DATASET_NOT_FOUND" {
			t.Errorf("%s: code = %q", path, env.Error.Code)
		}
	}
}

func TestRequestIDHeader(t *testing.T) {
	rec := get(t, testServer(t), "/api/datasets")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/datasets", nil)
	req.Header.Set("X-Request-ID", "upstream-id")
	rec = httptest.NewRecorder()
	testServer(t).Router().ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "upstream-id" {
		t.Errorf("X-Request-ID = %q, want upstream-id", got)
	}
}
