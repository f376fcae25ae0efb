package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coordviz/parcoords/pkg/errors"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func TestHTTPSourceFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"a":1}]`))
	}))
	defer srv.Close()

	src := HTTPSource{URL: srv.URL}
	data, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if string(data) != `[{"a":1}]` {
		t.Errorf("Fetch = %q", data)
	}
}

func TestHTTPSourceRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	src := HTTPSource{URL: srv.URL, Client: srv.Client(), RetryDelay: time.Millisecond}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	data, err := src.Fetch(ctx)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if string(data) != `[]` {
		t.Errorf("Fetch = %q", data)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestHTTPSourceDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	src := HTTPSource{URL: srv.URL, Client: srv.Client()}
	_, err := src.Fetch(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrCodeNetwork) {
		t.Errorf("code = %v, want NETWORK_ERROR", errors.GetCode(err))
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1 (4xx must not be retried)", got)
	}
}

func TestSourceNames(t *testing.T) {
	if got := (FileSource{Path: "/data/x.json"}).Name(); got != "/data/x.json" {
		t.Errorf("FileSource.Name() = %q", got)
	}
	if got := (HTTPSource{URL: "http://example.com/x.json"}).Name(); got != "http://example.com/x.json" {
		t.Errorf("HTTPSource.Name() = %q", got)
	}
	m := MongoSource{Database: "viz", Collection: "students"}
	if got := m.Name(); got != "mongodb(viz.students)" {
		t.Errorf("MongoSource.Name() = %q", got)
	}
}
