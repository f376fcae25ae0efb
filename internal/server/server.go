// Package server implements the parcoords HTTP server.
//
// The server exposes the interactive chart page at / and a small JSON API
// under /api. Charts are rendered server-side by the shared pipeline; the
// page only fetches the finished SVG for its current container width.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/coordviz/parcoords/pkg/config"
	"github.com/coordviz/parcoords/pkg/dataset"
	"github.com/coordviz/parcoords/pkg/errors"
	"github.com/coordviz/parcoords/pkg/pipeline"
)

// Server serves the chart page and the dataset API.
type Server struct {
	Runner *pipeline.Runner
	Config config.Config
	Logger *log.Logger
}

// New creates a server around a pipeline runner.
func New(runner *pipeline.Runner, cfg config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{Runner: runner, Config: cfg, Logger: logger}
}

// Router builds the chi route tree with all middleware attached.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(s.Logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Route("/api", func(r chi.Router) {
		r.Get("/datasets", s.handleDatasets)
		r.Get("/datasets/{id}/data", s.handleData)
		r.Get("/datasets/{id}/chart.svg", s.handleChart)
	})
	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Config.Server.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("listening", "addr", s.Config.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// handleDatasets lists the configured dataset identifiers.
func (s *Server) handleDatasets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"datasets": s.Config.DatasetIDs(),
	})
}

// handleData returns the raw records of a dataset as JSON.
func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateDatasetID(id); err != nil {
		writeError(w, err)
		return
	}

	ds, _, err := s.Runner.Load(r.Context(), pipeline.Options{DatasetID: id})
	if err != nil {
		writeError(w, err)
		return
	}

	records := make([]recordJSON, len(ds.Records))
	for i, rec := range ds.Records {
		records[i] = recordJSON{rec}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"dataset": id,
		"records": records,
	})
}

// recordJSON marshals a record as a JSON object in column order, keeping
// the value tags faithful: numbers stay numbers, text stays text (a string
// like "007" is not re-emitted as 7), missing values become null.
type recordJSON struct {
	rec dataset.Record
}

func (r recordJSON) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.rec.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')

		v := r.rec.Get(key)
		switch v.Kind() {
		case dataset.KindNumber:
			f, _ := v.Float()
			n, err := json.Marshal(f)
			if err != nil {
				return nil, err
			}
			buf.Write(n)
		case dataset.KindText:
			s, err := json.Marshal(v.String())
			if err != nil {
				return nil, err
			}
			buf.Write(s)
		default:
			buf.WriteString("null")
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// handleChart renders a dataset as SVG for the requested container width.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	opts := pipeline.Options{
		DatasetID: id,
		Style:     s.Config.Chart.Style,
		Margins:   s.Config.Chart.Margins,
		Rule:      s.Config.Chart.Colors,
		Width:     s.Config.Chart.Width,
		Formats:   []string{pipeline.FormatSVG},
	}

	if raw := r.URL.Query().Get("width"); raw != "" {
		width, err := strconv.ParseFloat(raw, 64)
		if err != nil || width <= 0 {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid width %q", raw))
			return
		}
		opts.Width = width
	}
	if style := r.URL.Query().Get("style"); style != "" {
		opts.Style = style
	}

	result, err := s.Runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[pipeline.FormatSVG])
}

// errorEnvelope is the JSON body returned for failed requests.
type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// statusForCode maps error codes to HTTP status codes.
func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidDataset,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidStyle,
		errors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeDatasetNotFound,
		errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeParse:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNetwork, errors.ErrCodeTimeout:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}

	var env errorEnvelope
	env.Error.Code = string(code)
	env.Error.Message = errors.UserMessage(err)
	writeJSON(w, statusForCode(code), env)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
