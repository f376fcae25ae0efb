package server

import (
	_ "embed"
	"html/template"
	"net/http"
)

//go:embed index.html
var indexHTML string

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

// pageData parameterizes the embedded chart page.
type pageData struct {
	Datasets  []string
	QuietMS   int
	PageTitle string
}

// handleIndex serves the interactive chart page. Dataset buttons and the
// resize debounce interval come from the configuration.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Datasets:  s.Config.DatasetIDs(),
		QuietMS:   s.Config.Debounce.QuietMS,
		PageTitle: "Parallel Coordinates",
	}
	if data.QuietMS <= 0 {
		data.QuietMS = 250
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, data); err != nil {
		s.Logger.Error("render index", "err", err)
	}
}
