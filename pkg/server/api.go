package server

import (
	"encoding/json"
	"net/http"

	"github.com/scaduxx/folio/pkg/content"
	"github.com/scaduxx/folio/pkg/embed"
	"github.com/scaduxx/folio/pkg/errors"
	"github.com/scaduxx/folio/pkg/justify"
	"github.com/scaduxx/folio/pkg/pipeline"
)

const (
	maxBodyBytes = 1 << 20
	maxViewport  = 16384
)

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.source.Projects(r.Context())
	if err != nil {
		s.apiError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, projects)
}

// gridResponse is the home grid as served to the page's resize script.
type gridResponse struct {
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Cells  []gridCell `json:"cells"`
}

type gridCell struct {
	Key   string      `json:"key"`
	Index int         `json:"index"`
	Slug  string      `json:"slug"`
	Title string      `json:"title"`
	Box   justify.Box `json:"box"`
}

func newGridResponse(g content.Grid) gridResponse {
	cells := make([]gridCell, len(g.Cells))
	for i, c := range g.Cells {
		cells[i] = gridCell{Key: c.Key(), Index: c.Index, Slug: c.Project.Slug, Title: c.Project.Title, Box: c.Box}
	}
	return gridResponse{Width: g.Width, Height: g.Height, Cells: cells}
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	width, err := s.viewport(r)
	if err != nil {
		s.apiError(w, r, err)
		return
	}
	projects, err := s.source.Projects(r.Context())
	if err != nil {
		s.apiError(w, r, err)
		return
	}
	grid, err := s.cfg.Grid.BuildGrid(projects, width)
	if err != nil {
		s.apiError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newGridResponse(grid))
}

// handleGridSVG draws the home grid as a labelled wireframe.
func (s *Server) handleGridSVG(w http.ResponseWriter, r *http.Request) {
	width, err := s.viewport(r)
	if err != nil {
		s.apiError(w, r, err)
		return
	}
	projects, err := s.source.Projects(r.Context())
	if err != nil {
		s.apiError(w, r, err)
		return
	}

	ratios, opts := s.cfg.Grid.Request(projects, width)
	labels := make([]string, len(projects))
	links := make([]string, len(projects))
	for i, p := range projects {
		labels[i] = p.Title
		links[i] = "/projects/" + p.Slug
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		AspectRatios: ratios,
		Options:      opts,
		Formats:      []string{pipeline.FormatSVG},
		Labels:       labels,
		Links:        links,
	})
	if err != nil {
		s.apiError(w, r, err)
		return
	}
	writeArtifact(w, pipeline.FormatSVG, result.Artifacts[pipeline.FormatSVG])
}

// handleLayout runs the layout engine on the request body. With a format
// query parameter the layout is rendered in that format; otherwise the
// layout itself is returned.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		s.apiError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid layout request"))
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		layout, err := s.runner.Layout(r.Context(), opts)
		if err != nil {
			s.apiError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, layout)
		return
	}

	if err := pipeline.ValidateFormat(format); err != nil {
		s.apiError(w, r, err)
		return
	}
	opts.Formats = []string{format}
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.apiError(w, r, err)
		return
	}
	writeArtifact(w, format, result.Artifacts[format])
}

func (s *Server) handleEmbed(w http.ResponseWriter, r *http.Request) {
	plan, ok := embed.Resolve(r.URL.Query().Get("url"))
	if !ok {
		s.apiError(w, r, errors.New(errors.ErrCodeInvalidInput, "url is required"))
		return
	}
	s.writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "source": s.source.Name()})
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJSON: "application/json",
}

func writeArtifact(w http.ResponseWriter, format string, data []byte) {
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
