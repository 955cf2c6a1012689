package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/scaduxx/folio/pkg/contact"
	"github.com/scaduxx/folio/pkg/content"
	"github.com/scaduxx/folio/pkg/errors"
	"github.com/scaduxx/folio/pkg/site"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	width, err := s.viewport(r)
	if err != nil {
		s.pageError(w, r, err)
		return
	}
	projects, err := s.source.Projects(r.Context())
	if err != nil {
		s.pageError(w, r, err)
		return
	}
	grid, err := s.cfg.Grid.BuildGrid(projects, width)
	if err != nil {
		s.pageError(w, r, err)
		return
	}
	s.render(w, r, site.Page{
		Name: site.PageHome,
		Path: r.URL.Path,
		Dir:  site.ConsumeNavDir(w, r),
		Data: site.Home{Grid: grid},
	})
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if err := errors.ValidateSlug(slug); err != nil {
		s.pageError(w, r, err)
		return
	}

	var (
		project  content.Project
		projects []content.Project
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		project, err = s.source.Project(ctx, slug)
		return err
	})
	g.Go(func() error {
		var err error
		projects, err = s.source.Projects(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.pageError(w, r, err)
		return
	}

	page, err := site.NewProject(project, projects)
	if err != nil {
		s.pageError(w, r, err)
		return
	}
	s.render(w, r, site.Page{
		Name:  site.PageProject,
		Path:  r.URL.Path,
		Title: project.Title,
		Dir:   site.ConsumeNavDir(w, r),
		Data:  page,
	})
}

// handleGo records the direction of a previous/next click and redirects
// to the project.
func (s *Server) handleGo(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if err := errors.ValidateSlug(slug); err != nil {
		s.pageError(w, r, err)
		return
	}
	site.SetNavDir(w, site.ParseNavDir(chi.URLParam(r, "dir")))
	http.Redirect(w, r, "/projects/"+slug, http.StatusFound)
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, site.Page{
		Name:  site.PageAbout,
		Path:  r.URL.Path,
		Title: "About",
		Dir:   site.ConsumeNavDir(w, r),
		Data:  site.NewAbout(s.cfg.Site),
	})
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, site.Page{
		Name:  site.PageContact,
		Path:  r.URL.Path,
		Title: "Contact",
		Dir:   site.ConsumeNavDir(w, r),
		Data:  site.NewContact(s.cfg.Site),
	})
}

// handleContactSubmit turns the form into a mailto link and redirects the
// browser to it, which opens the visitor's mail client.
func (s *Server) handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	to := s.cfg.Site.Contact.Email
	if to == "" {
		s.pageError(w, r, errors.New(errors.ErrCodeNotFound, "no contact address is configured"))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		s.pageError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid form"))
		return
	}
	href := contact.Href(to, contact.Message{
		Name:    r.PostForm.Get("name"),
		Subject: r.PostForm.Get("subject"),
		Body:    r.PostForm.Get("message"),
	})
	http.Redirect(w, r, href, http.StatusSeeOther)
}

func (s *Server) handleLab(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, site.Page{
		Name:  site.PageLab,
		Path:  r.URL.Path,
		Title: "Lab",
		Dir:   site.ConsumeNavDir(w, r),
		Data:  site.NewLab(),
	})
}

// viewport returns the w query parameter, or the grid's maximum width.
func (s *Server) viewport(r *http.Request) (float64, error) {
	raw := r.URL.Query().Get("w")
	if raw == "" {
		return s.cfg.Grid.MaxWidth, nil
	}
	w, err := strconv.ParseFloat(raw, 64)
	if err != nil || !(w > 0) || w > maxViewport {
		return 0, errors.New(errors.ErrCodeInvalidInput, "w must be a width between 0 and %d, got %q", maxViewport, raw)
	}
	return w, nil
}
