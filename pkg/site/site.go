// Package site renders the portfolio's HTML pages.
//
// Every page shares one shell: the navbar with its scroll-driven tint, the
// main element padded per route, and the footer. Pages other than home
// animate in from an offset chosen by the navigation direction. Page bodies
// are html/template files embedded in the binary.
package site

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/scaduxx/folio/pkg/config"
	"github.com/scaduxx/folio/pkg/content"
	"github.com/scaduxx/folio/pkg/errors"
	"github.com/scaduxx/folio/pkg/justify"
)

//go:embed templates/*.html
var templateFS embed.FS

const shellFile = "templates/shell.html"

// Site holds the parsed page templates and the site-wide settings.
type Site struct {
	cfg   config.SiteConfig
	pages map[string]*template.Template
	now   func() time.Time
}

// Page selects a template and supplies its data.
type Page struct {
	Name  string // one of the Page* constants
	Path  string // request path, selects the top padding
	Title string // empty for the bare site title
	Dir   NavDir
	Data  any
}

// View is the value every template executes with.
type View struct {
	Site       config.SiteConfig
	Title      string
	Padding    string
	Animate    bool
	Transition Transition
	Navbar     NavbarEffect
	Scroll     ScrollEffect
	Year       int
	Data       any
}

// ScrollEffect parametrises the navbar script.
type ScrollEffect struct {
	Range      float64
	MaxOpacity float64
	MaxBlur    float64
}

var funcs = template.FuncMap{
	"boxStyle":   boxStyle,
	"gridStyle":  gridStyle,
	"enterStyle": enterStyle,
	"navbarCSS":  func(e NavbarEffect) template.CSS { return template.CSS(e.CSS()) },
	"upper":      strings.ToUpper,
	"seq":        func(n int) []int { return make([]int, n) },
}

// New parses the embedded templates.
func New(cfg config.SiteConfig) (*Site, error) {
	shell, err := template.New("shell.html").Funcs(funcs).ParseFS(templateFS, shellFile)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse shell")
	}

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list templates")
	}

	pages := make(map[string]*template.Template, len(files))
	for _, f := range files {
		if f == shellFile {
			continue
		}
		t, err := template.Must(shell.Clone()).ParseFS(templateFS, f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse %s", f)
		}
		pages[strings.TrimSuffix(path.Base(f), ".html")] = t
	}

	return &Site{cfg: cfg, pages: pages, now: time.Now}, nil
}

// Config returns the site settings.
func (s *Site) Config() config.SiteConfig { return s.cfg }

// Render writes the page wrapped in the shared shell.
func (s *Site) Render(w io.Writer, p Page) error {
	t, ok := s.pages[p.Name]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "no template for page %q", p.Name)
	}

	title := s.cfg.Title
	if p.Title != "" {
		title = p.Title + " | " + s.cfg.Title
	}

	v := View{
		Site:       s.cfg,
		Title:      title,
		Padding:    TopPadding(p.Path),
		Animate:    p.Path != "/",
		Transition: TransitionFor(p.Dir),
		Navbar:     NavbarStyle(0),
		Scroll:     ScrollEffect{Range: NavbarScrollRange, MaxOpacity: NavbarMaxOpacity, MaxBlur: NavbarMaxBlur},
		Year:       s.now().Year(),
		Data:       p.Data,
	}
	if err := t.ExecuteTemplate(w, "shell", v); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "render %s", p.Name)
	}
	return nil
}

func boxStyle(b justify.Box) template.CSS {
	return template.CSS(fmt.Sprintf("top:%.2fpx;left:%.2fpx;width:%.2fpx;height:%.2fpx",
		b.Top, b.Left, b.Width, b.Height))
}

func gridStyle(g content.Grid) template.CSS {
	return template.CSS(fmt.Sprintf("width:%.2fpx;height:%.2fpx", g.Width, g.Height))
}

func enterStyle(t Transition) template.CSS {
	return template.CSS(fmt.Sprintf("--enter-x:%gpx;--enter-y:%gpx;--exit-x:%gpx;--exit-y:%gpx",
		t.EnterX, t.EnterY, t.ExitX, t.ExitY))
}
