package site

import (
	"html/template"

	"github.com/scaduxx/folio/pkg/config"
	"github.com/scaduxx/folio/pkg/contact"
	"github.com/scaduxx/folio/pkg/content"
	"github.com/scaduxx/folio/pkg/embed"
)

// Page names, one per template.
const (
	PageHome     = "home"
	PageProject  = "project"
	PageAbout    = "about"
	PageContact  = "contact"
	PageLab      = "lab"
	PageError    = "error"
)

// Home is the data of the home page.
type Home struct {
	Grid content.Grid
}

// Project is the data of a project detail page.
type Project struct {
	Project  content.Project
	Prev     *content.Project
	Next     *content.Project
	Current  string
	Total    string
	Video    *embed.Plan
	Sections []Section
}

// Section is one rendered group of a project body.
type Section struct {
	Kind   content.GroupKind
	HTML   template.HTML // text groups only
	Images []content.Image
}

// NewProject composes the detail page of p. projects is the full index,
// used for the previous/next links and the counter.
func NewProject(p content.Project, projects []content.Project) (Project, error) {
	page := Project{Project: p}
	page.Prev, page.Next = content.Neighbours(projects, p.Slug)
	page.Current, page.Total = content.Counter(projects, p.Slug)

	if plan, ok := embed.Resolve(p.VideoURL); ok {
		page.Video = &plan
	}

	for _, g := range content.GroupBlocks(p.Body) {
		s := Section{Kind: g.Kind}
		if g.Kind == content.GroupText {
			h, err := RenderText(g.Blocks)
			if err != nil {
				return Project{}, err
			}
			s.HTML = h
		} else {
			for _, b := range g.Blocks {
				if b.Image != nil {
					s.Images = append(s.Images, *b.Image)
				}
			}
		}
		page.Sections = append(page.Sections, s)
	}
	return page, nil
}

// About is the data of the about page.
type About struct {
	Heading string
	Bio     string
	Reel    string // embeddable player URL
	Focus   []string
	Tools   []config.Tool
	Clients []config.Logo
}

// NewAbout composes the about page from site settings.
func NewAbout(cfg config.SiteConfig) About {
	a := About{
		Heading: cfg.Heading,
		Bio:     cfg.Bio,
		Focus:   cfg.Focus,
		Tools:   cfg.Tools,
		Clients: cfg.Clients,
	}
	if cfg.Reel != "" {
		a.Reel = embed.DriveEmbed(cfg.Reel)
	}
	return a
}

// Contact is the data of the contact page.
type Contact struct {
	Profile contact.Profile
	Href    string // plain mailto link to the profile address
}

// NewContact composes the contact page from site settings.
func NewContact(cfg config.SiteConfig) Contact {
	c := Contact{Profile: cfg.Contact}
	if cfg.Contact.Email != "" {
		c.Href = "mailto:" + cfg.Contact.Email
	}
	return c
}

// Error is the data of the error page.
type Error struct {
	Status  int
	Message string
}

// Lab is the data of the lab page.
type Lab struct {
	Tiles int
}

// NewLab returns the lab page with its placeholder tiles.
func NewLab() Lab { return Lab{Tiles: 3} }
