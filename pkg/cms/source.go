// Package cms loads portfolio projects from a content source.
//
// Three sources are provided:
//
//   - [SanityClient]: the Sanity HTTP query API (GROQ), cached and retried
//   - [FileSource]: a YAML, JSON or TOML file, optionally hot-reloaded
//   - [MongoSource]: a MongoDB collection
//
// Every source returns projects in display order (see [content.Sort]) and
// reports a missing slug as an [errors.ErrCodeNotFound] error. Use [Open]
// to build the source named in the configuration.
package cms

import (
	"context"

	"github.com/scaduxx/folio/pkg/content"
	"github.com/scaduxx/folio/pkg/errors"
)

// Source provides the portfolio's projects.
type Source interface {
	// Name identifies the source in logs and hooks.
	Name() string

	// Projects returns every project in display order.
	Projects(ctx context.Context) ([]content.Project, error)

	// Project returns the project with the given slug.
	Project(ctx context.Context, slug string) (content.Project, error)

	// Close releases connections and watchers.
	Close() error
}

func notFound(slug string) error {
	return errors.New(errors.ErrCodeNotFound, "project %q not found", slug)
}

// findProject returns the project with the given slug from a loaded list.
func findProject(projects []content.Project, slug string) (content.Project, error) {
	for _, p := range projects {
		if p.Slug == slug {
			return p, nil
		}
	}
	return content.Project{}, notFound(slug)
}

// fillImage derives missing image dimensions from the asset reference.
func fillImage(img *content.Image) {
	if img == nil || img.Ref == "" || (img.Width > 0 && img.Height > 0) {
		return
	}
	if w, h, ok := ImageDimensions(img.Ref); ok {
		img.Width, img.Height = w, h
	}
}

// validateProjects checks slugs and rejects duplicates.
func validateProjects(projects []content.Project) error {
	seen := make(map[string]bool, len(projects))
	for i, p := range projects {
		if err := errors.ValidateSlug(p.Slug); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "project %d (%q)", i, p.Title)
		}
		if seen[p.Slug] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate slug %q", p.Slug)
		}
		seen[p.Slug] = true
	}
	return nil
}
