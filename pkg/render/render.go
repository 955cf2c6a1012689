// Package render turns a computed justified layout into output artifacts.
//
// # Sinks
//
//   - [RenderSVG]: a wireframe of the boxes, optionally labelled and linked
//   - [RenderJSON]: an indented export of boxes, rows and engine options
//   - [RenderPNG]: a contact sheet with each image cover-fitted into its box
//
// All sinks take the same functional options; options a sink has no use for
// are ignored:
//
//	svg := render.RenderSVG(l, render.WithLabels(titles), render.WithLinks(hrefs))
//	png, err := render.RenderPNG(l, render.WithImages(imgs), render.WithScale(0.5))
//
// Rendering never changes geometry. Boxes are drawn exactly where the
// layout placed them, scaled uniformly for raster output.
package render

import (
	"image"
	"image/color"

	"github.com/scaduxx/folio/pkg/errors"
	"github.com/scaduxx/folio/pkg/justify"
)

// Format names accepted by [Render].
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// Option configures a sink.
type Option func(*renderer)

type renderer struct {
	labels     []string
	links      []string
	images     []image.Image
	opts       *justify.Options
	scale      float64
	background color.Color
	tile       color.Color
}

// WithLabels sets one caption per box. Missing or empty labels are skipped.
func WithLabels(labels []string) Option { return func(r *renderer) { r.labels = labels } }

// WithLinks wraps each box in a link to the matching URL.
func WithLinks(links []string) Option { return func(r *renderer) { r.links = links } }

// WithImages supplies the pictures drawn into each box of a PNG. A nil
// entry is drawn as a placeholder tile.
func WithImages(images []image.Image) Option { return func(r *renderer) { r.images = images } }

// WithOptions records the engine options in the JSON export.
func WithOptions(o justify.Options) Option { return func(r *renderer) { r.opts = &o } }

// WithScale scales raster output. Values <= 0 are ignored.
func WithScale(s float64) Option {
	return func(r *renderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithBackground sets the canvas colour.
func WithBackground(c color.Color) Option { return func(r *renderer) { r.background = c } }

func newRenderer(opts ...Option) renderer {
	r := renderer{
		scale:      1,
		background: color.Black,
		tile:       color.NRGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 0xff},
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r *renderer) label(i int) string {
	if i < len(r.labels) {
		return r.labels[i]
	}
	return ""
}

func (r *renderer) link(i int) string {
	if i < len(r.links) {
		return r.links[i]
	}
	return ""
}

func (r *renderer) image(i int) image.Image {
	if i < len(r.images) {
		return r.images[i]
	}
	return nil
}

// Render produces the artifact for one format.
func Render(l justify.Layout, format string, opts ...Option) ([]byte, error) {
	switch format {
	case FormatSVG:
		return RenderSVG(l, opts...), nil
	case FormatJSON:
		return RenderJSON(l, opts...)
	case FormatPNG:
		return RenderPNG(l, opts...)
	}
	return nil, unsupported(format)
}

func unsupported(format string) error {
	return errors.New(errors.ErrCodeUnsupported, "unsupported format %q (must be one of: svg, png, json)", format)
}
