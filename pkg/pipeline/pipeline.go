// Package pipeline runs the justified layout engine and its renderers with
// caching.
//
// The CLI and the HTTP server both lay out aspect ratios the same way, so
// this package centralises option defaults, validation and the cache keys
// of each stage.
//
// # Stages
//
//  1. Layout: [justify.Build] over the aspect ratios
//  2. Render: one artifact per requested format (SVG, PNG, JSON)
//
// Each stage is cached on its own. A layout is keyed by the ratios and
// every engine option; an artifact by the layout and every render option.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    AspectRatios: []float64{1.5, 1, 0.8},
//	    Options:      justify.Options{ContainerWidth: 1200, TargetRowHeight: 340},
//	    Formats:      []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/scaduxx/folio/pkg/cache"
	"github.com/scaduxx/folio/pkg/errors"
	"github.com/scaduxx/folio/pkg/justify"
	"github.com/scaduxx/folio/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the container width used when none is given.
	DefaultWidth = 1200.0

	// DefaultRowHeight is the target row height used when none is given.
	DefaultRowHeight = 340.0
)

// Format constants for output formats.
const (
	FormatSVG  = render.FormatSVG
	FormatPNG  = render.FormatPNG
	FormatJSON = render.FormatJSON
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run. Its JSON form is the body accepted by
// the layout API: the engine options are inlined next to the ratios.
//
//	{"aspectRatios": [1.5, 1], "containerWidth": 930, "targetRowHeight": 300,
//	 "boxSpacing": 10, "containerPadding": [10, 20], "lastRow": "natural"}
type Options struct {
	AspectRatios []float64 `json:"aspectRatios"`
	justify.Options

	// Render options
	Formats []string `json:"formats,omitempty"`
	Labels  []string `json:"labels,omitempty"`
	Links   []string `json:"links,omitempty"`
	Scale   float64  `json:"scale,omitempty"`

	// Refresh recomputes every stage and overwrites cached results.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Images    []image.Image `json:"-"`
	ImagesKey string        `json:"-"` // identifies Images in artifact cache keys
	Logger    *log.Logger   `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the computed layout.
	Layout justify.Layout

	// LayoutHash is the content hash of the layout.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Items      int
	Rows       int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list. Blank input means JSON.
func ParseFormats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{FormatJSON}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and validates the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults fills the container width, row height and last-row
// policy. Spacing and padding default to zero.
func (o *Options) SetLayoutDefaults() {
	if o.ContainerWidth == 0 {
		o.ContainerWidth = DefaultWidth
	}
	if o.TargetRowHeight == 0 {
		o.TargetRowHeight = DefaultRowHeight
	}
	if o.LastRow == "" {
		o.LastRow = justify.LastRowFill
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout sets layout defaults and validates the engine options.
// Aspect ratios are checked by the engine itself.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return o.Options.Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Scale == 0 {
		o.Scale = 1
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	return ValidateFormats(o.Formats)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	p := o.ContainerPadding
	return cache.LayoutKeyOpts{
		ContainerWidth:    o.ContainerWidth,
		TargetRowHeight:   o.TargetRowHeight,
		SpacingHorizontal: o.BoxSpacing.Horizontal,
		SpacingVertical:   o.BoxSpacing.Vertical,
		Padding:           [4]float64{p.Top, p.Right, p.Bottom, p.Left},
		LastRow:           string(o.LastRow),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	if len(o.Labels) > 0 || len(o.Links) > 0 || o.Scale != 1 {
		k.LabelsHash = hashJSON([]any{o.Labels, o.Links, o.Scale})
	}
	if format == FormatPNG && len(o.Images) > 0 {
		k.ImagesHash = o.ImagesKey
	}
	return k
}

// RatiosHash returns the content hash of the aspect ratios.
func (o *Options) RatiosHash() string {
	return hashJSON(o.AspectRatios)
}

// renderOptions converts pipeline options into sink options.
func (o *Options) renderOptions() []render.Option {
	return []render.Option{
		render.WithLabels(o.Labels),
		render.WithLinks(o.Links),
		render.WithImages(o.Images),
		render.WithOptions(o.Options),
		render.WithScale(o.Scale),
	}
}

func hashJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		// NaN and Inf ratios cannot be encoded; hash their text instead.
		data = []byte(fmt.Sprint(v))
	}
	return cache.Hash(data)
}
