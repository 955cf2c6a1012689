package content

import (
	"math"
	"strconv"

	"github.com/scaduxx/folio/pkg/justify"
)

// GridPolicy is the responsive policy of the home grid. It turns a viewport
// width and a project list into a layout request for the justify engine.
type GridPolicy struct {
	// MaxWidth caps the grid width on wide viewports.
	MaxWidth float64 `toml:"max_width" json:"maxWidth"`

	// SmallScreenWidth is the width at or below which every card uses
	// SmallScreenRatio instead of its own ratio.
	SmallScreenWidth float64 `toml:"small_screen_width" json:"smallScreenWidth"`
	SmallScreenRatio float64 `toml:"small_screen_ratio" json:"smallScreenRatio"`

	// DefaultRatio is used for projects with no usable ratio.
	DefaultRatio float64 `toml:"default_ratio" json:"defaultRatio"`

	TargetRowHeight float64               `toml:"target_row_height" json:"targetRowHeight"`
	BoxSpacing      float64               `toml:"box_spacing" json:"boxSpacing"`
	Padding         float64               `toml:"padding" json:"padding"`
	LastRow         justify.LastRowPolicy `toml:"last_row" json:"lastRow"`
}

// Grid defaults.
const (
	DefaultMaxWidth         = 1600
	DefaultSmallScreenWidth = 720
	DefaultSmallScreenRatio = 1.5
	DefaultAspectRatio      = 1.0
	DefaultTargetRowHeight  = 340
	DefaultBoxSpacing       = 10
)

// DefaultGridPolicy returns the home grid policy used when none is configured.
func DefaultGridPolicy() GridPolicy {
	return GridPolicy{
		MaxWidth:         DefaultMaxWidth,
		SmallScreenWidth: DefaultSmallScreenWidth,
		SmallScreenRatio: DefaultSmallScreenRatio,
		DefaultRatio:     DefaultAspectRatio,
		TargetRowHeight:  DefaultTargetRowHeight,
		BoxSpacing:       DefaultBoxSpacing,
		LastRow:          justify.LastRowFill,
	}
}

// Width returns the grid width for a viewport.
func (g GridPolicy) Width(viewport float64) float64 {
	if g.MaxWidth > 0 {
		return math.Min(viewport, g.MaxWidth)
	}
	return viewport
}

// Request returns the aspect ratios and engine options for laying out
// projects in a viewport of the given width.
func (g GridPolicy) Request(projects []Project, viewport float64) ([]float64, justify.Options) {
	width := g.Width(viewport)
	small := width <= g.SmallScreenWidth

	ratios := make([]float64, len(projects))
	for i, p := range projects {
		if small {
			ratios[i] = g.SmallScreenRatio
		} else {
			ratios[i] = p.Ratio(g.DefaultRatio)
		}
	}

	return ratios, justify.Options{
		ContainerWidth:   width,
		TargetRowHeight:  g.TargetRowHeight,
		BoxSpacing:       justify.UniformSpacing(g.BoxSpacing),
		ContainerPadding: justify.UniformPadding(g.Padding),
		LastRow:          g.LastRow,
	}
}

// Cell is one positioned project card.
type Cell struct {
	Index   int         `json:"index"`
	Project Project     `json:"project"`
	Box     justify.Box `json:"box"`
}

// Key identifies the cell among its siblings.
func (c Cell) Key() string {
	if c.Project.Slug != "" {
		return c.Project.Slug
	}
	return "cell-" + strconv.Itoa(c.Index)
}

// Grid is the computed home grid.
type Grid struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Cells  []Cell  `json:"cells"`
}

// BuildGrid lays out projects, in the given order, for a viewport width.
func (g GridPolicy) BuildGrid(projects []Project, viewport float64) (Grid, error) {
	ratios, opts := g.Request(projects, viewport)
	l, err := justify.Build(ratios, opts)
	if err != nil {
		return Grid{}, err
	}

	cells := make([]Cell, len(projects))
	for i, p := range projects {
		cells[i] = Cell{Index: i, Project: p, Box: l.Boxes[i]}
	}
	return Grid{Width: l.ContainerWidth, Height: l.ContainerHeight, Cells: cells}, nil
}
