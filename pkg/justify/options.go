package justify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/scaduxx/folio/pkg/errors"
)

// LastRowPolicy decides how the final row is sized.
type LastRowPolicy string

const (
	// LastRowFill stretches the last row to the usable width like any other row.
	LastRowFill LastRowPolicy = "fill"

	// LastRowNatural keeps the last row at the target height. The row only
	// shrinks when its natural width would overflow the container.
	LastRowNatural LastRowPolicy = "natural"
)

// Validate checks that p names a known policy. The empty policy means [LastRowFill].
func (p LastRowPolicy) Validate() error {
	switch p {
	case "", LastRowFill, LastRowNatural:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidInput, "invalid last row policy: %q (must be one of: fill, natural)", string(p))
}

// Spacing is the gap between adjacent boxes in a row (Horizontal) and
// between consecutive rows (Vertical).
type Spacing struct {
	Horizontal float64 `json:"horizontal"`
	Vertical   float64 `json:"vertical"`
}

// UniformSpacing returns a Spacing with the same gap on both axes.
func UniformSpacing(v float64) Spacing { return Spacing{Horizontal: v, Vertical: v} }

// UnmarshalJSON accepts a single number, a [horizontal, vertical] pair, or an object.
func (s *Spacing) UnmarshalJSON(data []byte) error {
	vals, isList, err := decodeNumbers(data)
	if err != nil {
		return fmt.Errorf("box spacing: %w", err)
	}
	if vals == nil && !isList {
		type plain Spacing
		return json.Unmarshal(data, (*plain)(s))
	}
	switch len(vals) {
	case 1:
		*s = UniformSpacing(vals[0])
	case 2:
		*s = Spacing{Horizontal: vals[0], Vertical: vals[1]}
	default:
		return fmt.Errorf("box spacing: want 1 or 2 values, got %d", len(vals))
	}
	return nil
}

// Padding is the margin around the whole set of rows.
type Padding struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// UniformPadding returns a Padding with the same margin on all four sides.
func UniformPadding(v float64) Padding { return Padding{Top: v, Right: v, Bottom: v, Left: v} }

// Horizontal returns the total left and right padding.
func (p Padding) Horizontal() float64 { return p.Left + p.Right }

// UnmarshalJSON accepts a single number, a [vertical, horizontal] pair,
// a [top, right, bottom, left] tuple, or an object.
func (p *Padding) UnmarshalJSON(data []byte) error {
	vals, isList, err := decodeNumbers(data)
	if err != nil {
		return fmt.Errorf("container padding: %w", err)
	}
	if vals == nil && !isList {
		type plain Padding
		return json.Unmarshal(data, (*plain)(p))
	}
	switch len(vals) {
	case 1:
		*p = UniformPadding(vals[0])
	case 2:
		*p = Padding{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}
	case 4:
		*p = Padding{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}
	default:
		return fmt.Errorf("container padding: want 1, 2 or 4 values, got %d", len(vals))
	}
	return nil
}

// decodeNumbers decodes a JSON number or array of numbers. Objects yield
// (nil, false, nil) so the caller can fall back to field decoding.
func decodeNumbers(data []byte) (vals []float64, isList bool, err error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, false, fmt.Errorf("empty value")
	}
	switch data[0] {
	case '{':
		return nil, false, nil
	case '[':
		if err := json.Unmarshal(data, &vals); err != nil {
			return nil, true, err
		}
		return vals, true, nil
	default:
		var v float64
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, false, err
		}
		return []float64{v}, false, nil
	}
}

// Options configures [Build].
type Options struct {
	// ContainerWidth is the full width available, padding included.
	ContainerWidth float64 `json:"containerWidth"`

	// TargetRowHeight is the height rows aim for before width fitting.
	TargetRowHeight float64 `json:"targetRowHeight"`

	// BoxSpacing is the gap between boxes and between rows.
	BoxSpacing Spacing `json:"boxSpacing"`

	// ContainerPadding is the margin around all rows.
	ContainerPadding Padding `json:"containerPadding"`

	// LastRow selects the sizing policy for the final row (default [LastRowFill]).
	LastRow LastRowPolicy `json:"lastRow,omitempty"`
}

// UsableWidth returns the width left for boxes once horizontal padding is removed.
func (o Options) UsableWidth() float64 {
	return o.ContainerWidth - o.ContainerPadding.Horizontal()
}

// Validate checks every option for finiteness and sign, and that the
// padding leaves room for boxes.
func (o Options) Validate() error {
	if !isPositive(o.ContainerWidth) {
		return errors.New(errors.ErrCodeInvalidInput, "container width must be positive and finite, got %v", o.ContainerWidth)
	}
	if !isPositive(o.TargetRowHeight) {
		return errors.New(errors.ErrCodeInvalidInput, "target row height must be positive and finite, got %v", o.TargetRowHeight)
	}

	nonNegative := []struct {
		name string
		v    float64
	}{
		{"horizontal box spacing", o.BoxSpacing.Horizontal},
		{"vertical box spacing", o.BoxSpacing.Vertical},
		{"top padding", o.ContainerPadding.Top},
		{"right padding", o.ContainerPadding.Right},
		{"bottom padding", o.ContainerPadding.Bottom},
		{"left padding", o.ContainerPadding.Left},
	}
	for _, f := range nonNegative {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "%s must be non-negative and finite, got %v", f.name, f.v)
		}
	}

	if usable := o.UsableWidth(); usable <= 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"container width %v leaves no usable width after %v of horizontal padding",
			o.ContainerWidth, o.ContainerPadding.Horizontal())
	}

	return o.LastRow.Validate()
}

func isPositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
