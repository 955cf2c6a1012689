package justify

import (
	"fmt"
	"math"

	"github.com/scaduxx/folio/pkg/errors"
)

// RatioError reports an aspect ratio that is not a positive finite number.
type RatioError struct {
	Index int
	Value float64
}

func (e *RatioError) Error() string {
	return fmt.Sprintf("aspect ratio %v at index %d is not a positive finite number", e.Value, e.Index)
}

// Build lays out items with the given aspect ratios into justified rows.
//
// Options are validated before the ratios, so a bad configuration is
// reported even for empty input. The returned Layout holds exactly one
// box per ratio in input order.
func Build(aspectRatios []float64, opts Options) (Layout, error) {
	if err := opts.Validate(); err != nil {
		return Layout{}, err
	}
	for i, r := range aspectRatios {
		if !isPositive(r) {
			return Layout{}, errors.Wrap(errors.ErrCodeInvalidInput, &RatioError{Index: i, Value: r},
				"invalid aspect ratio at index %d", i)
		}
	}

	l := Layout{
		Boxes:          make([]Box, len(aspectRatios)),
		Rows:           []Row{},
		ContainerWidth: opts.ContainerWidth,
	}
	if len(aspectRatios) == 0 {
		return l, nil
	}

	var (
		usable = opts.UsableWidth()
		target = opts.TargetRowHeight
		sh     = opts.BoxSpacing.Horizontal
		sv     = opts.BoxSpacing.Vertical
		top    = opts.ContainerPadding.Top
	)

	for start := 0; start < len(aspectRatios); {
		count := packRow(aspectRatios[start:], usable, target, sh)
		ratios := aspectRatios[start : start+count]

		h := fillHeight(ratios, usable, sh)
		if start+count == len(aspectRatios) && opts.LastRow == LastRowNatural {
			h = math.Min(target, h)
		}
		if !isPositive(h) || !isFinite(top+h) {
			return Layout{}, geometryError(start)
		}

		left := opts.ContainerPadding.Left
		for i, r := range ratios {
			w := h * r
			if !isPositive(w) || !isFinite(left+w) {
				return Layout{}, geometryError(start)
			}
			l.Boxes[start+i] = Box{Top: top, Left: left, Width: w, Height: h}
			left += w + sh
		}
		l.Rows = append(l.Rows, Row{Start: start, Count: count, Top: top, Height: h})

		top += h + sv
		start += count
	}

	last := l.Rows[len(l.Rows)-1]
	l.ContainerHeight = last.Top + last.Height + opts.ContainerPadding.Bottom
	if !isFinite(l.ContainerHeight) {
		return Layout{}, geometryError(last.Start)
	}
	return l, nil
}

// geometryError reports a row whose heights or widths fall outside the
// float64 range, e.g. from subnormal ratios or extreme widths.
func geometryError(start int) error {
	return errors.New(errors.ErrCodeInvalidInput,
		"row starting at index %d has no finite geometry; aspect ratios or sizes are out of range", start)
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// packRow returns how many of the leading ratios form the next row.
//
// Items are taken while their natural width at the target height fits.
// On the first overflow the row closes either before or after the
// overflowing item, whichever fill height is relatively closer to the
// target. Ties include the item. A lone item that overflows forms a row
// on its own. It always returns at least 1.
func packRow(ratios []float64, usable, target, sh float64) int {
	var sum float64
	for i, r := range ratios {
		sum += r
		if sum*target+float64(i)*sh <= usable {
			continue
		}
		if i == 0 {
			return 1
		}

		// Including the item needs room for its spacing at any height.
		if usable-float64(i)*sh <= 0 {
			return i
		}
		without := fillHeight(ratios[:i], usable, sh)
		with := fillHeight(ratios[:i+1], usable, sh)
		if deviation(with, target) <= deviation(without, target) {
			return i + 1
		}
		return i
	}
	return len(ratios)
}

// fillHeight is the height at which ratios plus spacing span exactly usable.
func fillHeight(ratios []float64, usable, sh float64) float64 {
	var sum float64
	for _, r := range ratios {
		sum += r
	}
	return (usable - float64(len(ratios)-1)*sh) / sum
}

func deviation(h, target float64) float64 {
	return math.Abs(h/target - 1)
}
