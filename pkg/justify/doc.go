// Package justify computes justified image layouts.
//
// # Overview
//
// A justified layout arranges items of varying aspect ratios into rows whose
// heights are chosen so that every row spans the full container width while
// staying close to a target row height. This is the arrangement used by photo
// galleries such as Flickr and Google Photos.
//
// [Build] takes the aspect ratio (width / height) of every item, in display
// order, and returns one [Box] per item together with the container height
// needed to fit all rows:
//
//	l, err := justify.Build([]float64{1.5, 0.75, 1, 1.78}, justify.Options{
//	    ContainerWidth:  1200,
//	    TargetRowHeight: 340,
//	    BoxSpacing:      justify.UniformSpacing(10),
//	})
//	if err != nil {
//	    return err
//	}
//	for i, b := range l.Boxes {
//	    fmt.Printf("item %d at (%.0f, %.0f) size %.0fx%.0f\n", i, b.Left, b.Top, b.Width, b.Height)
//	}
//
// # Row Packing
//
// Items are accumulated left to right while the row's natural width (every
// item scaled to the target height, plus spacing) still fits the usable
// width. When the next item would overflow, the row is closed either before
// or after that item, whichever leaves the row's height closer to the target.
// The chosen row is then scaled so its items exactly fill the usable width.
//
// # Last Row
//
// The final row is governed by [Options.LastRow]:
//
//   - [LastRowFill] (default): stretched to the full width like every other row
//   - [LastRowNatural]: kept at the target height, shrinking only if it would overflow
//
// # Errors
//
// Invalid options or aspect ratios produce an *errors.Error with code
// INVALID_INPUT. Aspect ratio failures wrap a [*RatioError] carrying the
// offending index. No partial layout is returned on failure.
//
// Empty input is not an error: it yields no boxes and a container height of
// 0. Container padding is not added for empty input, so neither the top nor
// the bottom padding contributes to the height.
//
// [Build] is a pure function. It keeps no state between calls and is safe
// for concurrent use.
package justify
