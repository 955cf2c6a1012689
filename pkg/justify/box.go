package justify

// Box is the placement rectangle of a single item in container coordinates.
// The origin is the container's top-left corner and Y increases downward.
type Box struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the horizontal end of the box.
func (b Box) Right() float64 { return b.Left + b.Width }

// Bottom returns the vertical end of the box.
func (b Box) Bottom() float64 { return b.Top + b.Height }

// AspectRatio returns width divided by height, or 0 for a box without height.
func (b Box) AspectRatio() float64 {
	if b.Height == 0 {
		return 0
	}
	return b.Width / b.Height
}

// Row describes a run of consecutive boxes sharing the same top and height.
type Row struct {
	Start  int     `json:"start"` // index of the first box in the row
	Count  int     `json:"count"`
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// End returns the index one past the last box in the row.
func (r Row) End() int { return r.Start + r.Count }

// Layout is the result of [Build].
type Layout struct {
	// Boxes holds one rectangle per input aspect ratio, in input order.
	Boxes []Box `json:"boxes"`

	// Rows lists the rows top to bottom.
	Rows []Row `json:"rows"`

	// ContainerWidth echoes the width the layout was computed for.
	ContainerWidth float64 `json:"containerWidth"`

	// ContainerHeight is the minimal height that fits every row plus the
	// bottom padding.
	ContainerHeight float64 `json:"containerHeight"`
}

// RowOf returns the index of the row containing box i, or -1.
func (l Layout) RowOf(i int) int {
	for r, row := range l.Rows {
		if i >= row.Start && i < row.End() {
			return r
		}
	}
	return -1
}
