package render

import (
	"encoding/json"

	"github.com/scaduxx/folio/pkg/justify"
)

// Export is the document written by [RenderJSON].
type Export struct {
	ContainerWidth  float64          `json:"containerWidth"`
	ContainerHeight float64          `json:"containerHeight"`
	Options         *justify.Options `json:"options,omitempty"`
	Rows            []justify.Row    `json:"rows"`
	Boxes           []ExportBox      `json:"boxes"`
}

// ExportBox is a box with its row and optional caption.
type ExportBox struct {
	justify.Box
	Index int    `json:"index"`
	Row   int    `json:"row"`
	Label string `json:"label,omitempty"`
	Link  string `json:"link,omitempty"`
}

// NewExport builds the export document without encoding it.
func NewExport(l justify.Layout, opts ...Option) Export {
	r := newRenderer(opts...)

	rows := l.Rows
	if rows == nil {
		rows = []justify.Row{}
	}
	e := Export{
		ContainerWidth:  l.ContainerWidth,
		ContainerHeight: l.ContainerHeight,
		Options:         r.opts,
		Rows:            rows,
		Boxes:           make([]ExportBox, len(l.Boxes)),
	}
	for n, row := range rows {
		for i := row.Start; i < row.End() && i < len(l.Boxes); i++ {
			e.Boxes[i].Row = n
		}
	}
	for i, b := range l.Boxes {
		e.Boxes[i].Box = b
		e.Boxes[i].Index = i
		e.Boxes[i].Label = r.label(i)
		e.Boxes[i].Link = r.link(i)
	}
	return e
}

// RenderJSON encodes the layout as indented JSON.
func RenderJSON(l justify.Layout, opts ...Option) ([]byte, error) {
	data, err := json.MarshalIndent(NewExport(l, opts...), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
