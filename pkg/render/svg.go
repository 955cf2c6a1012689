package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/scaduxx/folio/pkg/justify"
)

const svgCSS = `
    .box { fill: #1a1a1a; stroke: rgba(255,255,255,0.2); stroke-width: 1; transition: fill 0.2s ease; }
    a:hover .box { fill: #2a2a2a; }
    .label { fill: rgba(255,255,255,0.8); font: 500 14px Inter, system-ui, sans-serif; pointer-events: none; }
    .ratio { fill: rgba(255,255,255,0.35); font: 11px ui-monospace, monospace; }`

// RenderSVG draws every box as a rectangle. Labels are drawn in the top-left
// corner and the box's aspect ratio in the bottom-left corner.
func RenderSVG(l justify.Layout, opts ...Option) []byte {
	r := newRenderer(opts...)

	w, h := l.ContainerWidth, l.ContainerHeight
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", svgCSS)
	fmt.Fprintf(&buf, `  <rect class="frame" width="%.1f" height="%.1f" fill="%s"/>`+"\n", w, h, hexColor(r.background))

	for i, b := range l.Boxes {
		renderBox(&buf, &r, i, b)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderBox(buf *bytes.Buffer, r *renderer, i int, b justify.Box) {
	indent := "  "
	if href := r.link(i); href != "" {
		fmt.Fprintf(buf, `  <a href="%s">`+"\n", html.EscapeString(href))
		indent = "    "
	}

	fmt.Fprintf(buf, `%s<rect id="box-%d" class="box" x="%.2f" y="%.2f" width="%.2f" height="%.2f"/>`+"\n",
		indent, i, b.Left, b.Top, b.Width, b.Height)
	if label := r.label(i); label != "" {
		fmt.Fprintf(buf, `%s<text class="label" x="%.2f" y="%.2f">%s</text>`+"\n",
			indent, b.Left+12, b.Top+24, html.EscapeString(label))
	}
	if b.Height >= 40 {
		fmt.Fprintf(buf, `%s<text class="ratio" x="%.2f" y="%.2f">%.3f</text>`+"\n",
			indent, b.Left+12, b.Bottom()-10, b.AspectRatio())
	}

	if r.link(i) != "" {
		buf.WriteString("  </a>\n")
	}
}
