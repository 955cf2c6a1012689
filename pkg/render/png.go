package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"github.com/scaduxx/folio/pkg/errors"
	"github.com/scaduxx/folio/pkg/justify"
)

// maxPNGSide bounds each side of a rendered contact sheet.
const maxPNGSide = 16384

// RenderPNG draws a contact sheet. Each supplied image is scaled to cover
// its box and cropped around the centre, the way object-fit: cover does.
// Boxes without an image get a placeholder tile.
func RenderPNG(l justify.Layout, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)

	w := int(math.Round(l.ContainerWidth * r.scale))
	h := int(math.Round(l.ContainerHeight * r.scale))
	if w < 1 || h < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nothing to render: layout is %.0fx%.0f", l.ContainerWidth, l.ContainerHeight)
	}
	if w > maxPNGSide || h > maxPNGSide {
		return nil, errors.New(errors.ErrCodeInvalidInput, "contact sheet too large: %dx%d (max %d per side)", w, h, maxPNGSide)
	}

	canvas := imaging.New(w, h, r.background)
	for i, b := range l.Boxes {
		rect := scaleRect(b, r.scale)
		if rect.Dx() < 1 || rect.Dy() < 1 {
			continue
		}

		var tile *image.NRGBA
		if img := r.image(i); img != nil {
			tile = imaging.Fill(img, rect.Dx(), rect.Dy(), imaging.Center, imaging.Lanczos)
		} else {
			tile = imaging.New(rect.Dx(), rect.Dy(), r.tile)
		}
		canvas = imaging.Paste(canvas, tile, rect.Min)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// scaleRect snaps a box to whole pixels. Edges are rounded independently
// so neighbouring boxes keep their gap.
func scaleRect(b justify.Box, scale float64) image.Rectangle {
	px := func(v float64) int { return int(math.Round(v * scale)) }
	return image.Rect(px(b.Left), px(b.Top), px(b.Right()), px(b.Bottom()))
}

// LoadImages opens image files concurrently, applying EXIF orientation.
// The result is index-aligned with paths.
func LoadImages(ctx context.Context, paths []string, workers int) ([]image.Image, error) {
	images := make([]image.Image, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := imaging.Open(path, imaging.AutoOrientation(true))
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "open image %s", path)
			}
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

func hexColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}
