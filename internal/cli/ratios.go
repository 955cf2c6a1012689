package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/maruel/natural"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"github.com/scaduxx/folio/pkg/errors"
	"github.com/scaduxx/folio/pkg/justify"
)

// imageExts are the extensions picked up by --images.
var imageExts = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// parseRatio accepts a decimal ("1.5"), a proportion ("16:9") or pixel
// dimensions ("1600x900").
func parseRatio(s string) (float64, error) {
	s = strings.TrimSpace(s)
	for _, sep := range []string{":", "x", "X"} {
		a, b, ok := strings.Cut(s, sep)
		if !ok {
			continue
		}
		w, err1 := strconv.ParseFloat(a, 64)
		h, err2 := strconv.ParseFloat(b, 64)
		if err1 != nil || err2 != nil || h == 0 {
			return 0, errors.New(errors.ErrCodeInvalidInput, "invalid ratio %q", s)
		}
		return w / h, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid ratio %q", s)
	}
	return v, nil
}

// parseRatios parses every argument. Range checks are left to the engine
// so errors carry the offending index.
func parseRatios(args []string) ([]float64, error) {
	out := make([]float64, 0, len(args))
	for _, a := range args {
		v, err := parseRatio(a)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// readRatiosFile reads a JSON array of ratios, or an object with an
// "aspectRatios" array as accepted by the layout API.
func readRatiosFile(path string) ([]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	data = bytes.TrimSpace(data)

	var ratios []float64
	if len(data) > 0 && data[0] == '{' {
		var body struct {
			AspectRatios []float64 `json:"aspectRatios"`
		}
		err = json.Unmarshal(data, &body)
		ratios = body.AspectRatios
	} else {
		err = json.Unmarshal(data, &ratios)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", path)
	}
	return ratios, nil
}

// imageFiles lists the images in dir in natural order, so "shot2.jpg"
// precedes "shot10.jpg".
func imageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read directory %s", dir)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !slices.Contains(imageExts, strings.ToLower(filepath.Ext(e.Name()))) {
			continue
		}
		names = append(names, e.Name())
	}
	slices.SortFunc(names, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})

	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(dir, n)
	}
	return paths, nil
}

// probeRatios reads each image header concurrently and returns
// width/height per file, index-aligned with paths.
func probeRatios(ctx context.Context, paths []string, workers int) ([]float64, error) {
	ratios := make([]float64, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cfg, err := decodeConfig(path)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "read image %s", path)
			}
			if cfg.Height == 0 {
				return errors.New(errors.ErrCodeInvalidInput, "image %s has zero height", path)
			}
			ratios[i] = float64(cfg.Width) / float64(cfg.Height)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ratios, nil
}

func decodeConfig(path string) (image.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, err
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	return cfg, err
}

// parseSpacing reads "10" or "10,20" (horizontal, vertical).
func parseSpacing(s string) (justify.Spacing, error) {
	var sp justify.Spacing
	if err := sp.UnmarshalJSON(numberList(s)); err != nil {
		return sp, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid --spacing %q", s)
	}
	return sp, nil
}

// parsePadding reads "10", "10,20" (vertical, horizontal) or
// "10,20,10,20" (top, right, bottom, left).
func parsePadding(s string) (justify.Padding, error) {
	var p justify.Padding
	if err := p.UnmarshalJSON(numberList(s)); err != nil {
		return p, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid --padding %q", s)
	}
	return p, nil
}

// numberList turns a comma-separated flag value into a JSON array.
func numberList(s string) []byte {
	return []byte("[" + strings.TrimSpace(s) + "]")
}
