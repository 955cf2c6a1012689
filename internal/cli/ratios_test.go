package cli

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scaduxx/folio/pkg/errors"
	"github.com/scaduxx/folio/pkg/justify"
)

func TestParseRatio(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "1.5", want: 1.5},
		{in: " 2 ", want: 2},
		{in: "16:9", want: 16.0 / 9.0},
		{in: "1600x900", want: 16.0 / 9.0},
		{in: "300X600", want: 0.5},
		{in: "-1", want: -1},
		{in: "4:0", wantErr: true},
		{in: "wide", wantErr: true},
		{in: "a:b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseRatio(tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "err = %v", err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestReadRatiosFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return path
	}

	got, err := readRatiosFile(write("list.json", "[1.5, 1, 0.5]"))
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 1, 0.5}, got)

	got, err = readRatiosFile(write("body.json", `{"aspectRatios": [2, 1], "containerWidth": 900}`))
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 1}, got)

	_, err = readRatiosFile(write("bad.json", `["wide"]`))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	_, err = readRatiosFile(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, w, h))))
}

func imageDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "shot10.png"), 40, 80)
	writePNG(t, filepath.Join(dir, "shot2.png"), 60, 20)
	writePNG(t, filepath.Join(dir, "shot1.png"), 30, 20)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "raw.png"), 0o755))
	return dir
}

func TestImageFilesNaturalOrder(t *testing.T) {
	dir := imageDir(t)

	paths, err := imageFiles(dir)
	require.NoError(t, err)

	var names []string
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	assert.Equal(t, []string{"shot1.png", "shot2.png", "shot10.png"}, names)
}

func TestProbeRatios(t *testing.T) {
	dir := imageDir(t)
	paths, err := imageFiles(dir)
	require.NoError(t, err)

	ratios, err := probeRatios(context.Background(), paths, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 3, 0.5}, ratios)

	broken := filepath.Join(dir, "broken.png")
	require.NoError(t, os.WriteFile(broken, []byte("not an image"), 0o644))
	_, err = probeRatios(context.Background(), []string{broken}, 1)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestParseSpacingAndPadding(t *testing.T) {
	sp, err := parseSpacing("10")
	require.NoError(t, err)
	assert.Equal(t, justify.UniformSpacing(10), sp)

	sp, err = parseSpacing("4, 8")
	require.NoError(t, err)
	assert.Equal(t, justify.Spacing{Horizontal: 4, Vertical: 8}, sp)

	p, err := parsePadding("10,20")
	require.NoError(t, err)
	assert.Equal(t, justify.Padding{Top: 10, Right: 20, Bottom: 10, Left: 20}, p)

	p, err = parsePadding("1,2,3,4")
	require.NoError(t, err)
	assert.Equal(t, justify.Padding{Top: 1, Right: 2, Bottom: 3, Left: 4}, p)

	_, err = parsePadding("1,2,3")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
	_, err = parseSpacing("wide")
	assert.Error(t, err)
}
