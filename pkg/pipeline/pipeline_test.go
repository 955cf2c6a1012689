package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"math"
	"testing"

	"github.com/scaduxx/folio/pkg/cache"
	"github.com/scaduxx/folio/pkg/errors"
	"github.com/scaduxx/folio/pkg/justify"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"json", false},
		{"pdf", true},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"json"}},
		{"svg", []string{"svg"}},
		{" SVG , png,,", []string{"svg", "png"}},
	}

	for _, tt := range tests {
		got := ParseFormats(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
		}
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()

	if opts.ContainerWidth != DefaultWidth {
		t.Errorf("ContainerWidth should be %v, got %v", DefaultWidth, opts.ContainerWidth)
	}
	if opts.TargetRowHeight != DefaultRowHeight {
		t.Errorf("TargetRowHeight should be %v, got %v", DefaultRowHeight, opts.TargetRowHeight)
	}
	if opts.LastRow != justify.LastRowFill {
		t.Errorf("LastRow should be fill, got %q", opts.LastRow)
	}
	if opts.BoxSpacing.Horizontal != 0 || opts.ContainerPadding.Top != 0 {
		t.Error("spacing and padding should stay zero")
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats should be [json], got %v", opts.Formats)
	}
	if opts.Scale != 1 {
		t.Errorf("Scale should be 1, got %v", opts.Scale)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{AspectRatios: []float64{1, 2}}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	width := opts.ContainerWidth

	opts.ContainerWidth = 0 // not revisited once validated
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if opts.ContainerWidth != 0 || width != DefaultWidth {
		t.Error("second call should be a no-op")
	}
}

func TestOptionsValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"negative width", Options{Options: justify.Options{ContainerWidth: -1}}},
		{"padding wider than container", Options{Options: justify.Options{ContainerWidth: 100, ContainerPadding: justify.UniformPadding(50)}}},
		{"negative spacing", Options{Options: justify.Options{BoxSpacing: justify.UniformSpacing(-1)}}},
		{"unknown last row", Options{Options: justify.Options{LastRow: "stretch"}}},
		{"unknown format", Options{Formats: []string{"gif"}}},
		{"negative scale", Options{Scale: -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("want INVALID_INPUT, got %v", err)
			}
		})
	}
}

func TestOptionsJSON(t *testing.T) {
	body := `{"aspectRatios": [1.5, 1], "containerWidth": 930, "targetRowHeight": 300,
		"boxSpacing": 10, "containerPadding": [10, 20], "lastRow": "natural", "formats": ["svg"]}`

	var opts Options
	if err := json.Unmarshal([]byte(body), &opts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(opts.AspectRatios) != 2 || opts.ContainerWidth != 930 || opts.TargetRowHeight != 300 {
		t.Errorf("unexpected options: %+v", opts)
	}
	if opts.BoxSpacing != justify.UniformSpacing(10) {
		t.Errorf("BoxSpacing = %+v", opts.BoxSpacing)
	}
	want := justify.Padding{Top: 10, Right: 20, Bottom: 10, Left: 20}
	if opts.ContainerPadding != want {
		t.Errorf("ContainerPadding = %+v, want %+v", opts.ContainerPadding, want)
	}
	if opts.LastRow != justify.LastRowNatural {
		t.Errorf("LastRow = %q", opts.LastRow)
	}
}

func TestLayoutKeyOpts(t *testing.T) {
	a := Options{Options: justify.Options{ContainerWidth: 900, TargetRowHeight: 300}}
	b := a
	b.LastRow = justify.LastRowNatural

	keyer := cache.NewDefaultKeyer()
	if keyer.LayoutKey("h", a.LayoutKeyOpts()) == keyer.LayoutKey("h", b.LayoutKeyOpts()) {
		t.Error("last-row policy must change the layout key")
	}

	a.AspectRatios = []float64{1, 2}
	b.AspectRatios = []float64{2, 1}
	if a.RatiosHash() == b.RatiosHash() {
		t.Error("ratio order must change the ratios hash")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Scale: 1, ImagesKey: "imgs"}
	if k := opts.ArtifactKeyOpts(FormatSVG); k.LabelsHash != "" || k.ImagesHash != "" {
		t.Errorf("plain options should leave hashes empty: %+v", k)
	}

	opts.Labels = []string{"a"}
	if k := opts.ArtifactKeyOpts(FormatSVG); k.LabelsHash == "" {
		t.Error("labels should be hashed")
	}

	if k := opts.ArtifactKeyOpts(FormatPNG); k.ImagesHash != "" {
		t.Error("images hash needs images")
	}
}

func TestRunnerExecute(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	ctx := context.Background()

	opts := Options{
		AspectRatios: []float64{1.5, 1, 2, 0.5, 1},
		Options: justify.Options{
			ContainerWidth:   400,
			TargetRowHeight:  100,
			BoxSpacing:       justify.UniformSpacing(10),
			ContainerPadding: justify.UniformPadding(10),
		},
		Formats: []string{FormatSVG, FormatJSON},
		Labels:  []string{"a", "b"},
	}

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}
	if first.Stats.Items != 5 || first.Stats.Rows != 2 {
		t.Errorf("Stats = %+v", first.Stats)
	}
	if math.Abs(first.Layout.ContainerHeight-356.6667) > 1e-3 {
		t.Errorf("ContainerHeight = %v", first.Layout.ContainerHeight)
	}
	if !bytes.HasPrefix(first.Artifacts[FormatSVG], []byte("<svg")) {
		t.Error("missing svg artifact")
	}
	if first.LayoutHash == "" {
		t.Error("missing layout hash")
	}

	second, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit the cache: %+v", second.CacheInfo)
	}
	if second.LayoutHash != first.LayoutHash {
		t.Error("cached layout differs")
	}
	if !bytes.Equal(second.Artifacts[FormatJSON], first.Artifacts[FormatJSON]) {
		t.Error("cached json differs")
	}

	opts.Refresh = true
	third, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestRunnerLayoutErrors(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	ctx := context.Background()

	_, err := runner.Layout(ctx, Options{AspectRatios: []float64{1, 0, 2}})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("want INVALID_INPUT, got %v", err)
	}
	var ratioErr *justify.RatioError
	if !stderrors.As(err, &ratioErr) || ratioErr.Index != 1 {
		t.Errorf("want RatioError at index 1, got %v", err)
	}
}

func TestRunnerEmpty(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Layout.ContainerHeight != 0 || len(result.Layout.Rows) != 0 {
		t.Errorf("empty input should give an empty layout: %+v", result.Layout)
	}
	if len(result.Artifacts[FormatJSON]) == 0 {
		t.Error("json artifact should still be rendered")
	}
}
