package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scaduxx/folio/pkg/cache"
	"github.com/scaduxx/folio/pkg/errors"
	"github.com/scaduxx/folio/pkg/justify"
	"github.com/scaduxx/folio/pkg/pipeline"
	"github.com/scaduxx/folio/pkg/render"
)

// formatTable prints the layout as a terminal table. It is CLI-only; the
// pipeline formats are svg, png and json.
const formatTable = "table"

type layoutFlags struct {
	ratiosFile string
	imagesDir  string
	spacing    string
	padding    string
	lastRow    string
	format     string
	output     string
	noCache    bool
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var f layoutFlags
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()

	cmd := &cobra.Command{
		Use:   "layout [ratio...]",
		Short: "Lay out aspect ratios as a justified grid",
		Long: `Lay out aspect ratios as a justified grid.

Ratios come from the arguments (1.5, 16:9 or 1600x900), from a JSON file
(--ratios-file), or from the images in a directory (--images), read in
natural file-name order.

Formats:
  table  box geometry as a table (default)
  json   the layout as JSON
  svg    a wireframe of the grid
  png    a contact sheet; with --images each box shows its image

Results are cached locally for faster subsequent runs.`,
		Example: `  folio layout 1.5 1 2 0.5 1 --width 400 --row-height 100 --spacing 10 --padding 10
  folio layout --images ./stills --format png -o sheet.png
  folio layout --ratios-file ratios.json --format svg --last-row natural`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args, opts, f)
		},
	}

	cmd.Flags().StringVar(&f.ratiosFile, "ratios-file", "", "JSON file with an array of aspect ratios")
	cmd.Flags().StringVar(&f.imagesDir, "images", "", "directory of images to lay out")
	cmd.Flags().Float64Var(&opts.ContainerWidth, "width", opts.ContainerWidth, "container width")
	cmd.Flags().Float64Var(&opts.TargetRowHeight, "row-height", opts.TargetRowHeight, "target row height")
	cmd.Flags().StringVar(&f.spacing, "spacing", "0", "box spacing: gap or horizontal,vertical")
	cmd.Flags().StringVar(&f.padding, "padding", "0", "container padding: all, vertical,horizontal or top,right,bottom,left")
	cmd.Flags().StringVar(&f.lastRow, "last-row", string(opts.LastRow), "last row policy: fill, natural")
	cmd.Flags().StringVarP(&f.format, "format", "f", formatTable, "output format: table, json, svg, png")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default: stdout, layout.png for png)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "pixel scale for png output")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runLayout gathers the ratios, computes the layout and writes it out.
func (c *CLI) runLayout(ctx context.Context, stdout, stderr io.Writer, args []string, opts pipeline.Options, f layoutFlags) error {
	format := strings.ToLower(f.format)
	if format != formatTable {
		if err := pipeline.ValidateFormat(format); err != nil {
			return err
		}
	}

	var err error
	if opts.BoxSpacing, err = parseSpacing(f.spacing); err != nil {
		return err
	}
	if opts.ContainerPadding, err = parsePadding(f.padding); err != nil {
		return err
	}
	opts.LastRow = justify.LastRowPolicy(strings.ToLower(f.lastRow))

	paths, err := c.gatherRatios(ctx, stderr, args, f, &opts)
	if err != nil {
		return err
	}
	if format == pipeline.FormatPNG && len(paths) > 0 {
		if err := loadImages(ctx, paths, &opts); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(f.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	if format == formatTable {
		layout, hit, err := runner.LayoutWithCacheInfo(ctx, opts)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, layoutTable(layout))
		fmt.Fprintf(stdout, "container %s × %s\n", num(layout.ContainerWidth), num(layout.ContainerHeight))
		printStats(stderr, len(layout.Boxes), len(layout.Rows), hit)
		return nil
	}

	opts.Formats = []string{format}
	spinner := newSpinner(ctx, stderr, fmt.Sprintf("Laying out %d items...", len(opts.AspectRatios)))
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	spinner.Stop()
	if err != nil {
		return err
	}

	data := result.Artifacts[format]
	output := f.output
	if output == "" && format == pipeline.FormatPNG {
		output = "layout.png"
	}
	if output == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess(stderr, "Layout complete")
	printFile(stderr, output)
	printStats(stderr, result.Stats.Items, result.Stats.Rows, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	return nil
}

// gatherRatios fills opts.AspectRatios from exactly one input. For an image
// directory it also sets labels and returns the image paths.
func (c *CLI) gatherRatios(ctx context.Context, stderr io.Writer, args []string, f layoutFlags, opts *pipeline.Options) ([]string, error) {
	inputs := 0
	for _, set := range []bool{len(args) > 0, f.ratiosFile != "", f.imagesDir != ""} {
		if set {
			inputs++
		}
	}
	if inputs != 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "give ratios as arguments, --ratios-file or --images (exactly one)")
	}

	switch {
	case f.ratiosFile != "":
		ratios, err := readRatiosFile(f.ratiosFile)
		if err != nil {
			return nil, err
		}
		opts.AspectRatios = ratios
		return nil, nil

	case f.imagesDir != "":
		prog := newProgress(loggerFromContext(ctx))
		paths, err := imageFiles(f.imagesDir)
		if err != nil {
			return nil, err
		}
		if len(paths) == 0 {
			printWarning(stderr, "No images found in %s", f.imagesDir)
		}
		ratios, err := probeRatios(ctx, paths, runtime.NumCPU())
		if err != nil {
			return nil, err
		}
		prog.done(fmt.Sprintf("Read %d images", len(paths)))
		opts.AspectRatios = ratios
		opts.Labels = make([]string, len(paths))
		for i, p := range paths {
			opts.Labels[i] = filepath.Base(p)
		}
		return paths, nil

	default:
		ratios, err := parseRatios(args)
		if err != nil {
			return nil, err
		}
		opts.AspectRatios = ratios
		return nil, nil
	}
}

// loadImages decodes the images for the png contact sheet and keys them
// by path and modification time.
func loadImages(ctx context.Context, paths []string, opts *pipeline.Options) error {
	images, err := render.LoadImages(ctx, paths, runtime.NumCPU())
	if err != nil {
		return err
	}
	var key strings.Builder
	for _, p := range paths {
		key.WriteString(p)
		if info, err := os.Stat(p); err == nil {
			fmt.Fprintf(&key, "@%d", info.ModTime().UnixNano())
		}
		key.WriteByte('\n')
	}
	opts.Images = images
	opts.ImagesKey = cache.Hash([]byte(key.String()))
	return nil
}
