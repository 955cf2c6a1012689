package cli

import (
	"context"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/scaduxx/folio/pkg/content"
)

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var rowHeight float64

	cmd := &cobra.Command{
		Use:   "preview [ratio...]",
		Short: "Preview the home grid in the terminal",
		Long: `Preview the home grid in the terminal.

Without arguments the projects come from the configured content source and
are laid out with the [grid] policy from folio.toml. With ratios, each
ratio becomes a numbered card. Resize the terminal to watch the grid
re-flow; each column stands for 8 pixels.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, policy, err := c.previewInput(cmd.Context(), args)
			if err != nil {
				return err
			}
			if rowHeight > 0 {
				policy.TargetRowHeight = rowHeight
			}
			p := tea.NewProgram(NewPreviewModel(projects, policy),
				tea.WithContext(cmd.Context()),
				tea.WithAltScreen(),
				tea.WithOutput(cmd.OutOrStdout()))
			_, err = p.Run()
			return err
		},
	}
	cmd.Flags().Float64Var(&rowHeight, "row-height", 0, "target row height in pixels (default from [grid])")

	return cmd
}

// previewInput returns the projects to preview and the grid policy.
func (c *CLI) previewInput(ctx context.Context, args []string) ([]content.Project, content.GridPolicy, error) {
	if len(args) > 0 {
		ratios, err := parseRatios(args)
		if err != nil {
			return nil, content.GridPolicy{}, err
		}
		return ratioProjects(ratios), ratioPolicy(), nil
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return nil, content.GridPolicy{}, err
	}
	src, closeSource, err := c.openSource(ctx, cfg)
	if err != nil {
		return nil, content.GridPolicy{}, err
	}
	defer closeSource()

	projects, err := src.Projects(ctx)
	if err != nil {
		return nil, content.GridPolicy{}, err
	}
	return projects, cfg.Grid, nil
}

// ratioProjects wraps bare ratios as numbered projects.
func ratioProjects(ratios []float64) []content.Project {
	projects := make([]content.Project, len(ratios))
	for i, r := range ratios {
		projects[i] = content.Project{
			Title:       fmt.Sprintf("%d · %s", i+1, strconv.FormatFloat(r, 'g', 4, 64)),
			AspectRatio: r,
		}
	}
	return projects
}

// ratioPolicy is the default grid without the small-screen override, so
// given ratios are always honoured.
func ratioPolicy() content.GridPolicy {
	p := content.DefaultGridPolicy()
	p.SmallScreenWidth = 0
	p.TargetRowHeight = 160
	return p
}
