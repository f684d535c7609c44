package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gitlite/flowgraph/pkg/graph"
	"github.com/gitlite/flowgraph/pkg/history"
	"github.com/gitlite/flowgraph/pkg/pipeline"
)

// layoutCommand creates the layout command for computing commit graph layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [history.json]",
		Short: "Compute the lane/edge layout for a history snapshot",
		Long: `Compute the lane/edge layout for a history snapshot.

The layout command takes a history.json file (the visible commit list plus
branch heads) and computes lane assignments, parent edges, and the derived
graph geometry. The output is a layout.json file.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the cache and recompute")

	// Geometry flags
	cmd.Flags().Float64Var(&opts.RowHeight, "row-height", 0, "row height in pixels")
	cmd.Flags().Float64Var(&opts.LaneWidth, "lane-width", 0, "lane width in pixels")
	cmd.Flags().Float64Var(&opts.LanePadding, "lane-padding", 0, "horizontal graph padding in pixels")
	cmd.Flags().Float64Var(&opts.NodeRadius, "node-radius", 0, "commit marker radius in pixels")
	cmd.Flags().Float64Var(&opts.MaxWidth, "max-width", 0, "maximum graph width before lanes compress")

	return cmd
}

// runLayout loads the snapshot, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	applyConfig(&opts, cfg)

	h, err := history.ReadHistoryFile(input)
	if err != nil {
		return fmt.Errorf("load history %s: %w", input, err)
	}
	if err := h.Validate(); err != nil {
		return fmt.Errorf("validate history %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	layout, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, h, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := graph.WriteLayoutFile(layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(h.Commits), layout.LaneCount, 0, cacheHit)
	printNewline()
	printNextStep("Group flows", "flowgraph flows "+input)

	return nil
}
