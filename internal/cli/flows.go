package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gitlite/flowgraph/pkg/flow"
	"github.com/gitlite/flowgraph/pkg/history"
	"github.com/gitlite/flowgraph/pkg/pipeline"
)

// flowsCommand creates the flows command for grouping commits into flows.
func (c *CLI) flowsCommand() *cobra.Command {
	var (
		output      string
		noCache     bool
		interactive bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "flows [history.json]",
		Short: "Resolve branch labels and group commits into flows",
		Long: `Resolve branch labels and group commits into flows.

The flows command takes a history.json file, resolves the best branch label
for every reachable commit, and collapses runs of related commits into flow
groups. The output is a flows.json file holding the label table and the
groups.

With --interactive the groups open in a terminal browser instead.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFlows(cmd.Context(), args[0], opts, output, noCache, interactive)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.flows.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the cache and recompute")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse groups in the terminal")

	// Grouping flags
	cmd.Flags().StringVar(&opts.FallbackLabel, "fallback-label", "", "label for commits no branch reaches")
	cmd.Flags().IntVar(&opts.MaxGroupSize, "max-group-size", 0, "maximum commits per group")
	cmd.Flags().Int64Var(&opts.Window, "window", 0, "grouping time window in seconds")

	return cmd
}

// runFlows loads the snapshot, runs the full pipeline, and writes or shows output.
func (c *CLI) runFlows(ctx context.Context, input string, opts pipeline.Options, output string, noCache, interactive bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	applyConfig(&opts, cfg)

	h, err := history.ReadHistoryFile(input)
	if err != nil {
		return fmt.Errorf("load history %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	track := newProgress(c.Logger)

	spinner := newSpinnerWithContext(ctx, "Grouping flows...")
	spinner.Start()

	result, err := runner.Execute(ctx, h, opts)
	if err != nil {
		spinner.StopWithError("Grouping failed")
		return fmt.Errorf("group flows: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	track.done(fmt.Sprintf("Grouped %d commits into %d flows", len(h.Commits), len(result.Flows.Groups)))

	if interactive {
		model := NewGroupListModel(result.Flows.Groups)
		if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil {
			return fmt.Errorf("run group browser: %w", err)
		}
		return nil
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".flows.json"
	}

	if err := flow.WriteResultFile(result.Flows, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Flows complete")
	printFile(outputPath)
	printStats(len(h.Commits), result.Layout.LaneCount, len(result.Flows.Groups), result.CacheInfo.FlowsHit)
	printNewline()
	printNextStep("Browse", "flowgraph flows --interactive "+input)

	return nil
}
