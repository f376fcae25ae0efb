package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/coordviz/parcoords/pkg/config"
	"github.com/coordviz/parcoords/pkg/dataset"
	"github.com/coordviz/parcoords/pkg/debounce"
	"github.com/coordviz/parcoords/pkg/errors"
	"github.com/coordviz/parcoords/pkg/pipeline"
)

// watchPollInterval is how often the dataset file's mtime is checked.
const watchPollInterval = 500 * time.Millisecond

// watchCommand creates the watch command: re-render on dataset file change.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		output string
		style  string
		width  float64
	)

	cmd := &cobra.Command{
		Use:   "watch [dataset]",
		Short: "Re-render a dataset whenever its file changes",
		Long: `Watch a file-backed dataset and re-render its chart on every change.

Change events are debounced: rapid successive writes (editor save, data
export) trigger a single render after the configured quiet period. Only
datasets with a file source can be watched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return c.runWatch(cmd.Context(), cfg, args[0], output, style, width)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <dataset>.svg)")
	cmd.Flags().StringVar(&style, "style", "", "visual style: simple (default), midnight")
	cmd.Flags().Float64Var(&width, "width", 0, "container width in pixels")

	return cmd
}

func (c *CLI) runWatch(ctx context.Context, cfg config.Config, datasetID, output, style string, width float64) error {
	logger := loggerFromContext(ctx)

	spec, ok := cfg.Datasets[datasetID]
	if !ok {
		return errors.New(errors.ErrCodeDatasetNotFound, "unknown dataset %q", datasetID)
	}
	src, err := spec.Source()
	if err != nil {
		return err
	}
	fileSrc, ok := src.(dataset.FileSource)
	if !ok {
		return errors.New(errors.ErrCodeUnsupported, "dataset %q is not file-backed; only file sources can be watched", datasetID)
	}

	runner, err := c.newRunner(ctx, cfg, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if output == "" {
		output = datasetID + ".svg"
	}

	render := func() {
		opts := pipeline.Options{
			DatasetID: datasetID,
			Width:     width,
			Margins:   cfg.Chart.Margins,
			Rule:      cfg.Chart.Colors,
			Style:     style,
			Refresh:   true,
			Logger:    logger,
		}
		if opts.Width == 0 {
			opts.Width = cfg.Chart.Width
		}
		if opts.Style == "" {
			opts.Style = cfg.Chart.Style
		}

		p := newProgress(logger)
		result, err := runner.Execute(ctx, opts)
		if err != nil {
			printError("%s", errors.UserMessage(err))
			return
		}
		if err := os.WriteFile(output, result.Artifacts[pipeline.FormatSVG], 0o644); err != nil {
			printError("write %s: %v", output, err)
			return
		}
		p.done(fmt.Sprintf("Rendered %s (%d records)", output, result.Stats.RecordCount))
	}

	// Initial render, then poll for changes.
	render()
	printInfo("Watching %s (quiet period %s)", fileSrc.Path, cfg.Debounce.Quiet())

	deb := debounce.New(cfg.Debounce.Quiet())
	defer deb.Stop()

	ticker := time.NewTicker(watchPollInterval)
	defer ticker.Stop()

	lastMod := modTime(fileSrc.Path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			mod := modTime(fileSrc.Path)
			if mod.IsZero() || mod.Equal(lastMod) {
				continue
			}
			lastMod = mod
			deb.Trigger(render)
		}
	}
}

// modTime returns the file's modification time, zero if unreadable.
func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
