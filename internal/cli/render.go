package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coordviz/parcoords/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string  // output file path (or base path for multiple formats)
	formats  string  // comma-separated output formats: svg, png, pdf
	style    string  // visual style: simple or midnight
	width    float64 // container width the layout adapts to
	title    string  // optional chart title
	noLegend bool    // suppress the color legend
	noCache  bool    // disable caching
	refresh  bool    // bypass the data cache for this run
}

// renderCommand creates the render command for one-shot chart generation.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [dataset]",
		Short: "Render a dataset as a parallel-coordinates chart",
		Long: `Render a configured dataset as a parallel-coordinates chart.

The dataset must be declared in the configuration file. Column types are
inferred from the data unless the dataset declares a static schema. Results
are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(opts.formats)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			if opts.style != "" {
				if err := pipeline.ValidateStyle(opts.style); err != nil {
					return err
				}
			}
			return c.runRender(cmd.Context(), args[0], formats, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().StringVar(&opts.style, "style", "", "visual style: simple (default), midnight")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "container width in pixels")
	cmd.Flags().StringVar(&opts.title, "title", "", "chart title")
	cmd.Flags().BoolVar(&opts.noLegend, "no-legend", false, "suppress the color legend")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "refetch the dataset, bypassing the data cache")

	return cmd
}

// runRender executes the pipeline and writes the requested artifacts.
func (c *CLI) runRender(ctx context.Context, datasetID string, formats []string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	pOpts := pipeline.Options{
		DatasetID: datasetID,
		Width:     opts.width,
		Margins:   cfg.Chart.Margins,
		Rule:      cfg.Chart.Colors,
		Style:     opts.style,
		Formats:   formats,
		NoLegend:  opts.noLegend,
		Title:     opts.title,
		Refresh:   opts.refresh,
		Logger:    logger,
	}
	if pOpts.Width == 0 {
		pOpts.Width = cfg.Chart.Width
	}
	if pOpts.Style == "" {
		pOpts.Style = cfg.Chart.Style
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", datasetID))
	spinner.Start()

	result, err := runner.Execute(ctx, pOpts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	printStats(result.Stats.RecordCount, result.Stats.DimensionCount, result.CacheInfo.RenderHit)

	return writeArtifacts(result.Artifacts, formats, datasetID, opts.output)
}

// basePath derives the base output path from the output path and dataset ID.
// If output is empty, the dataset ID is used. If output carries a format
// extension (.svg, .png, .pdf), that extension is stripped.
func basePath(output, datasetID string) string {
	if output == "" {
		return datasetID
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes each rendered format to its own file.
// A single format with an explicit output path keeps the path as given;
// otherwise paths are derived as base.format.
func writeArtifacts(artifacts map[string][]byte, formats []string, datasetID, output string) error {
	if len(formats) == 1 && output != "" {
		return writeArtifact(output, artifacts[formats[0]])
	}

	base := basePath(output, datasetID)
	for _, format := range formats {
		path := fmt.Sprintf("%s.%s", base, format)
		if err := writeArtifact(path, artifacts[format]); err != nil {
			return err
		}
	}
	return nil
}

func writeArtifact(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)
	return nil
}
