package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/coordviz/parcoords/pkg/errors"
	"github.com/coordviz/parcoords/pkg/pipeline"
)

// browseState is the BrowseModel state machine.
type browseState int

const (
	stateIdle    browseState = iota // no dataset selected yet
	stateLoading                    // a load is in flight
	stateReady                      // last load succeeded
	stateError                      // last load failed; prior chart kept
)

// loadFunc renders a dataset and returns the output path with stats.
type loadFunc func(ctx context.Context, datasetID string) (string, pipeline.Stats, error)

// chartLoadedMsg carries the outcome of an async load. Seq ties the result
// to the request that started it; stale results are dropped.
type chartLoadedMsg struct {
	Seq   int
	Path  string
	Stats pipeline.Stats
	Err   error
}

// tickMsg drives the loading spinner animation.
type tickMsg time.Time

// BrowseModel is the bubbletea model for interactive dataset browsing.
type BrowseModel struct {
	Datasets []string
	Cursor   int

	State browseState
	Seq   int // monotonic token of the latest issued load

	Path    string // output path of the last successful render
	Stats   pipeline.Stats
	ErrMsg  string
	Loading string // dataset currently loading

	load  loadFunc
	ctx   context.Context
	frame int
}

// NewBrowseModel creates a browse model over the configured dataset IDs.
func NewBrowseModel(ctx context.Context, datasets []string, load loadFunc) BrowseModel {
	return BrowseModel{
		Datasets: datasets,
		State:    stateIdle,
		load:     load,
		ctx:      ctx,
	}
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Datasets)-1 {
				m.Cursor++
			}
		case "enter":
			if len(m.Datasets) == 0 {
				return m, nil
			}
			return m.startLoad(m.Datasets[m.Cursor])
		}

	case chartLoadedMsg:
		if msg.Seq != m.Seq {
			return m, nil // stale result from a superseded load
		}
		if msg.Err != nil {
			m.State = stateError
			m.ErrMsg = errors.UserMessage(msg.Err)
			return m, nil
		}
		m.State = stateReady
		m.Path = msg.Path
		m.Stats = msg.Stats
		m.ErrMsg = ""
		return m, nil

	case tickMsg:
		if m.State != stateLoading {
			return m, nil
		}
		m.frame++
		return m, tick()
	}
	return m, nil
}

// startLoad issues an async load for datasetID, superseding any in-flight
// load by bumping the sequence token.
func (m BrowseModel) startLoad(datasetID string) (tea.Model, tea.Cmd) {
	m.Seq++
	m.State = stateLoading
	m.Loading = datasetID

	seq := m.Seq
	load := m.load
	ctx := m.ctx
	cmd := func() tea.Msg {
		path, stats, err := load(ctx, datasetID)
		return chartLoadedMsg{Seq: seq, Path: path, Stats: stats, Err: err}
	}
	return m, tea.Batch(cmd, tick())
}

func tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Dataset"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ⏎ render  q quit"))
	b.WriteString("\n\n")

	for i, id := range m.Datasets {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := cursor + id
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch m.State {
	case stateLoading:
		frame := spinnerFrames[m.frame%len(spinnerFrames)]
		b.WriteString(styleIconSpinner.Render(frame) + " " + StyleDim.Render(fmt.Sprintf("Rendering %s...", m.Loading)))
	case stateReady:
		b.WriteString(StyleSuccess.Render(iconSuccess) + " " + StyleValue.Render(m.Path))
		b.WriteString("\n")
		b.WriteString(StyleDim.Render(fmt.Sprintf("  %d records · %d dimensions", m.Stats.RecordCount, m.Stats.DimensionCount)))
	case stateError:
		b.WriteString(styleIconError.Render(iconError) + " " + StyleWarning.Render(m.ErrMsg))
		if m.Path != "" {
			b.WriteString("\n")
			b.WriteString(StyleDim.Render("  keeping " + m.Path))
		}
	}
	b.WriteString("\n")

	return b.String()
}

// browseCommand creates the browse command for interactive dataset rendering.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		width   float64
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Interactively pick a dataset and render it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if len(cfg.Datasets) == 0 {
				return errors.New(errors.ErrCodeInvalidConfig, "no datasets configured in %s", c.ConfigPath)
			}

			runner, err := c.newRunner(cmd.Context(), cfg, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			load := func(ctx context.Context, datasetID string) (string, pipeline.Stats, error) {
				opts := pipeline.Options{
					DatasetID: datasetID,
					Width:     width,
					Margins:   cfg.Chart.Margins,
					Rule:      cfg.Chart.Colors,
					Style:     cfg.Chart.Style,
					Logger:    loggerFromContext(ctx),
				}
				if opts.Width == 0 {
					opts.Width = cfg.Chart.Width
				}
				result, err := runner.Execute(ctx, opts)
				if err != nil {
					return "", pipeline.Stats{}, err
				}
				// Write directly; UI output would corrupt the TUI frame.
				path := datasetID + ".svg"
				if err := os.WriteFile(path, result.Artifacts[pipeline.FormatSVG], 0o644); err != nil {
					return "", pipeline.Stats{}, err
				}
				return path, result.Stats, nil
			}

			model := NewBrowseModel(cmd.Context(), cfg.DatasetIDs(), load)
			p := tea.NewProgram(model, tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().Float64Var(&width, "width", 0, "container width in pixels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
