package cli

import (
	"github.com/spf13/cobra"
)

// datasetsCommand creates the datasets command listing the registry.
func (c *CLI) datasetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List the configured datasets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if len(cfg.Datasets) == 0 {
				printInfo("No datasets configured in %s", c.ConfigPath)
				return nil
			}

			for _, id := range cfg.DatasetIDs() {
				spec := cfg.Datasets[id]
				src, err := spec.Source()
				if err != nil {
					printKeyValue(id, StyleWarning.Render(err.Error()))
					continue
				}
				printKeyValue(id, src.Name())
			}
			return nil
		},
	}
}
