package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/newrelic/nrdot-release-metrics/internal/external-adapters/yaml"
)

func newListCommand(a *app, state *commandState) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the distributions found in the distributions directory",
		Example: `  release-metrics list
  release-metrics list --distributions-dir ./distributions`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := state.cfg
			repo := yaml.NewDistributionRepository(cfg.DistributionsDir, a.logger)

			dists, err := repo.ListDistributions(cmd.Context())
			if err != nil {
				return fmt.Errorf("error listing distributions: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Distributions in %s (%d total):\n\n", cfg.DistributionsDir, len(dists))

			for _, d := range dists {
				if d.Manifest == nil {
					fmt.Fprintf(out, "  %-28s (manifest unreadable)\n\n", d.Name)
					continue
				}

				fmt.Fprintf(out, "  %-28s %s\n", d.Name, d.Manifest.Description)
				if d.Manifest.Version != "" {
					fmt.Fprintf(out, "  %-28s Version: %s\n", "", d.Manifest.Version)
				}
				fmt.Fprintf(out, "  %-28s Components: %d\n", "", d.Manifest.Components.Total())
				fmt.Fprintln(out)
			}

			return nil
		},
	}
}
