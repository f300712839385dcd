package main

import (
	"fmt"

	"github.com/spf13/cobra"

	orchestrators "github.com/newrelic/nrdot-release-metrics/internal/domain-orchestrators"
	"github.com/newrelic/nrdot-release-metrics/internal/domain/entities"
	"github.com/newrelic/nrdot-release-metrics/internal/domain/services"
	"github.com/newrelic/nrdot-release-metrics/internal/external-adapters/yaml"
)

func newMatchCommand(a *app, state *commandState) *cobra.Command {
	var distributions []string

	cmd := &cobra.Command{
		Use:   "match <asset-name>...",
		Short: "Show how asset names are classified against the naming convention",
		Long: `match runs asset names through the same matcher collect uses and prints
the outcome and the extracted fields. No network access is needed.`,
		Example: `  release-metrics match nrdot-collector-host_1.2.3_linux_amd64.tar.gz
  release-metrics match --distribution my-dist my-dist_0.1.0_darwin_arm64.tar.gz`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := distributions
			if len(names) == 0 {
				repo := yaml.NewDistributionRepository(state.cfg.DistributionsDir, a.logger)
				dists, err := repo.ListDistributions(cmd.Context())
				if err != nil {
					return &orchestrators.RunError{Kind: orchestrators.KindDistributions, Err: err}
				}
				names = entities.DistributionNames(dists)
			}

			matcher, err := services.NewAssetMatcher(names)
			if err != nil {
				return &orchestrators.RunError{Kind: orchestrators.KindDistributions, Err: orchestrators.ErrNoDistributions}
			}

			out := cmd.OutOrStdout()
			for _, name := range args {
				result := matcher.Match(name)
				if !result.Matched() {
					fmt.Fprintf(out, "%s\t%s\n", result.Outcome, name)
					continue
				}
				p := result.Asset
				fmt.Fprintf(out, "%s\t%s\tdistro=%s version=%s os=%s arch=%s ext=%s\n",
					result.Outcome, name, p.Distribution, p.Version, p.OS, p.Arch, p.Ext)
			}

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&distributions, "distribution", nil, "Distribution names to match against instead of the discovered ones")

	return cmd
}
