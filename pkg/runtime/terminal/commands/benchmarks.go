package commands

import (
	"fmt"

	"github.com/echolon-ai/echolon/pkg/services/benchmark"

	"github.com/spf13/cobra"
)

type BenchmarksCmd struct {
	industry       string
	benchmarksPath string
}

func NewBenchmarksCmd() *cobra.Command {
	bc := &BenchmarksCmd{}
	cmd := &cobra.Command{
		Use:   "benchmarks",
		Short: "List benchmark reference values for an industry",
		RunE:  bc.run,
	}

	cmd.Flags().StringVar(&bc.industry, "industry", benchmark.DefaultIndustry, "Industry profile to list")
	cmd.Flags().StringVar(&bc.benchmarksPath, "benchmarks", "", "Path to a benchmarks ini file")

	return cmd
}

func (bc *BenchmarksCmd) run(cmd *cobra.Command, args []string) error {
	var (
		registry benchmark.Registry
		err      error
	)
	if bc.benchmarksPath != "" {
		registry, err = benchmark.NewRegistry(bc.benchmarksPath)
		if err != nil {
			return fmt.Errorf("failed to load benchmarks from %s: %w", bc.benchmarksPath, err)
		}
	} else {
		registry = benchmark.NewStaticRegistry()
	}

	entries, err := registry.Entries(bc.industry)
	if err != nil {
		return fmt.Errorf("unknown industry %q. Known industries: %v",
			bc.industry, registry.Industries())
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Benchmarks for %s:\n", bc.industry)
	for _, e := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%-20s %12.2f %s\n", e.Metric, e.IndustryAverage, e.Unit)
	}

	return nil
}
