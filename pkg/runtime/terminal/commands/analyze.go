package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/echolon-ai/echolon/pkg/models/domain"
	"github.com/echolon-ai/echolon/pkg/runtime/terminal/export"
	"github.com/echolon-ai/echolon/pkg/services/benchmark"
	"github.com/echolon-ai/echolon/pkg/services/engine"
	"github.com/echolon-ai/echolon/pkg/store/csvsource"

	"github.com/spf13/cobra"
)

type AnalyzeCmd struct {
	filePath       string
	configPath     string
	industry       string
	benchmarksPath string
	goalFlags      []string
	reporter       *export.Reporter
}

func NewAnalyzeCmd(reporter *export.Reporter) *cobra.Command {
	ac := &AnalyzeCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a business metrics CSV",
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.filePath, "file", "", "Path to the CSV file to analyze")
	cmd.Flags().StringVar(&ac.configPath, "config", "", "Path to the engine tuning file")
	cmd.Flags().StringVar(&ac.industry, "industry", "", "Benchmark industry profile (default: general)")
	cmd.Flags().StringVar(&ac.benchmarksPath, "benchmarks", "", "Path to a benchmarks ini file")
	cmd.Flags().StringArrayVar(&ac.goalFlags, "goal", nil, "Goal as metric=target (repeatable)")

	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	analyzer, err := buildAnalyzer(ac.configPath, ac.industry, ac.benchmarksPath)
	if err != nil {
		return err
	}

	goals, err := parseGoals(ac.goalFlags)
	if err != nil {
		return err
	}

	table, err := readTable(ac.filePath)
	if err != nil {
		return err
	}

	report, err := analyzer.Analyze(ctx, table, goals)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	return ac.reporter.Handle(report)
}

func readTable(path string) (domain.RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	table, err := csvsource.Read(f)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return table, nil
}

func buildAnalyzer(configPath, industry, benchmarksPath string) (*engine.Analyzer, error) {
	cfg, err := engine.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if industry != "" {
		cfg.Industry = industry
	}
	if benchmarksPath != "" {
		cfg.BenchmarksPath = benchmarksPath
	}

	var registry benchmark.Registry
	if cfg.BenchmarksPath != "" {
		registry, err = benchmark.NewRegistry(cfg.BenchmarksPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load benchmarks from %s: %w", cfg.BenchmarksPath, err)
		}
	}

	return engine.NewAnalyzer(*cfg, registry, nil), nil
}

func parseGoals(flags []string) ([]domain.Goal, error) {
	var goals []domain.Goal
	for _, raw := range flags {
		metric, target, ok := strings.Cut(raw, "=")
		if !ok {
			return nil, fmt.Errorf("invalid goal %q, expected metric=target", raw)
		}

		kind := domain.MetricKind(strings.TrimSpace(metric))
		if !kind.Valid() {
			return nil, fmt.Errorf("unknown metric %q in goal. Supported metrics: %v",
				metric, domain.MetricKinds())
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(target), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid target in goal %q: %w", raw, err)
		}

		goals = append(goals, domain.Goal{Metric: kind, TargetValue: value})
	}
	return goals, nil
}
