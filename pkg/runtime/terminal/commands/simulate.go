package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/echolon-ai/echolon/pkg/models/domain"
	"github.com/echolon-ai/echolon/pkg/runtime/terminal/export"

	"github.com/spf13/cobra"
)

type SimulateCmd struct {
	filePath   string
	configPath string
	adSpend    float64
	price      float64
	churn      float64
	reporter   *export.Reporter
}

func NewSimulateCmd(reporter *export.Reporter) *cobra.Command {
	sc := &SimulateCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Project revenue and profit for a what-if driver set",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.filePath, "file", "", "Path to the CSV file holding the baseline")
	cmd.Flags().StringVar(&sc.configPath, "config", "", "Path to the engine tuning file")
	cmd.Flags().Float64Var(&sc.adSpend, "ad-spend", 0, "Ad spend change as a fraction (+0.10 == +10%)")
	cmd.Flags().Float64Var(&sc.price, "price", 0, "Price change as a fraction")
	cmd.Flags().Float64Var(&sc.churn, "churn", 0, "Churn change as a fraction")

	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (sc *SimulateCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	analyzer, err := buildAnalyzer(sc.configPath, "", "")
	if err != nil {
		return err
	}

	table, err := readTable(sc.filePath)
	if err != nil {
		return err
	}

	report, err := analyzer.Analyze(ctx, table, nil)
	if err != nil {
		return fmt.Errorf("baseline analysis failed: %w", err)
	}

	result := analyzer.Simulate(ctx, report.Metrics, domain.ScenarioDriverSet{
		AdSpendPctChange: sc.adSpend,
		PricePctChange:   sc.price,
		ChurnPctChange:   sc.churn,
	})

	return sc.reporter.HandleScenario(result)
}
