package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/RuralPriority/internal/config"
	"github.com/MikeSquared-Agency/RuralPriority/internal/ranking"
	"github.com/MikeSquared-Agency/RuralPriority/internal/store"
)

func newReportCmd(configPath *string) *cobra.Command {
	var (
		input     string
		outputFmt string
		budget    int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the district priority index and budget allocation",
		Long:  `Loads the configured source (or --input CSV) once and renders the district index and budget split.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if input != "" {
				cfg.Source.Kind = config.SourceFile
				cfg.Source.Path = input
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			logger := newLogger(os.Stderr, cfg.Logging)
			src, closeSource, err := openSource(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer closeSource()

			return runReport(ctx, cmd.OutOrStdout(), src, outputFmt, budget, logger)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "CSV file to read instead of the configured source")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")
	cmd.Flags().IntVar(&budget, "budget", ranking.DefaultTotalBudgetCrore, "Total budget in crore to allocate")

	return cmd
}

type report struct {
	TotalBudgetCrore int                     `json:"total_budget_crore"`
	Districts        []ranking.DistrictIndex `json:"district_priority_index"`
	Allocation       []ranking.Allocation    `json:"budget_allocation"`
}

func runReport(ctx context.Context, w io.Writer, src store.Source, outputFmt string, budget int, logger *slog.Logger) error {
	if outputFmt != "text" && outputFmt != "json" {
		return fmt.Errorf("unknown output format %q (want text or json)", outputFmt)
	}

	table, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("load source: %w", err)
	}
	index, err := ranking.DistrictPriorityIndex(table)
	if err != nil {
		return err
	}
	alloc, err := ranking.BudgetAllocation(table, budget)
	if err != nil {
		return err
	}
	logger.Debug("report computed", "rows", table.Len(), "districts", len(index))

	rep := report{TotalBudgetCrore: budget, Districts: index, Allocation: alloc}
	if outputFmt == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	return renderText(w, rep)
}

func renderText(w io.Writer, rep report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "District Priority Index")
	fmt.Fprintln(tw, "DISTRICT\tINDEX\tBAND\tAVG PRIORITY\tAVG GAP %\tAVG DELAY (MONTHS)")
	for _, d := range rep.Districts {
		fmt.Fprintf(tw, "%s\t%.2f\t%s\t%.2f\t%.2f\t%.2f\n",
			d.District, d.Index, d.RiskBand, d.AvgPriority, d.AvgSchemeGap, d.AvgDelayMonths)
	}

	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Budget Allocation (%d crore)\n", rep.TotalBudgetCrore)
	fmt.Fprintln(tw, "DISTRICT\tBUDGET (CRORE)")
	for _, a := range rep.Allocation {
		fmt.Fprintf(tw, "%s\t%.2f\n", a.District, a.RecommendedBudgetCrore)
	}
	return tw.Flush()
}
