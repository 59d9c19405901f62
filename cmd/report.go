package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/yumyai/protprofile/pkg/dataset"
	"github.com/yumyai/protprofile/pkg/db"
	"github.com/yumyai/protprofile/pkg/render"
)

type reportCmdOptions struct {
	input      string
	runID      string
	reportPath string
	summary    bool

	dbPath    string
	chartOpts render.Options
}

var reportFlags reportCmdOptions

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarise and chart a saved table",
	Long: `Summarise and chart a saved table

Reads a CSV written by enrich or fetch (--input), or a run from the run
database (--run), prints the exploratory summary and writes the HTML charts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := reportFlags
		opts.dbPath = cfg.DB
		opts.chartOpts = reportOptions("Protein profile")
		return runReport(cmd.Context(), cmd.OutOrStdout(), opts)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportFlags.input, "input", "i", "", "CSV written by enrich or fetch")
	reportCmd.Flags().StringVar(&reportFlags.runID, "run", "", "id of a stored run")
	reportCmd.Flags().StringVarP(&reportFlags.reportPath, "report", "r", "proteins_report.html", "path of the HTML charts (empty to skip)")
	reportCmd.Flags().BoolVar(&reportFlags.summary, "summary", true, "print the exploratory summary")

	reportCmd.MarkFlagsMutuallyExclusive("input", "run")
	reportCmd.MarkFlagsOneRequired("input", "run")
}

func loadTable(ctx context.Context, opts reportCmdOptions) (*dataset.Frame, error) {
	if opts.runID != "" {
		store, err := db.Open(ctx, opts.dbPath)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.LoadFrame(ctx, opts.runID)
	}

	in, err := os.Open(opts.input)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	return dataset.ReadCSV(in)
}

func runReport(ctx context.Context, w io.Writer, opts reportCmdOptions) error {
	if opts.input == "" && opts.runID == "" {
		return errors.New("one of --input or --run is required")
	}
	frame, err := loadTable(ctx, opts)
	if err != nil {
		return fmt.Errorf("load table: %w", err)
	}

	if opts.summary {
		if err := render.WriteSummary(w, frame, opts.chartOpts); err != nil {
			return err
		}
	}
	if opts.reportPath != "" {
		return writeReport(frame, opts.reportPath, opts.chartOpts)
	}
	return nil
}
