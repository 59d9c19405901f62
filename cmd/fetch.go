package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yumyai/protprofile/logger"
	"github.com/yumyai/protprofile/pkg/dataset"
	"github.com/yumyai/protprofile/pkg/db"
	"github.com/yumyai/protprofile/pkg/model"
	"github.com/yumyai/protprofile/pkg/render"
	"github.com/yumyai/protprofile/pkg/uniprot"
	"go.uber.org/zap"
)

// ErrNoProteins is returned when every accession failed or had no sequence.
var ErrNoProteins = errors.New("no protein was processed")

type fetchOptions struct {
	accessions []string
	panel      string
	output     string
	reportPath string
	summary    bool
	save       bool

	baseURL   string
	timeout   time.Duration
	delay     time.Duration
	dbPath    string
	chartOpts render.Options
}

var fetchFlags fetchOptions

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch [ACCESSION...]",
	Short: "Fetch UniProt entries and profile them",
	Long: `Fetch UniProt entries and profile them

Each accession is downloaded from the UniProt REST API in Swiss-Prot text
format, one request at a time with a pause in between. Every protein gets a
full descriptor row: length, molecular weight, isoelectric point, GRAVY,
instability index, secondary structure fractions, residue class proportions,
net charge and an organism class.

Without accessions the built-in panel of 16 proteins is used, or the list in
--panel. A summary is printed, charts are written to --report and the table
to --output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := fetchFlags
		opts.accessions = args
		opts.baseURL = cfg.UniProt.BaseURL
		opts.timeout = cfg.UniProt.Timeout
		opts.delay = cfg.UniProt.Delay
		opts.dbPath = cfg.DB
		opts.chartOpts = reportOptions("Protein profile")
		_, err := runFetch(cmd.Context(), cmd.OutOrStdout(), opts)
		return err
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVarP(&fetchFlags.panel, "panel", "p", "", "YAML file with an accessions list")
	fetchCmd.Flags().StringVarP(&fetchFlags.output, "output", "o", "proteins_processed.csv", "path of the profile CSV")
	fetchCmd.Flags().StringVarP(&fetchFlags.reportPath, "report", "r", "proteins_report.html", "path of the HTML charts (empty to skip)")
	fetchCmd.Flags().BoolVar(&fetchFlags.summary, "summary", true, "print the exploratory summary")
	fetchCmd.Flags().BoolVar(&fetchFlags.save, "save", false, "also store the table in the run database")
	fetchCmd.Flags().Duration("delay", 500*time.Millisecond, "pause between requests")
	fetchCmd.Flags().Duration("timeout", 30*time.Second, "HTTP timeout per request")

	viper.BindPFlag("uniprot.delay", fetchCmd.Flags().Lookup("delay"))
	viper.BindPFlag("uniprot.timeout", fetchCmd.Flags().Lookup("timeout"))
}

func resolveAccessions(opts fetchOptions) ([]string, string, error) {
	if len(opts.accessions) > 0 {
		return opts.accessions, "args", nil
	}
	if opts.panel != "" {
		p, err := uniprot.LoadPanel(opts.panel)
		if err != nil {
			return nil, "", err
		}
		return p.IDs(), opts.panel, nil
	}
	return uniprot.DefaultPanel.IDs(), "panel:" + uniprot.DefaultPanel.Name, nil
}

func runFetch(ctx context.Context, w io.Writer, opts fetchOptions) (*dataset.Frame, error) {
	ids, source, err := resolveAccessions(opts)
	if err != nil {
		return nil, err
	}

	client := uniprot.NewClient(opts.baseURL, opts.timeout, opts.delay)

	var records []*uniprot.Record
	failed := 0
	err = client.FetchAll(ctx, ids, func(i int, acc string, rec *uniprot.Record, err error) {
		if err != nil {
			failed++
			logger.Warn("Fetch failed", zap.String("accession", acc), zap.Error(err))
			return
		}
		records = append(records, rec)
	})
	if err != nil {
		return nil, err
	}

	rows := model.ProfileAll(records)
	logger.Info("Profiled proteins", zap.Int("processed", len(rows)), zap.Int("failed", failed), zap.Int("total", len(ids)))
	if len(rows) == 0 {
		return nil, ErrNoProteins
	}
	frame := model.ProfileFrame(rows)

	if opts.summary {
		if err := render.WriteSummary(w, frame, opts.chartOpts); err != nil {
			return nil, err
		}
		writeFinalShape(w, frame, opts.chartOpts.ClassColumn)
	}
	if err := writeCSV(frame, opts.output); err != nil {
		return nil, err
	}
	if opts.reportPath != "" {
		if err := writeReport(frame, opts.reportPath, opts.chartOpts); err != nil {
			return nil, err
		}
	}
	if opts.save {
		run, err := saveRun(ctx, opts.dbPath, db.KindProfile, source, frame)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(w, "Saved run %s\n", run.ID)
	}
	fmt.Fprintf(w, "\nData saved in '%s'\n", opts.output)
	return frame, nil
}

// writeFinalShape prints the closing line of the fetch summary.
func writeFinalShape(w io.Writer, frame *dataset.Frame, classColumn string) {
	numeric := 0
	for _, name := range frame.NumericColumns() {
		if name != classColumn {
			numeric++
		}
	}
	classes := "none"
	if _, ok := frame.Column(classColumn); ok && classColumn != "" {
		classes = strings.Join(frame.Unique(classColumn), ", ")
	}
	fmt.Fprintf(w, "\nFinal dataset: %d proteins, classes: %s, numeric variables: %d\n", frame.Len(), classes, numeric)
}
