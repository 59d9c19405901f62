package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yumyai/protprofile/logger"
	"github.com/yumyai/protprofile/pkg/dataset"
	"github.com/yumyai/protprofile/pkg/db"
	"github.com/yumyai/protprofile/pkg/model"
	"github.com/yumyai/protprofile/pkg/render"
	"github.com/yumyai/protprofile/pkg/uniprot"
	"go.uber.org/zap"
)

type enrichOptions struct {
	input   string
	format  string
	output  string
	summary bool
	save    bool

	dbPath    string
	chartOpts render.Options
}

var enrichFlags enrichOptions

// enrichCmd represents the enrich command
var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Add computed descriptors to a UniProtKB export",
	Long: `Add computed descriptors to a UniProtKB export

Every column of the input is kept and five columns are appended:
isoelectric_point, gravy, charge_ph7, polar_fraction and apolar_fraction.
Rows whose sequence cannot be analysed keep empty cells for all five.

The input is a tab-separated export with a "Sequence" column, or a
UniProt FASTA download (--format fasta, or a .fasta/.fa file).

Unless --summary=false, the first rows, column types, descriptive statistics
and a preview of the sequence, mass, length, GO and computed columns are
printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := enrichFlags
		opts.dbPath = cfg.DB
		opts.chartOpts = reportOptions("Enriched export")
		_, err := runEnrich(cmd.Context(), cmd.OutOrStdout(), opts)
		return err
	},
}

func init() {
	rootCmd.AddCommand(enrichCmd)

	enrichCmd.Flags().StringVarP(&enrichFlags.input, "input", "i", "", "path to a UniProtKB TSV export or FASTA file")
	enrichCmd.Flags().StringVar(&enrichFlags.format, "format", "", "input format: tsv or fasta (default from extension)")
	enrichCmd.Flags().StringVarP(&enrichFlags.output, "output", "o", "uniprot_with_features.csv", "path of the enriched CSV")
	enrichCmd.Flags().BoolVar(&enrichFlags.summary, "summary", true, "print the exploratory summary and a preview of the computed columns")
	enrichCmd.Flags().BoolVar(&enrichFlags.save, "save", false, "also store the table in the run database")

	enrichCmd.MarkFlagRequired("input")
}

func inputFormat(path, format string) (string, error) {
	if format != "" {
		format = strings.ToLower(format)
		if format != "tsv" && format != "fasta" {
			return "", fmt.Errorf("unknown format %q, want tsv or fasta", format)
		}
		return format, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".fasta", ".fa", ".faa":
		return "fasta", nil
	default:
		return "tsv", nil
	}
}

func runEnrich(ctx context.Context, w io.Writer, opts enrichOptions) (*dataset.Frame, error) {
	format, err := inputFormat(opts.input, opts.format)
	if err != nil {
		return nil, err
	}

	in, err := os.Open(opts.input)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	var frame *dataset.Frame
	switch format {
	case "fasta":
		records, err := uniprot.ReadFASTA(in)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", opts.input, err)
		}
		frame, err = model.RecordsFrame(records)
		if err != nil {
			return nil, err
		}
	default:
		header, records, err := uniprot.ReadTSV(in)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", opts.input, err)
		}
		frame, err = model.EnrichFrame(header, records)
		if err != nil {
			return nil, err
		}
	}
	logger.Info("Enriched table", zap.String("input", opts.input), zap.Int("rows", frame.Len()))

	if opts.summary {
		if err := writeEnrichSummary(w, frame, opts.chartOpts); err != nil {
			return nil, err
		}
	}

	if err := writeCSV(frame, opts.output); err != nil {
		return nil, err
	}
	if opts.save {
		run, err := saveRun(ctx, opts.dbPath, db.KindEnrich, opts.input, frame)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(w, "Saved run %s\n", run.ID)
	}
	fmt.Fprintf(w, "File saved as %s\n", opts.output)
	return frame, nil
}

func writeEnrichSummary(w io.Writer, frame *dataset.Frame, opts render.Options) error {
	if err := render.WriteSummary(w, frame, opts); err != nil {
		return err
	}
	preview, err := model.PreviewFrame(frame)
	if err != nil {
		return err
	}
	n := opts.HeadRows
	if n <= 0 {
		n = render.DefaultOptions().HeadRows
	}
	fmt.Fprintln(w, "\n=== Computed columns ===")
	if err := render.WriteHead(w, preview, n); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}
