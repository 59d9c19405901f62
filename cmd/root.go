// Package cmd is the protprofile command line
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yumyai/protprofile/config"
	"github.com/yumyai/protprofile/internal/util"
	"github.com/yumyai/protprofile/logger"
	"github.com/yumyai/protprofile/pkg/dataset"
	"github.com/yumyai/protprofile/pkg/db"
	"github.com/yumyai/protprofile/pkg/render"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfgFile string

	// settings resolved in PersistentPreRunE
	cfg config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "protprofile",
	Short: `Compute biochemical descriptors for protein sequences.
Enrich UniProtKB exports or fetch entries by accession, then summarise and chart them`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().String("data-dir", "", "data directory (default ./data)")
	rootCmd.PersistentFlags().String("db", "", "SQLite run store (default <data-dir>/db/protprofile.db)")
	rootCmd.PersistentFlags().String("log-level", "", "debug, info, warn or error")

	viper.BindPFlag("data-dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func setup(cmd *cobra.Command, args []string) error {
	if err := logger.InitLogger(zapcore.InfoLevel); err != nil {
		return err
	}
	config.LoadDotEnv()

	v := viper.GetViper()
	config.SetDefaults(v)
	config.BindEnv(v)
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	c, err := config.New(v)
	if err != nil {
		return err
	}
	cfg = c

	if lvl := logger.ParseLevel(cfg.LogLevel); lvl != zapcore.InfoLevel {
		if err := logger.InitLogger(lvl); err != nil {
			return err
		}
	}
	logger.Debug("Config loaded", zap.String("data_dir", cfg.DataDir), zap.String("db", cfg.DB))
	return nil
}

func reportOptions(title string) render.Options {
	opts := render.DefaultOptions()
	opts.Title = title
	opts.ClassColumn = cfg.Report.ClassColumn
	opts.Bins = cfg.Report.Bins
	opts.CorrThreshold = cfg.Report.CorrThreshold
	return opts
}

// writeCSV saves f to path, creating parent directories.
func writeCSV(f *dataset.Frame, path string) error {
	if err := util.EnsureParentDir(path); err != nil {
		return err
	}
	if err := f.SaveCSV(path); err != nil {
		return err
	}
	logger.Info("Saved table", zap.String("path", path), zap.Int("rows", f.Len()), zap.Int("columns", f.Width()))
	return nil
}

func writeReport(f *dataset.Frame, path string, opts render.Options) error {
	if err := util.EnsureParentDir(path); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.WriteReport(out, f, opts); err != nil {
		out.Close()
		return fmt.Errorf("write report %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	logger.Info("Saved report", zap.String("path", path))
	return nil
}

// saveRun stores f in the run database at dbPath.
func saveRun(ctx context.Context, dbPath, kind, source string, f *dataset.Frame) (*db.Run, error) {
	if err := util.EnsureParentDir(dbPath); err != nil {
		return nil, err
	}
	store, err := db.Open(ctx, dbPath)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.SaveRun(ctx, kind, source, f)
}
