package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yumyai/protprofile/internal/util"
	"github.com/yumyai/protprofile/logger"
	"github.com/yumyai/protprofile/pkg/db"
	"github.com/yumyai/protprofile/pkg/handler"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Browse stored runs over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context(), cfg.Serve.Addr, cfg.DB)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "0.0.0.0:8080", "listen address")
	viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(ctx context.Context, addr, dbPath string) error {
	if err := util.EnsureParentDir(dbPath); err != nil {
		return err
	}
	store, err := db.Open(ctx, dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	dbctx := &handler.DBContext{
		Runs:   store,
		Report: reportOptions("Protein profile"),
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler.NewServer(dbctx, logger.L()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Open database on", zap.String("DB_LOC", dbPath))
	logger.Info("Server starting", zap.String("addr", addr))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Error starting server:", zap.String("error message", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
