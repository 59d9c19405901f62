package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/yumyai/protprofile/logger"
	"github.com/yumyai/protprofile/pkg/db"
	"github.com/yumyai/protprofile/pkg/middle"
	"github.com/yumyai/protprofile/pkg/render"
	"go.uber.org/zap"
)

type RunsResponse struct {
	Runs []*db.Run `json:"runs"`
}

func (dbctx *DBContext) ListRunsAPI(w http.ResponseWriter, r *http.Request) {
	runs, err := dbctx.Runs.ListRuns(r.Context())
	if err != nil {
		middle.Logger(r.Context(), logger.L()).Error("List runs failed", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []*db.Run{}
	}
	writeJSON(w, http.StatusOK, RunsResponse{Runs: runs})
}

func (dbctx *DBContext) IndexPage(w http.ResponseWriter, r *http.Request) {
	runs, err := dbctx.Runs.ListRuns(r.Context())
	if err != nil {
		middle.Logger(r.Context(), logger.L()).Error("List runs failed", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := render.WriteRunIndex(&buf, runs); err != nil {
		http.Error(w, "Render error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (dbctx *DBContext) RunPage(w http.ResponseWriter, r *http.Request) {
	runID := r.PathValue("run_id")
	run, ok := dbctx.getRun(w, r, runID)
	if !ok {
		return
	}
	frame, err := dbctx.Runs.LoadFrame(r.Context(), runID)
	if err != nil {
		dbctx.fail(w, r, err)
		return
	}

	opts := dbctx.Report
	opts.Title = fmt.Sprintf("%s run %s (%s)", run.Kind, run.ID, run.Source)

	// Buffered: the status is not sent until rendering succeeds.
	var buf bytes.Buffer
	if err := render.WriteReport(&buf, frame, opts); err != nil {
		if errors.Is(err, render.ErrNoRows) {
			http.Error(w, "Run has no rows", http.StatusNotFound)
			return
		}
		dbctx.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (dbctx *DBContext) RunCSV(w http.ResponseWriter, r *http.Request) {
	runID := r.PathValue("run_id")
	if _, ok := dbctx.getRun(w, r, runID); !ok {
		return
	}
	frame, err := dbctx.Runs.LoadFrame(r.Context(), runID)
	if err != nil {
		dbctx.fail(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := frame.WriteCSV(&buf); err != nil {
		dbctx.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, runID))
	w.Write(buf.Bytes())
}

func (dbctx *DBContext) getRun(w http.ResponseWriter, r *http.Request, runID string) (*db.Run, bool) {
	run, err := dbctx.Runs.GetRun(r.Context(), runID)
	if errors.Is(err, db.ErrRunNotFound) {
		http.Error(w, "Run not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		dbctx.fail(w, r, err)
		return nil, false
	}
	return run, true
}

func (dbctx *DBContext) fail(w http.ResponseWriter, r *http.Request, err error) {
	middle.Logger(r.Context(), logger.L()).Error("Request failed", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
