package handler

// DI for all handlers.

import (
	"context"

	"github.com/yumyai/protprofile/pkg/dataset"
	"github.com/yumyai/protprofile/pkg/db"
	"github.com/yumyai/protprofile/pkg/render"
)

// RunStore is the read side of db.Store.
type RunStore interface {
	ListRuns(ctx context.Context) ([]*db.Run, error)
	GetRun(ctx context.Context, id string) (*db.Run, error)
	LoadFrame(ctx context.Context, id string) (*dataset.Frame, error)
}

type DBContext struct {
	Runs   RunStore
	Report render.Options
}
