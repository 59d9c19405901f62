package db

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yumyai/protprofile/pkg/dataset"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testFrame(t *testing.T) *dataset.Frame {
	t.Helper()
	f := dataset.NewFrame()
	require.NoError(t, f.AddText("id", []string{"INS_HUMAN", "ENO1_YEAST", ""}))
	require.NoError(t, f.AddNumeric("gravy", []float64{0.21, math.NaN(), -0.3}))
	require.NoError(t, f.AddNumeric("length", []float64{110, 437, 5}))
	return f
}

func TestSaveAndLoadRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run, err := s.SaveRun(ctx, KindProfile, "panel", testFrame(t))
	require.NoError(t, err)
	assert.Len(t, run.ID, 36)
	assert.Equal(t, 3, run.Rows)
	assert.Equal(t, 3, run.Cols)

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, KindProfile, got.Kind)
	assert.Equal(t, "panel", got.Source)

	f, err := s.LoadFrame(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "gravy", "length"}, f.Columns())

	id, _ := f.Column("id")
	assert.Equal(t, dataset.Text, id.Kind)
	assert.Equal(t, []string{"INS_HUMAN", "ENO1_YEAST", ""}, id.Str)

	gravy, _ := f.Column("gravy")
	assert.Equal(t, 0.21, gravy.Num[0])
	assert.True(t, math.IsNaN(gravy.Num[1]))
	assert.Equal(t, -0.3, gravy.Num[2])
}

func TestListRunsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.SaveRun(ctx, KindEnrich, "a.tsv", testFrame(t))
	require.NoError(t, err)
	second, err := s.SaveRun(ctx, KindProfile, "panel", testFrame(t))
	require.NoError(t, err)

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, first.ID, runs[1].ID)
}

func TestRunNotFound(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.GetRun(ctx, "missing")
	assert.ErrorIs(t, err, ErrRunNotFound)

	_, err = s.LoadFrame(ctx, "missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Migrate(context.Background()))
}
