package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/yumyai/protprofile/logger"
	"github.com/yumyai/protprofile/pkg/dataset"
	"go.uber.org/zap"
)

var ErrRunNotFound = errors.New("run not found")

// Run kinds.
const (
	KindEnrich  = "enrich"
	KindProfile = "profile"
)

// Run describes one saved table.
type Run struct {
	ID        string    `json:"run_id"`
	Kind      string    `json:"kind"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
	Rows      int       `json:"rows"`
	Cols      int       `json:"columns"`
}

// SaveRun stores f under a new run id in a single transaction.
func (s *Store) SaveRun(ctx context.Context, kind, source string, f *dataset.Frame) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		Kind:      kind,
		Source:    source,
		CreatedAt: time.Now().UTC(),
		Rows:      f.Len(),
		Cols:      f.Width(),
	}

	tx, err := s.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() // no-op after commit

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, kind, source, created_at, n_rows, n_cols) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Kind, run.Source, run.CreatedAt.UnixNano(), run.Rows, run.Cols,
	); err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}

	colStmt, err := tx.PrepareContext(ctx, `INSERT INTO run_columns (run_id, position, name, kind) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer colStmt.Close()

	valStmt, err := tx.PrepareContext(ctx, `INSERT INTO run_values (run_id, row_idx, position, num, str) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer valStmt.Close()

	for pos, name := range f.Columns() {
		col, _ := f.Column(name)
		if _, err := colStmt.ExecContext(ctx, run.ID, pos, col.Name, col.Kind.String()); err != nil {
			return nil, fmt.Errorf("insert column %q: %w", name, err)
		}
		for row := 0; row < col.Len(); row++ {
			var num sql.NullFloat64
			var str sql.NullString
			if !col.IsMissing(row) {
				if col.Kind == dataset.Numeric {
					num = sql.NullFloat64{Float64: col.Num[row], Valid: true}
				} else {
					str = sql.NullString{String: col.Str[row], Valid: true}
				}
			}
			if _, err := valStmt.ExecContext(ctx, run.ID, row, pos, num, str); err != nil {
				return nil, fmt.Errorf("insert value (%d, %q): %w", row, name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	logger.Info("Saved run", zap.String("run_id", run.ID), zap.String("kind", kind), zap.Int("rows", run.Rows))
	return run, nil
}

// ListRuns returns every saved run, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]*Run, error) {
	rows, err := s.sql.QueryContext(ctx,
		`SELECT run_id, kind, source, created_at, n_rows, n_cols FROM runs ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			logger.Error("Scan run row failed", zap.Error(err))
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var r Run
	var created int64
	if err := sc.Scan(&r.ID, &r.Kind, &r.Source, &created, &r.Rows, &r.Cols); err != nil {
		return nil, err
	}
	r.CreatedAt = time.Unix(0, created).UTC()
	return &r, nil
}

func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.sql.QueryRowContext(ctx,
		`SELECT run_id, kind, source, created_at, n_rows, n_cols FROM runs WHERE run_id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return r, nil
}

// LoadFrame rebuilds the table saved under id with its column order and
// kinds. NULL cells come back as missing.
func (s *Store) LoadFrame(ctx context.Context, id string) (*dataset.Frame, error) {
	run, err := s.GetRun(ctx, id)
	if err != nil {
		return nil, err
	}

	colRows, err := s.sql.QueryContext(ctx,
		`SELECT name, kind FROM run_columns WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("load columns: %w", err)
	}
	var cols []*dataset.Column
	for colRows.Next() {
		var name, kindName string
		if err := colRows.Scan(&name, &kindName); err != nil {
			colRows.Close()
			return nil, err
		}
		kind, err := dataset.ParseKind(kindName)
		if err != nil {
			colRows.Close()
			return nil, err
		}
		c := &dataset.Column{Name: name, Kind: kind}
		if kind == dataset.Numeric {
			c.Num = make([]float64, run.Rows)
			for i := range c.Num {
				c.Num[i] = math.NaN()
			}
		} else {
			c.Str = make([]string, run.Rows)
		}
		cols = append(cols, c)
	}
	colRows.Close()
	if err := colRows.Err(); err != nil {
		return nil, err
	}

	valRows, err := s.sql.QueryContext(ctx,
		`SELECT row_idx, position, num, str FROM run_values WHERE run_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("load values: %w", err)
	}
	defer valRows.Close()
	for valRows.Next() {
		var row, pos int
		var num sql.NullFloat64
		var str sql.NullString
		if err := valRows.Scan(&row, &pos, &num, &str); err != nil {
			return nil, err
		}
		if pos >= len(cols) || row >= run.Rows {
			return nil, fmt.Errorf("run %s: value (%d, %d) out of range", id, row, pos)
		}
		c := cols[pos]
		if c.Kind == dataset.Numeric && num.Valid {
			c.Num[row] = num.Float64
		} else if c.Kind == dataset.Text && str.Valid {
			c.Str[row] = str.String
		}
	}
	if err := valRows.Err(); err != nil {
		return nil, err
	}

	f := dataset.NewFrame()
	for _, c := range cols {
		var err error
		if c.Kind == dataset.Numeric {
			err = f.AddNumeric(c.Name, c.Num)
		} else {
			err = f.AddText(c.Name, c.Str)
		}
		if err != nil {
			return nil, err
		}
	}
	return f, nil
}
