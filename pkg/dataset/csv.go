package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// WriteCSV writes the header and every row. Missing cells are left empty.
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(f.Columns()); err != nil {
		return err
	}
	record := make([]string, len(f.cols))
	for i := 0; i < f.rows; i++ {
		for j, c := range f.cols {
			record[j] = c.Format(i)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the frame to path, replacing any existing file.
func (f *Frame) SaveCSV(path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := f.WriteCSV(out); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}

// ReadCSV loads a frame written by WriteCSV, inferring column kinds.
func ReadCSV(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty csv")
	}
	if err != nil {
		return nil, err
	}

	raw := make([][]string, len(header))
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		for j := range header {
			raw[j] = append(raw[j], row[j])
		}
	}

	f := NewFrame()
	for j, name := range header {
		if raw[j] == nil {
			raw[j] = []string{}
		}
		if err := f.AddInferred(name, raw[j]); err != nil {
			return nil, err
		}
	}
	return f, nil
}
