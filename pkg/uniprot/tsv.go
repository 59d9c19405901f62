package uniprot

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Column names used by UniProtKB tabular exports.
const (
	ColumnEntry     = "Entry"
	ColumnEntryName = "Entry Name"
	ColumnOrganism  = "Organism"
	ColumnSequence  = "Sequence"
)

// ReadTSV reads a UniProtKB TSV export. Every column of a row is kept in
// Attributes, in header order; the well-known columns are also mapped onto
// the Record fields.
func ReadTSV(r io.Reader) (header []string, records []*Record, err error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err = reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, ErrNoSequenceColumn
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[h] = i
	}
	if _, ok := index[ColumnSequence]; !ok {
		return nil, nil, ErrNoSequenceColumn
	}

	get := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read row %d: %w", len(records)+1, err)
		}

		rec := &Record{
			Accession:  get(row, ColumnEntry),
			EntryName:  get(row, ColumnEntryName),
			Organism:   get(row, ColumnOrganism),
			Sequence:   strings.TrimSpace(get(row, ColumnSequence)),
			Attributes: make([]Attribute, len(header)),
		}
		for i, h := range header {
			v := ""
			if i < len(row) {
				v = row[i]
			}
			rec.Attributes[i] = Attribute{Name: h, Value: v}
		}
		records = append(records, rec)
	}

	return header, records, nil
}
