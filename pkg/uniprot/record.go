// Package uniprot reads protein records from UniProtKB: Swiss-Prot flat files
// fetched over HTTP, tabular TSV exports and FASTA downloads.
package uniprot

import (
	"errors"
	"fmt"
)

var ErrNoSequenceColumn = errors.New("no Sequence column in table")

// Record is one protein entry.
type Record struct {
	Accession string
	EntryName string
	Organism  string
	Sequence  string

	// Extra columns from a tabular export, in file order.
	Attributes []Attribute
}

type Attribute struct {
	Name  string
	Value string
}

// Attribute returns the value of a named extra column.
func (r *Record) Attribute(name string) (string, bool) {
	for _, a := range r.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// ID is the entry name when known, else the accession.
func (r *Record) ID() string {
	if r.EntryName != "" {
		return r.EntryName
	}
	return r.Accession
}

// ParseError points at the line of a malformed flat file.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}
