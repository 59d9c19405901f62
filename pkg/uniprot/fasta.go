package uniprot

import (
	"io"
	"regexp"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// Matches the start of the next "KEY=" tag in a UniProt FASTA description.
var fastaTag = regexp.MustCompile(`\s[A-Z]{2}=`)

// ReadFASTA reads UniProt FASTA downloads, e.g.
//
//	>sp|P04637|P53_HUMAN Cellular tumor antigen p53 OS=Homo sapiens OX=9606 GN=TP53
//
// Headers that do not follow the db|accession|name layout keep the whole
// identifier as the accession.
func ReadFASTA(r io.Reader) ([]*Record, error) {
	template := linear.NewSeq("", nil, alphabet.Protein)
	sc := seqio.NewScanner(fasta.NewReader(r, template))

	var records []*Record
	for sc.Next() {
		s, ok := sc.Seq().(*linear.Seq)
		if !ok {
			continue
		}

		rec := &Record{Accession: s.Name()}
		if parts := strings.Split(s.Name(), "|"); len(parts) == 3 {
			rec.Accession = parts[1]
			rec.EntryName = parts[2]
		}
		rec.Organism = organismFromDescription(s.Description())

		residues := make([]byte, len(s.Seq))
		for i, l := range s.Seq {
			residues[i] = byte(l)
		}
		rec.Sequence = strings.ToUpper(string(residues))

		records = append(records, rec)
	}
	if err := sc.Error(); err != nil {
		return nil, err
	}
	return records, nil
}

func organismFromDescription(desc string) string {
	i := strings.Index(desc, "OS=")
	if i < 0 {
		return ""
	}
	rest := desc[i+len("OS="):]
	if loc := fastaTag.FindStringIndex(rest); loc != nil {
		rest = rest[:loc[0]]
	}
	return strings.TrimSpace(rest)
}
