package uniprot

import (
	"bufio"
	"io"
	"strings"
)

// ParseSwissProt reads every entry of a Swiss-Prot flat file. Only the
// fields the descriptors need are kept: ID, AC, OS and the sequence block.
func ParseSwissProt(r io.Reader) ([]*Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var (
		records  []*Record
		cur      *Record
		organism []string
		seq      strings.Builder
		inSeq    bool
		lineNo   int
	)

	finish := func() {
		cur.Organism = strings.TrimSuffix(strings.TrimSpace(strings.Join(organism, " ")), ".")
		cur.Sequence = seq.String()
		records = append(records, cur)
		cur, organism, inSeq = nil, nil, false
		seq.Reset()
	}

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		if line == "//" || strings.HasPrefix(line, "//") {
			if cur == nil {
				return nil, &ParseError{Line: lineNo, Msg: "entry terminator without ID line"}
			}
			finish()
			continue
		}

		if inSeq && strings.HasPrefix(line, "     ") {
			for _, f := range strings.Fields(line) {
				seq.WriteString(f)
			}
			continue
		}

		code := line
		rest := ""
		if len(line) >= 2 {
			code = line[:2]
		}
		if len(line) > 5 {
			rest = strings.TrimSpace(line[5:])
		}

		switch code {
		case "ID":
			if cur != nil {
				return nil, &ParseError{Line: lineNo, Msg: "ID line inside an unterminated entry"}
			}
			cur = &Record{}
			if fields := strings.Fields(rest); len(fields) > 0 {
				cur.EntryName = fields[0]
			}
		case "AC":
			if cur == nil {
				return nil, &ParseError{Line: lineNo, Msg: "AC line before ID line"}
			}
			if cur.Accession == "" {
				first := strings.SplitN(rest, ";", 2)[0]
				cur.Accession = strings.TrimSpace(first)
			}
		case "OS":
			if cur == nil {
				return nil, &ParseError{Line: lineNo, Msg: "OS line before ID line"}
			}
			organism = append(organism, rest)
		case "SQ":
			if cur == nil {
				return nil, &ParseError{Line: lineNo, Msg: "SQ line before ID line"}
			}
			inSeq = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if cur != nil {
		return nil, &ParseError{Line: lineNo, Msg: "unterminated entry " + cur.EntryName}
	}
	return records, nil
}
