package uniprot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insulinEntry = `ID   INS_HUMAN               Reviewed;         110 AA.
AC   P01308; Q5EEX2;
DE   RecName: Full=Insulin;
OS   Homo sapiens
OS   (Human).
OC   Eukaryota; Metazoa; Chordata.
SQ   SEQUENCE   24 AA;  2643 MW;  6F4A7E5B8C9D0E1F CRC64;
     MALWMRLLPL LALLALWGPD
     PAAA
//
`

const enolaseEntry = `ID   ENO1_YEAST              Reviewed;         437 AA.
AC   P00924;
OS   Saccharomyces cerevisiae (strain ATCC 204508 / S288c) (Baker's yeast).
SQ   SEQUENCE   10 AA;
     AVSKVYARSV
//
`

func TestParseSwissProt(t *testing.T) {
	records, err := ParseSwissProt(strings.NewReader(insulinEntry + enolaseEntry))
	require.NoError(t, err)
	require.Len(t, records, 2)

	ins := records[0]
	assert.Equal(t, "INS_HUMAN", ins.EntryName)
	assert.Equal(t, "P01308", ins.Accession)
	assert.Equal(t, "Homo sapiens (Human)", ins.Organism)
	assert.Equal(t, "MALWMRLLPLLALLALWGPDPAAA", ins.Sequence)
	assert.Equal(t, "INS_HUMAN", ins.ID())

	eno := records[1]
	assert.Equal(t, "ENO1_YEAST", eno.EntryName)
	assert.Equal(t, "AVSKVYARSV", eno.Sequence)
	assert.True(t, strings.HasPrefix(eno.Organism, "Saccharomyces cerevisiae"))
}

func TestParseSwissProtUnterminated(t *testing.T) {
	_, err := ParseSwissProt(strings.NewReader("ID   X_HUMAN\nSQ   SEQUENCE\n     AAAA\n"))
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
}

func TestClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/P01308.txt":
			_, _ = w.Write([]byte(insulinEntry))
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, 0)

	rec, err := c.Fetch(context.Background(), "P01308")
	require.NoError(t, err)
	assert.Equal(t, "INS_HUMAN", rec.EntryName)

	_, err = c.Fetch(context.Background(), "NOPE")
	var ferr *FetchError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, http.StatusNotFound, ferr.StatusCode)
}

func TestClientFetchAllContinuesOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/P00924.txt" {
			_, _ = w.Write([]byte(enolaseEntry))
			return
		}
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, 0)

	var got []string
	var failed []string
	err := c.FetchAll(context.Background(), []string{"BAD1", "P00924"}, func(i int, acc string, rec *Record, err error) {
		if err != nil {
			failed = append(failed, acc)
			return
		}
		got = append(got, rec.EntryName)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"BAD1"}, failed)
	assert.Equal(t, []string{"ENO1_YEAST"}, got)
}

func TestClientFetchAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient("http://127.0.0.1:0", 0, 0)
	err := c.FetchAll(ctx, []string{"P01308"}, func(int, string, *Record, error) {
		t.Fatal("visit should not be called")
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadTSV(t *testing.T) {
	tsv := "Entry\tEntry Name\tOrganism\tLength\tMass\tSequence\tGene Ontology IDs\n" +
		"P01308\tINS_HUMAN\tHomo sapiens (Human)\t110\t11,981\tMALWMRLLPL\tGO:0005179\n" +
		"P00924\tENO1_YEAST\tSaccharomyces cerevisiae\t437\t46,816\tAVSKVYARSV\t\n"

	header, records, err := ReadTSV(strings.NewReader(tsv))
	require.NoError(t, err)
	assert.Len(t, header, 7)
	require.Len(t, records, 2)

	assert.Equal(t, "P01308", records[0].Accession)
	assert.Equal(t, "INS_HUMAN", records[0].EntryName)
	assert.Equal(t, "MALWMRLLPL", records[0].Sequence)

	mass, ok := records[0].Attribute("Mass")
	assert.True(t, ok)
	assert.Equal(t, "11,981", mass)

	goIDs, ok := records[1].Attribute("Gene Ontology IDs")
	assert.True(t, ok)
	assert.Equal(t, "", goIDs)
}

func TestReadTSVWithoutSequence(t *testing.T) {
	_, _, err := ReadTSV(strings.NewReader("Entry\tLength\nP1\t10\n"))
	assert.ErrorIs(t, err, ErrNoSequenceColumn)
}

func TestReadFASTA(t *testing.T) {
	in := ">sp|P04637|P53_HUMAN Cellular tumor antigen p53 OS=Homo sapiens OX=9606 GN=TP53 PE=1 SV=4\n" +
		"MEEPQSDPSV\nEPPLSQETFS\n" +
		">custom_seq no organism here\nmkv\n"

	records, err := ReadFASTA(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "P04637", records[0].Accession)
	assert.Equal(t, "P53_HUMAN", records[0].EntryName)
	assert.Equal(t, "Homo sapiens", records[0].Organism)
	assert.Equal(t, "MEEPQSDPSVEPPLSQETFS", records[0].Sequence)

	assert.Equal(t, "custom_seq", records[1].Accession)
	assert.Equal(t, "", records[1].Organism)
	assert.Equal(t, "MKV", records[1].Sequence)
}

func TestPanel(t *testing.T) {
	assert.Len(t, DefaultPanel.IDs(), 16)

	p, err := ParsePanel([]byte("name: small\naccessions:\n  - accession: P01308\n    note: insulin\n  - accession: ' '\n  - accession: P00924\n"))
	require.NoError(t, err)
	assert.Equal(t, "small", p.Name)
	assert.Equal(t, []string{"P01308", "P00924"}, p.IDs())

	_, err = ParsePanel([]byte("name: empty\naccessions: []\n"))
	assert.Error(t, err)
}
