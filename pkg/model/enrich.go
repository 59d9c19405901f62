package model

import (
	"math"

	"github.com/yumyai/protprofile/logger"
	"github.com/yumyai/protprofile/pkg/dataset"
	"github.com/yumyai/protprofile/pkg/protparam"
	"github.com/yumyai/protprofile/pkg/uniprot"
	"go.uber.org/zap"
)

// Columns appended to an enriched export.
const (
	ColChargePH7      = "charge_ph7"
	ColPolarFraction  = "polar_fraction"
	ColApolarFraction = "apolar_fraction"
)

// EnrichColumns are the computed columns, in the order they are appended.
var EnrichColumns = []string{ColIsoelectricPoint, ColGravy, ColChargePH7, ColPolarFraction, ColApolarFraction}

// EnrichPreviewColumns are shown after an enrich run when present: the
// sequence, the export's own mass and length, the computed columns and the
// GO annotations.
var EnrichPreviewColumns = []string{
	uniprot.ColumnSequence, "Mass",
	ColIsoelectricPoint, ColGravy, ColChargePH7, ColPolarFraction, ColApolarFraction,
	"Length", "Gene Ontology IDs",
}

// PreviewFrame selects the EnrichPreviewColumns that f has, in that order.
func PreviewFrame(f *dataset.Frame) (*dataset.Frame, error) {
	var names []string
	for _, name := range EnrichPreviewColumns {
		if _, ok := f.Column(name); ok {
			names = append(names, name)
		}
	}
	return f.Select(names...)
}

// Enrichment holds the five descriptors added to each exported row.
type Enrichment struct {
	IsoelectricPoint float64
	Gravy            float64
	ChargePH7        float64
	Polar            float64
	Apolar           float64
}

func (e Enrichment) values() []float64 {
	return []float64{e.IsoelectricPoint, e.Gravy, e.ChargePH7, e.Polar, e.Apolar}
}

func missingEnrichment() Enrichment {
	nan := math.NaN()
	return Enrichment{nan, nan, nan, nan, nan}
}

// EnrichRow computes the descriptors for one sequence. Proportions are over
// the standard residue count. If any descriptor fails, all five are missing.
func EnrichRow(sequence string) (Enrichment, error) {
	a := protparam.NewAnalysis(sequence)

	pi, err := a.IsoelectricPoint()
	if err != nil {
		return missingEnrichment(), err
	}
	gravy, err := a.Gravy()
	if err != nil {
		return missingEnrichment(), err
	}
	charge, err := a.ChargeAtPH(7.0)
	if err != nil {
		return missingEnrichment(), err
	}

	return Enrichment{
		IsoelectricPoint: pi,
		Gravy:            gravy,
		ChargePH7:        charge,
		Polar:            a.CountFraction(PolarResidues),
		Apolar:           a.CountFraction(ApolarResidues),
	}, nil
}

// EnrichFrame keeps every exported column, inferring its kind, and appends
// the computed columns. Rows that fail are logged and left missing.
func EnrichFrame(header []string, records []*uniprot.Record) (*dataset.Frame, error) {
	f := dataset.NewFrame()
	for j, name := range header {
		raw := make([]string, len(records))
		for i, rec := range records {
			if j < len(rec.Attributes) {
				raw[i] = rec.Attributes[j].Value
			}
		}
		if err := f.AddInferred(name, raw); err != nil {
			return nil, err
		}
	}

	computed := make([][]float64, len(EnrichColumns))
	for k := range computed {
		computed[k] = make([]float64, len(records))
	}
	failed := 0
	for i, rec := range records {
		e, err := EnrichRow(rec.Sequence)
		if err != nil {
			failed++
			logger.Warn("Sequence error", zap.Int("row", i+1), zap.String("id", rec.ID()), zap.Error(err))
		}
		for k, v := range e.values() {
			computed[k][i] = v
		}
	}
	if failed > 0 {
		logger.Warn("Rows with missing descriptors", zap.Int("failed", failed), zap.Int("total", len(records)))
	}

	for k, name := range EnrichColumns {
		if err := f.AddNumeric(name, computed[k]); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// RecordsFrame builds an enrich-style table for sources without tabular
// attributes, such as FASTA.
func RecordsFrame(records []*uniprot.Record) (*dataset.Frame, error) {
	header := []string{uniprot.ColumnEntry, uniprot.ColumnEntryName, uniprot.ColumnOrganism, uniprot.ColumnSequence}
	withAttrs := make([]*uniprot.Record, len(records))
	for i, rec := range records {
		r := *rec
		r.Attributes = []uniprot.Attribute{
			{Name: uniprot.ColumnEntry, Value: rec.Accession},
			{Name: uniprot.ColumnEntryName, Value: rec.EntryName},
			{Name: uniprot.ColumnOrganism, Value: rec.Organism},
			{Name: uniprot.ColumnSequence, Value: rec.Sequence},
		}
		withAttrs[i] = &r
	}
	return EnrichFrame(header, withAttrs)
}
