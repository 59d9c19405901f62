// Feature rows built from protein records, and the tables that hold them.

package model

import (
	"errors"
	"math"

	"github.com/yumyai/protprofile/logger"
	"github.com/yumyai/protprofile/pkg/dataset"
	"github.com/yumyai/protprofile/pkg/protparam"
	"github.com/yumyai/protprofile/pkg/uniprot"
	"go.uber.org/zap"
)

// Residue groups for the composition proportions.
const (
	PolarResidues       = "QNHSTYCW"
	ApolarResidues      = "AVLIPFMG"
	HydrophobicResidues = "AILMFWYV"
	PositiveResidues    = "KRH"
	NegativeResidues    = "DE"
)

// Column names of a profile table, in output order.
const (
	ColID               = "id"
	ColLength           = "length"
	ColMolecularWeight  = "molecular_weight"
	ColIsoelectricPoint = "isoelectric_point"
	ColGravy            = "gravy"
	ColInstability      = "instability_index"
	ColHelix            = "helix_fraction"
	ColTurn             = "turn_fraction"
	ColSheet            = "sheet_fraction"
	ColHydrophobic      = "hydrophobic_fraction"
	ColPositive         = "positive_fraction"
	ColNegative         = "negative_fraction"
	ColNetCharge        = "net_charge"
	ColClass            = "class"
	ColOrganism         = "organism"
)

// Features is one profile row. Failed descriptors hold NaN.
type Features struct {
	ID               string
	Length           int
	MolecularWeight  float64
	IsoelectricPoint float64
	Gravy            float64
	Instability      float64
	Helix            float64
	Turn             float64
	Sheet            float64
	Hydrophobic      float64
	Positive         float64
	Negative         float64
	NetCharge        float64
	Class            string
	Organism         string
}

// Profile computes the full descriptor row for a record. An empty sequence is
// an error and the record should be skipped; any other failure only blanks
// the descriptor it affects.
func Profile(rec *uniprot.Record) (*Features, error) {
	a := protparam.NewAnalysis(rec.Sequence)
	if a.Length() == 0 {
		return nil, protparam.ErrEmptySequence
	}

	f := &Features{
		ID:       rec.ID(),
		Length:   a.Length(),
		Class:    Classify(rec.Organism),
		Organism: rec.Organism,
	}

	f.MolecularWeight = orMissing(rec, "molecular_weight", a.MolecularWeight)
	f.IsoelectricPoint = orMissing(rec, "isoelectric_point", a.IsoelectricPoint)
	f.Gravy = orMissing(rec, "gravy", a.Gravy)
	f.Instability = orMissing(rec, "instability_index", a.InstabilityIndex)

	helix, turn, sheet, err := a.SecondaryStructureFraction()
	if err != nil {
		logger.Warn("Descriptor failed", zap.String("id", rec.ID()), zap.String("descriptor", "secondary_structure"), zap.Error(err))
	}
	f.Helix, f.Turn, f.Sheet = helix, turn, sheet

	f.Hydrophobic, _ = a.PercentFraction(HydrophobicResidues)
	f.Positive, _ = a.PercentFraction(PositiveResidues)
	f.Negative, _ = a.PercentFraction(NegativeResidues)
	f.NetCharge = f.Positive - f.Negative

	return f, nil
}

func orMissing(rec *uniprot.Record, name string, compute func() (float64, error)) float64 {
	v, err := compute()
	if err != nil {
		logger.Warn("Descriptor failed", zap.String("id", rec.ID()), zap.String("descriptor", name), zap.Error(err))
		return math.NaN()
	}
	return v
}

// ProfileAll profiles records in order, skipping those without a sequence.
func ProfileAll(records []*uniprot.Record) []*Features {
	out := make([]*Features, 0, len(records))
	for _, rec := range records {
		f, err := Profile(rec)
		if errors.Is(err, protparam.ErrEmptySequence) {
			logger.Warn("Skipping record without sequence", zap.String("id", rec.ID()))
			continue
		}
		out = append(out, f)
	}
	return out
}

// ProfileFrame lays feature rows out as a table.
func ProfileFrame(rows []*Features) *dataset.Frame {
	n := len(rows)
	var (
		ids, classes, organisms = make([]string, n), make([]string, n), make([]string, n)
		length, mw, pi, gravy   = make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
		instab, helix, turn     = make([]float64, n), make([]float64, n), make([]float64, n)
		sheet, hydro, pos, neg  = make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
		net                     = make([]float64, n)
	)
	for i, r := range rows {
		ids[i], classes[i], organisms[i] = r.ID, r.Class, r.Organism
		length[i], mw[i], pi[i], gravy[i] = float64(r.Length), r.MolecularWeight, r.IsoelectricPoint, r.Gravy
		instab[i], helix[i], turn[i] = r.Instability, r.Helix, r.Turn
		sheet[i], hydro[i], pos[i], neg[i] = r.Sheet, r.Hydrophobic, r.Positive, r.Negative
		net[i] = r.NetCharge
	}

	f := dataset.NewFrame()
	// Column names are unique and lengths equal, so adds cannot fail.
	_ = f.AddText(ColID, ids)
	_ = f.AddNumeric(ColLength, length)
	_ = f.AddNumeric(ColMolecularWeight, mw)
	_ = f.AddNumeric(ColIsoelectricPoint, pi)
	_ = f.AddNumeric(ColGravy, gravy)
	_ = f.AddNumeric(ColInstability, instab)
	_ = f.AddNumeric(ColHelix, helix)
	_ = f.AddNumeric(ColTurn, turn)
	_ = f.AddNumeric(ColSheet, sheet)
	_ = f.AddNumeric(ColHydrophobic, hydro)
	_ = f.AddNumeric(ColPositive, pos)
	_ = f.AddNumeric(ColNegative, neg)
	_ = f.AddNumeric(ColNetCharge, net)
	_ = f.AddText(ColClass, classes)
	_ = f.AddText(ColOrganism, organisms)
	return f
}
