/*
Package protparam computes ProtParam-style descriptors for a single protein
sequence: composition, average molecular weight, GRAVY, instability index,
net charge, isoelectric point and a composition-based secondary structure
estimate.
*/
package protparam

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrEmptySequence  = errors.New("empty sequence")
	ErrUnknownResidue = errors.New("unknown residue")
)

// UnknownResidueError reports a residue that a scale has no value for.
type UnknownResidueError struct {
	Residue  byte
	Position int
	Scale    string
}

func (e *UnknownResidueError) Error() string {
	return fmt.Sprintf("%s: unknown residue %q at position %d", e.Scale, e.Residue, e.Position+1)
}

func (e *UnknownResidueError) Unwrap() error { return ErrUnknownResidue }

// Analysis holds an upper-cased sequence and its standard residue counts.
type Analysis struct {
	sequence string
	counts   map[byte]int
}

func NewAnalysis(sequence string) *Analysis {
	seq := strings.ToUpper(strings.TrimSpace(sequence))
	counts := make(map[byte]int, len(StandardResidues))
	for i := 0; i < len(StandardResidues); i++ {
		counts[StandardResidues[i]] = strings.Count(seq, StandardResidues[i:i+1])
	}
	return &Analysis{sequence: seq, counts: counts}
}

func (a *Analysis) Sequence() string { return a.sequence }

func (a *Analysis) Length() int { return len(a.sequence) }

// CountAminoAcids returns the count of each standard residue. Other symbols
// are not counted.
func (a *Analysis) CountAminoAcids() map[byte]int {
	out := make(map[byte]int, len(a.counts))
	for k, v := range a.counts {
		out[k] = v
	}
	return out
}

// StandardCount is the number of residues that are one of the 20 standard
// amino acids.
func (a *Analysis) StandardCount() int {
	total := 0
	for _, v := range a.counts {
		total += v
	}
	return total
}

// AminoAcidsPercent returns each standard residue count divided by the full
// sequence length, as a fraction.
func (a *Analysis) AminoAcidsPercent() (map[byte]float64, error) {
	if len(a.sequence) == 0 {
		return nil, ErrEmptySequence
	}
	out := make(map[byte]float64, len(a.counts))
	for k, v := range a.counts {
		out[k] = float64(v) / float64(len(a.sequence))
	}
	return out, nil
}

// CountFraction is the share of residues in set over the standard residue
// total. Zero when the sequence has no standard residues.
func (a *Analysis) CountFraction(set string) float64 {
	total := a.StandardCount()
	if total == 0 {
		return 0
	}
	n := 0
	for i := 0; i < len(set); i++ {
		n += a.counts[set[i]]
	}
	return float64(n) / float64(total)
}

// PercentFraction is the sum of AminoAcidsPercent over the residues in set.
func (a *Analysis) PercentFraction(set string) (float64, error) {
	pct, err := a.AminoAcidsPercent()
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for i := 0; i < len(set); i++ {
		sum += pct[set[i]]
	}
	return sum, nil
}

// MolecularWeight is the average mass of the chain in Daltons.
func (a *Analysis) MolecularWeight() (float64, error) {
	if len(a.sequence) == 0 {
		return 0, ErrEmptySequence
	}
	weight := 0.0
	for i := 0; i < len(a.sequence); i++ {
		w, ok := proteinWeights[a.sequence[i]]
		if !ok {
			return 0, &UnknownResidueError{Residue: a.sequence[i], Position: i, Scale: "molecular weight"}
		}
		weight += w
	}
	return weight - float64(len(a.sequence)-1)*waterAverage, nil
}

// Gravy is the grand average of hydropathy (Kyte & Doolittle).
func (a *Analysis) Gravy() (float64, error) {
	if len(a.sequence) == 0 {
		return 0, ErrEmptySequence
	}
	total := 0.0
	for i := 0; i < len(a.sequence); i++ {
		v, ok := kyteDoolittle[a.sequence[i]]
		if !ok {
			return 0, &UnknownResidueError{Residue: a.sequence[i], Position: i, Scale: "gravy"}
		}
		total += v
	}
	return total / float64(len(a.sequence)), nil
}

// InstabilityIndex follows Guruprasad et al. (1990). Values above 40 are
// usually read as an unstable protein.
func (a *Analysis) InstabilityIndex() (float64, error) {
	if len(a.sequence) == 0 {
		return 0, ErrEmptySequence
	}
	score := 0.0
	for i := 0; i < len(a.sequence)-1; i++ {
		row, ok := diwv[a.sequence[i]]
		if !ok {
			return 0, &UnknownResidueError{Residue: a.sequence[i], Position: i, Scale: "instability index"}
		}
		v, ok := row[a.sequence[i+1]]
		if !ok {
			return 0, &UnknownResidueError{Residue: a.sequence[i+1], Position: i + 1, Scale: "instability index"}
		}
		score += v
	}
	if len(a.sequence) == 1 {
		if _, ok := diwv[a.sequence[0]]; !ok {
			return 0, &UnknownResidueError{Residue: a.sequence[0], Position: 0, Scale: "instability index"}
		}
	}
	return (10.0 / float64(len(a.sequence))) * score, nil
}

// SecondaryStructureFraction returns the helix, turn and sheet fractions.
func (a *Analysis) SecondaryStructureFraction() (helix, turn, sheet float64, err error) {
	if helix, err = a.PercentFraction(HelixResidues); err != nil {
		return math.NaN(), math.NaN(), math.NaN(), err
	}
	turn, _ = a.PercentFraction(TurnResidues)
	sheet, _ = a.PercentFraction(SheetResidues)
	return helix, turn, sheet, nil
}
