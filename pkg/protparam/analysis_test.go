package protparam

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountAminoAcids(t *testing.T) {
	a := NewAnalysis("aaXc")

	counts := a.CountAminoAcids()
	assert.Equal(t, 2, counts['A'])
	assert.Equal(t, 1, counts['C'])
	assert.Equal(t, 0, counts['W'])
	assert.Len(t, counts, 20)
	assert.Equal(t, 3, a.StandardCount())
	assert.Equal(t, 4, a.Length())

	pct, err := a.AminoAcidsPercent()
	require.NoError(t, err)
	assert.InDelta(t, 0.5, pct['A'], 1e-12)
	assert.InDelta(t, 0.25, pct['C'], 1e-12)

	assert.InDelta(t, 2.0/3.0, a.CountFraction("A"), 1e-12)
	assert.Equal(t, 0.0, NewAnalysis("XXX").CountFraction("A"))
}

func TestMolecularWeight(t *testing.T) {
	mw, err := NewAnalysis("AAAA").MolecularWeight()
	require.NoError(t, err)
	assert.InDelta(t, 4*89.0932-3*18.0153, mw, 1e-9)

	single, err := NewAnalysis("G").MolecularWeight()
	require.NoError(t, err)
	assert.InDelta(t, 75.0666, single, 1e-9)

	_, err = NewAnalysis("AXA").MolecularWeight()
	var unknown *UnknownResidueError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, byte('X'), unknown.Residue)
	assert.Equal(t, 1, unknown.Position)
	assert.ErrorIs(t, err, ErrUnknownResidue)
}

func TestGravy(t *testing.T) {
	g, err := NewAnalysis("AAAA").Gravy()
	require.NoError(t, err)
	assert.InDelta(t, 1.8, g, 1e-12)

	g, err = NewAnalysis("ACDE").Gravy()
	require.NoError(t, err)
	assert.InDelta(t, -0.675, g, 1e-12)

	_, err = NewAnalysis("AUA").Gravy()
	assert.Error(t, err)
}

func TestInstabilityIndex(t *testing.T) {
	ii, err := NewAnalysis("AAAA").InstabilityIndex()
	require.NoError(t, err)
	assert.InDelta(t, 7.5, ii, 1e-12)

	// AC = 44.94, CA = 1.0
	ii, err = NewAnalysis("ACA").InstabilityIndex()
	require.NoError(t, err)
	assert.InDelta(t, 10.0/3.0*45.94, ii, 1e-9)

	_, err = NewAnalysis("ABA").InstabilityIndex()
	assert.Error(t, err)
}

func TestSecondaryStructureFraction(t *testing.T) {
	helix, turn, sheet, err := NewAnalysis("VNEA").SecondaryStructureFraction()
	require.NoError(t, err)
	assert.InDelta(t, 0.25, helix, 1e-12)
	assert.InDelta(t, 0.25, turn, 1e-12)
	assert.InDelta(t, 0.5, sheet, 1e-12)
}

func TestChargeAndIsoelectricPoint(t *testing.T) {
	a := NewAnalysis("AAAA")

	charge, err := a.ChargeAtPH(7.0)
	require.NoError(t, err)
	assert.InDelta(t, -0.2045, charge, 1e-3)

	// Only the termini ionize: N-terminal A (7.59) and C-terminus (2.0).
	pi, err := a.IsoelectricPoint()
	require.NoError(t, err)
	assert.InDelta(t, 4.795, pi, 1e-3)

	basic := NewAnalysis("KKKKKKKKKK")
	pi, err = basic.IsoelectricPoint()
	require.NoError(t, err)
	assert.Greater(t, pi, 10.0)
	charge, err = basic.ChargeAtPH(pi)
	require.NoError(t, err)
	assert.InDelta(t, 0, charge, 1e-2)

	acidic := NewAnalysis("DDDDDDDDDDDDDDDDDDDD")
	pi, err = acidic.IsoelectricPoint()
	require.NoError(t, err)
	assert.Less(t, pi, 4.05)
}

func TestChargeAtPHIsReproducible(t *testing.T) {
	const p53 = "MEEPQSDPSVEPPLSQETFSDLWKLLPENNVLSPLPSQAMDDLMLSPDDIEQWFTEDPGPDEAPRMPEAAPPVAPAPAAPTPAAPAPAPSWPLSSSVPSQKTYQGSYGFRLGFLHSGTAKSVTCTYSPALNKMFCQLAKTCPVQLWVDSTPPPGTRVRAMAIYKQSQHMTEVVRRCPHHERCSDSDGLAPPQHLIRVEGNLRVEYLDDRNTFRHSVVVPYEPPEVGSDCTTIHYNYMCNSSCMGGMNRRPILTIITLEDSSGNLLGRNSFEVRVCACPGRDRRTEEENLRKKGEPHHELPPGSTKRALPNNTSSSPQPKKKPLDGEYFTLQIRGRERFEMFRELNEALELKDAQAGKEPGGSRAHSSHLKSKKGQSTSRHKKLMFKTEGPDSD"

	// Terms summed in the fixed order N-terminus, K, R, H, then C-terminus,
	// D, E, C, Y, with M starting the chain and D ending it.
	a := NewAnalysis(p53)
	c := a.CountAminoAcids()
	pos := func(n, pk float64) float64 { return n / (math.Pow(10, 7.0-pk) + 1.0) }
	neg := func(n, pk float64) float64 { return n / (math.Pow(10, pk-7.0) + 1.0) }
	positive := 0.0
	positive += pos(1, 7.0)
	positive += pos(float64(c['K']), 10.0)
	positive += pos(float64(c['R']), 12.0)
	positive += pos(float64(c['H']), 5.98)
	negative := 0.0
	negative += neg(1, 4.55)
	negative += neg(float64(c['D']), 4.05)
	negative += neg(float64(c['E']), 4.45)
	negative += neg(float64(c['C']), 9.0)
	negative += neg(float64(c['Y']), 10.0)
	want := positive - negative

	for i := 0; i < 200; i++ {
		got, err := NewAnalysis(p53).ChargeAtPH(7.0)
		require.NoError(t, err)
		require.Equal(t, want, got, "run %d", i)
	}
}

func TestEmptySequence(t *testing.T) {
	a := NewAnalysis("")

	_, err := a.IsoelectricPoint()
	assert.ErrorIs(t, err, ErrEmptySequence)
	_, err = a.Gravy()
	assert.ErrorIs(t, err, ErrEmptySequence)
	_, err = a.MolecularWeight()
	assert.ErrorIs(t, err, ErrEmptySequence)
	_, _, _, err = a.SecondaryStructureFraction()
	assert.ErrorIs(t, err, ErrEmptySequence)
}
