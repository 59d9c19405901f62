package protparam

import "math"

const (
	piStart     = 7.775
	piMin       = 4.05
	piMax       = 12.0
	piTolerance = 0.0001
)

// chargeModel holds the ionizable group counts and the pK tables adjusted for
// the terminal residues of one sequence.
type chargeModel struct {
	content map[string]float64
	pos     map[string]float64
	neg     map[string]float64
}

func (a *Analysis) chargeModel() (*chargeModel, error) {
	if len(a.sequence) == 0 {
		return nil, ErrEmptySequence
	}

	content := map[string]float64{"Nterm": 1.0, "Cterm": 1.0}
	for _, aa := range []byte("KRHDECY") {
		content[string(aa)] = float64(a.counts[aa])
	}

	pos := make(map[string]float64, len(positivePKs))
	for k, v := range positivePKs {
		pos[k] = v
	}
	neg := make(map[string]float64, len(negativePKs))
	for k, v := range negativePKs {
		neg[k] = v
	}
	if pk, ok := pKNTerminal[a.sequence[0]]; ok {
		pos["Nterm"] = pk
	}
	if pk, ok := pKCTerminal[a.sequence[len(a.sequence)-1]]; ok {
		neg["Cterm"] = pk
	}

	return &chargeModel{content: content, pos: pos, neg: neg}, nil
}

func (m *chargeModel) chargeAt(pH float64) float64 {
	positive := 0.0
	for _, group := range positiveGroups {
		positive += m.content[group] / (math.Pow(10, pH-m.pos[group]) + 1.0)
	}
	negative := 0.0
	for _, group := range negativeGroups {
		negative += m.content[group] / (math.Pow(10, m.neg[group]-pH) + 1.0)
	}
	return positive - negative
}

// ChargeAtPH is the net charge of the chain at the given pH.
func (a *Analysis) ChargeAtPH(pH float64) (float64, error) {
	m, err := a.chargeModel()
	if err != nil {
		return 0, err
	}
	return m.chargeAt(pH), nil
}

// IsoelectricPoint finds the pH at which the net charge is zero by bisection.
func (a *Analysis) IsoelectricPoint() (float64, error) {
	m, err := a.chargeModel()
	if err != nil {
		return 0, err
	}

	lo, hi := piMin, piMax
	// Widen the bracket for extreme sequences. The charge is monotonic in pH,
	// so this terminates.
	for m.chargeAt(lo) < 0 {
		lo--
	}
	for m.chargeAt(hi) > 0 {
		hi++
	}

	pH := piStart
	if pH < lo || pH > hi {
		pH = (lo + hi) / 2
	}
	for hi-lo > piTolerance {
		if m.chargeAt(pH) > 0 {
			lo = pH
		} else {
			hi = pH
		}
		pH = (lo + hi) / 2
	}
	return pH, nil
}
