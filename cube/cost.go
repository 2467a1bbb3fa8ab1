package cube

import "math"

// sanityCheckTolerance is the fixed absolute tolerance used by the cost
// sanity check. It does not scale with the number of features.
const sanityCheckTolerance = 1e-2

// reconstructCosts walks the full derivation tree and, for every hyperedge
// visited, accumulates each feature function's transition cost. This
// runs as a pass separate from buildNumeric's yield walk, so the yield
// serializer stays free of any knowledge of feature functions.
func (ex *Extractor) reconstructCosts(d *DerivationState, sentID int) ([]float64, error) {
	costs := make([]float64, len(ex.features))

	var walk func(d *DerivationState) error
	walk = func(d *DerivationState) error {
		for k, f := range ex.features {
			costs[k] += f.TransitionCost(d.Edge, d.Parent.I, d.Parent.J, sentID)
		}
		for i := range d.Edge.Antecedents {
			child, err := ex.childDerivation(d.Edge, i, rankAt(d, i))
			if err != nil {
				return err
			}
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(d); err != nil {
		return nil, err
	}
	return costs, nil
}

// sanityCheck re-weights the reconstructed per-feature costs and verifies
// the result reproduces the derivation's stored cost within tolerance.
func (ex *Extractor) sanityCheck(d *DerivationState, costs []float64) error {
	var sum float64
	weights := make([]float64, len(ex.features))
	for k, f := range ex.features {
		weights[k] = f.Weight()
		sum += weights[k] * costs[k]
	}
	if math.Abs(d.Cost-sum) > sanityCheckTolerance {
		return &CostMismatchError{
			NodeID:   d.Parent.ID,
			Expected: d.Cost,
			Actual:   sum,
			Weights:  weights,
			Costs:    costs,
		}
	}
	return nil
}
