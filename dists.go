package heredity

import (
	"errors"
	"fmt"
)

// ErrInconsistentEvidence indicates that no enumerated world consistent with
// the observed trait values has nonzero probability, leaving nothing to
// normalize. It is surfaced as an error rather than letting NaN propagate
// into the results.
var ErrInconsistentEvidence = errors.New("observed evidence admits no possible world")

// Distribution holds one person's posterior: Gene is indexed by copy count,
// Trait by expression (0 = does not have the trait, 1 = has the trait). Each
// field sums to 1 after normalization.
type Distribution struct {
	Gene  [3]float64
	Trait [2]float64
}

// Distributions maps each person's name to their posterior distributions. It
// is the result of one inference run and is not mutated afterward.
type Distributions map[string]Distribution

// accumulator collects unnormalized marginal mass during enumeration, one
// bucket per person per field value, indexed in pedigree order. Workers each
// own a private accumulator; merging is plain addition.
type accumulator struct {
	dists []Distribution
}

func newAccumulator(n int) *accumulator {
	return &accumulator{dists: make([]Distribution, n)}
}

// add folds one world's joint probability into every person's assigned gene
// and trait buckets. Each world must be added exactly once; repeated calls
// accumulate rather than overwrite.
func (a *accumulator) add(genes []uint8, haveTrait uint32, p float64) {
	for i := range a.dists {
		a.dists[i].Gene[genes[i]] += p

		expressed := 0
		if haveTrait&(1<<uint(i)) != 0 {
			expressed = 1
		}
		a.dists[i].Trait[expressed] += p
	}
}

func (a *accumulator) merge(other *accumulator) {
	for i := range a.dists {
		for g := range a.dists[i].Gene {
			a.dists[i].Gene[g] += other.dists[i].Gene[g]
		}
		for t := range a.dists[i].Trait {
			a.dists[i].Trait[t] += other.dists[i].Trait[t]
		}
	}
}

// normalize rescales each person's two fields to sum to 1, preserving
// relative proportions.
func (a *accumulator) normalize(ped *Pedigree) error {
	for i := range a.dists {
		d := &a.dists[i]

		geneSum := d.Gene[0] + d.Gene[1] + d.Gene[2]
		traitSum := d.Trait[0] + d.Trait[1]
		if geneSum == 0 || traitSum == 0 {
			return fmt.Errorf("%s: %w", ped.People[i].Name, ErrInconsistentEvidence)
		}

		for g := range d.Gene {
			d.Gene[g] /= geneSum
		}
		for t := range d.Trait {
			d.Trait[t] /= traitSum
		}
	}

	return nil
}

// distributions re-keys the finalized slice by person name for the caller.
func (a *accumulator) distributions(ped *Pedigree) Distributions {
	out := make(Distributions, len(a.dists))
	for i := range a.dists {
		out[ped.People[i].Name] = a.dists[i]
	}

	return out
}
