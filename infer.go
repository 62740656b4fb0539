package heredity

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/carbocation/pfx"
)

// MaxPeople bounds the pedigree size the engine will enumerate. Subsets are
// held in uint32 bitmasks and the world count is 6^n, so anything near this
// limit is already impractical to evaluate; the bound just turns runaway
// inputs into an error instead of an overflow.
const MaxPeople = 24

// Infer computes, for every person in the pedigree, the posterior
// distribution over gene copy counts and trait expression conditioned on all
// observed trait values, by exhaustive enumeration under DefaultProbs. The
// pedigree is not modified. An empty pedigree yields an empty result.
func Infer(ped *Pedigree) (Distributions, error) {
	return DefaultProbs.Infer(ped)
}

// Infer runs the enumeration under the receiver's probability tables.
func (p Probs) Infer(ped *Pedigree) (Distributions, error) {
	n := ped.Len()
	if n == 0 {
		return Distributions{}, nil
	}
	if err := p.checkInput(ped); err != nil {
		return nil, err
	}

	universe := uint32(1)<<uint(n) - 1
	acc := newAccumulator(n)
	genes := make([]uint8, n)

	for ht := newSubsetIter(universe); ; {
		haveTrait, ok := ht.Next()
		if !ok {
			break
		}
		if !ped.consistentTrait(haveTrait) {
			continue
		}

		p.scoreTraitWorlds(ped, universe, haveTrait, genes, acc)
	}

	if err := acc.normalize(ped); err != nil {
		return nil, err
	}

	return acc.distributions(ped), nil
}

// InferParallel is Infer under DefaultProbs with worlds fanned out across
// workers. workers < 1 selects one worker per CPU.
func InferParallel(ped *Pedigree, workers int) (Distributions, error) {
	return DefaultProbs.InferParallel(ped, workers)
}

// InferParallel partitions the enumeration by have-trait subset. Each worker
// scores its subsets into a private accumulator; the privates are summed
// once all workers finish, so no locking guards the buckets. The result
// matches the sequential path up to floating-point summation order.
func (p Probs) InferParallel(ped *Pedigree, workers int) (Distributions, error) {
	n := ped.Len()
	if n == 0 {
		return Distributions{}, nil
	}
	if err := p.checkInput(ped); err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	universe := uint32(1)<<uint(n) - 1
	subsets := make(chan uint32)
	accs := make([]*accumulator, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		acc := newAccumulator(n)
		accs[w] = acc

		wg.Add(1)
		go func() {
			defer wg.Done()

			genes := make([]uint8, n)
			for haveTrait := range subsets {
				p.scoreTraitWorlds(ped, universe, haveTrait, genes, acc)
			}
		}()
	}

	for ht := newSubsetIter(universe); ; {
		haveTrait, ok := ht.Next()
		if !ok {
			break
		}
		if !ped.consistentTrait(haveTrait) {
			continue
		}
		subsets <- haveTrait
	}
	close(subsets)
	wg.Wait()

	acc := accs[0]
	for _, other := range accs[1:] {
		acc.merge(other)
	}

	if err := acc.normalize(ped); err != nil {
		return nil, err
	}

	return acc.distributions(ped), nil
}

// scoreTraitWorlds enumerates every disjoint (one-copy, two-copy) subset
// pair for one candidate have-trait subset, folding each world's joint
// probability into acc. genes is caller-owned scratch of pedigree length;
// the assignment is resolved once per pair and shared by the evaluator and
// the accumulator.
func (p Probs) scoreTraitWorlds(ped *Pedigree, universe, haveTrait uint32, genes []uint8, acc *accumulator) {
	for og := newSubsetIter(universe); ; {
		oneGene, ok := og.Next()
		if !ok {
			break
		}

		for tg := newSubsetIter(universe &^ oneGene); ; {
			twoGenes, ok := tg.Next()
			if !ok {
				break
			}

			resolveGenes(genes, oneGene, twoGenes)
			acc.add(genes, haveTrait, p.jointProbability(ped, genes, haveTrait))
		}
	}
}

func (p Probs) checkInput(ped *Pedigree) error {
	if n := ped.Len(); n > MaxPeople {
		return pfx.Err(fmt.Errorf("pedigree has %d people; the enumeration supports at most %d", n, MaxPeople))
	}

	return ped.Validate()
}
