package heredity

// transmit returns the probability that a parent carrying the given number
// of copies passes one on to their child: a carrier of two copies transmits
// unless a mutation flips the copy off, a non-carrier transmits only via
// mutation, and a one-copy parent transmits with probability exactly 0.5
// because the two mutation directions cancel.
func (p Probs) transmit(copies uint8) float64 {
	switch copies {
	case 2:
		return 1 - p.Mutation
	case 1:
		return 0.5
	}

	return p.Mutation
}

// inherit returns P(child carries childCopies | mother and father copy
// counts). The child's count is the sum of two independent transmissions,
// one per parent. The one-copy case is written out as collapsed constants by
// parental sum rather than recomputed from the transmission probabilities,
// so that the cases where the mutation algebra cancels come out at exactly
// 0.5 with no floating-point drift across the enumeration.
func (p Probs) inherit(childCopies, mother, father uint8) float64 {
	switch childCopies {
	case 2:
		return p.transmit(mother) * p.transmit(father)
	case 0:
		return (1 - p.transmit(mother)) * (1 - p.transmit(father))
	}

	// Exactly one transmission: mother-and-not-father or father-and-not-mother.
	switch mother + father {
	case 1, 3:
		// One parent is heterozygous; mutations cancel.
		return 0.5
	case 2:
		if mother == 1 {
			// Both heterozygous; mutations cancel.
			return 0.5
		}
		// One homozygous carrier, one non-carrier: both transmit or neither.
		return 1 - 2*p.Mutation + 2*p.Mutation*p.Mutation
	}

	// Both parents are homozygous alike (sum 0 or 4): one copy requires
	// exactly one mutation.
	return 2 * p.Mutation * (1 - p.Mutation)
}

// jointProbability returns the probability of one fully specified world: the
// product over every person of their inheritance factor (the prior for
// founders, parental transmission otherwise) and their trait factor. Every
// person is evaluated even after a factor of zero; worlds are independent of
// one another, so callers may score them in parallel.
func (p Probs) jointProbability(ped *Pedigree, genes []uint8, haveTrait uint32) float64 {
	joint := 1.0

	for i := range ped.People {
		person := &ped.People[i]

		var prob float64
		if person.Founder() {
			prob = p.Gene[genes[i]]
		} else {
			prob = p.inherit(genes[i], genes[person.Mother], genes[person.Father])
		}

		expressed := 0
		if haveTrait&(1<<uint(i)) != 0 {
			expressed = 1
		}
		prob *= p.Trait[genes[i]][expressed]

		joint *= prob
	}

	return joint
}
