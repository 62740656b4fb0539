package heredity

// Subsets of the pedigree are uint32 bitmasks: bit i set means the person at
// index i is a member. The enumeration below walks every submask of a fixed
// universe, which covers both the full powerset (universe = all people) and
// the two-copy subsets drawn from the complement of a one-copy subset.

type subsetIter struct {
	universe uint32
	next     uint32
	done     bool
}

func newSubsetIter(universe uint32) *subsetIter {
	return &subsetIter{universe: universe, next: universe}
}

// Next returns successive subsets, starting with the universe itself and
// ending with the empty set. The second return is false once the enumeration
// is exhausted.
func (s *subsetIter) Next() (uint32, bool) {
	if s.done {
		return 0, false
	}

	cur := s.next
	if cur == 0 {
		s.done = true
	} else {
		// Stepping (cur-1)&universe visits every submask exactly once.
		s.next = (cur - 1) & s.universe
	}

	return cur, true
}

// resolveGenes fills counts with the gene copy count implied for each person
// by the one- and two-copy subsets; everyone in neither subset carries zero
// copies. The two subsets are assumed disjoint.
func resolveGenes(counts []uint8, oneGene, twoGenes uint32) {
	for i := range counts {
		bit := uint32(1) << uint(i)
		switch {
		case oneGene&bit != 0:
			counts[i] = 1
		case twoGenes&bit != 0:
			counts[i] = 2
		default:
			counts[i] = 0
		}
	}
}
