package heredity

import (
	"math"
	"strings"
	"testing"
)

const family0CSV = `name,mother,father,trait
Harry,Lily,James,
James,,,1
Lily,,,0
`

func TestTransmit(t *testing.T) {
	cases := []struct {
		copies   uint8
		expected float64
	}{
		{0, 0.01},
		{1, 0.5},
		{2, 0.99},
	}

	for _, c := range cases {
		if got := DefaultProbs.transmit(c.copies); got != c.expected {
			t.Errorf("transmit(%d): Got %v, expected %v", c.copies, got, c.expected)
		}
	}
}

func TestInheritClosedForms(t *testing.T) {
	mu := DefaultProbs.Mutation

	cases := []struct {
		child, mother, father uint8
		expected              float64
	}{
		// One transmission with a heterozygous parent collapses to 0.5
		{1, 0, 1, 0.5},
		{1, 1, 0, 0.5},
		{1, 1, 1, 0.5},
		{1, 1, 2, 0.5},
		{1, 2, 1, 0.5},
		// Homozygous carrier plus non-carrier: both transmit or neither
		{1, 2, 0, 1 - 2*mu + 2*mu*mu},
		{1, 0, 2, 1 - 2*mu + 2*mu*mu},
		// Parents homozygous alike: exactly one mutation
		{1, 0, 0, 2 * mu * (1 - mu)},
		{1, 2, 2, 2 * mu * (1 - mu)},
		// Two and zero copies are plain transmission products
		{2, 2, 2, (1 - mu) * (1 - mu)},
		{2, 0, 0, mu * mu},
		{2, 1, 2, 0.5 * (1 - mu)},
		{0, 0, 0, (1 - mu) * (1 - mu)},
		{0, 2, 2, mu * mu},
		{0, 1, 0, 0.5 * (1 - mu)},
	}

	for _, c := range cases {
		if got := DefaultProbs.inherit(c.child, c.mother, c.father); got != c.expected {
			t.Errorf("inherit(%d, %d, %d): Got %v, expected %v", c.child, c.mother, c.father, got, c.expected)
		}
	}
}

// Over any pair of parental copy counts, the child must carry 0, 1, or 2
// copies with total probability 1.
func TestInheritDistributes(t *testing.T) {
	for mother := uint8(0); mother <= 2; mother++ {
		for father := uint8(0); father <= 2; father++ {
			sum := 0.0
			for child := uint8(0); child <= 2; child++ {
				p := DefaultProbs.inherit(child, mother, father)
				if p < 0 || p > 1 {
					t.Errorf("inherit(%d, %d, %d) = %v is outside [0,1]", child, mother, father, p)
				}
				sum += p
			}
			if math.Abs(sum-1) > 1e-12 {
				t.Errorf("Parents (%d, %d): child distribution sums to %v, expected 1", mother, father, sum)
			}
		}
	}
}

func TestJointProbabilityKnownWorld(t *testing.T) {
	ped, err := ReadPedigree(strings.NewReader(family0CSV))
	if err != nil {
		t.Fatal(err)
	}

	harry, _ := ped.Index("Harry")
	james, _ := ped.Index("James")

	// Harry carries one copy, James two, Lily none; only James expresses
	// the trait. The hand-computed joint is
	// (0.96*0.99) * (0.01*0.65) * (0.9802*0.44) = 0.0026643247488.
	oneGene := uint32(1) << uint(harry)
	twoGenes := uint32(1) << uint(james)
	haveTrait := uint32(1) << uint(james)

	genes := make([]uint8, ped.Len())
	resolveGenes(genes, oneGene, twoGenes)

	got := DefaultProbs.jointProbability(ped, genes, haveTrait)
	expected := 0.0026643247488
	if math.Abs(got-expected) > 1e-12 {
		t.Errorf("Got %v, expected %v", got, expected)
	}
}

// Summing the joint over every world, with no evidence filtering, must
// exhaust the probability space.
func TestJointProbabilityTotalMass(t *testing.T) {
	pedigrees := []string{
		"name,mother,father,trait\nLily,,,\n",
		"name,mother,father,trait\nJames,,,\nLily,,,\n",
		"name,mother,father,trait\nHarry,Lily,James,\nJames,,,\nLily,,,\n",
	}

	for _, csvData := range pedigrees {
		ped, err := ReadPedigree(strings.NewReader(csvData))
		if err != nil {
			t.Fatal(err)
		}

		universe := uint32(1)<<uint(ped.Len()) - 1
		genes := make([]uint8, ped.Len())

		total := 0.0
		for ht := newSubsetIter(universe); ; {
			haveTrait, ok := ht.Next()
			if !ok {
				break
			}
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
					p := DefaultProbs.jointProbability(ped, genes, haveTrait)
					if p < 0 || p > 1 {
						t.Errorf("Joint probability %v is outside [0,1]", p)
					}
					total += p
				}
			}
		}

		if math.Abs(total-1) > 1e-9 {
			t.Errorf("%d people: total mass %v, expected 1", ped.Len(), total)
		}
	}
}
