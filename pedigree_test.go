package heredity

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func TestOpenFamily0(t *testing.T) {
	ped, err := Open("testdata/family0.csv")
	if err != nil {
		t.Fatal(err)
	}

	if ped.Len() != 3 {
		t.Fatalf("Got %d people, expected %d", ped.Len(), 3)
	}

	harry, ok := ped.Index("Harry")
	if !ok {
		t.Fatal("Harry is missing from the pedigree")
	}
	james, _ := ped.Index("James")
	lily, _ := ped.Index("Lily")

	h := ped.People[harry]
	if h.Mother != lily || h.Father != james {
		t.Errorf("Harry's parents: Got (%d, %d), expected (%d, %d)", h.Mother, h.Father, lily, james)
	}
	if h.Founder() {
		t.Error("Harry is not a founder")
	}
	if h.Trait != TraitUnknown {
		t.Errorf("Harry's trait: Got %s, expected %s", h.Trait, TraitUnknown)
	}

	if j := ped.People[james]; !j.Founder() || j.Trait != TraitPresent {
		t.Errorf("James: Got founder=%v trait=%s, expected a founder with the trait", j.Founder(), j.Trait)
	}
	if l := ped.People[lily]; !l.Founder() || l.Trait != TraitAbsent {
		t.Errorf("Lily: Got founder=%v trait=%s, expected a founder without the trait", l.Founder(), l.Trait)
	}
}

func TestOpenGzippedPedigree(t *testing.T) {
	raw, err := os.ReadFile("testdata/family0.csv")
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "family0.csv.gz")
	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(file)
	if _, err := gz.Write(raw); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	if err := file.Close(); err != nil {
		t.Fatal(err)
	}

	ped, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if ped.Len() != 3 {
		t.Errorf("Got %d people, expected %d", ped.Len(), 3)
	}
}

func TestReadPedigreeRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name    string
		csvData string
	}{
		{"one parent only", "name,mother,father,trait\nHarry,Lily,,\nLily,,,\n"},
		{"dangling mother", "name,mother,father,trait\nHarry,Petunia,James,\nJames,,,\n"},
		{"dangling father", "name,mother,father,trait\nHarry,Lily,Vernon,\nLily,,,\n"},
		{"duplicate name", "name,mother,father,trait\nLily,,,\nLily,,,1\n"},
		{"bad trait token", "name,mother,father,trait\nLily,,,yes\n"},
		{"self parent", "name,mother,father,trait\nOuroboros,Ouroboros,Ouroboros,\n"},
		{"parent cycle", "name,mother,father,trait\nA,B,B,\nB,A,A,\n"},
		{"blank name", "name,mother,father,trait\n,,,\n"},
	}

	for _, c := range cases {
		_, err := ReadPedigree(strings.NewReader(c.csvData))
		var invalid *InvalidPedigreeError
		if !errors.As(err, &invalid) {
			t.Errorf("%s: Got %v, expected an InvalidPedigreeError", c.name, err)
		}
	}
}

func TestReadPedigreeRejectsMissingColumns(t *testing.T) {
	if _, err := ReadPedigree(strings.NewReader("name,mother,father\nLily,,\n")); err == nil {
		t.Error("Got no error for a header without a trait column")
	}
	if _, err := ReadPedigree(strings.NewReader("")); err == nil {
		t.Error("Got no error for empty input")
	}
}

func TestReadPedigreeColumnOrderIndependent(t *testing.T) {
	csvData := "trait,father,mother,name\n1,,,James\n"

	ped, err := ReadPedigree(strings.NewReader(csvData))
	if err != nil {
		t.Fatal(err)
	}

	james, ok := ped.Index("James")
	if !ok {
		t.Fatal("James is missing from the pedigree")
	}
	if ped.People[james].Trait != TraitPresent {
		t.Errorf("Got %s, expected %s", ped.People[james].Trait, TraitPresent)
	}
}

func TestConsistentTrait(t *testing.T) {
	ped, err := Open("testdata/family0.csv")
	if err != nil {
		t.Fatal(err)
	}

	harry, _ := ped.Index("Harry")
	james, _ := ped.Index("James")
	lily, _ := ped.Index("Lily")

	jamesBit := uint32(1) << uint(james)
	lilyBit := uint32(1) << uint(lily)
	harryBit := uint32(1) << uint(harry)

	cases := []struct {
		haveTrait uint32
		expected  bool
	}{
		{jamesBit, true},            // James observed with the trait
		{jamesBit | harryBit, true}, // Harry is unobserved
		{0, false},                  // James must be in the set
		{jamesBit | lilyBit, false}, // Lily observed without the trait
		{harryBit | lilyBit, false}, // both observations violated
	}

	for _, c := range cases {
		if got := ped.consistentTrait(c.haveTrait); got != c.expected {
			t.Errorf("consistentTrait(%b): Got %v, expected %v", c.haveTrait, got, c.expected)
		}
	}
}
