package heredity

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/klauspost/compress/gzip"
)

// InvalidPedigreeError describes a pedigree that violates the structural
// invariants: a parent reference that does not resolve, a record with only
// one parent, a duplicated name, a malformed trait field, or a cycle in the
// parent relation.
type InvalidPedigreeError struct {
	Person string
	Reason string
}

func (e *InvalidPedigreeError) Error() string {
	return fmt.Sprintf("invalid pedigree: %s: %s", e.Person, e.Reason)
}

// Pedigree is an immutable set of people with resolved parent links. People
// are stored in file order; parent references are indices into People so the
// evaluator never re-resolves names during enumeration.
type Pedigree struct {
	People []Person

	byName map[string]int
}

func (ped *Pedigree) Len() int {
	return len(ped.People)
}

// Index returns the position of the named person in People.
func (ped *Pedigree) Index(name string) (int, bool) {
	i, ok := ped.byName[name]
	return i, ok
}

// personRecord is one unresolved row of pedigree input, with parents still
// named rather than indexed.
type personRecord struct {
	Name   string
	Mother string
	Father string
	Trait  Trait
}

// newPedigree resolves parent names to indices and validates the result.
func newPedigree(records []personRecord) (*Pedigree, error) {
	ped := &Pedigree{
		People: make([]Person, 0, len(records)),
		byName: make(map[string]int, len(records)),
	}

	for i, rec := range records {
		if _, seen := ped.byName[rec.Name]; seen {
			return nil, &InvalidPedigreeError{Person: rec.Name, Reason: "duplicate name"}
		}
		ped.byName[rec.Name] = i
		ped.People = append(ped.People, Person{
			Name:   rec.Name,
			Mother: NoParent,
			Father: NoParent,
			Trait:  rec.Trait,
		})
	}

	for i, rec := range records {
		if (rec.Mother == "") != (rec.Father == "") {
			return nil, &InvalidPedigreeError{Person: rec.Name, Reason: "only one parent is specified"}
		}
		if rec.Mother == "" {
			continue
		}

		mother, ok := ped.byName[rec.Mother]
		if !ok {
			return nil, &InvalidPedigreeError{Person: rec.Name, Reason: fmt.Sprintf("mother %q is not in the pedigree", rec.Mother)}
		}
		father, ok := ped.byName[rec.Father]
		if !ok {
			return nil, &InvalidPedigreeError{Person: rec.Name, Reason: fmt.Sprintf("father %q is not in the pedigree", rec.Father)}
		}

		ped.People[i].Mother = mother
		ped.People[i].Father = father
	}

	if err := ped.Validate(); err != nil {
		return nil, err
	}

	return ped, nil
}

// Validate re-checks the structural invariants on an already-resolved
// pedigree. Loaders call this before handing a Pedigree out, and the engine
// calls it again before enumerating so that a hand-built Pedigree fails fast
// instead of recursing through a dangling or cyclic parent link.
func (ped *Pedigree) Validate() error {
	n := len(ped.People)
	for i := range ped.People {
		p := &ped.People[i]

		if (p.Mother == NoParent) != (p.Father == NoParent) {
			return &InvalidPedigreeError{Person: p.Name, Reason: "only one parent is specified"}
		}
		if p.Founder() {
			continue
		}
		if p.Mother < 0 || p.Mother >= n {
			return &InvalidPedigreeError{Person: p.Name, Reason: fmt.Sprintf("mother index %d is out of range", p.Mother)}
		}
		if p.Father < 0 || p.Father >= n {
			return &InvalidPedigreeError{Person: p.Name, Reason: fmt.Sprintf("father index %d is out of range", p.Father)}
		}
		if p.Mother == i || p.Father == i {
			return &InvalidPedigreeError{Person: p.Name, Reason: "person is their own parent"}
		}
	}

	// The parent relation must be a forest of generations; walk it once to
	// reject cycles that span more than one link.
	const (
		unvisited = iota
		visiting
		visited
	)
	state := make([]uint8, n)

	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case visited:
			return nil
		case visiting:
			return &InvalidPedigreeError{Person: ped.People[i].Name, Reason: "parent relation contains a cycle"}
		}
		state[i] = visiting
		if !ped.People[i].Founder() {
			if err := visit(ped.People[i].Mother); err != nil {
				return err
			}
			if err := visit(ped.People[i].Father); err != nil {
				return err
			}
		}
		state[i] = visited
		return nil
	}

	for i := 0; i < n; i++ {
		if err := visit(i); err != nil {
			return err
		}
	}

	return nil
}

// consistentTrait reports whether a candidate have-trait subset agrees with
// every observed trait value in the pedigree.
func (ped *Pedigree) consistentTrait(haveTrait uint32) bool {
	for i := range ped.People {
		inSet := haveTrait&(1<<uint(i)) != 0
		switch ped.People[i].Trait {
		case TraitPresent:
			if !inSet {
				return false
			}
		case TraitAbsent:
			if inSet {
				return false
			}
		}
	}

	return true
}

// Open reads a pedigree from a CSV file at path. Files ending in .gz are
// decompressed transparently.
func Open(path string) (*Pedigree, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer file.Close()

	var r io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, pfx.Err(err)
		}
		defer gz.Close()
		r = gz
	}

	return ReadPedigree(r)
}

// ReadPedigree parses CSV pedigree data with a header naming the columns
// name, mother, father, and trait (in any order). mother and father must
// both be blank, or both name people present in the same file. trait is "1"
// or "0" if observed and blank otherwise.
func ReadPedigree(r io.Reader) (*Pedigree, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, pfx.Err(fmt.Errorf("pedigree input is empty"))
	}
	if err != nil {
		return nil, pfx.Err(err)
	}

	cols := map[string]int{}
	for i, field := range header {
		cols[strings.TrimSpace(field)] = i
	}
	for _, required := range []string{"name", "mother", "father", "trait"} {
		if _, ok := cols[required]; !ok {
			return nil, pfx.Err(fmt.Errorf("pedigree header is missing the %q column", required))
		}
	}

	var records []personRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, pfx.Err(err)
		}

		name := row[cols["name"]]
		if name == "" {
			return nil, &InvalidPedigreeError{Person: "(blank)", Reason: "record has no name"}
		}

		trait, err := parseTrait(row[cols["trait"]])
		if err != nil {
			return nil, &InvalidPedigreeError{Person: name, Reason: err.Error()}
		}

		records = append(records, personRecord{
			Name:   name,
			Mother: row[cols["mother"]],
			Father: row[cols["father"]],
			Trait:  trait,
		})
	}

	return newPedigree(records)
}
