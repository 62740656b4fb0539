package heredity

// Person is one member of a pedigree. Parent links are indices into the
// owning Pedigree's People slice; NoParent marks a founder. A person has
// either both parents recorded or neither.
type Person struct {
	Name   string
	Mother int
	Father int
	Trait  Trait
}

// NoParent is the parent index recorded for founders.
const NoParent = -1

// Founder reports whether the person has no recorded parents, in which case
// their gene copy count is drawn from the unconditional prior rather than
// from parental transmission.
func (p Person) Founder() bool {
	return p.Mother == NoParent && p.Father == NoParent
}
