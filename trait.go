package heredity

import "fmt"

// Trait is the tri-state observation of whether a person expresses the trait
type Trait uint8

const (
	TraitUnknown Trait = iota
	TraitAbsent
	TraitPresent
)

func (t Trait) String() string {
	switch t {
	case TraitUnknown:
		return "Unknown"
	case TraitAbsent:
		return "Absent"
	case TraitPresent:
		return "Present"

	default:
		return "Illegal selection"
	}
}

// parseTrait interprets the trait column of a pedigree record: "1" observed
// present, "0" observed absent, blank unobserved.
func parseTrait(field string) (Trait, error) {
	switch field {
	case "1":
		return TraitPresent, nil
	case "0":
		return TraitAbsent, nil
	case "":
		return TraitUnknown, nil
	}

	return TraitUnknown, fmt.Errorf("trait field %q is not \"1\", \"0\", or blank", field)
}
