package heredity

import (
	"fmt"
	"io"

	"github.com/carbocation/pfx"
)

// WriteReport renders each person's posterior distributions to w, in
// pedigree order, with four decimal places per probability:
//
//	Harry:
//	  Gene:
//	    2: 0.0092
//	    1: 0.4557
//	    0: 0.5351
//	  Trait:
//	    True: 0.2665
//	    False: 0.7335
func WriteReport(w io.Writer, ped *Pedigree, dists Distributions) error {
	for i := range ped.People {
		name := ped.People[i].Name
		d, ok := dists[name]
		if !ok {
			return pfx.Err(fmt.Errorf("no distribution for %q", name))
		}

		if _, err := fmt.Fprintf(w, "%s:\n  Gene:\n", name); err != nil {
			return pfx.Err(err)
		}
		for copies := 2; copies >= 0; copies-- {
			if _, err := fmt.Fprintf(w, "    %d: %.4f\n", copies, d.Gene[copies]); err != nil {
				return pfx.Err(err)
			}
		}

		if _, err := fmt.Fprintf(w, "  Trait:\n    True: %.4f\n    False: %.4f\n", d.Trait[1], d.Trait[0]); err != nil {
			return pfx.Err(err)
		}
	}

	return nil
}
