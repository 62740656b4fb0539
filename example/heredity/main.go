package main

import (
	"flag"
	"log"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/carbocation/heredity"
	"github.com/carbocation/pfx"
)

func main() {
	path := flag.String("pedigree", "family0.csv", "Filename of the pedigree CSV to process (may be gzipped)")
	parallel := flag.Bool("parallel", false, "Evaluate worlds on one worker per CPU")
	flag.Parse()

	if strings.HasPrefix(*path, "~/") {
		usr, err := user.Current()
		if err != nil {
			log.Fatalln(pfx.Err(err))
		}
		*path = filepath.Join(usr.HomeDir, (*path)[2:])
	}

	ped, err := heredity.Open(*path)
	if err != nil {
		log.Fatalln(err)
	}

	log.Println("Loaded", ped.Len(), "people; enumerating up to", heredity.WorldCount(ped.Len()), "worlds")

	var dists heredity.Distributions
	if *parallel {
		dists, err = heredity.InferParallel(ped, 0)
	} else {
		dists, err = heredity.Infer(ped)
	}
	if err != nil {
		log.Fatalln(err)
	}

	if err := heredity.WriteReport(os.Stdout, ped, dists); err != nil {
		log.Fatalln(err)
	}
}
