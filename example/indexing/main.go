package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/carbocation/heredity"
)

func main() {
	path := flag.String("pedigree", "", "Filename of the pedigree CSV to index")
	idxPath := flag.String("pdi", "", "Filename of the pdi (index) file to create")
	flag.Parse()

	if *path == "" {
		flag.PrintDefaults()
		log.Fatalln("No pedigree file found")
	}

	if *idxPath == "" {
		*idxPath = *path + ".pdi"
	}

	log.Println("Using SQLite driver:", heredity.WhichSQLiteDriver())

	log.Println("Opening pedigree:", *path)
	ped, err := heredity.Open(*path)
	if err != nil {
		log.Fatalln(err)
	}

	log.Println("Writing index:", *idxPath)
	if err := heredity.CreatePDI(*idxPath, ped, *path); err != nil {
		log.Fatalln(err)
	}

	pdi, err := heredity.OpenPDI(*idxPath)
	if err != nil {
		log.Fatalln(err)
	}
	defer pdi.Close()

	log.Printf("PDI Metadata: filename=%s n_people=%d created=%s\n",
		pdi.Metadata.Filename, pdi.Metadata.NPeople,
		time.Time(pdi.Metadata.IndexCreationTime).Format(time.RFC3339))

	rows, err := pdi.DB.Queryx("SELECT * FROM Person ORDER BY rowid ASC")
	if err != nil {
		log.Fatalln(err)
	}
	defer rows.Close()

	i := 0
	var row heredity.PersonIndex
	for rows.Next() {
		if err := rows.StructScan(&row); err != nil {
			log.Fatalln(err)
		}
		fmt.Printf("%d) %+v\n", i, row)
		i++
	}
	rows.Close()

	log.Println("Saw index rows for", i, "people")

	indexed, err := pdi.Pedigree()
	if err != nil {
		log.Fatalln(err)
	}

	dists, err := heredity.Infer(indexed)
	if err != nil {
		log.Fatalln(err)
	}

	for _, person := range indexed.People {
		d := dists[person.Name]
		log.Printf("%s: P(carrier)=%.4f P(trait)=%.4f\n", person.Name, d.Gene[1]+d.Gene[2], d.Trait[1])
	}
}
