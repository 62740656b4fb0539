package main

import (
	"flag"
	"log"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/carbocation/heredity"
)

// Runs inference over every pedigree CSV matching a glob, one file per
// worker, and accumulates population-level expectations across families.

type CarrierCounter struct {
	People           float64
	ExpectedCarriers float64
	ExpectedAffected float64
}

func main() {
	pattern := flag.String("glob", "data/*.csv", "Glob of pedigree CSV files to process")
	flag.Parse()

	paths, err := filepath.Glob(*pattern)
	if err != nil {
		log.Fatalln(err)
	}
	if len(paths) == 0 {
		log.Fatalln("No pedigree files matched", *pattern)
	}

	files := make(chan string)
	output := make(chan CarrierCounter)
	confirmDone := make(chan struct{})

	go func() {
		accumulator := CarrierCounter{}
		for o := range output {
			accumulator.People += o.People
			accumulator.ExpectedCarriers += o.ExpectedCarriers
			accumulator.ExpectedAffected += o.ExpectedAffected
		}
		log.Println("Final accumulated stats")
		log.Printf("%+v\n", accumulator)
		close(confirmDone)
	}()

	log.Println("Launching", runtime.NumCPU(), "workers")
	var wg sync.WaitGroup
	for i := 0; i < runtime.NumCPU(); i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			Worker(id, files, output)
		}(i)
	}

	for i, path := range paths {
		log.Println("Queued", i, path)
		files <- path
	}
	close(files)
	wg.Wait()
	close(output)
	<-confirmDone
}

// Worker loads and infers one pedigree at a time, reporting each family's
// expected carrier and affected counts.
func Worker(id int, files <-chan string, output chan<- CarrierCounter) {
	for path := range files {
		ped, err := heredity.Open(path)
		if err != nil {
			log.Println("Worker", id, path, err)
			continue
		}

		dists, err := heredity.Infer(ped)
		if err != nil {
			log.Println("Worker", id, path, err)
			continue
		}

		counter := CarrierCounter{}
		for _, d := range dists {
			counter.People++
			counter.ExpectedCarriers += d.Gene[1] + d.Gene[2]
			counter.ExpectedAffected += d.Trait[1]
		}
		output <- counter
	}
}
