package heredity

// WorldCount returns the number of candidate worlds the driver enumerates
// for a pedigree of n people before evidence filtering: 2^n have-trait
// subsets times 3^n gene partitions, i.e. 6^n. Exhaustive enumeration is the
// point of the engine, so this grows fast; n is capped by MaxPeople to keep
// the count inside an int64.
func WorldCount(n int) int64 {
	worlds := int64(1)
	for i := 0; i < n; i++ {
		worlds *= 6
	}

	return worlds
}

func WhichSQLiteDriver() string {
	return whichSQLiteDriver
}
