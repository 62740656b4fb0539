package heredity

import (
	"database/sql"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/carbocation/pfx"
)

// PDIIndex wraps a pedigree index (.pdi) file: a SQLite database holding a
// Person table that mirrors the CSV pedigree fields, plus a Metadata table
// recording where the index came from. The driver is chosen at build time
// (see WhichSQLiteDriver).
type PDIIndex struct {
	DB       *sqlx.DB
	Metadata *PDIMetadata
}

func (b *PDIIndex) Close() error {
	return b.DB.Close()
}

// OpenPDI opens an existing pedigree index at path.
func OpenPDI(path string) (*PDIIndex, error) {
	pdi := &PDIIndex{
		Metadata: &PDIMetadata{},
	}

	// URI filenames have to begin with 'file:'; see
	// https://www.sqlite.org/c3ref/open.html
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}

	db, err := sqlx.Connect(whichSQLiteDriver, path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	pdi.DB = db

	// Not all index files have metadata; ignore any error
	_ = pdi.DB.Get(pdi.Metadata, "SELECT * FROM Metadata LIMIT 1")

	return pdi, nil
}

// PersonIndex conforms to the data found in the rows of the SQLite table
// "Person" from .pdi files, and can be easily parsed with sqlx. Trait is
// NULL when unobserved, otherwise 0 or 1.
type PersonIndex struct {
	Name   string
	Mother string
	Father string
	Trait  sql.NullInt64
}

// PDIMetadata conforms to the data found in the rows of the SQLite table
// "Metadata" from .pdi files.
type PDIMetadata struct {
	Filename          string
	NPeople           uint `db:"n_people"`
	IndexCreationTime Time `db:"index_creation_time"`
}

// Pedigree reads every Person row back out of the index, in insertion
// order, and resolves it through the same validation as the CSV loader.
func (b *PDIIndex) Pedigree() (*Pedigree, error) {
	rows, err := b.DB.Queryx("SELECT name, mother, father, trait FROM Person ORDER BY rowid ASC")
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer rows.Close()

	var records []personRecord
	var row PersonIndex
	for rows.Next() {
		if err := rows.StructScan(&row); err != nil {
			return nil, pfx.Err(err)
		}

		trait := TraitUnknown
		if row.Trait.Valid {
			if row.Trait.Int64 == 1 {
				trait = TraitPresent
			} else {
				trait = TraitAbsent
			}
		}

		records = append(records, personRecord{
			Name:   row.Name,
			Mother: row.Mother,
			Father: row.Father,
			Trait:  trait,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, pfx.Err(err)
	}

	return newPedigree(records)
}

// CreatePDI writes ped to a new pedigree index at path. sourceFilename is
// recorded in the Metadata table and may be blank.
func CreatePDI(path string, ped *Pedigree, sourceFilename string) error {
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}

	db, err := sqlx.Connect(whichSQLiteDriver, path)
	if err != nil {
		return pfx.Err(err)
	}
	defer db.Close()

	schema := `
CREATE TABLE Person (
	name TEXT NOT NULL,
	mother TEXT NOT NULL,
	father TEXT NOT NULL,
	trait INTEGER
);
CREATE TABLE Metadata (
	filename TEXT NOT NULL,
	n_people INTEGER NOT NULL,
	index_creation_time INTEGER NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		return pfx.Err(err)
	}

	for i := range ped.People {
		p := &ped.People[i]

		var mother, father string
		if !p.Founder() {
			mother = ped.People[p.Mother].Name
			father = ped.People[p.Father].Name
		}

		var trait interface{}
		switch p.Trait {
		case TraitPresent:
			trait = 1
		case TraitAbsent:
			trait = 0
		}

		if _, err := db.Exec("INSERT INTO Person (name, mother, father, trait) VALUES (?, ?, ?, ?)",
			p.Name, mother, father, trait); err != nil {
			return pfx.Err(err)
		}
	}

	if _, err := db.Exec("INSERT INTO Metadata (filename, n_people, index_creation_time) VALUES (?, ?, ?)",
		sourceFilename, ped.Len(), time.Now().Unix()); err != nil {
		return pfx.Err(err)
	}

	return nil
}
