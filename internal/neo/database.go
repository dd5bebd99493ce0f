package neo

import (
	"fmt"
	"iter"
	"slices"
)

// Database indexes a NEO catalog by designation and name and owns the links
// between catalog entries and their close approaches.
type Database struct {
	neos          []*NearEarthObject
	approaches    []*CloseApproach
	byDesignation map[string]*NearEarthObject
	byName        map[string]*NearEarthObject
}

// NewDatabase indexes neos and links every approach to the NEO sharing its
// designation. It fails with ErrDuplicateDesignation if the catalog is not
// keyed uniquely, and with *LinkMismatchError for the first approach that
// matches no catalog entry. Any previous links on the inputs are replaced.
func NewDatabase(neos []*NearEarthObject, approaches []*CloseApproach) (*Database, error) {
	db := &Database{
		neos:          neos,
		approaches:    approaches,
		byDesignation: make(map[string]*NearEarthObject, len(neos)),
		byName:        make(map[string]*NearEarthObject),
	}

	for _, n := range neos {
		if _, ok := db.byDesignation[n.Designation]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateDesignation, n.Designation)
		}
		db.byDesignation[n.Designation] = n
		if n.Name != nil {
			db.byName[*n.Name] = n
		}
		n.Approaches = nil
	}

	for _, a := range approaches {
		n, ok := db.byDesignation[a.Designation]
		if !ok {
			return nil, &LinkMismatchError{Designation: a.Designation}
		}
		a.NEO = n
		n.Approaches = append(n.Approaches, a)
	}

	return db, nil
}

// GetNEOByDesignation returns the NEO with the given primary designation, or nil.
func (db *Database) GetNEOByDesignation(designation string) *NearEarthObject {
	return db.byDesignation[designation]
}

// GetNEOByName returns the NEO with the given name, or nil. Unnamed objects
// are never matched, including by the empty string.
func (db *Database) GetNEOByName(name string) *NearEarthObject {
	return db.byName[name]
}

// NEOs returns the catalog in load order.
func (db *Database) NEOs() []*NearEarthObject {
	return db.neos
}

// Approaches yields every linked approach in load order.
func (db *Database) Approaches() iter.Seq[*CloseApproach] {
	return slices.Values(db.approaches)
}

// Len returns the number of catalog entries and linked approaches.
func (db *Database) Len() (neos, approaches int) {
	return len(db.neos), len(db.approaches)
}
