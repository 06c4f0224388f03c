// Package pets holds the read-only pet directory backed by the pets table.
package pets

import (
	"context"

	"github.com/cloudpets/petsvc/internal/database"
	"github.com/cloudpets/petsvc/internal/errs"
)

// listQuery is the only statement this service runs. No ORDER BY: rows
// keep whatever order the database yields and callers must not assume
// it is stable.
const listQuery = `SELECT id, name FROM pets`

// Pet is one row of the pets table.
type Pet struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Store reads pets from the shared connection pool.
type Store struct {
	db database.DB
}

// NewStore builds a Store over an already-constructed pool.
func NewStore(db database.DB) *Store {
	return &Store{db: db}
}

// List returns every pet in database order. The result is a non-nil
// slice — an empty table yields []Pet{} so it serializes as a JSON
// array, never null. The acquire timeout bounds connection checkout
// plus the query round-trip.
func (s *Store) List(ctx context.Context) ([]Pet, error) {
	ctx, cancel := context.WithTimeout(ctx, database.AcquireTimeout)
	defer cancel()

	rows, err := s.db.Query(ctx, listQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]Pet, 0)
	for rows.Next() {
		var p Pet
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, wrapRowError(err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapRowError(err)
	}
	return result, nil
}

// wrapRowError keeps errors the driver already classified and folds
// everything else into the query failure kind, so iteration-time
// failures never surface as kind unknown.
func wrapRowError(err error) error {
	if errs.KindOf(err) != errs.ErrKindUnknown {
		return err
	}
	return errs.Wrap(errs.ErrKindQueryFailed, "reading pets rows failed", err)
}
