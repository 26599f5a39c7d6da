package lib

import (
	"errors"

	"github.com/uptrace/bun/driver/pgdriver"
)

// Database errors
var (
	ErrConflict = errors.New("conflict")
	ErrNotFound = errors.New("not found")
)

// Catalog write errors
var (
	// ErrImageLimit is raised when attaching an image would push a variant
	// past tables.MaxVariantImages. Unlike most constraints here it is
	// enforced strictly and must reach the caller of the mutation.
	ErrImageLimit = errors.New("variant image limit exceeded")
)

func MapPgError(err error) error {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		switch pgErr.Field('C') { // SQLSTATE
		case "23505": // unique_violation
			return ErrConflict
		case "P0002": // no_data_found
			return ErrNotFound
		}
	}
	return err
}
