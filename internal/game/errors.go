package game

import (
	"errors"

	"github.com/napolitain/ascension/internal/ledger"
)

// Action errors. A session returns one of these without mutating any state.
var (
	ErrUnknownBuilding       = errors.New("unknown building")
	ErrUnknownTechnology     = errors.New("unknown technology")
	ErrUnknownResource       = errors.New("unknown resource")
	ErrInsufficientResources = ledger.ErrInsufficientResources
	ErrNotOwned              = errors.New("building not owned")
	ErrWrongEra              = errors.New("building belongs to another era")
	ErrAlreadyResearched     = errors.New("technology already researched")
)

// IsUnknown reports whether err is one of the unknown-entity errors
func IsUnknown(err error) bool {
	return errors.Is(err, ErrUnknownBuilding) ||
		errors.Is(err, ErrUnknownTechnology) ||
		errors.Is(err, ErrUnknownResource)
}
