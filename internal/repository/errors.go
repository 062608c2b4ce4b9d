// Package repository implements PostgreSQL persistence for users, the ledger,
// profiles and savings goals.
package repository

import (
	"errors"
	"fmt"
	"time"

	"gitlab.com/yelinaung/household-finance/internal/models"
)

// ErrNotFound is returned when a row addressed by ID does not belong to the user
// or does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidDate is returned when a ledger date is not in dd.MM.yyyy format.
var ErrInvalidDate = errors.New("invalid ledger date")

func parseLedgerDate(s string) (time.Time, error) {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q", ErrInvalidDate, s)
	}
	return t, nil
}
