// Package service implements the booking allocation engine: eligibility,
// capacity, allocation and reallocation, plus the hotel catalogue reads.
// Every failure it returns carries an apperr kind the handlers map to a
// status code.
package service

import (
	"errors"
	"fmt"

	"github.com/Shivanand-hulikatti/event-lodging/internal/apperr"
	"github.com/Shivanand-hulikatti/event-lodging/internal/repository"
)

// storeError maps a missing record to the NotFound sentinel and wraps
// anything else with the operation name.
func storeError(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.ErrNotFound.WithOp(op)
	}
	return fmt.Errorf("%s: %w", op, err)
}
