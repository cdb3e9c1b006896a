package services

import (
	"errors"
	"fmt"
	"net/http"
)

// Ledger errors. Callers match with errors.Is; only the HTTP layer turns them into status codes.
var (
	ErrNotFound      = errors.New("not found")
	ErrEntryNotFound = fmt.Errorf("ledger entry %w", ErrNotFound)
	ErrUserNotFound  = fmt.Errorf("user %w", ErrNotFound)
	ErrItemNotFound  = fmt.Errorf("item %w", ErrNotFound)
	ErrEventNotFound = fmt.Errorf("event %w", ErrNotFound)

	ErrDuplicateTxHash   = errors.New("transaction hash already recorded")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrRecipientNotFound = errors.New("no user owns the recipient wallet address")
	ErrSelfTransfer      = errors.New("cannot transfer gold to yourself")

	ErrChainUnavailable = errors.New("blockchain unavailable")
	ErrUnknownTxHash    = errors.New("transaction hash unknown to the chain")

	ErrStore = errors.New("ledger store failure")
)

// HTTPStatus maps a ledger error onto the response code the API returns for it.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrRecipientNotFound), errors.Is(err, ErrUnknownTxHash):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidArgument),
		errors.Is(err, ErrDuplicateTxHash),
		errors.Is(err, ErrSelfTransfer),
		errors.Is(err, ErrInvalidTransition):
		return http.StatusBadRequest
	case errors.Is(err, ErrChainUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
}
