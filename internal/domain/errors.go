package domain

import "errors"

var (
	ErrNotFound          = errors.New("entity not found")
	ErrIllegalTransition = errors.New("illegal state transition")
	ErrFindingConverted  = errors.New("finding already converted")
	ErrOrderPaid         = errors.New("cannot register payment: order is paid")
	ErrOrderAnnulled     = errors.New("cannot register payment: order is annulled")
	ErrAnnulTerminal     = errors.New("cannot annul: order is in a terminal state")
	ErrNonPositiveAmount = errors.New("payment amount must be positive")
	ErrExceedsBalance    = errors.New("amount exceeds outstanding balance")
	ErrFuturePayment     = errors.New("payment date is in the future")
	ErrMotiveRequired    = errors.New("motive required")
	ErrMotiveTooShort    = errors.New("motive must be at least 10 characters")
	ErrTotalsMismatch    = errors.New("stored total disagrees with line items")
)
