package ledger

import (
	"strings"
	"time"

	"github.com/aduanas/casengine/internal/domain"
	"github.com/aduanas/casengine/internal/rules"
)

const minAnnulReason = 10

// ApplyPayment appends the payment to the order and recomputes the paid
// amount, balance and state. The mutation is all-or-nothing: on any
// rejection the order is untouched. The caller must hold the per-entity
// write lock for the duration of gate plus mutation.
func ApplyPayment(o *domain.PaymentOrder, p domain.Payment, now time.Time) error {
	switch o.State {
	case domain.OrderPaid:
		return domain.ErrOrderPaid
	case domain.OrderAnnulled:
		return domain.ErrOrderAnnulled
	}
	if res := rules.CanRegisterPayment(o); !res.Valid {
		return res.Err()
	}
	if p.Amount <= 0 {
		return domain.ErrNonPositiveAmount
	}
	if p.Amount > o.Balance() {
		return domain.ErrExceedsBalance
	}
	if p.Date.After(now) {
		return domain.ErrFuturePayment
	}

	if p.RegisteredAt.IsZero() {
		p.RegisteredAt = now
	}
	o.Payments = append(o.Payments, p)

	// Paid amount is always the sum over the payment list, never an
	// increment, so a corrupted running value cannot survive a write.
	var paid int64
	for _, q := range o.Payments {
		paid += q.Amount
	}
	o.PaidAmount = paid

	if o.Balance() == 0 {
		o.State = domain.OrderPaid
		completed := now
		o.CompletedAt = &completed
	} else {
		o.State = domain.OrderPartiallyPaid
	}
	o.UpdatedAt = now
	return nil
}

// Annul moves the order to its terminal Annulled state. Prior payments
// are retained untouched for audit; nothing is refunded or deleted.
func Annul(o *domain.PaymentOrder, reason, updatedBy string, now time.Time) error {
	if res := rules.CanAnnulOrder(o); !res.Valid {
		return domain.ErrAnnulTerminal
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domain.ErrMotiveRequired
	}
	if len(reason) < minAnnulReason {
		return domain.ErrMotiveTooShort
	}

	o.State = domain.OrderAnnulled
	o.AnnulReason = reason
	annulled := now
	o.AnnulledAt = &annulled
	o.UpdatedBy = updatedBy
	o.UpdatedAt = now
	return nil
}
