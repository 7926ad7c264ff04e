// Package ledger maintains the financial side of charges and payment
// orders: line-item totals, payment application and annulment. All
// amounts are integer minor currency units; the package performs no I/O
// and mutates only the entity it is handed.
package ledger

import "github.com/aduanas/casengine/internal/domain"

// Totals is the per-class breakdown of a line-item set.
type Totals struct {
	Duty     int64 `json:"duty"`
	Fine     int64 `json:"fine"`
	Interest int64 `json:"interest"`
	Other    int64 `json:"other"`
	Total    int64 `json:"total"`
}

// ComputeTotals groups line items by account class and sums each group.
// Deterministic for a given item set; the parent's stored Total must
// always equal Totals.Total.
func ComputeTotals(items []domain.LineItem) Totals {
	var t Totals
	for _, it := range items {
		switch domain.ClassOf(it.AccountCode) {
		case domain.ClassDuty:
			t.Duty += it.Amount
		case domain.ClassFine:
			t.Fine += it.Amount
		case domain.ClassInterest:
			t.Interest += it.Amount
		default:
			t.Other += it.Amount
		}
		t.Total += it.Amount
	}
	return t
}

// CheckStoredTotal verifies the consistency invariant between an order's
// stored total and its line items. A mismatch means something other than
// the ledger wrote the total; callers must treat it as fatal, log it and
// refuse the operation rather than silently correct the total.
func CheckStoredTotal(o *domain.PaymentOrder) error {
	if ComputeTotals(o.LineItems).Total != o.Total {
		return domain.ErrTotalsMismatch
	}
	return nil
}
