// Package rules holds the validation gates: pure predicates evaluated
// against the current entity state immediately before a gated mutation.
// Gates never cache and never panic; a failed gate is the expected
// "cannot proceed yet" outcome, not an error condition.
package rules

import (
	"fmt"
	"strings"

	"github.com/aduanas/casengine/internal/domain"
)

// Result is the outcome of a gate. Violations block the operation;
// Warnings are surfaced to the user but never block (soft invariants).
type Result struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
}

// ValidationError carries a failed gate across layer boundaries so the
// surface can distinguish "validation incomplete" from an illegal state
// transition.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// Err returns nil for a valid result, otherwise a *ValidationError with
// the ordered violation list.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &ValidationError{Violations: r.Violations}
}

// CanIssueCharge checks structural completeness before a charge may be
// issued. The responsibility-sum rule is deliberately a warning: the
// observed behavior surfaces it in the UI without blocking issuance.
func CanIssueCharge(c *domain.Charge) Result {
	var r Result
	if len(c.LineItems) == 0 {
		r.Violations = append(r.Violations, "cannot issue a charge with no line items")
	}
	if len(c.Infractors) == 0 {
		r.Violations = append(r.Violations, "must register at least one infractor")
	}
	if len(c.Infractors) > 0 {
		if sum := c.ResponsibilitySum(); sum != 100 {
			r.Warnings = append(r.Warnings,
				fmt.Sprintf("infractor responsibility sums to %d%%, expected 100%%", sum))
		}
	}
	r.Valid = len(r.Violations) == 0
	return r
}

// CanRegisterPayment checks that the order still accepts payments.
func CanRegisterPayment(o *domain.PaymentOrder) Result {
	var r Result
	switch o.State {
	case domain.OrderPaid:
		r.Violations = append(r.Violations, "cannot register payment: order is paid")
	case domain.OrderAnnulled:
		r.Violations = append(r.Violations, "cannot register payment: order is annulled")
	}
	if len(r.Violations) == 0 && o.Balance() <= 0 {
		r.Violations = append(r.Violations, "order has no outstanding balance")
	}
	r.Valid = len(r.Violations) == 0
	return r
}

// CanAnnulOrder checks that the order is not in a terminal state. A
// partially paid order may still be annulled; its payments are retained.
func CanAnnulOrder(o *domain.PaymentOrder) Result {
	var r Result
	switch o.State {
	case domain.OrderPaid:
		r.Violations = append(r.Violations, "cannot annul: order is fully paid")
	case domain.OrderAnnulled:
		r.Violations = append(r.Violations, "cannot annul: order is already annulled")
	}
	r.Valid = len(r.Violations) == 0
	return r
}
