package domain

import "time"

// OrderState is the stored lifecycle state of a payment order.
type OrderState string

const (
	OrderIssued        OrderState = "issued"
	OrderPartiallyPaid OrderState = "partially_paid"
	OrderPaid          OrderState = "paid"
	OrderNotified      OrderState = "notified"
	OrderAnnulled      OrderState = "annulled"
	// OrderOverdue is never stored; it is the effective state reported when
	// the due date has passed with a balance outstanding.
	OrderOverdue OrderState = "overdue"
)

// OrderType encodes what the order was generated from.
type OrderType string

const (
	OrderFromCharge     OrderType = "charge"
	OrderFromAccusation OrderType = "accusation"
	OrderManual         OrderType = "manual"
)

// PaymentMethod enumerates accepted settlement instruments.
type PaymentMethod string

const (
	MethodTransfer     PaymentMethod = "transfer"
	MethodDeposit      PaymentMethod = "deposit"
	MethodCash         PaymentMethod = "cash"
	MethodCheck        PaymentMethod = "check"
	MethodCashierCheck PaymentMethod = "cashier_check"
	MethodOther        PaymentMethod = "other"
)

// Payment is an immutable, append-only record of money received against a
// payment order. Payments are never edited or deleted; a reversal is
// modeled as order annulment.
type Payment struct {
	ID            string        `json:"id"`
	Amount        int64         `json:"amount"`
	Date          time.Time     `json:"date"`
	Method        PaymentMethod `json:"method"`
	Bank          string        `json:"bank,omitempty"`
	ReceiptNumber string        `json:"receipt_number,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	RegisteredBy  string        `json:"registered_by"`
	RegisteredAt  time.Time     `json:"registered_at"`
}

// PaymentOrder (giro) is a demand for payment tracking partial payments
// down to zero balance. Total and PaidAmount are integer minor units;
// Balance is always derived, never stored on its own.
type PaymentOrder struct {
	ID             string    `json:"id"`
	OrderNumber    string    `json:"order_number"`
	InternalNumber string    `json:"internal_number"`
	Type           OrderType `json:"type"`
	ChargeID       string    `json:"charge_id,omitempty"`
	AccusationID   string    `json:"accusation_id,omitempty"`
	DebtorIdentity string    `json:"debtor_identity"`
	DebtorName     string    `json:"debtor_name"`
	Currency       string    `json:"currency"`

	LineItems  []LineItem `json:"line_items"`
	Total      int64      `json:"total"`
	PaidAmount int64      `json:"paid_amount"`
	DueDate    time.Time  `json:"due_date"`
	Payments   []Payment  `json:"payments,omitempty"`

	State       OrderState `json:"state"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	AnnulledAt  *time.Time `json:"annulled_at,omitempty"`
	AnnulReason string     `json:"annul_reason,omitempty"`
	UpdatedBy   string     `json:"updated_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Balance is the outstanding amount still owed.
func (o *PaymentOrder) Balance() int64 {
	return o.Total - o.PaidAmount
}

// Terminal reports whether the order can never change again.
func (s OrderState) Terminal() bool {
	return s == OrderPaid || s == OrderAnnulled
}

var orderTransitions = map[OrderState][]OrderState{
	OrderIssued:        {OrderPartiallyPaid, OrderPaid, OrderNotified, OrderAnnulled},
	OrderPartiallyPaid: {OrderPartiallyPaid, OrderPaid, OrderAnnulled},
	OrderNotified:      {OrderPartiallyPaid, OrderPaid, OrderAnnulled},
	OrderPaid:          {},
	OrderAnnulled:      {},
}

// CanTransitionTo reports whether next is a legal transition.
func (s OrderState) CanTransitionTo(next OrderState) bool {
	for _, n := range orderTransitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

// EffectiveState overlays the derived Overdue condition: due date passed,
// balance outstanding, order not yet settled or annulled.
func (o *PaymentOrder) EffectiveState(today time.Time) OrderState {
	if o.State.Terminal() {
		return o.State
	}
	if !o.DueDate.IsZero() && today.After(o.DueDate) && o.Balance() > 0 {
		return OrderOverdue
	}
	return o.State
}

// OrderPermissions is the capability set derived from an order state.
type OrderPermissions struct {
	CanRegisterPayment bool `json:"can_register_payment"`
	CanNotify          bool `json:"can_notify"`
	CanAnnul           bool `json:"can_annul"`
}

// OrderCapabilities maps each state, including the derived Overdue state,
// to its fixed capability set.
func OrderCapabilities(s OrderState) OrderPermissions {
	switch s {
	case OrderIssued:
		return OrderPermissions{CanRegisterPayment: true, CanNotify: true, CanAnnul: true}
	case OrderPartiallyPaid, OrderNotified, OrderOverdue:
		return OrderPermissions{CanRegisterPayment: true, CanAnnul: true}
	default:
		return OrderPermissions{}
	}
}
