package domain

import "time"

// ChargeState is the stored lifecycle state of a charge.
type ChargeState string

const (
	ChargeDraft           ChargeState = "draft"
	ChargePendingApproval ChargeState = "pending_approval"
	ChargeInReview        ChargeState = "in_review"
	ChargeApproved        ChargeState = "approved"
	ChargeObserved        ChargeState = "observed"
	ChargeIssued          ChargeState = "issued"
	ChargeNotified        ChargeState = "notified"
	ChargeClosed          ChargeState = "closed"
	ChargeAnnulled        ChargeState = "annulled"
	ChargeRejected        ChargeState = "rejected"
)

// ChargeOrigin records what produced the charge.
type ChargeOrigin string

const (
	ChargeFromAccusation ChargeOrigin = "accusation"
	ChargeFromProcedure  ChargeOrigin = "customs_procedure"
	ChargeOther          ChargeOrigin = "other"
)

// Infractor is a debtor registered on a charge with its share of the
// assessed amount.
type Infractor struct {
	Role              string `json:"role"`
	Identity          string `json:"identity"`
	Name              string `json:"name"`
	ResponsibilityPct int    `json:"responsibility_pct"`
	AssignedAmount    int64  `json:"assigned_amount"`
	Principal         bool   `json:"principal"`
}

// Charge is a monetary assessment against one or more infractors,
// optionally linked to an accusation.
type Charge struct {
	ID             string       `json:"id"`
	ChargeNumber   string       `json:"charge_number"`
	InternalNumber string       `json:"internal_number"`
	Origin         ChargeOrigin `json:"origin"`
	AccusationID   string       `json:"accusation_id,omitempty"`
	DebtorIdentity string       `json:"debtor_identity"`
	DebtorName     string       `json:"debtor_name"`
	Currency       string       `json:"currency"`

	LineItems  []LineItem  `json:"line_items"`
	Infractors []Infractor `json:"infractors"`
	Documents  []Document  `json:"documents,omitempty"`

	// Ids of payment orders generated from this charge.
	PaymentOrderIDs []string `json:"payment_order_ids,omitempty"`

	State      ChargeState `json:"state"`
	IssuedAt   *time.Time  `json:"issued_at,omitempty"`
	AnnulledAt *time.Time  `json:"annulled_at,omitempty"`
	AnnulNote  string      `json:"annul_note,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

var chargeTransitions = map[ChargeState][]ChargeState{
	ChargeDraft:           {ChargePendingApproval, ChargeAnnulled},
	ChargePendingApproval: {ChargeInReview, ChargeAnnulled},
	ChargeInReview:        {ChargePendingApproval, ChargeApproved, ChargeRejected, ChargeObserved, ChargeAnnulled},
	ChargeObserved:        {ChargeInReview},
	ChargeApproved:        {ChargeIssued, ChargeAnnulled},
	ChargeIssued:          {ChargeNotified},
	ChargeNotified:        {ChargeClosed},
	ChargeClosed:          {},
	ChargeAnnulled:        {},
	ChargeRejected:        {},
}

// CanTransitionTo reports whether next is a legal transition.
func (s ChargeState) CanTransitionTo(next ChargeState) bool {
	for _, n := range chargeTransitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

// ResponsibilitySum adds up the registered infractor percentages.
func (c *Charge) ResponsibilitySum() int {
	sum := 0
	for _, inf := range c.Infractors {
		sum += inf.ResponsibilityPct
	}
	return sum
}

// ChargePermissions is the capability set derived from a charge state.
type ChargePermissions struct {
	CanEdit          bool `json:"can_edit"`
	CanSubmit        bool `json:"can_submit"`
	CanIssue         bool `json:"can_issue"`
	CanNotify        bool `json:"can_notify"`
	CanGenerateOrder bool `json:"can_generate_order"`
	CanAnnul         bool `json:"can_annul"`
}

// ChargeCapabilities maps each state to its fixed capability set.
// Issuing additionally requires the structural gate in the rules package;
// the capability only says the state allows attempting it.
func ChargeCapabilities(s ChargeState) ChargePermissions {
	switch s {
	case ChargeDraft:
		return ChargePermissions{CanEdit: true, CanSubmit: true, CanAnnul: true}
	case ChargePendingApproval:
		return ChargePermissions{CanAnnul: true}
	case ChargeInReview:
		return ChargePermissions{CanAnnul: true}
	case ChargeObserved:
		return ChargePermissions{CanEdit: true, CanSubmit: true}
	case ChargeApproved:
		return ChargePermissions{CanIssue: true, CanGenerateOrder: true, CanAnnul: true}
	case ChargeIssued:
		return ChargePermissions{CanNotify: true, CanGenerateOrder: true}
	case ChargeNotified:
		return ChargePermissions{CanGenerateOrder: true}
	default:
		return ChargePermissions{}
	}
}
