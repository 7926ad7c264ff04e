package domain

// AccountClass groups ledger line items by the nature of the amount.
type AccountClass string

const (
	ClassDuty     AccountClass = "duty"
	ClassFine     AccountClass = "fine"
	ClassInterest AccountClass = "interest"
	ClassOther    AccountClass = "other"
)

// LineItem is a single typed monetary entry on a charge or payment order.
// Amounts are integer minor currency units.
type LineItem struct {
	AccountCode string `json:"account_code"`
	Name        string `json:"name"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Position    int    `json:"position"`
}

// ClassOf derives the account class from the account-code prefix.
// The catalog assigns duty accounts the 1xxx range, fines 2xxx and
// interest 3xxx; anything else is other.
func ClassOf(accountCode string) AccountClass {
	if accountCode == "" {
		return ClassOther
	}
	switch accountCode[0] {
	case '1':
		return ClassDuty
	case '2':
		return ClassFine
	case '3':
		return ClassInterest
	default:
		return ClassOther
	}
}
