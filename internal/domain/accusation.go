package domain

import "time"

// AccusationState is the stored lifecycle state of an accusation.
type AccusationState string

const (
	AccusationPending   AccusationState = "pending"
	AccusationInProcess AccusationState = "in_process"
	AccusationObserved  AccusationState = "observed"
	AccusationResolved  AccusationState = "resolved"
	AccusationClosed    AccusationState = "closed"
	// AccusationOverdue is never stored; it is the effective state reported
	// when the resolution deadline has passed, see EffectiveState.
	AccusationOverdue AccusationState = "overdue"
)

// AccusationOrigin records how the case entered the system.
type AccusationOrigin string

const (
	OriginManual     AccusationOrigin = "manual"
	OriginFinding    AccusationOrigin = "finding"
	OriginInspection AccusationOrigin = "inspection"
)

// InvolvedParty links a person or company to an accusation with its share
// of responsibility.
type InvolvedParty struct {
	Role              string `json:"role"`
	Identity          string `json:"identity"`
	Name              string `json:"name"`
	ResponsibilityPct int    `json:"responsibility_pct"`
	Principal         bool   `json:"principal"`
}

// Accusation is the formal case record for a customs infraction.
type Accusation struct {
	ID             string           `json:"id"`
	CaseNumber     string           `json:"case_number"`
	InternalNumber string           `json:"internal_number"`
	Origin         AccusationOrigin `json:"origin"`
	SourceFinding  string           `json:"source_finding,omitempty"`
	Office         string           `json:"office"`
	IngressDate    time.Time        `json:"ingress_date"`
	OccurrenceDate time.Time        `json:"occurrence_date"`
	IssuanceDate   time.Time        `json:"issuance_date"`
	Deadline       time.Time        `json:"deadline"`

	Category    string   `json:"category"`
	CaseType    CaseType `json:"case_type"`
	ArticleCode string   `json:"article_code"`
	Norm        string   `json:"norm,omitempty"`

	FineAmount       int64  `json:"fine_amount"`
	DiscountedFine   int64  `json:"discounted_fine,omitempty"`
	DutyAmount       int64  `json:"duty_amount"`
	WithheldAmount   int64  `json:"withheld_amount"`
	UndeclaredAmount int64  `json:"undeclared_amount"`
	Currency         string `json:"currency"`

	SelfReported   bool `json:"self_reported"`
	HasWithholding bool `json:"has_withholding"`
	GoodsAffected  bool `json:"goods_affected"`

	// Criminal cases must carry both before the record is complete.
	ReportingAuthority string `json:"reporting_authority,omitempty"`
	OfficialMemo       string `json:"official_memo,omitempty"`

	Parties   []InvolvedParty `json:"parties"`
	Documents []Document      `json:"documents,omitempty"`

	State     AccusationState `json:"state"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

var accusationTransitions = map[AccusationState][]AccusationState{
	AccusationPending:   {AccusationInProcess},
	AccusationInProcess: {AccusationObserved, AccusationResolved},
	AccusationObserved:  {AccusationInProcess},
	AccusationResolved:  {AccusationClosed},
	AccusationClosed:    {},
}

// CanTransitionTo reports whether next is a legal stored-state transition.
func (s AccusationState) CanTransitionTo(next AccusationState) bool {
	for _, n := range accusationTransitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

// EffectiveState overlays the derived Overdue condition: deadline passed
// while the case is neither resolved nor closed.
func (a *Accusation) EffectiveState(today time.Time) AccusationState {
	switch a.State {
	case AccusationResolved, AccusationClosed:
		return a.State
	}
	if !a.Deadline.IsZero() && today.After(a.Deadline) {
		return AccusationOverdue
	}
	return a.State
}

// Complete reports whether the record satisfies structural completeness:
// criminal cases require a reporting authority and an official memo.
func (a *Accusation) Complete() bool {
	if a.CaseType != CaseCriminal {
		return true
	}
	return a.ReportingAuthority != "" && a.OfficialMemo != ""
}

// AccusationPermissions is the capability set derived from a state.
type AccusationPermissions struct {
	CanEdit    bool `json:"can_edit"`
	CanProcess bool `json:"can_process"`
	CanObserve bool `json:"can_observe"`
	CanResolve bool `json:"can_resolve"`
	CanClose   bool `json:"can_close"`
}

// AccusationCapabilities maps each state, including the derived Overdue
// state, to its fixed capability set.
func AccusationCapabilities(s AccusationState) AccusationPermissions {
	switch s {
	case AccusationPending:
		return AccusationPermissions{CanEdit: true, CanProcess: true}
	case AccusationInProcess:
		return AccusationPermissions{CanObserve: true, CanResolve: true}
	case AccusationObserved:
		return AccusationPermissions{CanEdit: true, CanProcess: true}
	case AccusationResolved:
		return AccusationPermissions{CanClose: true}
	case AccusationOverdue:
		// Overdue overlays Pending/In-Process/Observed; resolution stays open.
		return AccusationPermissions{CanResolve: true}
	default:
		return AccusationPermissions{}
	}
}
