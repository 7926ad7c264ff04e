package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var today = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func TestAccusationTransitions(t *testing.T) {
	cases := []struct {
		from  AccusationState
		to    AccusationState
		legal bool
	}{
		{AccusationPending, AccusationInProcess, true},
		{AccusationPending, AccusationResolved, false},
		{AccusationPending, AccusationClosed, false},
		{AccusationInProcess, AccusationObserved, true},
		{AccusationInProcess, AccusationResolved, true},
		{AccusationInProcess, AccusationClosed, false},
		{AccusationObserved, AccusationInProcess, true},
		{AccusationObserved, AccusationResolved, false},
		{AccusationResolved, AccusationClosed, true},
		{AccusationResolved, AccusationInProcess, false},
		{AccusationClosed, AccusationPending, false},
		{AccusationClosed, AccusationInProcess, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.legal, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestAccusationEffectiveState(t *testing.T) {
	past := today.Add(-24 * time.Hour)
	future := today.Add(24 * time.Hour)

	t.Run("deadline passed surfaces overdue", func(t *testing.T) {
		a := &Accusation{State: AccusationInProcess, Deadline: past}
		assert.Equal(t, AccusationOverdue, a.EffectiveState(today))
	})

	t.Run("resolved and closed never go overdue", func(t *testing.T) {
		for _, s := range []AccusationState{AccusationResolved, AccusationClosed} {
			a := &Accusation{State: s, Deadline: past}
			assert.Equal(t, s, a.EffectiveState(today))
		}
	})

	t.Run("future deadline keeps stored state", func(t *testing.T) {
		a := &Accusation{State: AccusationPending, Deadline: future}
		assert.Equal(t, AccusationPending, a.EffectiveState(today))
	})
}

func TestAccusationCompleteness(t *testing.T) {
	t.Run("administrative is complete without authority", func(t *testing.T) {
		a := &Accusation{CaseType: CaseAdministrative}
		assert.True(t, a.Complete())
	})

	t.Run("criminal requires authority and memo", func(t *testing.T) {
		a := &Accusation{CaseType: CaseCriminal}
		assert.False(t, a.Complete())
		a.ReportingAuthority = "FISCALIA-07"
		assert.False(t, a.Complete())
		a.OfficialMemo = "OF-2026-1142"
		assert.True(t, a.Complete())
	})
}

func TestAccusationCapabilities(t *testing.T) {
	cases := []struct {
		state AccusationState
		want  AccusationPermissions
	}{
		{AccusationPending, AccusationPermissions{CanEdit: true, CanProcess: true}},
		{AccusationInProcess, AccusationPermissions{CanObserve: true, CanResolve: true}},
		{AccusationObserved, AccusationPermissions{CanEdit: true, CanProcess: true}},
		{AccusationResolved, AccusationPermissions{CanClose: true}},
		{AccusationClosed, AccusationPermissions{}},
		{AccusationOverdue, AccusationPermissions{CanResolve: true}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, AccusationCapabilities(tc.state), string(tc.state))
	}
}

func TestChargeTransitions(t *testing.T) {
	cases := []struct {
		from  ChargeState
		to    ChargeState
		legal bool
	}{
		{ChargeDraft, ChargePendingApproval, true},
		{ChargeDraft, ChargeAnnulled, true},
		{ChargeDraft, ChargeIssued, false},
		{ChargePendingApproval, ChargeInReview, true},
		{ChargePendingApproval, ChargeAnnulled, true},
		{ChargeInReview, ChargePendingApproval, true},
		{ChargeInReview, ChargeApproved, true},
		{ChargeInReview, ChargeRejected, true},
		{ChargeInReview, ChargeObserved, true},
		{ChargeInReview, ChargeAnnulled, true},
		{ChargeObserved, ChargeInReview, true},
		{ChargeObserved, ChargeAnnulled, false},
		{ChargeApproved, ChargeIssued, true},
		{ChargeApproved, ChargeAnnulled, true},
		{ChargeIssued, ChargeNotified, true},
		{ChargeIssued, ChargeAnnulled, false},
		{ChargeNotified, ChargeClosed, true},
		{ChargeNotified, ChargeAnnulled, false},
		{ChargeClosed, ChargeDraft, false},
		{ChargeAnnulled, ChargeDraft, false},
		{ChargeRejected, ChargeInReview, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.legal, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestChargeCapabilities(t *testing.T) {
	t.Run("editing only in draft and observed", func(t *testing.T) {
		for _, s := range []ChargeState{
			ChargeDraft, ChargePendingApproval, ChargeInReview, ChargeApproved,
			ChargeObserved, ChargeIssued, ChargeNotified, ChargeClosed,
			ChargeAnnulled, ChargeRejected,
		} {
			want := s == ChargeDraft || s == ChargeObserved
			assert.Equal(t, want, ChargeCapabilities(s).CanEdit, string(s))
		}
	})

	t.Run("issuing only from approved", func(t *testing.T) {
		for _, s := range []ChargeState{
			ChargeDraft, ChargePendingApproval, ChargeInReview, ChargeApproved,
			ChargeObserved, ChargeIssued, ChargeNotified,
		} {
			assert.Equal(t, s == ChargeApproved, ChargeCapabilities(s).CanIssue, string(s))
		}
	})

	t.Run("order generation from approved, issued and notified", func(t *testing.T) {
		allowed := map[ChargeState]bool{
			ChargeApproved: true, ChargeIssued: true, ChargeNotified: true,
		}
		for _, s := range []ChargeState{
			ChargeDraft, ChargeApproved, ChargeIssued, ChargeNotified, ChargeClosed,
		} {
			assert.Equal(t, allowed[s], ChargeCapabilities(s).CanGenerateOrder, string(s))
		}
	})

	t.Run("notify only when issued", func(t *testing.T) {
		assert.True(t, ChargeCapabilities(ChargeIssued).CanNotify)
		assert.False(t, ChargeCapabilities(ChargeApproved).CanNotify)
		assert.False(t, ChargeCapabilities(ChargeNotified).CanNotify)
	})
}

func TestOrderTransitions(t *testing.T) {
	cases := []struct {
		from  OrderState
		to    OrderState
		legal bool
	}{
		{OrderIssued, OrderPartiallyPaid, true},
		{OrderIssued, OrderPaid, true},
		{OrderIssued, OrderNotified, true},
		{OrderIssued, OrderAnnulled, true},
		{OrderPartiallyPaid, OrderPartiallyPaid, true},
		{OrderPartiallyPaid, OrderPaid, true},
		{OrderPartiallyPaid, OrderAnnulled, true},
		{OrderPartiallyPaid, OrderNotified, false},
		{OrderPaid, OrderAnnulled, false},
		{OrderPaid, OrderPartiallyPaid, false},
		{OrderAnnulled, OrderIssued, false},
		{OrderAnnulled, OrderPaid, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.legal, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestOrderEffectiveState(t *testing.T) {
	past := today.Add(-24 * time.Hour)

	t.Run("due date passed with balance surfaces overdue", func(t *testing.T) {
		o := &PaymentOrder{State: OrderPartiallyPaid, Total: 100, PaidAmount: 40, DueDate: past}
		assert.Equal(t, OrderOverdue, o.EffectiveState(today))
	})

	t.Run("terminal states never go overdue", func(t *testing.T) {
		paid := &PaymentOrder{State: OrderPaid, Total: 100, PaidAmount: 100, DueDate: past}
		assert.Equal(t, OrderPaid, paid.EffectiveState(today))
		annulled := &PaymentOrder{State: OrderAnnulled, Total: 100, DueDate: past}
		assert.Equal(t, OrderAnnulled, annulled.EffectiveState(today))
	})

	t.Run("overdue keeps payment and annul capabilities", func(t *testing.T) {
		perms := OrderCapabilities(OrderOverdue)
		assert.True(t, perms.CanRegisterPayment)
		assert.True(t, perms.CanAnnul)
		assert.False(t, perms.CanNotify)
	})
}

func TestOrderCapabilities(t *testing.T) {
	t.Run("terminal states have no capabilities", func(t *testing.T) {
		assert.Equal(t, OrderPermissions{}, OrderCapabilities(OrderPaid))
		assert.Equal(t, OrderPermissions{}, OrderCapabilities(OrderAnnulled))
	})

	t.Run("issued can notify, others cannot", func(t *testing.T) {
		assert.True(t, OrderCapabilities(OrderIssued).CanNotify)
		assert.False(t, OrderCapabilities(OrderPartiallyPaid).CanNotify)
	})
}

func TestClassOf(t *testing.T) {
	assert.Equal(t, ClassDuty, ClassOf("1001"))
	assert.Equal(t, ClassFine, ClassOf("2001"))
	assert.Equal(t, ClassInterest, ClassOf("3001"))
	assert.Equal(t, ClassOther, ClassOf("9001"))
	assert.Equal(t, ClassOther, ClassOf(""))
}

func TestResponsibilitySum(t *testing.T) {
	c := &Charge{Infractors: []Infractor{
		{ResponsibilityPct: 60}, {ResponsibilityPct: 40},
	}}
	assert.Equal(t, 100, c.ResponsibilitySum())
	assert.Zero(t, (&Charge{}).ResponsibilitySum())
}
