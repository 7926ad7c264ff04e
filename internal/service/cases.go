// Package service orchestrates the gate-then-mutate operations of the
// case engine. Every mutation loads its entity under SELECT ... FOR
// UPDATE inside one transaction, evaluates the gates against that locked
// snapshot, applies the change and commits — the per-entity serialization
// the check-then-act pattern requires. Nothing here retries; a failed
// gate or invariant surfaces to the caller with no partial effect.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/aduanas/casengine/internal/convert"
	"github.com/aduanas/casengine/internal/domain"
	"github.com/aduanas/casengine/internal/ledger"
	"github.com/aduanas/casengine/internal/numbering"
	"github.com/aduanas/casengine/internal/rules"
	"github.com/aduanas/casengine/internal/store"
)

type CaseService struct {
	store     *store.Store
	converter *convert.Converter
	clock     Clock
	logger    *zap.Logger
}

func NewCaseService(s *store.Store, c *convert.Converter, clock Clock, logger *zap.Logger) *CaseService {
	return &CaseService{store: s, converter: c, clock: clock, logger: logger}
}

// ConvertFinding turns a finding into a numbered, persisted accusation
// draft and freezes the finding. Converting an already-converted finding
// fails without touching either record.
func (s *CaseService) ConvertFinding(ctx context.Context, findingID string) (*domain.Accusation, error) {
	tx, err := s.store.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("tx begin failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// 1. Lock the finding and check one-way conversion
	finding, err := s.store.GetFindingForUpdate(ctx, tx, findingID)
	if err != nil {
		return nil, err
	}
	if finding.Converted() {
		return nil, domain.ErrFindingConverted
	}

	// 2. Build the draft and assign numbers
	now := s.clock.Now()
	acc := s.converter.Convert(*finding, now)
	acc.ID = uuid.NewString()

	seq, err := s.store.NextSequence(ctx, tx, numbering.ScopeAccusation, now.Year())
	if err != nil {
		return nil, err
	}
	acc.CaseNumber = numbering.CaseNumber(numbering.ScopeAccusation, now.Year(), seq)
	acc.InternalNumber = numbering.InternalNumber(acc.CaseNumber, numbering.ScopeAccusation)

	// 3. Persist accusation, freeze finding, commit
	if err := s.store.CreateAccusation(ctx, tx, acc); err != nil {
		return nil, err
	}
	finding.AccusationID = acc.ID
	if err := s.store.UpdateFinding(ctx, tx, finding); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("tx commit failed: %w", err)
	}

	s.logger.Info("finding converted",
		zap.String("finding_id", findingID),
		zap.String("accusation_id", acc.ID),
		zap.String("case_number", acc.CaseNumber))
	return acc, nil
}

// TransitionAccusation moves an accusation along its state machine.
func (s *CaseService) TransitionAccusation(ctx context.Context, id string, next domain.AccusationState) (*domain.Accusation, error) {
	tx, err := s.store.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("tx begin failed: %w", err)
	}
	defer tx.Rollback(ctx)

	acc, err := s.store.GetAccusationForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if !acc.State.CanTransitionTo(next) {
		return nil, domain.ErrIllegalTransition
	}

	acc.State = next
	acc.UpdatedAt = s.clock.Now()
	if err := s.store.UpdateAccusation(ctx, tx, acc); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("tx commit failed: %w", err)
	}
	return acc, nil
}

// TransitionCharge moves a charge along its state machine. Moving into
// Issued additionally runs the structural issuance gate; use a reason
// with AnnulCharge when annulling so the note is recorded.
func (s *CaseService) TransitionCharge(ctx context.Context, id string, next domain.ChargeState) (*domain.Charge, error) {
	tx, err := s.store.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("tx begin failed: %w", err)
	}
	defer tx.Rollback(ctx)

	charge, err := s.store.GetChargeForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyChargeTransition(charge, next); err != nil {
		return nil, err
	}
	if err := s.store.UpdateCharge(ctx, tx, charge); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("tx commit failed: %w", err)
	}
	return charge, nil
}

// IssueCharge is the gated Approved→Issued transition.
func (s *CaseService) IssueCharge(ctx context.Context, id string) (*domain.Charge, error) {
	return s.TransitionCharge(ctx, id, domain.ChargeIssued)
}

func (s *CaseService) applyChargeTransition(charge *domain.Charge, next domain.ChargeState) error {
	if !charge.State.CanTransitionTo(next) {
		return domain.ErrIllegalTransition
	}
	now := s.clock.Now()
	switch next {
	case domain.ChargeIssued:
		if res := rules.CanIssueCharge(charge); !res.Valid {
			return res.Err()
		}
		charge.IssuedAt = &now
	case domain.ChargeAnnulled:
		charge.AnnulledAt = &now
	}
	charge.State = next
	charge.UpdatedAt = now
	return nil
}

// AnnulCharge is the editor-initiated cancellation, legal only before
// notification. The note is kept on the record.
func (s *CaseService) AnnulCharge(ctx context.Context, id, note string) (*domain.Charge, error) {
	tx, err := s.store.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("tx begin failed: %w", err)
	}
	defer tx.Rollback(ctx)

	charge, err := s.store.GetChargeForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyChargeTransition(charge, domain.ChargeAnnulled); err != nil {
		return nil, err
	}
	charge.AnnulNote = note
	if err := s.store.UpdateCharge(ctx, tx, charge); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("tx commit failed: %w", err)
	}
	return charge, nil
}

// GeneratePaymentOrder creates a payment order from an issued (or
// approved, or notified) charge, copying its line items and deriving the
// total from them.
func (s *CaseService) GeneratePaymentOrder(ctx context.Context, chargeID string, req domain.PaymentOrder) (*domain.PaymentOrder, error) {
	tx, err := s.store.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("tx begin failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// 1. Lock the charge and check the capability for its state
	charge, err := s.store.GetChargeForUpdate(ctx, tx, chargeID)
	if err != nil {
		return nil, err
	}
	if !domain.ChargeCapabilities(charge.State).CanGenerateOrder {
		return nil, domain.ErrIllegalTransition
	}

	// 2. Build the order from the charge's ledger
	now := s.clock.Now()
	order := &domain.PaymentOrder{
		ID:             uuid.NewString(),
		Type:           domain.OrderFromCharge,
		ChargeID:       charge.ID,
		DebtorIdentity: charge.DebtorIdentity,
		DebtorName:     charge.DebtorName,
		Currency:       charge.Currency,
		LineItems:      append([]domain.LineItem(nil), charge.LineItems...),
		DueDate:        req.DueDate,
		State:          domain.OrderIssued,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	order.Total = ledger.ComputeTotals(order.LineItems).Total

	seq, err := s.store.NextSequence(ctx, tx, numbering.ScopePaymentOrder, now.Year())
	if err != nil {
		return nil, err
	}
	order.OrderNumber = numbering.CaseNumber(numbering.ScopePaymentOrder, now.Year(), seq)
	order.InternalNumber = numbering.InternalNumber(order.OrderNumber, numbering.ScopePaymentOrder)

	// 3. Persist and link back to the charge
	if err := s.store.CreateOrder(ctx, tx, order); err != nil {
		return nil, err
	}
	charge.PaymentOrderIDs = append(charge.PaymentOrderIDs, order.ID)
	charge.UpdatedAt = now
	if err := s.store.UpdateCharge(ctx, tx, charge); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("tx commit failed: %w", err)
	}

	s.logger.Info("payment order generated",
		zap.String("charge_id", charge.ID),
		zap.String("order_id", order.ID),
		zap.Int64("total", order.Total))
	return order, nil
}

// GetAccusation loads an accusation for display.
func (s *CaseService) GetAccusation(ctx context.Context, id string) (*domain.Accusation, error) {
	return s.store.GetAccusation(ctx, id)
}

// GetCharge loads a charge for display.
func (s *CaseService) GetCharge(ctx context.Context, id string) (*domain.Charge, error) {
	return s.store.GetCharge(ctx, id)
}
