package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/aduanas/casengine/internal/domain"
	"github.com/aduanas/casengine/internal/ledger"
)

// RegisterPayment applies a payment to an order under the row lock. The
// stored-total consistency check runs first; a mismatch is a data
// inconsistency that is logged and refused, never silently corrected.
func (s *CaseService) RegisterPayment(ctx context.Context, orderID string, p domain.Payment) (*domain.PaymentOrder, error) {
	tx, err := s.store.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("tx begin failed: %w", err)
	}
	defer tx.Rollback(ctx)

	order, err := s.store.GetOrderForUpdate(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}

	if err := ledger.CheckStoredTotal(order); err != nil {
		s.logger.Error("ledger inconsistency detected",
			zap.String("order_id", order.ID),
			zap.Int64("stored_total", order.Total))
		return nil, err
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	before := order.PaidAmount
	if err := ledger.ApplyPayment(order, p, s.clock.Now()); err != nil {
		return nil, err
	}

	if err := s.store.UpdateOrder(ctx, tx, order); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("tx commit failed: %w", err)
	}

	s.logger.Info("payment registered",
		zap.String("order_id", order.ID),
		zap.Int64("amount", p.Amount),
		zap.Int64("paid_before", before),
		zap.Int64("balance", order.Balance()),
		zap.String("state", string(order.State)))
	return order, nil
}

// NotifyOrder records that the debtor was formally notified of the order.
func (s *CaseService) NotifyOrder(ctx context.Context, orderID string) (*domain.PaymentOrder, error) {
	tx, err := s.store.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("tx begin failed: %w", err)
	}
	defer tx.Rollback(ctx)

	order, err := s.store.GetOrderForUpdate(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.State.CanTransitionTo(domain.OrderNotified) {
		return nil, domain.ErrIllegalTransition
	}
	order.State = domain.OrderNotified
	order.UpdatedAt = s.clock.Now()

	if err := s.store.UpdateOrder(ctx, tx, order); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("tx commit failed: %w", err)
	}
	return order, nil
}

// AnnulOrder moves the order to its terminal Annulled state, keeping all
// registered payments in history.
func (s *CaseService) AnnulOrder(ctx context.Context, orderID, reason, updatedBy string) (*domain.PaymentOrder, error) {
	tx, err := s.store.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("tx begin failed: %w", err)
	}
	defer tx.Rollback(ctx)

	order, err := s.store.GetOrderForUpdate(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if err := ledger.Annul(order, reason, updatedBy, s.clock.Now()); err != nil {
		return nil, err
	}

	if err := s.store.UpdateOrder(ctx, tx, order); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("tx commit failed: %w", err)
	}

	s.logger.Info("payment order annulled",
		zap.String("order_id", order.ID),
		zap.Int64("paid_amount", order.PaidAmount))
	return order, nil
}

// GetOrder loads a payment order for display.
func (s *CaseService) GetOrder(ctx context.Context, id string) (*domain.PaymentOrder, error) {
	return s.store.GetOrder(ctx, id)
}
