// Package store persists engine entities in postgres. Entities are kept
// as JSONB documents keyed by id with the state denormalized for queries;
// the engine owns all invariants, the store only loads and saves. Each
// call is atomic from the engine's perspective, and the ForUpdate
// variants take the row lock that serializes gate-then-mutate sequences.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aduanas/casengine/internal/domain"
)

type Store struct {
	Pool *pgxpool.Pool
}

func New(connString string) (*Store, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

// querier lets the same helpers run on the pool or inside a transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func getDoc(ctx context.Context, q querier, table, id string, dst any) error {
	var doc []byte
	err := q.QueryRow(ctx, fmt.Sprintf("SELECT doc FROM %s WHERE id = $1", table), id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", table, err)
	}
	return json.Unmarshal(doc, dst)
}

func getDocForUpdate(ctx context.Context, tx pgx.Tx, table, id string, dst any) error {
	var doc []byte
	err := tx.QueryRow(ctx, fmt.Sprintf("SELECT doc FROM %s WHERE id = $1 FOR UPDATE", table), id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("lock %s: %w", table, err)
	}
	return json.Unmarshal(doc, dst)
}

func insertDoc(ctx context.Context, q querier, table, id, state string, src any) error {
	doc, err := json.Marshal(src)
	if err != nil {
		return err
	}
	_, err = q.Exec(ctx,
		fmt.Sprintf("INSERT INTO %s (id, state, doc) VALUES ($1, $2, $3)", table),
		id, state, doc)
	if err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

func updateDoc(ctx context.Context, q querier, table, id, state string, src any) error {
	doc, err := json.Marshal(src)
	if err != nil {
		return err
	}
	tag, err := q.Exec(ctx,
		fmt.Sprintf("UPDATE %s SET state = $2, doc = $3, updated_at = now() WHERE id = $1", table),
		id, state, doc)
	if err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Findings

func (s *Store) GetFinding(ctx context.Context, id string) (*domain.Finding, error) {
	var f domain.Finding
	if err := getDoc(ctx, s.Pool, "findings", id, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *Store) GetFindingForUpdate(ctx context.Context, tx pgx.Tx, id string) (*domain.Finding, error) {
	var f domain.Finding
	if err := getDocForUpdate(ctx, tx, "findings", id, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *Store) CreateFinding(ctx context.Context, f *domain.Finding) error {
	return insertDoc(ctx, s.Pool, "findings", f.ID, "", f)
}

func (s *Store) UpdateFinding(ctx context.Context, tx pgx.Tx, f *domain.Finding) error {
	return updateDoc(ctx, tx, "findings", f.ID, "", f)
}

// Accusations

func (s *Store) GetAccusation(ctx context.Context, id string) (*domain.Accusation, error) {
	var a domain.Accusation
	if err := getDoc(ctx, s.Pool, "accusations", id, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) GetAccusationForUpdate(ctx context.Context, tx pgx.Tx, id string) (*domain.Accusation, error) {
	var a domain.Accusation
	if err := getDocForUpdate(ctx, tx, "accusations", id, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) CreateAccusation(ctx context.Context, tx pgx.Tx, a *domain.Accusation) error {
	return insertDoc(ctx, tx, "accusations", a.ID, string(a.State), a)
}

func (s *Store) UpdateAccusation(ctx context.Context, tx pgx.Tx, a *domain.Accusation) error {
	return updateDoc(ctx, tx, "accusations", a.ID, string(a.State), a)
}

// Charges

func (s *Store) GetCharge(ctx context.Context, id string) (*domain.Charge, error) {
	var c domain.Charge
	if err := getDoc(ctx, s.Pool, "charges", id, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) GetChargeForUpdate(ctx context.Context, tx pgx.Tx, id string) (*domain.Charge, error) {
	var c domain.Charge
	if err := getDocForUpdate(ctx, tx, "charges", id, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) CreateCharge(ctx context.Context, tx pgx.Tx, c *domain.Charge) error {
	return insertDoc(ctx, tx, "charges", c.ID, string(c.State), c)
}

func (s *Store) UpdateCharge(ctx context.Context, tx pgx.Tx, c *domain.Charge) error {
	return updateDoc(ctx, tx, "charges", c.ID, string(c.State), c)
}

// Payment orders

func (s *Store) GetOrder(ctx context.Context, id string) (*domain.PaymentOrder, error) {
	var o domain.PaymentOrder
	if err := getDoc(ctx, s.Pool, "payment_orders", id, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *Store) GetOrderForUpdate(ctx context.Context, tx pgx.Tx, id string) (*domain.PaymentOrder, error) {
	var o domain.PaymentOrder
	if err := getDocForUpdate(ctx, tx, "payment_orders", id, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *Store) CreateOrder(ctx context.Context, tx pgx.Tx, o *domain.PaymentOrder) error {
	return insertDoc(ctx, tx, "payment_orders", o.ID, string(o.State), o)
}

func (s *Store) UpdateOrder(ctx context.Context, tx pgx.Tx, o *domain.PaymentOrder) error {
	return updateDoc(ctx, tx, "payment_orders", o.ID, string(o.State), o)
}

// NextSequence reserves the next per-scope, per-year case number. The
// UPSERT runs inside the caller's transaction, so concurrent reservations
// serialize on the (scope, year) row.
func (s *Store) NextSequence(ctx context.Context, tx pgx.Tx, scope string, year int) (int64, error) {
	var seq int64
	err := tx.QueryRow(ctx, `
		INSERT INTO case_sequences (scope, year, seq) VALUES ($1, $2, 1)
		ON CONFLICT (scope, year) DO UPDATE SET seq = case_sequences.seq + 1
		RETURNING seq`,
		scope, year).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("sequence reservation failed: %w", err)
	}
	return seq, nil
}
