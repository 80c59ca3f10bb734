package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/lendwell/ledger/internal/ledger"
	"github.com/lendwell/ledger/internal/loan"
	"github.com/lendwell/ledger/internal/settlement"
)

// Store persists payments and transactions and hands out the atomic Tx the
// settlement engine commits through.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectPaymentColumns = `
	id, company_id, kind, method, requested_amount, amount,
	requested_payment_date, payment_date, deposit_date, settlement_date,
	settled_at, settled_by, reversed_at, originating_payment_id,
	loan_ids, principal_budget, interest_budget, created_at, updated_at, deleted_at
`

func scanPayment(s scanner) (*ledger.Payment, error) {
	var p ledger.Payment

	var kind, method string

	var loanIDs []byte

	if err := s.Scan(
		&p.ID, &p.CompanyID, &kind, &method, &p.RequestedAmount, &p.Amount,
		&p.RequestedPaymentDate, &p.PaymentDate, &p.DepositDate, &p.SettlementDate,
		&p.SettledAt, &p.SettledBy, &p.ReversedAt, &p.OriginatingPaymentID,
		&loanIDs, &p.PrincipalBudget, &p.InterestBudget, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
	); err != nil {
		return nil, err
	}

	p.Kind = ledger.PaymentKind(kind)
	p.Method = ledger.PaymentMethod(method)

	if len(loanIDs) > 0 {
		if err := json.Unmarshal(loanIDs, &p.LoanIDs); err != nil {
			return nil, fmt.Errorf("decoding loan ids: %w", err)
		}
	}

	return &p, nil
}

func (s *Store) GetPayment(ctx context.Context, id uuid.UUID) (*ledger.Payment, error) {
	query := `SELECT ` + selectPaymentColumns + `
		FROM payments
		WHERE id = $1`

	p, err := scanPayment(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.NotFoundf("payment %s not found", id)
		}

		return nil, fmt.Errorf("getting payment: %w", err)
	}

	return p, nil
}

func (s *Store) PaymentsOriginatedBy(ctx context.Context, id uuid.UUID) ([]*ledger.Payment, error) {
	query := `SELECT ` + selectPaymentColumns + `
		FROM payments
		WHERE originating_payment_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("listing originated payments: %w", err)
	}
	defer rows.Close()

	return collectPayments(rows)
}

func collectPayments(rows *sql.Rows) ([]*ledger.Payment, error) {
	var payments []*ledger.Payment

	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment rows: %w", err)
	}

	return payments, nil
}

func (s *Store) CreatePayment(ctx context.Context, p *ledger.Payment) error {
	return createPayment(ctx, s.db, p)
}

func (s *Store) UpdatePayment(ctx context.Context, p *ledger.Payment) error {
	return updatePayment(ctx, s.db, p)
}

const selectTransactionColumns = `
	id, kind, amount, to_principal, to_interest, to_fees,
	loan_id, payment_id, effective_date, created_at, deleted_at
`

func scanTransaction(s scanner) (*ledger.Transaction, error) {
	var t ledger.Transaction

	var kind string

	if err := s.Scan(
		&t.ID, &kind, &t.Amount, &t.ToPrincipal, &t.ToInterest, &t.ToFees,
		&t.LoanID, &t.PaymentID, &t.EffectiveDate, &t.CreatedAt, &t.DeletedAt,
	); err != nil {
		return nil, err
	}

	t.Kind = ledger.TransactionKind(kind)

	return &t, nil
}

func (s *Store) TransactionsForLoans(ctx context.Context, loanIDs []uuid.UUID) ([]*ledger.Transaction, error) {
	if len(loanIDs) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(loanIDs))
	args := make([]any, len(loanIDs))

	for i, id := range loanIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE loan_id IN (` + strings.Join(placeholders, ", ") + `)
		ORDER BY effective_date ASC, created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing loan transactions: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func (s *Store) TransactionsForPayment(ctx context.Context, paymentID uuid.UUID) ([]*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE payment_id = $1
		ORDER BY effective_date ASC, created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("listing payment transactions: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func collectTransactions(rows *sql.Rows) ([]*ledger.Transaction, error) {
	var txs []*ledger.Transaction

	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

// Begin opens the atomic unit a settlement call commits through.
func (s *Store) Begin(ctx context.Context) (settlement.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning settlement tx: %w", err)
	}

	return &settlementTx{tx: dbTx}, nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func createPayment(ctx context.Context, db execer, p *ledger.Payment) error {
	loanIDs, err := json.Marshal(p.LoanIDs)
	if err != nil {
		return fmt.Errorf("encoding loan ids: %w", err)
	}

	query := `
		INSERT INTO payments (
			company_id, kind, method, requested_amount, amount,
			requested_payment_date, payment_date, deposit_date, settlement_date,
			settled_at, settled_by, reversed_at, originating_payment_id,
			loan_ids, principal_budget, interest_budget, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = db.QueryRowContext(ctx, query,
		p.CompanyID, p.Kind, p.Method, p.RequestedAmount, p.Amount,
		p.RequestedPaymentDate, p.PaymentDate, p.DepositDate, p.SettlementDate,
		p.SettledAt, p.SettledBy, p.ReversedAt, p.OriginatingPaymentID,
		loanIDs, p.PrincipalBudget, p.InterestBudget,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating payment: %w", err)
	}

	return nil
}

func updatePayment(ctx context.Context, db execer, p *ledger.Payment) error {
	query := `
		UPDATE payments
		SET amount = $1, requested_payment_date = $2, payment_date = $3, deposit_date = $4,
			settlement_date = $5, settled_at = $6, settled_by = $7, reversed_at = $8, updated_at = NOW()
		WHERE id = $9 AND deleted_at IS NULL
	`

	_, err := db.ExecContext(ctx, query,
		p.Amount, p.RequestedPaymentDate, p.PaymentDate, p.DepositDate,
		p.SettlementDate, p.SettledAt, p.SettledBy, p.ReversedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating payment: %w", err)
	}

	return nil
}

type settlementTx struct {
	tx *sql.Tx
}

func (t *settlementTx) Commit() error   { return t.tx.Commit() }
func (t *settlementTx) Rollback() error { return t.tx.Rollback() }

func (t *settlementTx) CreatePayment(ctx context.Context, p *ledger.Payment) error {
	return createPayment(ctx, t.tx, p)
}

func (t *settlementTx) UpdatePayment(ctx context.Context, p *ledger.Payment) error {
	return updatePayment(ctx, t.tx, p)
}

func (t *settlementTx) CreateTransaction(ctx context.Context, entry *ledger.Transaction) error {
	query := `
		INSERT INTO transactions (
			kind, amount, to_principal, to_interest, to_fees,
			loan_id, payment_id, effective_date, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		entry.Kind, entry.Amount, entry.ToPrincipal, entry.ToInterest, entry.ToFees,
		entry.LoanID, entry.PaymentID, entry.EffectiveDate,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (t *settlementTx) UpdateLoan(ctx context.Context, l *loan.Loan) error {
	query := `
		UPDATE loans
		SET outstanding_principal = $1, outstanding_interest = $2, outstanding_fees = $3,
			closed_at = $4, payment_status = $5, updated_at = NOW()
		WHERE id = $6 AND deleted_at IS NULL
	`

	_, err := t.tx.ExecContext(ctx, query,
		l.OutstandingPrincipal, l.OutstandingInterest, l.OutstandingFees,
		l.ClosedAt, l.PaymentStatus, l.ID,
	)
	if err != nil {
		return fmt.Errorf("updating loan: %w", err)
	}

	return nil
}

func (t *settlementTx) SoftDeleteTransactionsForPayment(ctx context.Context, paymentID uuid.UUID) error {
	query := `
		UPDATE transactions
		SET deleted_at = NOW()
		WHERE payment_id = $1 AND deleted_at IS NULL
	`

	if _, err := t.tx.ExecContext(ctx, query, paymentID); err != nil {
		return fmt.Errorf("soft deleting payment transactions: %w", err)
	}

	return nil
}

func (t *settlementTx) SoftDeletePayment(ctx context.Context, paymentID uuid.UUID) error {
	query := `
		UPDATE payments
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	if _, err := t.tx.ExecContext(ctx, query, paymentID); err != nil {
		return fmt.Errorf("soft deleting payment: %w", err)
	}

	return nil
}
