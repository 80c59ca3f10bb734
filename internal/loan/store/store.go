package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/lendwell/ledger/internal/ledger"
	"github.com/lendwell/ledger/internal/loan"
)

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

const selectLoanColumns = `
	id, company_id, principal, origination_date, maturity_date, adjusted_maturity_date,
	outstanding_principal, outstanding_interest, outstanding_fees,
	funded_at, closed_at, rejected_at, payment_status, created_at, updated_at, deleted_at
`

func scanLoan(s scanner) (*loan.Loan, error) {
	var l loan.Loan

	var status string

	if err := s.Scan(
		&l.ID, &l.CompanyID, &l.Principal, &l.OriginationDate, &l.MaturityDate, &l.AdjustedMaturityDate,
		&l.OutstandingPrincipal, &l.OutstandingInterest, &l.OutstandingFees,
		&l.FundedAt, &l.ClosedAt, &l.RejectedAt, &status, &l.CreatedAt, &l.UpdatedAt, &l.DeletedAt,
	); err != nil {
		return nil, err
	}

	l.PaymentStatus = loan.PaymentStatus(status)

	return &l, nil
}

func (s *Store) GetLoan(ctx context.Context, id uuid.UUID) (*loan.Loan, error) {
	query := `SELECT ` + selectLoanColumns + `
		FROM loans
		WHERE id = $1 AND deleted_at IS NULL`

	l, err := scanLoan(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.NotFoundf("loan %s not found", id)
		}

		return nil, fmt.Errorf("getting loan: %w", err)
	}

	return l, nil
}

func (s *Store) ListLoans(ctx context.Context, filter loan.ListFilter) ([]*loan.Loan, error) {
	query := `SELECT ` + selectLoanColumns + `
		FROM loans
		WHERE deleted_at IS NULL`

	var args []any

	argIdx := 1

	if filter.CompanyID != nil {
		query += fmt.Sprintf(" AND company_id = $%d", argIdx)

		args = append(args, *filter.CompanyID)
		argIdx++
	}

	if len(filter.IDs) > 0 {
		placeholders := make([]string, len(filter.IDs))
		for i, id := range filter.IDs {
			placeholders[i] = fmt.Sprintf("$%d", argIdx)

			args = append(args, id)
			argIdx++
		}

		query += fmt.Sprintf(" AND id IN (%s)", strings.Join(placeholders, ", "))
	}

	if filter.OpenOnly {
		query += " AND closed_at IS NULL AND rejected_at IS NULL"
	}

	query += " ORDER BY adjusted_maturity_date ASC, origination_date ASC, created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing loans: %w", err)
	}
	defer rows.Close()

	var loans []*loan.Loan

	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning loan: %w", err)
		}

		loans = append(loans, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating loan rows: %w", err)
	}

	return loans, nil
}

func (s *Store) CreateLoan(ctx context.Context, l *loan.Loan) error {
	query := `
		INSERT INTO loans (
			company_id, principal, origination_date, maturity_date, adjusted_maturity_date,
			outstanding_principal, outstanding_interest, outstanding_fees,
			funded_at, closed_at, rejected_at, payment_status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		l.CompanyID, l.Principal, l.OriginationDate, l.MaturityDate, l.AdjustedMaturityDate,
		l.OutstandingPrincipal, l.OutstandingInterest, l.OutstandingFees,
		l.FundedAt, l.ClosedAt, l.RejectedAt, l.PaymentStatus,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating loan: %w", err)
	}

	return nil
}

func (s *Store) UpdateLoan(ctx context.Context, l *loan.Loan) error {
	query := `
		UPDATE loans
		SET outstanding_principal = $1, outstanding_interest = $2, outstanding_fees = $3,
			funded_at = $4, closed_at = $5, rejected_at = $6, payment_status = $7, updated_at = NOW()
		WHERE id = $8 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query,
		l.OutstandingPrincipal, l.OutstandingInterest, l.OutstandingFees,
		l.FundedAt, l.ClosedAt, l.RejectedAt, l.PaymentStatus, l.ID,
	)
	if err != nil {
		return fmt.Errorf("updating loan: %w", err)
	}

	return nil
}
