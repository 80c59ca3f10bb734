package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/lendwell/ledger/internal/contract"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectContractColumns = `
	id, company_id, product, start_date, adjusted_end_date,
	interest_rate, financing_terms_days, late_fee_schedule,
	business_day_preference, created_at
`

func (s *Store) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]contract.Record, error) {
	query := `SELECT ` + selectContractColumns + `
		FROM contracts
		WHERE company_id = $1
		ORDER BY start_date ASC`

	rows, err := s.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("listing contracts: %w", err)
	}
	defer rows.Close()

	var records []contract.Record

	for rows.Next() {
		var rec contract.Record

		var product, pref string

		if err := rows.Scan(
			&rec.ID, &rec.CompanyID, &product, &rec.StartDate, &rec.AdjustedEndDate,
			&rec.InterestRate, &rec.FinancingTermsDays, &rec.LateFeeSchedule,
			&pref, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning contract: %w", err)
		}

		rec.Product = contract.ProductType(product)
		rec.BusinessDayPreference = contract.BusinessDayPreference(pref)

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contract rows: %w", err)
	}

	return records, nil
}
