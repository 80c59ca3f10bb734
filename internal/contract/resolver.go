package contract

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lendwell/ledger/internal/ledger"
)

//go:generate mockgen -source=resolver.go -destination=repository_mock.go -package=contract
type Repository interface {
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]Record, error)
}

// Resolver selects the contract effective on a given date for a company. It
// implements the contract provider surface the settlement engine depends on.
type Resolver struct {
	repo Repository
}

func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

// Resolve returns the single contract whose effective range contains date.
// A company's contracts must be mutually exclusive in time; overlapping
// ranges fail the whole resolution rather than silently picking one.
func (r *Resolver) Resolve(ctx context.Context, companyID uuid.UUID, date time.Time) (Contract, error) {
	records, err := r.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, ledger.NotFoundf("no contracts for company %s", companyID)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].StartDate.Before(records[j].StartDate)
	})

	for i := 0; i < len(records)-1; i++ {
		cur, next := records[i], records[i+1]
		if !dateOnly(next.StartDate).After(dateOnly(cur.AdjustedEndDate)) {
			return nil, ledger.Validationf("contracts %s and %s for company %s overlap in time",
				cur.ID, next.ID, companyID)
		}
	}

	d := dateOnly(date)
	for _, rec := range records {
		if !d.Before(dateOnly(rec.StartDate)) && !d.After(dateOnly(rec.AdjustedEndDate)) {
			return New(rec)
		}
	}

	return nil, ledger.NotFoundf("no contract effective on %s for company %s",
		d.Format(time.DateOnly), companyID)
}
