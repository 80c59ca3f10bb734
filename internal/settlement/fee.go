package settlement

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lendwell/ledger/internal/ledger"
	"github.com/lendwell/ledger/internal/loan"
)

type FeeParams struct {
	CompanyID     uuid.UUID
	LoanID        uuid.UUID
	Amount        int64
	EffectiveDate time.Time
}

// CreateFee assesses a fee against a loan. Fee payments settle at creation:
// the payment, its transaction, and the loan's bumped fee balance land in
// one atomic unit.
func (s *Service) CreateFee(ctx context.Context, params FeeParams) (*ledger.Payment, error) {
	if params.Amount <= 0 {
		return nil, ledger.Validationf("fee amount must be positive, got %d", params.Amount)
	}

	if params.EffectiveDate.IsZero() {
		return nil, ledger.Validationf("fee effective date is required")
	}

	loans, err := s.loans.List(ctx, loan.ListFilter{IDs: []uuid.UUID{params.LoanID}})
	if err != nil {
		return nil, err
	}

	if len(loans) == 0 {
		return nil, ledger.NotFoundf("loan %s not found", params.LoanID)
	}

	l := loans[0]
	if l.CompanyID != params.CompanyID {
		return nil, ledger.Validationf("loan %s does not belong to company %s", l.ID, params.CompanyID)
	}

	if !l.Open() {
		return nil, ledger.Statef("loan %s is not open", l.ID)
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	p := &ledger.Payment{
		CompanyID:       params.CompanyID,
		Kind:            ledger.KindFee,
		Method:          ledger.MethodInternal,
		RequestedAmount: params.Amount,
		Amount:          params.Amount,
		PaymentDate:     &params.EffectiveDate,
		SettlementDate:  &params.EffectiveDate,
		SettledAt:       &now,
		LoanIDs:         []uuid.UUID{params.LoanID},
	}

	if err := tx.CreatePayment(ctx, p); err != nil {
		return nil, err
	}

	entry := &ledger.Transaction{
		Kind:          ledger.TxFeeAssessment,
		Amount:        params.Amount,
		ToFees:        params.Amount,
		LoanID:        &params.LoanID,
		PaymentID:     p.ID,
		EffectiveDate: params.EffectiveDate,
	}

	if err := tx.CreateTransaction(ctx, entry); err != nil {
		return nil, err
	}

	l.OutstandingFees += params.Amount

	if err := tx.UpdateLoan(ctx, l); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return p, nil
}
