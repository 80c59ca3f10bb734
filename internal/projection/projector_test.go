package projection_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lendwell/ledger/internal/ledger"
	"github.com/lendwell/ledger/internal/loan"
	"github.com/lendwell/ledger/internal/projection"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func entry(loanID uuid.UUID, kind ledger.TransactionKind, principal, interest, fees int64, effective time.Time) *ledger.Transaction {
	return &ledger.Transaction{
		ID:            uuid.New(),
		Kind:          kind,
		Amount:        principal + interest + fees,
		ToPrincipal:   principal,
		ToInterest:    interest,
		ToFees:        fees,
		LoanID:        &loanID,
		PaymentID:     uuid.New(),
		EffectiveDate: effective,
	}
}

func TestReplayProjector_LoanBalance(t *testing.T) {
	l := &loan.Loan{ID: uuid.New()}
	other := uuid.New()

	deleted := entry(l.ID, ledger.TxFeeAssessment, 0, 0, 500, date(2024, 1, 5))
	deletedAt := date(2024, 1, 6)
	deleted.DeletedAt = &deletedAt

	txs := []*ledger.Transaction{
		entry(l.ID, ledger.TxAdvance, 1000, 0, 0, date(2024, 1, 1)),
		entry(l.ID, ledger.TxInterestAccrual, 0, 50, 0, date(2024, 1, 10)),
		entry(l.ID, ledger.TxFeeAssessment, 0, 0, 10, date(2024, 1, 12)),
		entry(l.ID, ledger.TxRepayment, 200, 50, 10, date(2024, 1, 15)),
		entry(other, ledger.TxAdvance, 9999, 0, 0, date(2024, 1, 1)),
		deleted,
		entry(l.ID, ledger.TxInterestAccrual, 0, 30, 0, date(2024, 2, 1)),
	}

	projector := projection.NewReplayProjector()

	// As of Jan 20 the February accrual has not happened yet.
	got, err := projector.LoanBalance(l, txs, date(2024, 1, 20), false)
	require.NoError(t, err)
	assert.Equal(t, projection.Balance{Principal: 800, Interest: 0, Fees: 0}, got)

	// Including future entries picks up the February accrual.
	got, err = projector.LoanBalance(l, txs, date(2024, 1, 20), true)
	require.NoError(t, err)
	assert.Equal(t, projection.Balance{Principal: 800, Interest: 30, Fees: 0}, got)
}

func TestReplayProjector_InvalidTransaction(t *testing.T) {
	l := &loan.Loan{ID: uuid.New()}

	bad := entry(l.ID, ledger.TxAdvance, 1000, 0, 0, date(2024, 1, 1))
	bad.Amount = 900

	_, err := projection.NewReplayProjector().LoanBalance(l, []*ledger.Transaction{bad}, date(2024, 2, 1), false)
	require.Error(t, err)
	assert.True(t, ledger.IsKind(err, ledger.KindInvariant))
}

func TestReplayProjector_UnknownKind(t *testing.T) {
	l := &loan.Loan{ID: uuid.New()}

	weird := entry(l.ID, "chargeback", 100, 0, 0, date(2024, 1, 1))

	_, err := projection.NewReplayProjector().LoanBalance(l, []*ledger.Transaction{weird}, date(2024, 2, 1), false)
	assert.Error(t, err)
}

func TestBalance(t *testing.T) {
	b := projection.Balance{Principal: 100, Interest: 20, Fees: 5}

	assert.Equal(t, int64(125), b.Total())
	assert.False(t, b.Settled())
	assert.True(t, projection.Balance{}.Settled())

	after := b.Sub(100, 20, 5)
	assert.True(t, after.Settled())
}
