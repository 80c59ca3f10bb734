package settlement_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lendwell/ledger/internal/ledger"
	"github.com/lendwell/ledger/internal/loan"
	"github.com/lendwell/ledger/internal/settlement"
)

// settledFixture is a repayment that settled loan A in full: the loan is
// closed and the repayment transaction is on the books.
type settledFixture struct {
	payment   *ledger.Payment
	loan      *loan.Loan
	repayment *ledger.Transaction
	history   []*ledger.Transaction
}

func newSettledFixture() *settledFixture {
	companyID := uuid.New()
	settledAt := date(2024, 1, 15)
	settledBy := uuid.New()
	depositDate := date(2024, 1, 15)
	settlementDate := date(2024, 1, 15)
	paymentDate := date(2024, 1, 14)
	closedAt := date(2024, 1, 15)

	l := &loan.Loan{
		ID:                   uuid.New(),
		CompanyID:            companyID,
		Principal:            1000,
		OriginationDate:      date(2023, 12, 1),
		MaturityDate:         date(2024, 1, 10),
		AdjustedMaturityDate: date(2024, 1, 10),
		PaymentStatus:        loan.StatusClosed,
		ClosedAt:             &closedAt,
	}

	p := &ledger.Payment{
		ID:             uuid.New(),
		CompanyID:      companyID,
		Kind:           ledger.KindRepayment,
		Method:         ledger.MethodACH,
		Amount:         1060,
		PaymentDate:    &paymentDate,
		DepositDate:    &depositDate,
		SettlementDate: &settlementDate,
		SettledAt:      &settledAt,
		SettledBy:      &settledBy,
		LoanIDs:        []uuid.UUID{l.ID},
	}

	repayment := entry(l.ID, ledger.TxRepayment, 1000, 50, 10, settlementDate)
	repayment.PaymentID = p.ID

	history := []*ledger.Transaction{
		entry(l.ID, ledger.TxAdvance, 1000, 0, 0, date(2023, 12, 1)),
		entry(l.ID, ledger.TxInterestAccrual, 0, 50, 0, date(2023, 12, 20)),
		entry(l.ID, ledger.TxFeeAssessment, 0, 0, 10, date(2023, 12, 28)),
		repayment,
	}

	return &settledFixture{payment: p, loan: l, repayment: repayment, history: history}
}

func (f *settledFixture) expectUnsettle(m mocks) {
	m.repo.EXPECT().GetPayment(gomock.Any(), f.payment.ID).Return(f.payment, nil)
	m.repo.EXPECT().PaymentsOriginatedBy(gomock.Any(), f.payment.ID).Return(nil, nil)
	m.repo.EXPECT().
		TransactionsForPayment(gomock.Any(), f.payment.ID).
		Return([]*ledger.Transaction{f.repayment}, nil)
	m.loans.EXPECT().
		List(gomock.Any(), gomock.Any()).
		Return([]*loan.Loan{f.loan}, nil)
	m.repo.EXPECT().
		TransactionsForLoans(gomock.Any(), gomock.Any()).
		Return(f.history, nil)
	m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
	m.tx.EXPECT().SoftDeleteTransactionsForPayment(gomock.Any(), f.payment.ID).Return(nil)
	m.tx.EXPECT().UpdatePayment(gomock.Any(), f.payment).Return(nil)
	m.tx.EXPECT().UpdateLoan(gomock.Any(), f.loan).Return(nil)
	m.tx.EXPECT().Commit().Return(nil)
	m.tx.EXPECT().Rollback().Return(nil).AnyTimes()
}

func TestService_Undo(t *testing.T) {
	svc, m := newTestService(t)
	f := newSettledFixture()

	f.expectUnsettle(m)

	err := svc.Undo(context.Background(), f.payment.ID)
	require.NoError(t, err)

	// The payment looks like it was never settled.
	assert.Nil(t, f.payment.SettledAt)
	assert.Nil(t, f.payment.SettledBy)
	assert.Nil(t, f.payment.SettlementDate)
	assert.Nil(t, f.payment.DepositDate)
	assert.Nil(t, f.payment.ReversedAt)

	// The loan is back to its pre-settlement balances and lifecycle state.
	assert.Equal(t, int64(1000), f.loan.OutstandingPrincipal)
	assert.Equal(t, int64(50), f.loan.OutstandingInterest)
	assert.Equal(t, int64(10), f.loan.OutstandingFees)
	assert.Equal(t, loan.StatusPending, f.loan.PaymentStatus)
	assert.Nil(t, f.loan.ClosedAt)
}

func TestService_Reverse(t *testing.T) {
	svc, m := newTestService(t)
	f := newSettledFixture()

	f.expectUnsettle(m)

	err := svc.Reverse(context.Background(), f.payment.ID)
	require.NoError(t, err)

	// Reverse keeps the deposit record and stamps the reversal.
	assert.Nil(t, f.payment.SettledAt)
	require.NotNil(t, f.payment.DepositDate)
	assert.Equal(t, date(2024, 1, 15), *f.payment.DepositDate)
	require.NotNil(t, f.payment.ReversedAt)

	assert.Equal(t, int64(1000), f.loan.OutstandingPrincipal)
	assert.Equal(t, loan.StatusPending, f.loan.PaymentStatus)
}

func TestService_Undo_PartiallyPaidAfterReversal(t *testing.T) {
	svc, m := newTestService(t)
	f := newSettledFixture()

	// A second, earlier repayment from another payment stays on the books, so
	// the loan ends up partially paid rather than pending.
	other := entry(f.loan.ID, ledger.TxRepayment, 100, 0, 0, date(2024, 1, 5))
	f.history = append(f.history, other)

	f.expectUnsettle(m)

	err := svc.Undo(context.Background(), f.payment.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(900), f.loan.OutstandingPrincipal)
	assert.Equal(t, loan.StatusPartiallyPaid, f.loan.PaymentStatus)
	assert.Nil(t, f.loan.ClosedAt)
}

func TestService_Undo_CascadesToSpawnedCredit(t *testing.T) {
	svc, m := newTestService(t)
	f := newSettledFixture()

	settledAt := date(2024, 1, 15)
	credit := &ledger.Payment{
		ID:                   uuid.New(),
		CompanyID:            f.payment.CompanyID,
		Kind:                 ledger.KindCreditToUser,
		Method:               ledger.MethodInternal,
		Amount:               140,
		SettledAt:            &settledAt,
		OriginatingPaymentID: &f.payment.ID,
	}

	m.repo.EXPECT().GetPayment(gomock.Any(), f.payment.ID).Return(f.payment, nil)
	m.repo.EXPECT().
		PaymentsOriginatedBy(gomock.Any(), f.payment.ID).
		Return([]*ledger.Payment{credit}, nil)
	m.repo.EXPECT().TransactionsForPayment(gomock.Any(), credit.ID).Return(nil, nil)
	m.repo.EXPECT().
		TransactionsForPayment(gomock.Any(), f.payment.ID).
		Return([]*ledger.Transaction{f.repayment}, nil)
	m.loans.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*loan.Loan{f.loan}, nil)
	m.repo.EXPECT().TransactionsForLoans(gomock.Any(), gomock.Any()).Return(f.history, nil)
	m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
	m.tx.EXPECT().SoftDeleteTransactionsForPayment(gomock.Any(), credit.ID).Return(nil)
	m.tx.EXPECT().SoftDeleteTransactionsForPayment(gomock.Any(), f.payment.ID).Return(nil)
	m.tx.EXPECT().UpdatePayment(gomock.Any(), credit).Return(nil)
	m.tx.EXPECT().UpdatePayment(gomock.Any(), f.payment).Return(nil)
	m.tx.EXPECT().UpdateLoan(gomock.Any(), f.loan).Return(nil)
	m.tx.EXPECT().Commit().Return(nil)
	m.tx.EXPECT().Rollback().Return(nil).AnyTimes()

	err := svc.Undo(context.Background(), f.payment.ID)
	require.NoError(t, err)

	assert.Nil(t, credit.SettledAt)
	assert.Nil(t, f.payment.SettledAt)
}

func TestService_Unsettle_SpawnedCreditDirectly(t *testing.T) {
	svc, m := newTestService(t)

	// A settled credit payout must be unwound through its parent, never
	// alone: the parent would stay settled over money that is gone.
	parentID := uuid.New()
	settledAt := date(2024, 1, 15)
	credit := &ledger.Payment{
		ID:                   uuid.New(),
		Kind:                 ledger.KindCreditToUser,
		Method:               ledger.MethodInternal,
		Amount:               140,
		SettledAt:            &settledAt,
		OriginatingPaymentID: &parentID,
	}

	m.repo.EXPECT().GetPayment(gomock.Any(), credit.ID).Return(credit, nil).Times(2)

	err := svc.Undo(context.Background(), credit.ID)
	require.Error(t, err)
	assert.Equal(t, ledger.KindState, ledger.KindOf(err))
	require.NotNil(t, credit.SettledAt)

	err = svc.Reverse(context.Background(), credit.ID)
	require.Error(t, err)
	assert.Equal(t, ledger.KindState, ledger.KindOf(err))
}

func TestService_Unsettle_NotSettled(t *testing.T) {
	svc, m := newTestService(t)

	p := &ledger.Payment{ID: uuid.New(), Kind: ledger.KindRepayment}

	m.repo.EXPECT().GetPayment(gomock.Any(), p.ID).Return(p, nil).Times(2)

	err := svc.Undo(context.Background(), p.ID)
	require.Error(t, err)
	assert.Equal(t, ledger.KindState, ledger.KindOf(err))

	err = svc.Reverse(context.Background(), p.ID)
	require.Error(t, err)
	assert.Equal(t, ledger.KindState, ledger.KindOf(err))
}

func TestService_Delete(t *testing.T) {
	type testCase struct {
		name     string
		payment  func() *ledger.Payment
		wantKind ledger.ErrorKind
	}

	now := date(2024, 1, 15)

	tests := []testCase{
		{
			name: "UnsettledRepayment",
			payment: func() *ledger.Payment {
				return &ledger.Payment{ID: uuid.New(), Kind: ledger.KindRepayment}
			},
		},
		{
			name: "UnsettledAdjustment",
			payment: func() *ledger.Payment {
				return &ledger.Payment{ID: uuid.New(), Kind: ledger.KindAdjustment}
			},
		},
		{
			name: "SettledRepayment",
			payment: func() *ledger.Payment {
				return &ledger.Payment{ID: uuid.New(), Kind: ledger.KindRepayment, SettledAt: &now}
			},
			wantKind: ledger.KindState,
		},
		{
			name: "AlreadyDeleted",
			payment: func() *ledger.Payment {
				return &ledger.Payment{ID: uuid.New(), Kind: ledger.KindRepayment, DeletedAt: &now}
			},
			wantKind: ledger.KindState,
		},
		{
			name: "Reversed",
			payment: func() *ledger.Payment {
				return &ledger.Payment{ID: uuid.New(), Kind: ledger.KindRepayment, ReversedAt: &now}
			},
			wantKind: ledger.KindState,
		},
		{
			name: "Advance",
			payment: func() *ledger.Payment {
				return &ledger.Payment{ID: uuid.New(), Kind: ledger.KindAdvance}
			},
			wantKind: ledger.KindValidation,
		},
		{
			name: "SpawnedCredit",
			payment: func() *ledger.Payment {
				return &ledger.Payment{ID: uuid.New(), Kind: ledger.KindCreditToUser}
			},
			wantKind: ledger.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestService(t)

			p := tt.payment()
			m.repo.EXPECT().GetPayment(gomock.Any(), p.ID).Return(p, nil)

			if tt.wantKind == "" {
				m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
				m.tx.EXPECT().SoftDeleteTransactionsForPayment(gomock.Any(), p.ID).Return(nil)
				m.tx.EXPECT().SoftDeletePayment(gomock.Any(), p.ID).Return(nil)
				m.tx.EXPECT().Commit().Return(nil)
				m.tx.EXPECT().Rollback().Return(nil).AnyTimes()
			}

			err := svc.Delete(context.Background(), p.ID)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, ledger.KindOf(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestService_Delete_SettledFeeCascades(t *testing.T) {
	svc, m := newTestService(t)

	companyID := uuid.New()
	settledAt := date(2024, 1, 15)
	effectiveDate := date(2024, 1, 10)

	l := &loan.Loan{
		ID:                   uuid.New(),
		CompanyID:            companyID,
		Principal:            1000,
		OutstandingPrincipal: 1000,
		OutstandingFees:      25,
		PaymentStatus:        loan.StatusPending,
	}

	fee := &ledger.Payment{
		ID:             uuid.New(),
		CompanyID:      companyID,
		Kind:           ledger.KindFee,
		Method:         ledger.MethodInternal,
		Amount:         25,
		PaymentDate:    &effectiveDate,
		SettlementDate: &effectiveDate,
		SettledAt:      &settledAt,
		LoanIDs:        []uuid.UUID{l.ID},
	}

	assessment := entry(l.ID, ledger.TxFeeAssessment, 0, 0, 25, effectiveDate)
	assessment.PaymentID = fee.ID

	history := []*ledger.Transaction{
		entry(l.ID, ledger.TxAdvance, 1000, 0, 0, date(2023, 12, 1)),
		assessment,
	}

	m.repo.EXPECT().GetPayment(gomock.Any(), fee.ID).Return(fee, nil)
	m.repo.EXPECT().PaymentsOriginatedBy(gomock.Any(), fee.ID).Return(nil, nil)
	m.repo.EXPECT().
		TransactionsForPayment(gomock.Any(), fee.ID).
		Return([]*ledger.Transaction{assessment}, nil)
	m.loans.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*loan.Loan{l}, nil)
	m.repo.EXPECT().TransactionsForLoans(gomock.Any(), gomock.Any()).Return(history, nil)
	m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
	m.tx.EXPECT().SoftDeleteTransactionsForPayment(gomock.Any(), fee.ID).Return(nil).Times(2)
	m.tx.EXPECT().UpdatePayment(gomock.Any(), fee).Return(nil)
	m.tx.EXPECT().UpdateLoan(gomock.Any(), l).Return(nil)
	m.tx.EXPECT().SoftDeletePayment(gomock.Any(), fee.ID).Return(nil)
	m.tx.EXPECT().Commit().Return(nil)
	m.tx.EXPECT().Rollback().Return(nil).AnyTimes()

	err := svc.Delete(context.Background(), fee.ID)
	require.NoError(t, err)

	// The assessment is gone from the loan's balance.
	assert.Equal(t, int64(0), l.OutstandingFees)
	assert.Equal(t, int64(1000), l.OutstandingPrincipal)
}

func TestService_CreateFee(t *testing.T) {
	companyID := uuid.New()

	openLoan := func() *loan.Loan {
		return &loan.Loan{
			ID:                   uuid.New(),
			CompanyID:            companyID,
			Principal:            1000,
			OutstandingPrincipal: 1000,
			PaymentStatus:        loan.StatusPending,
		}
	}

	t.Run("Success", func(t *testing.T) {
		svc, m := newTestService(t)
		l := openLoan()

		m.loans.EXPECT().
			List(gomock.Any(), loan.ListFilter{IDs: []uuid.UUID{l.ID}}).
			Return([]*loan.Loan{l}, nil)
		m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
		m.tx.EXPECT().
			CreatePayment(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *ledger.Payment) error {
				p.ID = uuid.New()
				return nil
			})

		var assessment *ledger.Transaction

		m.tx.EXPECT().
			CreateTransaction(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entry *ledger.Transaction) error {
				assessment = entry
				return nil
			})
		m.tx.EXPECT().UpdateLoan(gomock.Any(), l).Return(nil)
		m.tx.EXPECT().Commit().Return(nil)
		m.tx.EXPECT().Rollback().Return(nil).AnyTimes()

		p, err := svc.CreateFee(context.Background(), settlement.FeeParams{
			CompanyID:     companyID,
			LoanID:        l.ID,
			Amount:        25,
			EffectiveDate: date(2024, 1, 10),
		})
		require.NoError(t, err)

		assert.Equal(t, ledger.KindFee, p.Kind)
		assert.True(t, p.Settled())
		assert.Equal(t, int64(25), l.OutstandingFees)

		require.NotNil(t, assessment)
		assert.Equal(t, ledger.TxFeeAssessment, assessment.Kind)
		assert.Equal(t, int64(25), assessment.ToFees)
		require.NoError(t, assessment.Validate())
	})

	t.Run("LoanNotFound", func(t *testing.T) {
		svc, m := newTestService(t)

		m.loans.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := svc.CreateFee(context.Background(), settlement.FeeParams{
			CompanyID:     companyID,
			LoanID:        uuid.New(),
			Amount:        25,
			EffectiveDate: date(2024, 1, 10),
		})
		require.Error(t, err)
		assert.Equal(t, ledger.KindNotFound, ledger.KindOf(err))
	})

	t.Run("WrongCompany", func(t *testing.T) {
		svc, m := newTestService(t)
		l := openLoan()

		m.loans.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*loan.Loan{l}, nil)

		_, err := svc.CreateFee(context.Background(), settlement.FeeParams{
			CompanyID:     uuid.New(),
			LoanID:        l.ID,
			Amount:        25,
			EffectiveDate: date(2024, 1, 10),
		})
		require.Error(t, err)
		assert.Equal(t, ledger.KindValidation, ledger.KindOf(err))
	})

	t.Run("ClosedLoan", func(t *testing.T) {
		svc, m := newTestService(t)

		closedAt := date(2024, 1, 5)
		l := openLoan()
		l.PaymentStatus = loan.StatusClosed
		l.ClosedAt = &closedAt

		m.loans.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*loan.Loan{l}, nil)

		_, err := svc.CreateFee(context.Background(), settlement.FeeParams{
			CompanyID:     companyID,
			LoanID:        l.ID,
			Amount:        25,
			EffectiveDate: date(2024, 1, 10),
		})
		require.Error(t, err)
		assert.Equal(t, ledger.KindState, ledger.KindOf(err))
	})

	t.Run("NonPositiveAmount", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.CreateFee(context.Background(), settlement.FeeParams{
			CompanyID:     companyID,
			LoanID:        uuid.New(),
			EffectiveDate: date(2024, 1, 10),
		})
		require.Error(t, err)
		assert.Equal(t, ledger.KindValidation, ledger.KindOf(err))
	})
}
