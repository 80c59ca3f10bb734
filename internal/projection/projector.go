// Package projection computes a loan's outstanding balances from its
// transaction history. The settlement engine treats the projector as an
// external collaborator; ReplayProjector is the reference implementation.
package projection

import (
	"errors"
	"time"

	"github.com/lendwell/ledger/internal/ledger"
	"github.com/lendwell/ledger/internal/loan"
)

// Balance is an outstanding principal/interest/fees snapshot in cents.
type Balance struct {
	Principal int64
	Interest  int64
	Fees      int64
}

// Total is the snapshot's combined obligation.
func (b Balance) Total() int64 { return b.Principal + b.Interest + b.Fees }

// Settled reports whether every component is paid down.
func (b Balance) Settled() bool { return b.Principal <= 0 && b.Interest <= 0 && b.Fees <= 0 }

// Sub returns the balance after applying a repayment split.
func (b Balance) Sub(principal, interest, fees int64) Balance {
	return Balance{
		Principal: b.Principal - principal,
		Interest:  b.Interest - interest,
		Fees:      b.Fees - fees,
	}
}

// Projector computes a loan's outstanding balances as of a report date.
type Projector interface {
	LoanBalance(l *loan.Loan, txs []*ledger.Transaction, reportDate time.Time, includeFuture bool) (Balance, error)
}

// ReplayProjector derives balances by replaying the loan's non-deleted
// transactions. Accrual-side kinds add their components, repayment-side
// kinds subtract them.
type ReplayProjector struct{}

func NewReplayProjector() *ReplayProjector { return &ReplayProjector{} }

func (ReplayProjector) LoanBalance(l *loan.Loan, txs []*ledger.Transaction, reportDate time.Time, includeFuture bool) (Balance, error) {
	var b Balance

	var errs []error

	for _, tx := range txs {
		if tx.DeletedAt != nil {
			continue
		}

		if tx.LoanID == nil || *tx.LoanID != l.ID {
			continue
		}

		if !includeFuture && tx.EffectiveDate.After(reportDate) {
			continue
		}

		if err := tx.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}

		sign, err := transactionSign(tx.Kind)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		b.Principal += sign * tx.ToPrincipal
		b.Interest += sign * tx.ToInterest
		b.Fees += sign * tx.ToFees
	}

	if len(errs) > 0 {
		return Balance{}, errors.Join(errs...)
	}

	return b, nil
}

func transactionSign(kind ledger.TransactionKind) (int64, error) {
	switch kind {
	case ledger.TxAdvance, ledger.TxInterestAccrual, ledger.TxFeeAssessment, ledger.TxAdjustment:
		return 1, nil
	case ledger.TxRepayment, ledger.TxCreditToUser:
		return -1, nil
	default:
		return 0, ledger.Invariantf("unknown transaction kind %q", kind)
	}
}
