package settlement

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lendwell/ledger/internal/ledger"
	"github.com/lendwell/ledger/internal/loan"
)

// reversalMode distinguishes a full undo (deposit date cleared) from a
// reverse (deposit date preserved, reversed_at stamped).
type reversalMode struct {
	clearDeposit  bool
	stampReversed bool
}

// Reverse unwinds a settled payment but keeps the record that money was
// deposited: deposit_date survives and reversed_at is stamped.
func (s *Service) Reverse(ctx context.Context, paymentID uuid.UUID) error {
	return s.unsettle(ctx, paymentID, reversalMode{stampReversed: true})
}

// Undo fully unsettles a payment as if the settlement never happened,
// clearing the deposit date as well.
func (s *Service) Undo(ctx context.Context, paymentID uuid.UUID) error {
	return s.unsettle(ctx, paymentID, reversalMode{clearDeposit: true})
}

func (s *Service) unsettle(ctx context.Context, paymentID uuid.UUID, mode reversalMode) error {
	p, err := s.repo.GetPayment(ctx, paymentID)
	if err != nil {
		return err
	}

	if p.DeletedAt != nil {
		return ledger.Statef("payment %s is deleted", p.ID)
	}

	if !p.Settled() {
		return ledger.Statef("payment %s is not settled", p.ID)
	}

	// Chained payments settle and unsettle with their parent; unwinding a
	// child alone would leave the parent conserving money that is gone.
	if p.OriginatingPaymentID != nil {
		return ledger.Statef("payment %s was originated by payment %s; unsettle the originating payment",
			p.ID, *p.OriginatingPaymentID)
	}

	plan, err := s.planReversal(ctx, p, mode)
	if err != nil {
		return err
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := applyReversal(ctx, tx, plan); err != nil {
		return err
	}

	return tx.Commit()
}

// reversalPlan is the fully computed outcome of an unsettle: payments with
// their settlement fields already cleared and loans with their balances
// recomputed. applyReversal only writes it.
type reversalPlan struct {
	payments []*ledger.Payment
	loans    []*loan.Loan
}

// planReversal clears the payment set (the payment plus every payment it
// originated, e.g. a spawned credit payout) and recomputes each affected
// loan's balances by replaying its remaining transaction history. Balances
// are recomputed, not restored by reversing deltas.
func (s *Service) planReversal(ctx context.Context, p *ledger.Payment, mode reversalMode) (*reversalPlan, error) {
	children, err := s.repo.PaymentsOriginatedBy(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	// Chained payments are one level deep: a repayment may spawn a credit
	// payout, nothing spawns from the payout itself.
	set := append(children, p)

	now := time.Now().UTC()
	unsettled := make(map[uuid.UUID]bool, len(set))
	affected := make(map[uuid.UUID]bool)

	for _, pay := range set {
		if pay.DeletedAt != nil {
			continue
		}

		unsettled[pay.ID] = true

		txs, err := s.repo.TransactionsForPayment(ctx, pay.ID)
		if err != nil {
			return nil, err
		}

		for _, t := range txs {
			if t.DeletedAt == nil && t.LoanID != nil {
				affected[*t.LoanID] = true
			}
		}

		pay.SettledAt = nil
		pay.SettledBy = nil
		pay.SettlementDate = nil

		if mode.clearDeposit {
			pay.DepositDate = nil
		}

		if mode.stampReversed {
			pay.ReversedAt = &now
		}
	}

	plan := &reversalPlan{payments: set}

	if len(affected) == 0 {
		return plan, nil
	}

	loanIDs := make([]uuid.UUID, 0, len(affected))
	for id := range affected {
		loanIDs = append(loanIDs, id)
	}

	loans, err := s.loans.List(ctx, loan.ListFilter{IDs: loanIDs})
	if err != nil {
		return nil, err
	}

	if len(loans) != len(loanIDs) {
		return nil, ledger.NotFoundf("%d of %d loans affected by payment %s not found",
			len(loanIDs)-len(loans), len(loanIDs), p.ID)
	}

	history, err := s.repo.TransactionsForLoans(ctx, loanIDs)
	if err != nil {
		return nil, err
	}

	// The soft deletes happen inside the same database transaction as the
	// loan updates, so filter the unsettled payments' entries here instead
	// of re-reading.
	remaining := make([]*ledger.Transaction, 0, len(history))

	for _, t := range history {
		if !unsettled[t.PaymentID] {
			remaining = append(remaining, t)
		}
	}

	for _, l := range loans {
		if err := s.recomputeLoan(l, remaining, now); err != nil {
			return nil, err
		}
	}

	plan.loans = loans

	return plan, nil
}

// recomputeLoan projects the loan's balances over its remaining history and
// rederives its lifecycle state: closed when nothing is outstanding,
// partially paid when repayments remain on the books, pending otherwise.
func (s *Service) recomputeLoan(l *loan.Loan, remaining []*ledger.Transaction, now time.Time) error {
	bal, err := s.projector.LoanBalance(l, remaining, time.Time{}, true)
	if err != nil {
		return err
	}

	l.OutstandingPrincipal = bal.Principal
	l.OutstandingInterest = bal.Interest
	l.OutstandingFees = bal.Fees

	if bal.Settled() {
		if l.ClosedAt == nil {
			l.ClosedAt = &now
		}

		l.PaymentStatus = loan.StatusClosed

		return nil
	}

	l.ClosedAt = nil

	if hasRepayment(l.ID, remaining) {
		l.PaymentStatus = loan.StatusPartiallyPaid
	} else {
		l.PaymentStatus = loan.StatusPending
	}

	return nil
}

func hasRepayment(loanID uuid.UUID, txs []*ledger.Transaction) bool {
	for _, t := range txs {
		if t.DeletedAt != nil || t.Kind != ledger.TxRepayment {
			continue
		}

		if t.LoanID != nil && *t.LoanID == loanID && t.Amount > 0 {
			return true
		}
	}

	return false
}

func applyReversal(ctx context.Context, tx Tx, plan *reversalPlan) error {
	for _, pay := range plan.payments {
		if err := tx.SoftDeleteTransactionsForPayment(ctx, pay.ID); err != nil {
			return err
		}

		if err := tx.UpdatePayment(ctx, pay); err != nil {
			return err
		}
	}

	for _, l := range plan.loans {
		if err := tx.UpdateLoan(ctx, l); err != nil {
			return err
		}
	}

	return nil
}

// deletableKinds are the payment kinds a back-office operator may delete
// directly. Spawned credit payouts go away with their parent's reversal.
var deletableKinds = map[ledger.PaymentKind]bool{
	ledger.KindRepayment:  true,
	ledger.KindFee:        true,
	ledger.KindAdjustment: true,
}

// Delete soft-deletes a payment and its transactions. Settled payments must
// be unsettled first, except fees, which are auto-settled at creation and
// get an unsettle cascade as part of the delete.
func (s *Service) Delete(ctx context.Context, paymentID uuid.UUID) error {
	p, err := s.repo.GetPayment(ctx, paymentID)
	if err != nil {
		return err
	}

	if p.DeletedAt != nil {
		return ledger.Statef("payment %s is already deleted", p.ID)
	}

	if p.ReversedAt != nil {
		return ledger.Statef("payment %s is reversed", p.ID)
	}

	if !deletableKinds[p.Kind] {
		return ledger.Validationf("payment %s has kind %s, which cannot be deleted", p.ID, p.Kind)
	}

	var plan *reversalPlan

	if p.Settled() {
		if p.Kind != ledger.KindFee {
			return ledger.Statef("payment %s is settled; unsettle it before deleting", p.ID)
		}

		if plan, err = s.planReversal(ctx, p, reversalMode{clearDeposit: true}); err != nil {
			return err
		}
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if plan != nil {
		if err := applyReversal(ctx, tx, plan); err != nil {
			return err
		}
	}

	if err := tx.SoftDeleteTransactionsForPayment(ctx, p.ID); err != nil {
		return err
	}

	if err := tx.SoftDeletePayment(ctx, p.ID); err != nil {
		return err
	}

	return tx.Commit()
}
