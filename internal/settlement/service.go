// Package settlement turns planned repayment allocations into persisted
// ledger state and safely reverses them. Every mutating operation runs
// inside one database transaction; a failure anywhere rolls back the call.
package settlement

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lendwell/ledger/internal/allocation"
	"github.com/lendwell/ledger/internal/contract"
	"github.com/lendwell/ledger/internal/ledger"
	"github.com/lendwell/ledger/internal/loan"
	"github.com/lendwell/ledger/internal/projection"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=settlement
type Repository interface {
	GetPayment(ctx context.Context, id uuid.UUID) (*ledger.Payment, error)
	PaymentsOriginatedBy(ctx context.Context, id uuid.UUID) ([]*ledger.Payment, error)
	CreatePayment(ctx context.Context, p *ledger.Payment) error
	UpdatePayment(ctx context.Context, p *ledger.Payment) error

	TransactionsForLoans(ctx context.Context, loanIDs []uuid.UUID) ([]*ledger.Transaction, error)
	TransactionsForPayment(ctx context.Context, paymentID uuid.UUID) ([]*ledger.Transaction, error)

	Begin(ctx context.Context) (Tx, error)
}

// Tx is the atomic unit every settlement mutation runs in. Implementations
// map it onto a database transaction.
type Tx interface {
	CreateTransaction(ctx context.Context, t *ledger.Transaction) error
	CreatePayment(ctx context.Context, p *ledger.Payment) error
	UpdatePayment(ctx context.Context, p *ledger.Payment) error
	UpdateLoan(ctx context.Context, l *loan.Loan) error
	SoftDeleteTransactionsForPayment(ctx context.Context, paymentID uuid.UUID) error
	SoftDeletePayment(ctx context.Context, paymentID uuid.UUID) error

	Commit() error
	Rollback() error
}

// LoanProvider is the loan store surface the engine needs. Satisfied by
// *loan.Service.
type LoanProvider interface {
	Candidates(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]*loan.Loan, error)
	List(ctx context.Context, filter loan.ListFilter) ([]*loan.Loan, error)
}

// ContractProvider resolves the contract effective for a company on a date.
// Satisfied by *contract.Resolver.
type ContractProvider interface {
	Resolve(ctx context.Context, companyID uuid.UUID, date time.Time) (contract.Contract, error)
}

type Service struct {
	repo      Repository
	loans     LoanProvider
	contracts ContractProvider
	projector projection.Projector
}

func NewService(repo Repository, loans LoanProvider, contracts ContractProvider, projector projection.Projector) *Service {
	return &Service{
		repo:      repo,
		loans:     loans,
		contracts: contracts,
		projector: projector,
	}
}

// Preview plans a repayment without persisting anything. The returned effect
// is exactly what Settle would commit for the same inputs.
func (s *Service) Preview(ctx context.Context, companyID uuid.UUID, strategy allocation.Strategy, settlementDate time.Time, loanIDs []uuid.UUID) (*allocation.Effect, error) {
	c, err := s.contracts.Resolve(ctx, companyID, settlementDate)
	if err != nil {
		return nil, err
	}

	selected, err := s.loans.Candidates(ctx, companyID, loanIDs)
	if err != nil {
		return nil, err
	}

	plan, _, err := s.plan(ctx, c, selected, strategy, settlementDate)

	return plan, err
}

// plan builds the allocation input for the selected loans and runs the
// planner. It also returns the transactions it read so Settle can reuse the
// same snapshot for its staleness check.
func (s *Service) plan(ctx context.Context, c contract.Contract, selected []*loan.Loan, strategy allocation.Strategy, settlementDate time.Time) (*allocation.Effect, []*ledger.Transaction, error) {
	companyID := c.CompanyID()

	all, err := s.loans.Candidates(ctx, companyID, nil)
	if err != nil {
		return nil, nil, err
	}

	selectedIDs := make(map[uuid.UUID]bool, len(selected))
	for _, l := range selected {
		selectedIDs[l.ID] = true
	}

	var unselected []*loan.Loan

	for _, l := range all {
		if !selectedIDs[l.ID] && l.PastDue(settlementDate) {
			unselected = append(unselected, l)
		}
	}

	ids := make([]uuid.UUID, 0, len(selected)+len(unselected))
	for _, l := range append(append([]*loan.Loan{}, selected...), unselected...) {
		ids = append(ids, l.ID)
	}

	txs, err := s.repo.TransactionsForLoans(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	in := allocation.Input{
		Strategy:       strategy,
		SettlementDate: settlementDate,
		FeeMultiplier:  c.FeeMultiplier,
	}

	if in.Candidates, err = s.candidates(selected, txs, settlementDate); err != nil {
		return nil, nil, err
	}

	if in.PastDueUnselected, err = s.candidates(unselected, txs, settlementDate); err != nil {
		return nil, nil, err
	}

	plan, err := allocation.Plan(in)
	if err != nil {
		return nil, nil, err
	}

	return plan, txs, nil
}

func (s *Service) candidates(loans []*loan.Loan, txs []*ledger.Transaction, reportDate time.Time) ([]allocation.Candidate, error) {
	out := make([]allocation.Candidate, 0, len(loans))

	for _, l := range loans {
		before, err := s.projector.LoanBalance(l, txs, reportDate, false)
		if err != nil {
			return nil, err
		}

		out = append(out, allocation.Candidate{Loan: l, Before: before})
	}

	return out, nil
}

type CreateParams struct {
	CompanyID uuid.UUID
	Amount    int64
	Method    ledger.PaymentMethod

	RequestedPaymentDate *time.Time
	PaymentDate          *time.Time

	LoanIDs []uuid.UUID

	// Revolving repayments split the amount into independent budgets.
	PrincipalBudget *int64
	InterestBudget  *int64
}

// Create records a repayment payment. Nothing touches loan balances until
// the payment is settled.
func (s *Service) Create(ctx context.Context, params CreateParams) (*ledger.Payment, error) {
	if params.Amount <= 0 {
		return nil, ledger.Validationf("payment amount must be positive, got %d", params.Amount)
	}

	if params.Method == "" {
		return nil, ledger.Validationf("payment method is required")
	}

	if params.PrincipalBudget != nil || params.InterestBudget != nil {
		principal, interest := budgetValue(params.PrincipalBudget), budgetValue(params.InterestBudget)
		if principal < 0 || interest < 0 {
			return nil, ledger.Validationf("payment budgets must be non-negative, got principal=%d interest=%d", principal, interest)
		}

		if principal+interest != params.Amount {
			return nil, ledger.Validationf("payment budgets sum to %d, amount is %d", principal+interest, params.Amount)
		}
	}

	p := &ledger.Payment{
		CompanyID:            params.CompanyID,
		Kind:                 ledger.KindRepayment,
		Method:               params.Method,
		RequestedAmount:      params.Amount,
		Amount:               params.Amount,
		RequestedPaymentDate: params.RequestedPaymentDate,
		PaymentDate:          params.PaymentDate,
		LoanIDs:              params.LoanIDs,
		PrincipalBudget:      params.PrincipalBudget,
		InterestBudget:       params.InterestBudget,
	}

	if err := s.repo.CreatePayment(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// Schedule stamps the date the payment is expected to be drawn.
func (s *Service) Schedule(ctx context.Context, paymentID uuid.UUID, paymentDate time.Time) (*ledger.Payment, error) {
	p, err := s.repo.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if p.DeletedAt != nil {
		return nil, ledger.Statef("payment %s is deleted", p.ID)
	}

	if p.Settled() {
		return nil, ledger.Statef("payment %s is already settled", p.ID)
	}

	if p.Kind != ledger.KindRepayment {
		return nil, ledger.Validationf("payment %s has kind %s, only repayments can be scheduled", p.ID, p.Kind)
	}

	if paymentDate.IsZero() {
		return nil, ledger.Validationf("payment date is required")
	}

	p.PaymentDate = &paymentDate
	if p.RequestedPaymentDate == nil {
		p.RequestedPaymentDate = &paymentDate
	}

	if err := s.repo.UpdatePayment(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

type SettleParams struct {
	PaymentID      uuid.UUID
	DepositDate    time.Time
	SettlementDate time.Time
	SettledBy      uuid.UUID
}

// Settle converts the payment's planned allocation into persisted
// transactions and updated loan balances, atomically. The allocation is
// applied against the planner's before-balance snapshot, not a re-read at
// commit time, so the whole batch settles against one consistent view.
func (s *Service) Settle(ctx context.Context, params SettleParams) (*ledger.Payment, error) {
	p, err := s.repo.GetPayment(ctx, params.PaymentID)
	if err != nil {
		return nil, err
	}

	if err := s.checkSettleable(p, params); err != nil {
		return nil, err
	}

	c, err := s.contracts.Resolve(ctx, p.CompanyID, params.SettlementDate)
	if err != nil {
		return nil, err
	}

	selected, err := s.loans.Candidates(ctx, p.CompanyID, p.LoanIDs)
	if err != nil {
		return nil, err
	}

	plan, txs, err := s.plan(ctx, c, selected, settleStrategy(p), params.SettlementDate)
	if err != nil {
		return nil, err
	}

	if err := checkSettlementOrdering(txs, selected, params.SettlementDate); err != nil {
		return nil, err
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	if err := s.applyPlan(ctx, tx, p, plan, params, now); err != nil {
		return nil, err
	}

	p.SettledAt = &now
	p.SettledBy = &params.SettledBy
	p.DepositDate = &params.DepositDate
	p.SettlementDate = &params.SettlementDate
	p.Amount = plan.Amount() + plan.CreditToUser

	if err := tx.UpdatePayment(ctx, p); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) checkSettleable(p *ledger.Payment, params SettleParams) error {
	if p.DeletedAt != nil {
		return ledger.Statef("payment %s is deleted", p.ID)
	}

	if p.Settled() {
		return ledger.Statef("payment %s is already settled", p.ID)
	}

	if p.Kind != ledger.KindRepayment {
		return ledger.Validationf("payment %s has kind %s, only repayments can be settled", p.ID, p.Kind)
	}

	if p.PaymentDate == nil {
		return ledger.Validationf("payment %s has no payment date", p.ID)
	}

	if params.SettlementDate.IsZero() {
		return ledger.Validationf("settlement date is required")
	}

	if params.DepositDate.Before(*p.PaymentDate) {
		return ledger.Validationf("deposit date %s is before payment date %s",
			params.DepositDate.Format(time.DateOnly), p.PaymentDate.Format(time.DateOnly))
	}

	return nil
}

// settleStrategy derives the allocation strategy from the payment itself:
// revolving budgets when present, otherwise the payment amount.
func settleStrategy(p *ledger.Payment) allocation.Strategy {
	if p.PrincipalBudget != nil || p.InterestBudget != nil {
		return allocation.RevolvingBudgets(budgetValue(p.PrincipalBudget), budgetValue(p.InterestBudget))
	}

	return allocation.CustomAmount(p.Amount)
}

// checkSettlementOrdering rejects a settlement dated before any transaction
// already recorded against the affected loans. Later entries assumed a state
// this settlement would silently invalidate. Unselected past-due loans are in
// the snapshot for reporting only; their histories don't gate the settlement.
func checkSettlementOrdering(txs []*ledger.Transaction, selected []*loan.Loan, settlementDate time.Time) error {
	affected := make(map[uuid.UUID]bool, len(selected))
	for _, l := range selected {
		affected[l.ID] = true
	}

	for _, t := range txs {
		if t.DeletedAt != nil || t.LoanID == nil || !affected[*t.LoanID] {
			continue
		}

		if t.EffectiveDate.After(settlementDate) {
			return ledger.Invariantf("settlement date %s is earlier than transaction %s effective %s",
				settlementDate.Format(time.DateOnly), t.ID, t.EffectiveDate.Format(time.DateOnly))
		}
	}

	return nil
}

// applyPlan persists one transaction per planned split, applies the splits
// to the loans' balance snapshots, and spawns the credit-to-user payout when
// the plan leaves a remainder.
func (s *Service) applyPlan(ctx context.Context, tx Tx, p *ledger.Payment, plan *allocation.Effect, params SettleParams, now time.Time) error {
	for _, alloc := range plan.Allocations {
		loanID := alloc.Loan.ID

		entry := &ledger.Transaction{
			Kind:          ledger.TxRepayment,
			Amount:        alloc.Split.Amount(),
			ToPrincipal:   alloc.Split.ToPrincipal,
			ToInterest:    alloc.Split.ToInterest,
			ToFees:        alloc.Split.ToFees,
			LoanID:        &loanID,
			PaymentID:     p.ID,
			EffectiveDate: params.SettlementDate,
		}

		if err := entry.Validate(); err != nil {
			return err
		}

		if err := tx.CreateTransaction(ctx, entry); err != nil {
			return err
		}

		if alloc.Split.Amount() == 0 {
			continue
		}

		if err := applyToLoan(ctx, tx, alloc, now); err != nil {
			return err
		}
	}

	if plan.CreditToUser > 0 {
		if err := s.spawnCredit(ctx, tx, p, plan.CreditToUser, params, now); err != nil {
			return err
		}
	}

	return nil
}

func applyToLoan(ctx context.Context, tx Tx, alloc allocation.LoanAllocation, now time.Time) error {
	after := alloc.After
	if after.Principal < 0 || after.Interest < 0 || after.Fees < 0 {
		return ledger.Invariantf("loan %s: allocation overdraws balance by principal=%d interest=%d fees=%d",
			alloc.Loan.ID, -min(after.Principal, 0), -min(after.Interest, 0), -min(after.Fees, 0))
	}

	l := alloc.Loan
	l.OutstandingPrincipal = after.Principal
	l.OutstandingInterest = after.Interest
	l.OutstandingFees = after.Fees

	if after.Settled() {
		l.ClosedAt = &now
		l.PaymentStatus = loan.StatusClosed
	} else {
		l.PaymentStatus = loan.StatusPartiallyPaid
	}

	return tx.UpdateLoan(ctx, l)
}

// spawnCredit creates and settles the linked credit-to-user payout for the
// unallocated remainder of a repayment.
func (s *Service) spawnCredit(ctx context.Context, tx Tx, parent *ledger.Payment, amount int64, params SettleParams, now time.Time) error {
	credit := &ledger.Payment{
		CompanyID:            parent.CompanyID,
		Kind:                 ledger.KindCreditToUser,
		Method:               ledger.MethodInternal,
		RequestedAmount:      amount,
		Amount:               amount,
		PaymentDate:          &params.SettlementDate,
		DepositDate:          &params.DepositDate,
		SettlementDate:       &params.SettlementDate,
		SettledAt:            &now,
		SettledBy:            &params.SettledBy,
		OriginatingPaymentID: &parent.ID,
	}

	if err := tx.CreatePayment(ctx, credit); err != nil {
		return err
	}

	entry := &ledger.Transaction{
		Kind:          ledger.TxCreditToUser,
		Amount:        amount,
		ToPrincipal:   amount,
		PaymentID:     credit.ID,
		EffectiveDate: params.SettlementDate,
	}

	return tx.CreateTransaction(ctx, entry)
}

func budgetValue(b *int64) int64 {
	if b == nil {
		return 0
	}

	return *b
}
