// Package allocation plans how a repayment is spread across a company's
// outstanding loans. Planning is pure: it reads before-balance snapshots and
// produces the exact per-loan splits the settlement engine will persist.
package allocation

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lendwell/ledger/internal/ledger"
	"github.com/lendwell/ledger/internal/loan"
	"github.com/lendwell/ledger/internal/projection"
)

// StrategyKind selects how much of each loan's balance a repayment targets.
type StrategyKind string

const (
	StrategyPayInFull     StrategyKind = "pay_in_full"
	StrategyPayMinimumDue StrategyKind = "pay_minimum_due"
	StrategyCustomAmount  StrategyKind = "custom_amount"
)

// Strategy carries the strategy kind and its parameters. For revolving
// (line of credit) repayments the amount is replaced by independent
// principal and interest budgets.
type Strategy struct {
	Kind   StrategyKind
	Amount int64

	PrincipalBudget *int64
	InterestBudget  *int64
}

func PayInFull() Strategy     { return Strategy{Kind: StrategyPayInFull} }
func PayMinimumDue() Strategy { return Strategy{Kind: StrategyPayMinimumDue} }

func CustomAmount(amount int64) Strategy {
	return Strategy{Kind: StrategyCustomAmount, Amount: amount}
}

// RevolvingBudgets is the line-of-credit form of CustomAmount: the two
// budgets are consumed independently across the same loan ordering.
func RevolvingBudgets(principal, interest int64) Strategy {
	return Strategy{
		Kind:            StrategyCustomAmount,
		Amount:          principal + interest,
		PrincipalBudget: &principal,
		InterestBudget:  &interest,
	}
}

func (s Strategy) revolving() bool {
	return s.PrincipalBudget != nil || s.InterestBudget != nil
}

// Candidate pairs a loan with its balance snapshot as of the report date.
type Candidate struct {
	Loan   *loan.Loan
	Before projection.Balance
}

// Split is the portion of a payment applied to one loan, broken down by the
// waterfall components.
type Split struct {
	ToInterest  int64
	ToFees      int64
	ToPrincipal int64
}

// Amount is the split's total.
func (s Split) Amount() int64 { return s.ToInterest + s.ToFees + s.ToPrincipal }

// LoanAllocation is one loan's share of the plan: the balance it started
// with, the split applied, and the balance it ends with.
type LoanAllocation struct {
	Loan   *loan.Loan
	Before projection.Balance
	Split  Split
	After  projection.Balance
}

// PastDueEntry annotates a past-due loan that was not selected for the
// repayment. Informational only; its balances are untouched.
type PastDueEntry struct {
	Loan              *loan.Loan
	Before            projection.Balance
	DaysPastDue       int
	LateFeeMultiplier decimal.Decimal
}

// Input is everything the planner needs: the strategy, the settlement date,
// the selected candidates, and optionally the unselected past-due loans plus
// the contract's fee-multiplier rule for annotating them.
type Input struct {
	Strategy       Strategy
	SettlementDate time.Time

	Candidates        []Candidate
	PastDueUnselected []Candidate

	FeeMultiplier func(daysPastDue int) decimal.Decimal
}

// Effect is the planned repayment: per-loan allocations in application
// order, the aggregate payable components, and any remainder owed back to
// the company as credit.
type Effect struct {
	Allocations []LoanAllocation

	PayableInterest  int64
	PayableFees      int64
	PayablePrincipal int64

	CreditToUser int64

	PastDue []PastDueEntry
}

// Amount is the total the plan applies to loans, excluding credit to user.
func (e *Effect) Amount() int64 {
	return e.PayableInterest + e.PayableFees + e.PayablePrincipal
}

// Plan computes a repayment effect. Loans are served in ascending
// (adjusted maturity, origination, created-at) order; within each loan the
// waterfall is interest, then fees, then principal. Plan never mutates its
// input loans.
func Plan(in Input) (*Effect, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	ordered := slices.Clone(in.Candidates)
	sortCandidates(ordered)

	effect := &Effect{}

	switch {
	case in.Strategy.Kind == StrategyPayInFull:
		for _, c := range ordered {
			effect.add(c, fullSplit(c.Before))
		}
	case in.Strategy.Kind == StrategyPayMinimumDue:
		for _, c := range ordered {
			if c.Loan.PastDue(in.SettlementDate) {
				effect.add(c, fullSplit(c.Before))
			} else {
				effect.add(c, Split{})
			}
		}
	case in.Strategy.revolving():
		planRevolving(effect, ordered, in.Strategy)
	default:
		planCustom(effect, ordered, in.Strategy.Amount)
	}

	annotatePastDue(effect, in)

	return effect, nil
}

func validate(in Input) error {
	switch in.Strategy.Kind {
	case StrategyPayInFull, StrategyPayMinimumDue:
	case StrategyCustomAmount:
		if in.Strategy.revolving() {
			if principal, interest := budget(in.Strategy.PrincipalBudget), budget(in.Strategy.InterestBudget); principal < 0 || interest < 0 || principal+interest <= 0 {
				return ledger.Validationf("revolving budgets must be non-negative and sum to a positive amount, got principal=%d interest=%d", principal, interest)
			}
		} else if in.Strategy.Amount <= 0 {
			return ledger.Validationf("custom amount must be positive, got %d", in.Strategy.Amount)
		}
	default:
		return ledger.Validationf("unknown allocation strategy %q", in.Strategy.Kind)
	}

	if in.SettlementDate.IsZero() {
		return ledger.Validationf("settlement date is required")
	}

	return nil
}

func sortCandidates(cs []Candidate) {
	slices.SortStableFunc(cs, func(a, b Candidate) int {
		if c := a.Loan.AdjustedMaturityDate.Compare(b.Loan.AdjustedMaturityDate); c != 0 {
			return c
		}

		if c := a.Loan.OriginationDate.Compare(b.Loan.OriginationDate); c != 0 {
			return c
		}

		return a.Loan.CreatedAt.Compare(b.Loan.CreatedAt)
	})
}

func fullSplit(before projection.Balance) Split {
	return Split{
		ToInterest:  max(before.Interest, 0),
		ToFees:      max(before.Fees, 0),
		ToPrincipal: max(before.Principal, 0),
	}
}

// planCustom consumes one amount loan-by-loan through the waterfall; any
// remainder after every loan is exhausted becomes credit to the company.
func planCustom(effect *Effect, ordered []Candidate, amount int64) {
	remaining := amount

	for _, c := range ordered {
		var split Split

		split.ToInterest, remaining = consume(remaining, c.Before.Interest)
		split.ToFees, remaining = consume(remaining, c.Before.Fees)
		split.ToPrincipal, remaining = consume(remaining, c.Before.Principal)

		effect.add(c, split)
	}

	effect.CreditToUser = remaining
}

// planRevolving consumes the interest and principal budgets independently
// over the same ordering, stopping once both are spent.
func planRevolving(effect *Effect, ordered []Candidate, s Strategy) {
	principalLeft := budget(s.PrincipalBudget)
	interestLeft := budget(s.InterestBudget)

	for _, c := range ordered {
		if principalLeft == 0 && interestLeft == 0 {
			effect.add(c, Split{})
			continue
		}

		var split Split

		split.ToInterest, interestLeft = consume(interestLeft, c.Before.Interest)
		split.ToFees, principalLeft = consume(principalLeft, c.Before.Fees)
		split.ToPrincipal, principalLeft = consume(principalLeft, c.Before.Principal)

		effect.add(c, split)
	}

	effect.CreditToUser = principalLeft + interestLeft
}

func budget(b *int64) int64 {
	if b == nil {
		return 0
	}

	return *b
}

// consume takes as much of outstanding as remaining covers.
func consume(remaining, outstanding int64) (taken, left int64) {
	if outstanding <= 0 || remaining <= 0 {
		return 0, remaining
	}

	taken = min(remaining, outstanding)

	return taken, remaining - taken
}

func (e *Effect) add(c Candidate, split Split) {
	e.Allocations = append(e.Allocations, LoanAllocation{
		Loan:   c.Loan,
		Before: c.Before,
		Split:  split,
		After:  c.Before.Sub(split.ToPrincipal, split.ToInterest, split.ToFees),
	})

	e.PayableInterest += split.ToInterest
	e.PayableFees += split.ToFees
	e.PayablePrincipal += split.ToPrincipal
}

func annotatePastDue(effect *Effect, in Input) {
	for _, c := range in.PastDueUnselected {
		entry := PastDueEntry{
			Loan:        c.Loan,
			Before:      c.Before,
			DaysPastDue: c.Loan.DaysPastDue(in.SettlementDate),
		}

		if in.FeeMultiplier != nil {
			entry.LateFeeMultiplier = in.FeeMultiplier(entry.DaysPastDue)
		}

		effect.PastDue = append(effect.PastDue, entry)
	}
}
