package ledger

import (
	"time"

	"github.com/google/uuid"
)

// PaymentKind classifies what a payment does to the ledger.
type PaymentKind string

const (
	KindAdvance      PaymentKind = "advance"
	KindRepayment    PaymentKind = "repayment"
	KindFee          PaymentKind = "fee"
	KindAdjustment   PaymentKind = "adjustment"
	KindCreditToUser PaymentKind = "credit_to_user"
)

// PaymentMethod is how the money moves. The engine never executes the
// movement itself; the method is recorded for downstream reconciliation.
type PaymentMethod string

const (
	MethodACH      PaymentMethod = "ach"
	MethodWire     PaymentMethod = "wire"
	MethodCheck    PaymentMethod = "check"
	MethodInternal PaymentMethod = "internal"
)

// Payment represents a money movement request against a company's account.
// All amounts are in cents.
type Payment struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	Kind      PaymentKind
	Method    PaymentMethod

	RequestedAmount int64
	Amount          int64

	RequestedPaymentDate *time.Time
	PaymentDate          *time.Time
	DepositDate          *time.Time
	SettlementDate       *time.Time

	SettledAt  *time.Time
	SettledBy  *uuid.UUID
	ReversedAt *time.Time

	// OriginatingPaymentID links a payment spawned by another, e.g. the
	// credit-to-user payout created while settling a repayment.
	OriginatingPaymentID *uuid.UUID

	// LoanIDs is the set of loans this payment is meant to cover. Empty
	// means every open loan of the company is a candidate.
	LoanIDs []uuid.UUID

	// PrincipalBudget and InterestBudget split the amount for revolving
	// (line of credit) repayments. Nil for installment repayments.
	PrincipalBudget *int64
	InterestBudget  *int64

	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
}

// Settled reports whether the payment is currently settled.
func (p *Payment) Settled() bool { return p.SettledAt != nil }

// TransactionKind classifies a ledger transaction.
type TransactionKind string

const (
	TxAdvance         TransactionKind = "advance"
	TxRepayment       TransactionKind = "repayment"
	TxInterestAccrual TransactionKind = "interest_accrual"
	TxFeeAssessment   TransactionKind = "fee_assessment"
	TxCreditToUser    TransactionKind = "credit_to_user"
	TxAdjustment      TransactionKind = "adjustment"
)

// Transaction is a single immutable ledger entry. Amount always equals
// ToPrincipal + ToInterest + ToFees; entries are soft-deleted, never mutated.
type Transaction struct {
	ID   uuid.UUID
	Kind TransactionKind

	Amount      int64
	ToPrincipal int64
	ToInterest  int64
	ToFees      int64

	// LoanID is nil for account-level entries such as credit-to-user payouts.
	LoanID    *uuid.UUID
	PaymentID uuid.UUID

	EffectiveDate time.Time
	CreatedAt     time.Time
	DeletedAt     *time.Time
}

// Validate checks the conservation invariant: the three components must sum
// exactly to the transaction amount.
func (t *Transaction) Validate() error {
	if sum := t.ToPrincipal + t.ToInterest + t.ToFees; sum != t.Amount {
		return Invariantf("transaction %s: components sum to %d, amount is %d", t.ID, sum, t.Amount)
	}
	return nil
}
