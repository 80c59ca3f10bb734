package loan

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus tracks how far along repayment a loan is.
type PaymentStatus string

const (
	StatusPending       PaymentStatus = "pending"
	StatusPartiallyPaid PaymentStatus = "partially_paid"
	StatusClosed        PaymentStatus = "closed"
)

// Loan is a single advance of principal to a borrower. The three outstanding
// balances are forward-accruing snapshots in cents and never go negative.
type Loan struct {
	ID        uuid.UUID
	CompanyID uuid.UUID

	Principal int64

	OriginationDate      time.Time
	MaturityDate         time.Time
	AdjustedMaturityDate time.Time

	OutstandingPrincipal int64
	OutstandingInterest  int64
	OutstandingFees      int64

	FundedAt   *time.Time
	ClosedAt   *time.Time
	RejectedAt *time.Time

	PaymentStatus PaymentStatus

	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
}

// Outstanding is the loan's total remaining obligation.
func (l *Loan) Outstanding() int64 {
	return l.OutstandingPrincipal + l.OutstandingInterest + l.OutstandingFees
}

// Open reports whether the loan can still receive repayments. A closed
// payment status counts even if closed_at was never stamped.
func (l *Loan) Open() bool {
	return l.ClosedAt == nil && l.RejectedAt == nil && l.DeletedAt == nil &&
		l.PaymentStatus != StatusClosed
}

// PastDue reports whether the loan's adjusted maturity date is on or before
// the given date.
func (l *Loan) PastDue(asOf time.Time) bool {
	return !l.AdjustedMaturityDate.After(asOf)
}

// DaysPastDue counts whole days between the adjusted maturity date and asOf,
// clamped at zero for loans not yet due.
func (l *Loan) DaysPastDue(asOf time.Time) int {
	days := int(asOf.Sub(l.AdjustedMaturityDate).Hours() / 24)
	if days < 0 {
		return 0
	}

	return days
}
