package contract

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lendwell/ledger/internal/ledger"
)

// ProductType tags the lending product a contract governs.
type ProductType string

const (
	LineOfCredit ProductType = "line_of_credit"
	Installment  ProductType = "installment"
)

// BusinessDayPreference controls which way a date falling on a non-business
// day is shifted.
type BusinessDayPreference string

const (
	Preceding  BusinessDayPreference = "preceding"
	Succeeding BusinessDayPreference = "succeeding"
)

// Record is the stored shape of a contract version. It is immutable once
// loaded; New turns it into the product-specific Contract variant.
type Record struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	Product   ProductType

	StartDate       time.Time
	AdjustedEndDate time.Time

	InterestRate          decimal.Decimal
	FinancingTermsDays    int
	LateFeeSchedule       string
	BusinessDayPreference BusinessDayPreference

	CreatedAt time.Time
}

// Contract is the capability set shared by both product variants.
type Contract interface {
	CompanyID() uuid.UUID
	Product() ProductType
	// Contains reports whether the contract is effective on the given date.
	Contains(date time.Time) bool
	// MaturityDate computes when principal advanced on the given settlement
	// date comes due, both contractual and business-day-adjusted.
	MaturityDate(advanceSettlementDate time.Time) (due, adjusted time.Time)
	// FeeMultiplier returns the late-fee multiplier for a loan that is the
	// given number of days past due.
	FeeMultiplier(daysPastDue int) decimal.Decimal
}

// New validates a record and selects its variant. The late-fee schedule is
// parsed exactly once here; lookups afterwards hit the cached table.
func New(rec Record) (Contract, error) {
	if rec.StartDate.After(rec.AdjustedEndDate) {
		return nil, ledger.Configf("contract %s: start date %s after end date %s",
			rec.ID, rec.StartDate.Format(time.DateOnly), rec.AdjustedEndDate.Format(time.DateOnly))
	}

	switch rec.Product {
	case LineOfCredit:
		return &lineOfCreditContract{base{rec: rec}}, nil
	case Installment:
		if rec.FinancingTermsDays <= 0 {
			return nil, ledger.Configf("contract %s: financing terms days must be positive, got %d",
				rec.ID, rec.FinancingTermsDays)
		}

		fees, err := ParseFeeSchedule(rec.LateFeeSchedule)
		if err != nil {
			return nil, err
		}

		return &installmentContract{base{rec: rec, fees: fees}}, nil
	default:
		return nil, ledger.Configf("contract %s: unknown product type %q", rec.ID, rec.Product)
	}
}

type base struct {
	rec  Record
	fees *FeeSchedule
}

func (b *base) CompanyID() uuid.UUID { return b.rec.CompanyID }
func (b *base) Product() ProductType { return b.rec.Product }

func (b *base) Contains(date time.Time) bool {
	d := dateOnly(date)
	return !d.Before(dateOnly(b.rec.StartDate)) && !d.After(dateOnly(b.rec.AdjustedEndDate))
}

// lineOfCreditContract: revolving credit. Principal is due at the end of the
// contract itself, and late fees are never assessed per-loan.
type lineOfCreditContract struct {
	base
}

func (c *lineOfCreditContract) MaturityDate(time.Time) (time.Time, time.Time) {
	// Revolving advances all mature with the contract. LOC always rolls
	// forward regardless of the stored preference.
	due := dateOnly(c.rec.AdjustedEndDate)
	return due, adjustBusinessDay(due, Succeeding)
}

func (c *lineOfCreditContract) FeeMultiplier(int) decimal.Decimal {
	return decimal.Zero
}

// installmentContract: each advance matures a fixed number of days after its
// settlement, and late fees follow the contract's schedule.
type installmentContract struct {
	base
}

func (c *installmentContract) MaturityDate(advanceSettlementDate time.Time) (time.Time, time.Time) {
	due := dateOnly(advanceSettlementDate).AddDate(0, 0, c.rec.FinancingTermsDays)
	return due, adjustBusinessDay(due, c.rec.BusinessDayPreference)
}

func (c *installmentContract) FeeMultiplier(daysPastDue int) decimal.Decimal {
	return c.fees.Multiplier(daysPastDue)
}

// dateOnly truncates a timestamp to its UTC calendar date.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// adjustBusinessDay shifts a date falling on a weekend to the nearest
// business day in the preferred direction. Business days already stand.
func adjustBusinessDay(date time.Time, pref BusinessDayPreference) time.Time {
	step := 1
	if pref == Preceding {
		step = -1
	}

	for date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
		date = date.AddDate(0, 0, step)
	}

	return date
}
