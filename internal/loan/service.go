package loan

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lendwell/ledger/internal/contract"
	"github.com/lendwell/ledger/internal/ledger"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=loan
type Repository interface {
	GetLoan(ctx context.Context, id uuid.UUID) (*Loan, error)
	ListLoans(ctx context.Context, filter ListFilter) ([]*Loan, error)
	CreateLoan(ctx context.Context, l *Loan) error
	UpdateLoan(ctx context.Context, l *Loan) error
}

// ContractProvider resolves the contract effective for a company on a date.
// Satisfied by *contract.Resolver.
type ContractProvider interface {
	Resolve(ctx context.Context, companyID uuid.UUID, date time.Time) (contract.Contract, error)
}

// ListFilter narrows loan queries. Nil/empty fields match everything.
type ListFilter struct {
	CompanyID *uuid.UUID
	IDs       []uuid.UUID
	OpenOnly  bool
}

type Service struct {
	repo      Repository
	contracts ContractProvider
}

func NewService(repo Repository, contracts ContractProvider) *Service {
	return &Service{repo: repo, contracts: contracts}
}

type OriginateParams struct {
	CompanyID             uuid.UUID
	Principal             int64
	OriginationDate       time.Time
	AdvanceSettlementDate time.Time
}

// Originate creates a funded loan. The maturity dates come from the contract
// effective on the advance settlement date.
func (s *Service) Originate(ctx context.Context, params OriginateParams) (*Loan, error) {
	if params.Principal <= 0 {
		return nil, ledger.Validationf("loan principal must be positive, got %d", params.Principal)
	}

	if params.AdvanceSettlementDate.IsZero() {
		return nil, ledger.Validationf("advance settlement date is required")
	}

	c, err := s.contracts.Resolve(ctx, params.CompanyID, params.AdvanceSettlementDate)
	if err != nil {
		return nil, err
	}

	due, adjusted := c.MaturityDate(params.AdvanceSettlementDate)

	origination := params.OriginationDate
	if origination.IsZero() {
		origination = params.AdvanceSettlementDate
	}

	funded := params.AdvanceSettlementDate

	l := &Loan{
		CompanyID:            params.CompanyID,
		Principal:            params.Principal,
		OriginationDate:      origination,
		MaturityDate:         due,
		AdjustedMaturityDate: adjusted,
		OutstandingPrincipal: params.Principal,
		FundedAt:             &funded,
		PaymentStatus:        StatusPending,
	}

	if err := s.repo.CreateLoan(ctx, l); err != nil {
		return nil, err
	}

	return l, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Loan, error) {
	return s.repo.GetLoan(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Loan, error) {
	return s.repo.ListLoans(ctx, filter)
}

// Candidates returns the company's open loans eligible for a repayment. When
// ids is non-empty the result is restricted to, and must fully cover, that
// set.
func (s *Service) Candidates(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]*Loan, error) {
	filter := ListFilter{CompanyID: &companyID, OpenOnly: true}
	if len(ids) > 0 {
		filter.IDs = ids
	}

	loans, err := s.repo.ListLoans(ctx, filter)
	if err != nil {
		return nil, err
	}

	if len(ids) > 0 && len(loans) != len(ids) {
		return nil, ledger.NotFoundf("company %s: %d of %d requested loans not found or not open",
			companyID, len(ids)-len(loans), len(ids))
	}

	return loans, nil
}
