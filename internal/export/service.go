// Package export renders a company's ledger as a statement for back-office
// consumers: a CSV of every transaction on the books plus a short text
// summary of the open loans.
package export

import (
	"cmp"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lendwell/ledger/internal/ledger"
	"github.com/lendwell/ledger/internal/loan"
)

// LoanSource lists loans. Satisfied by *loan.Service.
type LoanSource interface {
	List(ctx context.Context, filter loan.ListFilter) ([]*loan.Loan, error)
}

// TransactionSource reads the transaction history for a set of loans.
// Satisfied by the settlement store.
type TransactionSource interface {
	TransactionsForLoans(ctx context.Context, loanIDs []uuid.UUID) ([]*ledger.Transaction, error)
}

type Service struct {
	loans        LoanSource
	transactions TransactionSource
}

func NewService(loans LoanSource, transactions TransactionSource) *Service {
	return &Service{
		loans:        loans,
		transactions: transactions,
	}
}

var statementHeader = []string{"effective_date", "loan_id", "kind", "amount", "principal", "interest", "fees"}

// Statement writes the company's full transaction history as CSV, ordered by
// effective date. Soft-deleted entries are omitted.
func (s *Service) Statement(ctx context.Context, companyID uuid.UUID, w io.Writer) error {
	loans, err := s.loans.List(ctx, loan.ListFilter{CompanyID: &companyID})
	if err != nil {
		return fmt.Errorf("listing loans: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(loans))
	for _, l := range loans {
		ids = append(ids, l.ID)
	}

	txs, err := s.transactions.TransactionsForLoans(ctx, ids)
	if err != nil {
		return fmt.Errorf("listing transactions: %w", err)
	}

	rows := make([]*ledger.Transaction, 0, len(txs))

	for _, t := range txs {
		if t.DeletedAt == nil {
			rows = append(rows, t)
		}
	}

	slices.SortStableFunc(rows, func(a, b *ledger.Transaction) int {
		if c := a.EffectiveDate.Compare(b.EffectiveDate); c != 0 {
			return c
		}

		return cmp.Compare(a.ID.String(), b.ID.String())
	})

	cw := csv.NewWriter(w)

	if err := cw.Write(statementHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, t := range rows {
		loanID := ""
		if t.LoanID != nil {
			loanID = t.LoanID.String()
		}

		record := []string{
			t.EffectiveDate.Format(time.DateOnly),
			loanID,
			string(t.Kind),
			formatCents(t.Amount),
			formatCents(t.ToPrincipal),
			formatCents(t.ToInterest),
			formatCents(t.ToFees),
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing transaction %s: %w", t.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// Summary renders a one-line-per-loan overview of the company's open loans,
// suitable for an operations email.
func (s *Service) Summary(ctx context.Context, companyID uuid.UUID) (string, error) {
	loans, err := s.loans.List(ctx, loan.ListFilter{CompanyID: &companyID, OpenOnly: true})
	if err != nil {
		return "", fmt.Errorf("listing loans: %w", err)
	}

	var sb strings.Builder

	for _, l := range loans {
		sb.WriteString(fmt.Sprintf("* %s | due %s | principal %s | interest %s | fees %s | %s\n",
			l.ID,
			l.AdjustedMaturityDate.Format(time.DateOnly),
			formatCents(l.OutstandingPrincipal),
			formatCents(l.OutstandingInterest),
			formatCents(l.OutstandingFees),
			l.PaymentStatus,
		))
	}

	return sb.String(), nil
}

func formatCents(v int64) string {
	return decimal.New(v, -2).StringFixed(2)
}
