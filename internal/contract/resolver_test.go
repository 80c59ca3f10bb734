package contract_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lendwell/ledger/internal/contract"
	"github.com/lendwell/ledger/internal/ledger"
)

func TestResolver_Resolve(t *testing.T) {
	companyID := uuid.New()

	// The products differ so the test can tell which record resolved.
	first := locRecord()
	first.CompanyID = companyID
	first.StartDate = date(2023, 1, 1)
	first.AdjustedEndDate = date(2023, 12, 31)

	second := installmentRecord()
	second.CompanyID = companyID
	second.StartDate = date(2024, 1, 1)
	second.AdjustedEndDate = date(2024, 12, 31)

	overlapping := installmentRecord()
	overlapping.CompanyID = companyID
	overlapping.StartDate = date(2024, 6, 1)
	overlapping.AdjustedEndDate = date(2025, 5, 31)

	type testCase struct {
		name        string
		date        time.Time
		setupMock   func(m *contract.MockRepository)
		wantProduct contract.ProductType
		wantKind    ledger.ErrorKind
	}

	tests := []testCase{
		{
			name: "SelectsEffectiveContract",
			date: date(2024, 3, 15),
			setupMock: func(m *contract.MockRepository) {
				m.EXPECT().
					ListByCompany(gomock.Any(), companyID).
					Return([]contract.Record{first, second}, nil)
			},
			wantProduct: contract.Installment,
		},
		{
			name: "BoundaryDatesInclusive",
			date: date(2023, 12, 31),
			setupMock: func(m *contract.MockRepository) {
				m.EXPECT().
					ListByCompany(gomock.Any(), companyID).
					Return([]contract.Record{second, first}, nil)
			},
			wantProduct: contract.LineOfCredit,
		},
		{
			name: "NoContracts",
			date: date(2024, 3, 15),
			setupMock: func(m *contract.MockRepository) {
				m.EXPECT().
					ListByCompany(gomock.Any(), companyID).
					Return(nil, nil)
			},
			wantKind: ledger.KindNotFound,
		},
		{
			name: "NoneEffective",
			date: date(2026, 1, 1),
			setupMock: func(m *contract.MockRepository) {
				m.EXPECT().
					ListByCompany(gomock.Any(), companyID).
					Return([]contract.Record{first, second}, nil)
			},
			wantKind: ledger.KindNotFound,
		},
		{
			name: "OverlappingContracts",
			date: date(2024, 3, 15),
			setupMock: func(m *contract.MockRepository) {
				m.EXPECT().
					ListByCompany(gomock.Any(), companyID).
					Return([]contract.Record{first, second, overlapping}, nil)
			},
			wantKind: ledger.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := contract.NewMockRepository(ctrl)
			tt.setupMock(repo)

			resolver := contract.NewResolver(repo)
			got, err := resolver.Resolve(context.Background(), companyID, tt.date)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, ledger.KindOf(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, companyID, got.CompanyID())
			assert.Equal(t, tt.wantProduct, got.Product())
		})
	}
}

func TestResolver_Resolve_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := contract.NewMockRepository(ctrl)
	repo.EXPECT().
		ListByCompany(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("db error"))

	resolver := contract.NewResolver(repo)

	_, err := resolver.Resolve(context.Background(), uuid.New(), date(2024, 1, 1))
	assert.Error(t, err)
}
