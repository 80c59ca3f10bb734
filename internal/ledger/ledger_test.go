package ledger_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/lendwell/ledger/internal/ledger"
)

func TestTransaction_Validate(t *testing.T) {
	type testCase struct {
		name    string
		tx      ledger.Transaction
		wantErr bool
	}

	tests := []testCase{
		{
			name: "ComponentsSum",
			tx:   ledger.Transaction{Amount: 100, ToPrincipal: 70, ToInterest: 20, ToFees: 10},
		},
		{
			name: "ZeroAmount",
			tx:   ledger.Transaction{},
		},
		{
			name:    "ComponentsShort",
			tx:      ledger.Transaction{Amount: 100, ToPrincipal: 70, ToInterest: 20},
			wantErr: true,
		},
		{
			name:    "ComponentsOver",
			tx:      ledger.Transaction{Amount: 100, ToPrincipal: 70, ToInterest: 20, ToFees: 20},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, ledger.KindInvariant, ledger.KindOf(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, ledger.KindValidation, ledger.KindOf(ledger.Validationf("bad input")))
	assert.Equal(t, ledger.KindNotFound, ledger.KindOf(ledger.NotFoundf("missing")))
	assert.Equal(t, ledger.KindState, ledger.KindOf(ledger.Statef("wrong state")))
	assert.Equal(t, ledger.KindInvariant, ledger.KindOf(ledger.Invariantf("broken")))
	assert.Equal(t, ledger.KindConfig, ledger.KindOf(ledger.Configf("malformed")))

	assert.Equal(t, ledger.ErrorKind(""), ledger.KindOf(errors.New("plain")))
	assert.Equal(t, ledger.ErrorKind(""), ledger.KindOf(nil))
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("settling payment: %w", ledger.Statef("payment %s is already settled", uuid.Nil))

	assert.True(t, ledger.IsKind(err, ledger.KindState))
	assert.False(t, ledger.IsKind(err, ledger.KindValidation))
}

func TestPayment_Settled(t *testing.T) {
	var p ledger.Payment

	assert.False(t, p.Settled())

	now := p.CreatedAt
	p.SettledAt = &now

	assert.True(t, p.Settled())
}
