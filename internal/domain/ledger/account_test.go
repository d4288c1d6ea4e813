package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountTypeTraits(t *testing.T) {
	tests := []struct {
		typ        AccountType
		statement  StatementKind
		displayAbs bool
	}{
		{TypeAsset, StatementBalanceSheet, true},
		{TypeLiability, StatementBalanceSheet, true},
		{TypeEquity, StatementBalanceSheet, false},
		{TypeIncome, StatementIncome, false},
		{TypeExpense, StatementIncome, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			assert.True(t, tt.typ.Valid())
			assert.Equal(t, tt.statement, tt.typ.Statement())
			assert.Equal(t, tt.displayAbs, tt.typ.DisplaysAbsolute())
		})
	}

	assert.False(t, AccountType("currency").Valid())
}

func TestAccountValidate(t *testing.T) {
	ctx := context.Background()

	valid := Account{Code: "1000", Name: "Cash", Type: TypeAsset}
	require.NoError(t, valid.Validate(ctx))

	noCode := Account{Name: "Cash", Type: TypeAsset}
	require.Error(t, noCode.Validate(ctx))

	noName := Account{Code: "1000", Type: TypeAsset}
	require.Error(t, noName.Validate(ctx))

	badType := Account{Code: "1000", Name: "Cash", Type: "vault"}
	require.Error(t, badType.Validate(ctx))
}
