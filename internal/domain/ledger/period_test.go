package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodContains(t *testing.T) {
	p := Period{StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 31)}

	assert.True(t, p.Contains(date(2024, 1, 1)), "start date is inclusive")
	assert.True(t, p.Contains(date(2024, 1, 31)), "end date is inclusive")
	assert.True(t, p.Contains(date(2024, 1, 15)))
	assert.False(t, p.Contains(date(2023, 12, 31)))
	assert.False(t, p.Contains(date(2024, 2, 1)))
}

func TestPeriodValidate(t *testing.T) {
	ctx := context.Background()

	valid := Period{StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 31)}
	require.NoError(t, valid.Validate(ctx))

	inverted := Period{StartDate: date(2024, 1, 31), EndDate: date(2024, 1, 1)}
	require.Error(t, inverted.Validate(ctx))

	missing := Period{}
	require.Error(t, missing.Validate(ctx))
}
