package income

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
)

func TestIncomeDerivedValues(t *testing.T) {
	in := NewIncome("day sales", types.MustDate("2024-03-15"), types.MustMoney("100.00"), types.MustMoney("28"))

	assert.True(t, in.ProfitAmount().Equal(types.MustMoney("28.00")), "profit = %s", in.ProfitAmount())
	assert.True(t, in.BaseValue().Equal(types.MustMoney("72.00")), "base = %s", in.BaseValue())
}

func TestIncomeDerivedValuesRoundToCents(t *testing.T) {
	in := NewIncome("day sales", types.MustDate("2024-03-15"), types.MustMoney("33.33"), types.MustMoney("17.5"))

	// 33.33 * 17.5% = 5.83275, rounds to 5.83
	assert.True(t, in.ProfitAmount().Equal(types.MustMoney("5.83")), "profit = %s", in.ProfitAmount())
	assert.True(t, in.BaseValue().Equal(types.MustMoney("27.50")), "base = %s", in.BaseValue())
}

func TestIncomeZeroMargin(t *testing.T) {
	in := NewIncome("day sales", types.MustDate("2024-03-15"), types.MustMoney("50.00"), types.ZeroMoney())

	assert.True(t, in.ProfitAmount().IsZero())
	assert.True(t, in.BaseValue().Equal(types.MustMoney("50.00")))
}

func TestIncomeValidate(t *testing.T) {
	ctx := context.Background()

	valid := NewIncome("day sales", types.MustDate("2024-03-15"), types.MustMoney("100.00"), types.MustMoney("28"))
	require.NoError(t, valid.Validate(ctx))

	tests := []struct {
		name   string
		mutate func(*Income)
	}{
		{"empty description", func(in *Income) { in.Description = "" }},
		{"missing date", func(in *Income) { in.Date = types.Date{} }},
		{"negative value", func(in *Income) { in.Value = types.MustMoney("-1.00") }},
		{"negative margin", func(in *Income) { in.ProfitMargin = types.MustMoney("-5") }},
		{"margin over 100", func(in *Income) { in.ProfitMargin = types.MustMoney("101") }},
		{"line without product", func(in *Income) { in.AddLine(id.Nil(), 1, types.MustMoney("10.00")) }},
		{"line zero quantity", func(in *Income) { in.AddLine(id.New(), 0, types.MustMoney("10.00")) }},
		{"line negative price", func(in *Income) { in.AddLine(id.New(), 1, types.MustMoney("-0.01")) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewIncome("day sales", types.MustDate("2024-03-15"), types.MustMoney("100.00"), types.MustMoney("28"))
			tt.mutate(in)
			assert.Error(t, in.Validate(ctx))
		})
	}
}

func TestAddLineNumbersSequentially(t *testing.T) {
	in := NewIncome("day sales", types.MustDate("2024-03-15"), types.MustMoney("100.00"), types.MustMoney("28"))
	in.AddLine(id.New(), 2, types.MustMoney("25.00"))
	in.AddLine(id.New(), 1, types.MustMoney("50.00"))

	require.Len(t, in.Lines, 2)
	assert.Equal(t, 1, in.Lines[0].LineNo)
	assert.Equal(t, 2, in.Lines[1].LineNo)
	assert.Equal(t, in.ID, in.Lines[0].IncomeID)
}
