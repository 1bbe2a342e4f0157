package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		value   string
		percent string
		want    string
	}{
		{"100.00", "28", "28.00"},
		{"100.00", "0", "0.00"},
		{"100.00", "100", "100.00"},
		{"33.33", "17.5", "5.83"},
		{"0.01", "50", "0.01"},
		{"199.99", "12.34", "24.68"},
	}

	for _, tt := range tests {
		got := Percent(MustMoney(tt.value), MustMoney(tt.percent))
		assert.True(t, got.Equal(MustMoney(tt.want)), "Percent(%s, %s) = %s, want %s", tt.value, tt.percent, got, tt.want)
	}
}

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("12.34")
	require.NoError(t, err)
	assert.Equal(t, "12.34", m.StringFixed(2))

	_, err = NewMoneyFromString("not money")
	assert.Error(t, err)
}
