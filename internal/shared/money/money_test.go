package money_test

import (
	"testing"

	"go-hrdocs/internal/shared/money"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRound_HalfAwayFromZero(t *testing.T) {
	tests := []struct{ in, want string }{
		{"10.005", "10.01"},
		{"10.004", "10"},
		{"-10.005", "-10.01"},
		{"33333.333", "33333.33"},
	}
	for _, tt := range tests {
		assert.True(t, money.Round(d(tt.in)).Equal(d(tt.want)), tt.in)
	}
}

func TestMonthlyShareAndAnnualize(t *testing.T) {
	ctc := d("1200000")
	basic := money.MonthlyShare(ctc, d("0.5"))
	assert.Equal(t, "50000.00", basic.StringFixed(2))
	assert.Equal(t, "600000.00", money.Annualize(basic).StringFixed(2))

	odd := money.MonthlyShare(d("1000000"), d("0.3"))
	assert.Equal(t, "25000.00", odd.StringFixed(2))

	third := money.MonthlyShare(d("100"), d("1"))
	assert.Equal(t, "8.33", third.StringFixed(2))
}

func TestMonthlyShare_HalfCent(t *testing.T) {
	ctc := d("1000003")
	assert.Equal(t, "41666.79", money.MonthlyShare(ctc, d("0.5")).StringFixed(2))
	assert.Equal(t, "25000.08", money.MonthlyShare(ctc, d("0.3")).StringFixed(2))
	assert.Equal(t, "16666.72", money.MonthlyShare(ctc, d("0.2")).StringFixed(2))
}

func TestMonthlyPercent(t *testing.T) {
	assert.Equal(t, "25000.08", money.MonthlyPercent(d("1000003"), d("30")).StringFixed(2))
	assert.Equal(t, "40000.00", money.MonthlyPercent(d("1200000"), d("40")).StringFixed(2))
}

func TestPercentAndSum(t *testing.T) {
	assert.Equal(t, "4800.00", money.Percent(d("40000"), d("12")).StringFixed(2))
	assert.Equal(t, "70000.00", money.Sum(d("50000"), d("20000")).StringFixed(2))
	assert.True(t, money.Sum().IsZero())
}
