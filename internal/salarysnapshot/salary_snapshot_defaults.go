package salarysnapshot

import (
	"github.com/shopspring/decimal"

	"go-hrdocs/internal/shared/money"
)

// DefaultSplit describes one component of the built-in CTC split.
type DefaultSplit struct {
	Name      string
	Ratio     decimal.Decimal
	ProRata   bool
	Removable bool
}

const (
	BasicName             = "Basic"
	DearnessAllowanceName = "Dearness Allowance"
	AllowanceName         = "Allowance"
)

// BasicRatio is also the fallback when a catalog has no BASIC definition.
var BasicRatio = decimal.RequireFromString("0.50")

// DefaultCTCSplit is applied when a snapshot is created from an annual CTC
// alone: Basic 50%, Dearness Allowance 30%, Allowance 20%.
var DefaultCTCSplit = []DefaultSplit{
	{Name: BasicName, Ratio: BasicRatio, ProRata: true, Removable: false},
	{Name: DearnessAllowanceName, Ratio: decimal.RequireFromString("0.30"), ProRata: true, Removable: true},
	{Name: AllowanceName, Ratio: decimal.RequireFromString("0.20"), ProRata: false, Removable: true},
}

var hundred = decimal.NewFromInt(100)

// SplitCTC returns the default earnings for annualCTC. Each monthly amount
// is round(annualCTC*ratio/12, 2).
func SplitCTC(annualCTC decimal.Decimal) []ComponentInput {
	inputs := make([]ComponentInput, 0, len(DefaultCTCSplit))
	for _, d := range DefaultCTCSplit {
		monthly := money.MonthlyShare(annualCTC, d.Ratio)
		pct := d.Ratio.Mul(hundred)
		removable := d.Removable
		inputs = append(inputs, ComponentInput{
			Name:            d.Name,
			Category:        CategoryEarning,
			MonthlyAmount:   &monthly,
			CalculationType: CalcPercentOfCTC,
			Percentage:      &pct,
			ProRata:         d.ProRata,
			Taxable:         true,
			Removable:       &removable,
		})
	}
	return inputs
}
