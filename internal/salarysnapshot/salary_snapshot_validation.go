package salarysnapshot

import (
	"strconv"
	"strings"

	salarysnapshoterrors "go-hrdocs/internal/salarysnapshot/errors"
	"go-hrdocs/internal/shared/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// buildComponents validates every input and converts the valid set into
// components. All violations are reported together.
func buildComponents(snapshotID uuid.UUID, inputs []ComponentInput) ([]Component, error) {
	var violations []Violation
	seen := make(map[string]int, len(inputs))

	add := func(i int, name, field, reason string) {
		violations = append(violations, Violation{Index: i, Name: name, Field: field, Reason: reason})
	}

	if len(inputs) == 0 {
		return nil, salarysnapshoterrors.ErrInvalidComponent.WithDetails(map[string]any{
			"violations": []Violation{{Index: -1, Field: "components", Reason: "at least one component is required"}},
		})
	}

	components := make([]Component, 0, len(inputs))
	for i, in := range inputs {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			add(i, in.Name, "name", "required")
		}
		if in.MonthlyAmount == nil {
			add(i, name, "monthlyAmount", "required")
		} else if in.MonthlyAmount.IsNegative() {
			add(i, name, "monthlyAmount", "must not be negative")
		}
		if !ValidCategory(in.Category) {
			add(i, name, "category", "must be one of earning, employeeDeduction, employerContribution")
		}

		calc := in.CalculationType
		if calc == "" {
			calc = CalcFixed
		}
		if !ValidCalculationType(calc) {
			add(i, name, "calculationType", "must be one of FIXED, PERCENT_OF_BASIC, PERCENT_OF_CTC")
		}
		if calc != CalcFixed && in.Percentage == nil {
			add(i, name, "percentage", "required for percentage based components")
		}

		if name != "" && ValidCategory(in.Category) {
			key := in.Category + "\x00" + name
			if first, dup := seen[key]; dup {
				add(i, name, "name", "duplicates component at index "+strconv.Itoa(first)+" in the same category")
			} else {
				seen[key] = i
			}
		}

		if len(violations) > 0 {
			continue
		}

		monthly := money.Round(*in.MonthlyAmount)
		c := Component{
			ID:              uuid.New(),
			SnapshotID:      snapshotID,
			Position:        i,
			Name:            name,
			Category:        in.Category,
			MonthlyAmount:   monthly,
			AnnualAmount:    money.Annualize(monthly),
			CalculationType: calc,
			ProRata:         in.ProRata,
			Taxable:         in.Taxable,
			Removable:       in.Removable == nil || *in.Removable,
		}
		if in.Percentage != nil {
			c.Percentage = decimal.NewNullDecimal(*in.Percentage)
		}
		components = append(components, c)
	}

	if len(violations) > 0 {
		return nil, salarysnapshoterrors.ErrInvalidComponent.WithDetails(map[string]any{"violations": violations})
	}
	return components, nil
}
