package apperror_test

import (
	"testing"

	"go-hrdocs/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type amountRequest struct {
	AnnualCTC *decimal.Decimal `json:"annual_ctc" binding:"omitempty,decimal_gte0"`
	Fee       decimal.Decimal  `json:"fee" binding:"decimal_gte0"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	apperror.Register(v)
	return v
}

func TestRegister_NonNegativeDecimal(t *testing.T) {
	v := newValidator()
	neg := decimal.RequireFromString("-0.01")
	pos := decimal.RequireFromString("1200000")

	tests := []struct {
		name    string
		req     amountRequest
		wantErr bool
	}{
		{"nil pointer is skipped", amountRequest{Fee: decimal.Zero}, false},
		{"positive amounts", amountRequest{AnnualCTC: &pos, Fee: pos}, false},
		{"negative pointer", amountRequest{AnnualCTC: &neg}, true},
		{"negative value", amountRequest{Fee: neg}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Struct(tc.req)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRegister_ReportsJSONFieldName(t *testing.T) {
	v := newValidator()
	neg := decimal.NewFromInt(-1)

	err := v.Struct(amountRequest{AnnualCTC: &neg})
	require.Error(t, err)

	mapped := apperror.MapValidationError(err)
	var appErr *apperror.AppError
	require.ErrorAs(t, mapped, &appErr)
	assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	assert.Contains(t, appErr.Message, "Annual Ctc")
}

func TestInit_Idempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		apperror.Init()
		apperror.Init()
	})
}
