package salarycatalog_test

import (
	"context"
	"errors"
	"testing"

	"go-hrdocs/internal/salarycatalog"
	salarycatalogerrors "go-hrdocs/internal/salarycatalog/errors"
	"go-hrdocs/internal/salarycatalog/mock"
	"go-hrdocs/internal/salarysnapshot"
	"go-hrdocs/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type catalogDeps struct {
	sqlMock  sqlmock.Sqlmock
	repo     *mock.MockRepository
	service  salarycatalog.Service
	tenantID string
}

func setupCatalogTest(t *testing.T) *catalogDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := mock.NewMockRepository(ctrl)
	return &catalogDeps{
		sqlMock:  sqlMock,
		repo:     repo,
		service:  salarycatalog.NewService(db, repo),
		tenantID: uuid.NewString(),
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func definition(code, name, category, calc string, amount, pct string) salarycatalog.Definition {
	d := salarycatalog.Definition{
		ID:              uuid.New(),
		Code:            code,
		Name:            name,
		Category:        category,
		CalculationType: calc,
		Taxable:         true,
		Removable:       true,
		IsActive:        true,
	}
	if amount != "" {
		d.Amount = decimal.NewNullDecimal(dec(amount))
	}
	if pct != "" {
		d.Percentage = decimal.NewNullDecimal(dec(pct))
	}
	return d
}

func TestCatalogService_Create(t *testing.T) {
	t.Run("success normalizes code and rounds amount", func(t *testing.T) {
		deps := setupCatalogTest(t)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, d *salarycatalog.Definition) error {
				assert.Equal(t, "HRA", d.Code)
				assert.True(t, d.IsActive)
				assert.True(t, d.Removable)
				assert.Equal(t, "12500.13", d.Amount.Decimal.StringFixed(2))
				return nil
			})

		resp, err := deps.service.Create(context.Background(), deps.tenantID, salarycatalog.CreateDefinitionRequest{
			Code:            " hra ",
			Name:            "HRA",
			Category:        salarysnapshot.CategoryEarning,
			CalculationType: salarysnapshot.CalcFixed,
			Amount:          decPtr("12500.125"),
		})

		require.NoError(t, err)
		assert.Equal(t, "HRA", resp.Code)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("fixed without amount is rejected before any write", func(t *testing.T) {
		deps := setupCatalogTest(t)

		_, err := deps.service.Create(context.Background(), deps.tenantID, salarycatalog.CreateDefinitionRequest{
			Code:            "BONUS",
			Name:            "Bonus",
			Category:        salarysnapshot.CategoryEarning,
			CalculationType: salarysnapshot.CalcFixed,
		})

		assert.ErrorIs(t, err, salarycatalogerrors.ErrInvalidDefinition)
		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "amount", appErr.Details["field"])
	})

	t.Run("basic as percent of basic is rejected", func(t *testing.T) {
		deps := setupCatalogTest(t)

		_, err := deps.service.Create(context.Background(), deps.tenantID, salarycatalog.CreateDefinitionRequest{
			Code:            "basic",
			Name:            "Basic",
			Category:        salarysnapshot.CategoryEarning,
			CalculationType: salarysnapshot.CalcPercentOfBasic,
			Percentage:      decPtr("50"),
		})

		assert.ErrorIs(t, err, salarycatalogerrors.ErrInvalidDefinition)
	})

	t.Run("duplicate code maps to conflict", func(t *testing.T) {
		deps := setupCatalogTest(t)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_salary_definition_code"})

		_, err := deps.service.Create(context.Background(), deps.tenantID, salarycatalog.CreateDefinitionRequest{
			Code:            "PF",
			Name:            "Provident Fund",
			Category:        salarysnapshot.CategoryEmployeeDeduction,
			CalculationType: salarysnapshot.CalcPercentOfBasic,
			Percentage:      decPtr("12"),
		})

		assert.ErrorIs(t, err, salarycatalogerrors.ErrDefinitionCodeExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestCatalogService_SetActive(t *testing.T) {
	deps := setupCatalogTest(t)

	deps.repo.EXPECT().SetActive(gomock.Any(), deps.tenantID, "HRA", false).Return(nil)
	deps.repo.EXPECT().SetActive(gomock.Any(), deps.tenantID, "NOPE", true).Return(gorm.ErrRecordNotFound)

	assert.NoError(t, deps.service.SetActive(context.Background(), deps.tenantID, "hra", false))
	assert.ErrorIs(t,
		deps.service.SetActive(context.Background(), deps.tenantID, "nope", true),
		salarycatalogerrors.ErrDefinitionNotFound,
	)
}

func TestCatalogService_Resolve(t *testing.T) {
	t.Run("resolves each calculation type", func(t *testing.T) {
		deps := setupCatalogTest(t)
		deps.repo.EXPECT().FindAll(gomock.Any(), deps.tenantID, true).Return([]salarycatalog.Definition{
			definition("BASIC", "Basic", salarysnapshot.CategoryEarning, salarysnapshot.CalcPercentOfCTC, "", "40"),
			definition("HRA", "HRA", salarysnapshot.CategoryEarning, salarysnapshot.CalcPercentOfBasic, "", "50"),
			definition("PF", "Provident Fund", salarysnapshot.CategoryEmployerContribution, salarysnapshot.CalcPercentOfBasic, "", "12"),
			definition("PT", "Professional Tax", salarysnapshot.CategoryEmployeeDeduction, salarysnapshot.CalcFixed, "200", ""),
		}, nil)

		inputs, err := deps.service.Resolve(context.Background(), deps.tenantID, dec("1200000"))
		require.NoError(t, err)
		require.Len(t, inputs, 4)

		want := map[string]string{
			"Basic":            "40000.00",
			"HRA":              "20000.00",
			"Provident Fund":   "4800.00",
			"Professional Tax": "200.00",
		}
		for _, in := range inputs {
			require.NotNil(t, in.MonthlyAmount)
			assert.Equal(t, want[in.Name], in.MonthlyAmount.StringFixed(2), in.Name)
		}
		require.NotNil(t, inputs[1].Percentage)
		assert.True(t, inputs[1].Percentage.Equal(dec("50")))
	})

	t.Run("percent of basic falls back to default basic ratio", func(t *testing.T) {
		deps := setupCatalogTest(t)
		deps.repo.EXPECT().FindAll(gomock.Any(), deps.tenantID, true).Return([]salarycatalog.Definition{
			definition("HRA", "HRA", salarysnapshot.CategoryEarning, salarysnapshot.CalcPercentOfBasic, "", "40"),
		}, nil)

		inputs, err := deps.service.Resolve(context.Background(), deps.tenantID, dec("1200000"))
		require.NoError(t, err)
		require.Len(t, inputs, 1)
		// basic = 1,200,000 / 12 * 0.50 = 50,000
		assert.Equal(t, "20000.00", inputs[0].MonthlyAmount.StringFixed(2))
	})

	t.Run("percent of ctc rounds a half cent up", func(t *testing.T) {
		deps := setupCatalogTest(t)
		deps.repo.EXPECT().FindAll(gomock.Any(), deps.tenantID, true).Return([]salarycatalog.Definition{
			definition("DA", "Dearness Allowance", salarysnapshot.CategoryEarning, salarysnapshot.CalcPercentOfCTC, "", "30"),
		}, nil)

		inputs, err := deps.service.Resolve(context.Background(), deps.tenantID, dec("1000003"))
		require.NoError(t, err)
		require.Len(t, inputs, 1)
		// 1,000,003 * 30 / 1200 = 25,000.075
		assert.Equal(t, "25000.08", inputs[0].MonthlyAmount.StringFixed(2))
	})

	t.Run("empty catalog", func(t *testing.T) {
		deps := setupCatalogTest(t)
		deps.repo.EXPECT().FindAll(gomock.Any(), deps.tenantID, true).Return(nil, nil)

		_, err := deps.service.Resolve(context.Background(), deps.tenantID, dec("1200000"))
		assert.ErrorIs(t, err, salarycatalogerrors.ErrEmptyCatalog)
	})

	t.Run("store timeout", func(t *testing.T) {
		deps := setupCatalogTest(t)
		deps.repo.EXPECT().FindAll(gomock.Any(), deps.tenantID, true).Return(nil, context.DeadlineExceeded)

		_, err := deps.service.Resolve(context.Background(), deps.tenantID, dec("1200000"))
		assert.ErrorIs(t, err, apperror.ErrStoreTimeout)
	})
}
