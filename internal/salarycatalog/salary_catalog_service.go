package salarycatalog

import (
	"context"
	"database/sql"
	"strings"

	salarycatalogerrors "go-hrdocs/internal/salarycatalog/errors"
	"go-hrdocs/internal/salarysnapshot"
	"go-hrdocs/internal/shared/contextutil"
	"go-hrdocs/internal/shared/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=salary_catalog_service.go -destination=mock/salary_catalog_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, tenantID string, req CreateDefinitionRequest) (DefinitionResponse, error)
	SetActive(ctx context.Context, tenantID, code string, active bool) error
	List(ctx context.Context, tenantID string, activeOnly bool) ([]DefinitionResponse, error)
	// Resolve turns the active definitions into snapshot component inputs
	// for annualCTC. Inactive definitions are skipped.
	Resolve(ctx context.Context, tenantID string, annualCTC decimal.Decimal) ([]salarysnapshot.ComponentInput, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("salarycatalog.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salarycatalog.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, tenantID string, req CreateDefinitionRequest) (DefinitionResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	tenantUUID, err := uuid.Parse(tenantID)
	if err != nil {
		return DefinitionResponse{}, salarycatalogerrors.ErrInvalidDefinition.WithDetails(map[string]any{"tenant_id": tenantID})
	}

	code := normalizeCode(req.Code)
	if err := validateDefinition(code, req); err != nil {
		return DefinitionResponse{}, err
	}

	def := &Definition{
		ID:              uuid.New(),
		TenantID:        tenantUUID,
		Code:            code,
		Name:            strings.TrimSpace(req.Name),
		Category:        req.Category,
		CalculationType: req.CalculationType,
		ProRata:         req.ProRata,
		Taxable:         req.Taxable,
		Removable:       true,
		IsActive:        true,
		Position:        req.Position,
	}
	if req.Removable != nil {
		def.Removable = *req.Removable
	}
	if req.Amount != nil {
		def.Amount = decimal.NewNullDecimal(money.Round(*req.Amount))
	}
	if req.Percentage != nil {
		def.Percentage = decimal.NewNullDecimal(*req.Percentage)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create salary definition begin tx failed", zap.Error(err))
		return DefinitionResponse{}, mapRepositoryError(err)
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, def); err != nil {
		log.Error("create salary definition failed", zap.String("code", code), zap.Error(err))
		return DefinitionResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("create salary definition commit failed", zap.Error(err))
		return DefinitionResponse{}, mapRepositoryError(err)
	}

	log.Info("salary definition created", zap.String("code", code), zap.String("category", def.Category))
	return mapToResponse(*def), nil
}

func (s *service) SetActive(ctx context.Context, tenantID, code string, active bool) error {
	log := contextutil.GetLogger(ctx, s.logger)
	code = normalizeCode(code)

	if err := s.repo.SetActive(ctx, tenantID, code, active); err != nil {
		return mapRepositoryError(err)
	}

	log.Info("salary definition toggled", zap.String("code", code), zap.Bool("active", active))
	return nil
}

func (s *service) List(ctx context.Context, tenantID string, activeOnly bool) ([]DefinitionResponse, error) {
	defs, err := s.repo.FindAll(ctx, tenantID, activeOnly)
	if err != nil {
		s.logger.Error("list salary definitions failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]DefinitionResponse, len(defs))
	for i, d := range defs {
		res[i] = mapToResponse(d)
	}
	return res, nil
}

func (s *service) Resolve(
	ctx context.Context,
	tenantID string,
	annualCTC decimal.Decimal,
) ([]salarysnapshot.ComponentInput, error) {
	defs, err := s.repo.FindAll(ctx, tenantID, true)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if len(defs) == 0 {
		return nil, salarycatalogerrors.ErrEmptyCatalog.WithDetails(map[string]any{"tenant_id": tenantID})
	}

	basic := basicMonthly(defs, annualCTC)

	inputs := make([]salarysnapshot.ComponentInput, 0, len(defs))
	for _, d := range defs {
		monthly := monthlyAmount(d, annualCTC, basic)
		removable := d.Removable
		in := salarysnapshot.ComponentInput{
			Name:            d.Name,
			Category:        d.Category,
			MonthlyAmount:   &monthly,
			CalculationType: d.CalculationType,
			ProRata:         d.ProRata,
			Taxable:         d.Taxable,
			Removable:       &removable,
		}
		if d.Percentage.Valid {
			pct := d.Percentage.Decimal
			in.Percentage = &pct
		}
		inputs = append(inputs, in)
	}

	contextutil.GetLogger(ctx, s.logger).Debug("salary catalog resolved",
		zap.String("tenant_id", tenantID),
		zap.Int("components", len(inputs)),
	)
	return inputs, nil
}

// basicMonthly is the monthly Basic that PERCENT_OF_BASIC entries apply to:
// the BASIC definition when one is active, else the default CTC split ratio.
func basicMonthly(defs []Definition, annualCTC decimal.Decimal) decimal.Decimal {
	for _, d := range defs {
		if d.Code == CodeBasic && d.CalculationType != salarysnapshot.CalcPercentOfBasic {
			return monthlyAmount(d, annualCTC, decimal.Zero)
		}
	}
	return money.MonthlyShare(annualCTC, salarysnapshot.BasicRatio)
}

func monthlyAmount(d Definition, annualCTC, basic decimal.Decimal) decimal.Decimal {
	switch d.CalculationType {
	case salarysnapshot.CalcPercentOfCTC:
		return money.MonthlyPercent(annualCTC, d.Percentage.Decimal)
	case salarysnapshot.CalcPercentOfBasic:
		return money.Percent(basic, d.Percentage.Decimal)
	default:
		return money.Round(d.Amount.Decimal)
	}
}

func validateDefinition(code string, req CreateDefinitionRequest) error {
	fail := func(field, reason string) error {
		return salarycatalogerrors.ErrInvalidDefinition.WithDetails(map[string]any{
			"code":   code,
			"field":  field,
			"reason": reason,
		})
	}

	if code == "" {
		return fail("code", "required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return fail("name", "required")
	}
	if !salarysnapshot.ValidCategory(req.Category) {
		return fail("category", "unknown category")
	}
	if !salarysnapshot.ValidCalculationType(req.CalculationType) {
		return fail("calculationType", "unknown calculation type")
	}

	if req.CalculationType == salarysnapshot.CalcFixed {
		if req.Amount == nil {
			return fail("amount", "required for FIXED")
		}
		if req.Amount.IsNegative() {
			return fail("amount", "must not be negative")
		}
		return nil
	}

	if req.Percentage == nil {
		return fail("percentage", "required for percentage calculations")
	}
	if req.Percentage.IsNegative() {
		return fail("percentage", "must not be negative")
	}
	if code == CodeBasic && req.CalculationType == salarysnapshot.CalcPercentOfBasic {
		return fail("calculationType", "BASIC cannot be a percentage of itself")
	}
	return nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
