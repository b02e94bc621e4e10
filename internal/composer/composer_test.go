package composer_test

import (
	"encoding/json"
	"testing"

	"go-hrdocs/internal/composer"
	"go-hrdocs/internal/docconfig"
	"go-hrdocs/internal/salarysnapshot"
	"go-hrdocs/internal/shared/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func component(name, category, monthly string) salarysnapshot.Component {
	m := decimal.RequireFromString(monthly)
	return salarysnapshot.Component{
		ID:            uuid.New(),
		Name:          name,
		Category:      category,
		MonthlyAmount: m,
		AnnualAmount:  money.Annualize(m),
	}
}

func snapshot(components ...salarysnapshot.Component) *salarysnapshot.Snapshot {
	return &salarysnapshot.Snapshot{
		ID:         uuid.New(),
		SubjectID:  uuid.New(),
		Version:    4,
		Components: components,
	}
}

func config(sections ...docconfig.Section) *docconfig.Config {
	return &docconfig.Config{
		DocumentType: docconfig.TypeCTCAnnexure,
		Sections:     datatypes.NewJSONType(sections),
	}
}

func standardSnapshot() *salarysnapshot.Snapshot {
	return snapshot(
		component("Basic", salarysnapshot.CategoryEarning, "50000"),
		component("HRA", salarysnapshot.CategoryEarning, "20000"),
		component("Allowance", salarysnapshot.CategoryEarning, "10000"),
		component("Provident Fund", salarysnapshot.CategoryEmployerContribution, "1800"),
		component("Professional Tax", salarysnapshot.CategoryEmployeeDeduction, "200"),
	)
}

func rowNames(s composer.Section) []string {
	names := make([]string, len(s.Rows))
	for i, r := range s.Rows {
		names[i] = r.Name
	}
	return names
}

func TestCompose_IncludeSpecificUsesSectionOrder(t *testing.T) {
	model := composer.Compose(standardSnapshot(), config(docconfig.Section{
		SectionKey: "earnings",
		DataSource: docconfig.SourceEarnings,
		Mode:       docconfig.ModeIncludeSpecific,
		Components: []string{"HRA", "Gratuity", "Basic"},
		Columns:    docconfig.Columns{Monthly: true},
	}))

	require.Len(t, model.Sections, 1)
	assert.Equal(t, []string{"HRA", "Basic"}, rowNames(model.Sections[0]))
	assert.Nil(t, model.Sections[0].Total)
}

func TestCompose_ExcludeSpecific(t *testing.T) {
	model := composer.Compose(standardSnapshot(), config(docconfig.Section{
		SectionKey: "earnings",
		DataSource: docconfig.SourceEarnings,
		Mode:       docconfig.ModeExcludeSpecific,
		Components: []string{"Allowance"},
		Columns:    docconfig.Columns{Monthly: true},
	}))

	assert.Equal(t, []string{"Basic", "HRA"}, rowNames(model.Sections[0]))
}

func TestCompose_TotalsOverProjectedRows(t *testing.T) {
	model := composer.Compose(standardSnapshot(), config(docconfig.Section{
		SectionKey: "earnings",
		DataSource: docconfig.SourceEarnings,
		Mode:       docconfig.ModeIncludeSpecific,
		Components: []string{"Basic", "HRA"},
		Columns:    docconfig.Columns{Monthly: true, Yearly: true},
		ShowTotal:  true,
		TotalLabel: "Gross",
	}))

	sec := model.Sections[0]
	require.NotNil(t, sec.Total)
	require.NotNil(t, sec.TotalYearly)
	assert.Equal(t, "70000.00", sec.Total.StringFixed(2))
	assert.Equal(t, "840000.00", sec.TotalYearly.StringFixed(2))
	assert.Equal(t, "Gross", sec.TotalLabel)
}

func TestCompose_ColumnsProjection(t *testing.T) {
	snap := standardSnapshot()
	model := composer.Compose(snap, config(
		docconfig.Section{SectionKey: "monthly", DataSource: docconfig.SourceEarnings, Mode: docconfig.ModeIncludeAll, Columns: docconfig.Columns{Monthly: true}, ShowTotal: true},
		docconfig.Section{SectionKey: "yearly", DataSource: docconfig.SourceEarnings, Mode: docconfig.ModeIncludeAll, Columns: docconfig.Columns{Yearly: true}},
		docconfig.Section{SectionKey: "names", DataSource: docconfig.SourceEarnings, Mode: docconfig.ModeIncludeAll},
	))

	require.Len(t, model.Sections, 3)
	for _, r := range model.Sections[0].Rows {
		assert.NotNil(t, r.MonthlyAmount)
		assert.Nil(t, r.AnnualAmount)
	}
	assert.Nil(t, model.Sections[0].TotalYearly)
	assert.Equal(t, "80000.00", model.Sections[0].Total.StringFixed(2))

	for _, r := range model.Sections[1].Rows {
		assert.Nil(t, r.MonthlyAmount)
		assert.NotNil(t, r.AnnualAmount)
	}
	for _, r := range model.Sections[2].Rows {
		assert.Nil(t, r.MonthlyAmount)
		assert.Nil(t, r.AnnualAmount)
	}
	assert.Len(t, model.Sections[2].Rows, 3)
}

func TestCompose_EmptySectionIsKept(t *testing.T) {
	snap := snapshot(component("Basic", salarysnapshot.CategoryEarning, "50000"))
	model := composer.Compose(snap, config(
		docconfig.Section{SectionKey: "employer_contributions", DataSource: docconfig.SourceEmployerContributions, Mode: docconfig.ModeIncludeAll, ShowTotal: true, Columns: docconfig.Columns{Monthly: true}},
		docconfig.Section{SectionKey: "earnings", DataSource: docconfig.SourceEarnings, Mode: docconfig.ModeIncludeAll},
	))

	require.Len(t, model.Sections, 2)
	empty := model.Sections[0]
	assert.Equal(t, "Employer Contributions", empty.Title)
	assert.Empty(t, empty.Rows)
	assert.NotNil(t, empty.Rows)
	assert.True(t, empty.Total.IsZero())
	assert.Equal(t, "earnings", model.Sections[1].SectionKey)
}

func TestCompose_AllSourceMatchesByCategoryAndName(t *testing.T) {
	snap := snapshot(
		component("Basic", salarysnapshot.CategoryEarning, "50000"),
		component("Insurance", salarysnapshot.CategoryEmployeeDeduction, "500"),
		component("Insurance", salarysnapshot.CategoryEmployerContribution, "700"),
	)
	model := composer.Compose(snap, config(docconfig.Section{
		SectionKey: "insurance",
		DataSource: docconfig.SourceAll,
		Mode:       docconfig.ModeIncludeSpecific,
		Components: []string{"Insurance"},
		Columns:    docconfig.Columns{Monthly: true},
	}))

	rows := model.Sections[0].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, salarysnapshot.CategoryEmployeeDeduction, rows[0].Category)
	assert.Equal(t, salarysnapshot.CategoryEmployerContribution, rows[1].Category)
}

func TestCompose_Deterministic(t *testing.T) {
	snap := standardSnapshot()
	cfg, _ := docconfig.DefaultConfig(docconfig.TypeCTCAnnexure)

	first, err := json.Marshal(composer.Compose(snap, cfg))
	require.NoError(t, err)
	second, err := json.Marshal(composer.Compose(snap, cfg))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCompose_DoesNotMutateInputs(t *testing.T) {
	snap := standardSnapshot()
	before := snap.Clone()
	cfg := config(docconfig.Section{
		SectionKey: "earnings",
		DataSource: docconfig.SourceEarnings,
		Mode:       docconfig.ModeIncludeAll,
		Columns:    docconfig.Columns{Monthly: true},
	})

	model := composer.Compose(snap, cfg)
	*model.Sections[0].Rows[0].MonthlyAmount = decimal.NewFromInt(1)

	assert.Equal(t, before.Components, snap.Components)
}

func TestRenderModel_Clone(t *testing.T) {
	model := composer.Compose(standardSnapshot(), config(docconfig.Section{
		SectionKey: "earnings",
		DataSource: docconfig.SourceEarnings,
		Mode:       docconfig.ModeIncludeAll,
		Columns:    docconfig.Columns{Monthly: true},
		ShowTotal:  true,
	}))
	cp := model.Clone()

	*model.Sections[0].Rows[0].MonthlyAmount = decimal.NewFromInt(1)
	*model.Sections[0].Total = decimal.NewFromInt(2)
	model.Sections[0].Rows[1].Name = "changed"

	assert.Equal(t, "50000.00", cp.Sections[0].Rows[0].MonthlyAmount.StringFixed(2))
	assert.Equal(t, "80000.00", cp.Sections[0].Total.StringFixed(2))
	assert.Equal(t, "HRA", cp.Sections[0].Rows[1].Name)
}
