package docconfig

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/datatypes"
)

// DefaultTitle derives a heading from a section key:
// "employer_contributions" becomes "Employer Contributions".
func DefaultTitle(sectionKey string) string {
	words := strings.FieldsFunc(sectionKey, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	// A Caser keeps state between calls and cannot be shared.
	return cases.Title(language.English).String(strings.Join(words, " "))
}

var monthlyYearly = Columns{Monthly: true, Yearly: true}

var defaultSections = map[string][]Section{
	TypeJoiningLetter: {
		{SectionKey: "earnings", DataSource: SourceEarnings, Mode: ModeIncludeAll, Columns: monthlyYearly, ShowTotal: true, TotalLabel: "Gross Salary"},
		{SectionKey: "employer_contributions", DataSource: SourceEmployerContributions, Mode: ModeIncludeAll, Columns: monthlyYearly, ShowTotal: true, TotalLabel: "Total Employer Contributions"},
	},
	TypeCTCAnnexure: {
		{SectionKey: "earnings", DataSource: SourceEarnings, Mode: ModeIncludeAll, Columns: monthlyYearly, ShowTotal: true, TotalLabel: "Total Earnings"},
		{SectionKey: "employee_deductions", DataSource: SourceEmployeeDeductions, Mode: ModeIncludeAll, Columns: monthlyYearly, ShowTotal: true, TotalLabel: "Total Deductions"},
		{SectionKey: "employer_contributions", DataSource: SourceEmployerContributions, Mode: ModeIncludeAll, Columns: monthlyYearly, ShowTotal: true, TotalLabel: "Total Employer Contributions"},
	},
	TypePayslip: {
		{SectionKey: "earnings", DataSource: SourceEarnings, Mode: ModeIncludeAll, Columns: Columns{Monthly: true}, ShowTotal: true, TotalLabel: "Gross Earnings"},
		{SectionKey: "employee_deductions", DataSource: SourceEmployeeDeductions, Mode: ModeIncludeAll, Columns: Columns{Monthly: true}, ShowTotal: true, TotalLabel: "Total Deductions"},
	},
}

// DefaultConfig returns the built-in configuration for documentType. There
// is no built-in offer letter layout.
func DefaultConfig(documentType string) (*Config, bool) {
	sections, ok := defaultSections[documentType]
	if !ok {
		return nil, false
	}

	out := make([]Section, len(sections))
	for i, s := range sections {
		s.Title = DefaultTitle(s.SectionKey)
		out[i] = s
	}

	return &Config{
		ID:           uuid.Nil,
		DocumentType: documentType,
		Name:         "default",
		Sections:     datatypes.NewJSONType(out),
		IsActive:     true,
	}, true
}
