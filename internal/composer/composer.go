// Package composer projects a salary snapshot through a document view
// configuration. Compose does no I/O and is deterministic.
package composer

import (
	"go-hrdocs/internal/docconfig"
	"go-hrdocs/internal/salarysnapshot"
	"go-hrdocs/internal/shared/money"

	"github.com/shopspring/decimal"
)

var sourceCategory = map[string]string{
	docconfig.SourceEarnings:              salarysnapshot.CategoryEarning,
	docconfig.SourceEmployeeDeductions:    salarysnapshot.CategoryEmployeeDeduction,
	docconfig.SourceEmployerContributions: salarysnapshot.CategoryEmployerContribution,
}

// Compose builds the render model for snap under cfg. Every configured
// section is emitted, even when no component survives its filter.
func Compose(snap *salarysnapshot.Snapshot, cfg *docconfig.Config) RenderModel {
	model := RenderModel{
		DocumentType:    cfg.DocumentType,
		SubjectID:       snap.SubjectID.String(),
		SnapshotID:      snap.ID.String(),
		SnapshotVersion: snap.Version,
	}

	sections := cfg.SectionList()
	model.Sections = make([]Section, 0, len(sections))
	for _, sec := range sections {
		model.Sections = append(model.Sections, composeSection(snap.Components, sec))
	}
	return model
}

func composeSection(components []salarysnapshot.Component, sec docconfig.Section) Section {
	out := Section{
		SectionKey: sec.SectionKey,
		Title:      sec.Title,
		Columns:    Columns{Monthly: sec.Columns.Monthly, Yearly: sec.Columns.Yearly},
		Rows:       []Row{},
	}
	if out.Title == "" {
		out.Title = docconfig.DefaultTitle(sec.SectionKey)
	}

	selected := filter(candidates(components, sec.DataSource), sec)

	monthly := make([]decimal.Decimal, 0, len(selected))
	annual := make([]decimal.Decimal, 0, len(selected))
	for _, c := range selected {
		row := Row{Name: c.Name, Category: c.Category}
		if sec.Columns.Monthly {
			m := c.MonthlyAmount
			row.MonthlyAmount = &m
		}
		if sec.Columns.Yearly {
			a := c.AnnualAmount
			row.AnnualAmount = &a
		}
		out.Rows = append(out.Rows, row)
		monthly = append(monthly, c.MonthlyAmount)
		annual = append(annual, c.AnnualAmount)
	}

	if sec.ShowTotal {
		total := money.Sum(monthly...)
		out.Total = &total
		out.TotalLabel = sec.TotalLabel
		if sec.Columns.Yearly {
			totalYearly := money.Sum(annual...)
			out.TotalYearly = &totalYearly
		}
	}
	return out
}

func candidates(components []salarysnapshot.Component, dataSource string) []salarysnapshot.Component {
	if dataSource == docconfig.SourceAll {
		return components
	}
	category, ok := sourceCategory[dataSource]
	if !ok {
		return nil
	}
	out := make([]salarysnapshot.Component, 0, len(components))
	for _, c := range components {
		if c.Category == category {
			out = append(out, c)
		}
	}
	return out
}

// filter applies the section mode. Matching is by name within the
// candidate set, so with dataSource "all" an earning and a deduction that
// share a name are distinct rows, each kept or dropped on its own.
func filter(cands []salarysnapshot.Component, sec docconfig.Section) []salarysnapshot.Component {
	switch sec.Mode {
	case docconfig.ModeIncludeSpecific:
		out := make([]salarysnapshot.Component, 0, len(sec.Components))
		seen := make(map[string]bool, len(sec.Components))
		for _, name := range sec.Components {
			if seen[name] {
				continue
			}
			seen[name] = true
			for _, c := range cands {
				if c.Name == name {
					out = append(out, c)
				}
			}
		}
		return out
	case docconfig.ModeExcludeSpecific:
		excluded := make(map[string]bool, len(sec.Components))
		for _, name := range sec.Components {
			excluded[name] = true
		}
		out := make([]salarysnapshot.Component, 0, len(cands))
		for _, c := range cands {
			if !excluded[c.Name] {
				out = append(out, c)
			}
		}
		return out
	default:
		return append([]salarysnapshot.Component(nil), cands...)
	}
}
