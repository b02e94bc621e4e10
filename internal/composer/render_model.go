package composer

import "github.com/shopspring/decimal"

// Row is one projected component. An amount is nil when its column was
// not requested.
type Row struct {
	Name          string           `json:"name"`
	Category      string           `json:"category"`
	MonthlyAmount *decimal.Decimal `json:"monthlyAmount,omitempty"`
	AnnualAmount  *decimal.Decimal `json:"annualAmount,omitempty"`
}

type Section struct {
	SectionKey  string           `json:"sectionKey"`
	Title       string           `json:"title"`
	Columns     Columns          `json:"columns"`
	Rows        []Row            `json:"rows"`
	Total       *decimal.Decimal `json:"total,omitempty"`
	TotalYearly *decimal.Decimal `json:"totalYearly,omitempty"`
	TotalLabel  string           `json:"totalLabel,omitempty"`
}

type Columns struct {
	Monthly bool `json:"monthly"`
	Yearly  bool `json:"yearly"`
}

// RenderModel is the composer output handed to templating and renderers.
// Section order is render order.
type RenderModel struct {
	DocumentType    string    `json:"documentType"`
	SubjectID       string    `json:"subjectId"`
	SnapshotID      string    `json:"snapshotId"`
	SnapshotVersion int       `json:"snapshotVersion"`
	Sections        []Section `json:"sections"`
}

func (m RenderModel) Clone() RenderModel {
	cp := m
	cp.Sections = make([]Section, len(m.Sections))
	for i, s := range m.Sections {
		s.Total = cloneAmount(s.Total)
		s.TotalYearly = cloneAmount(s.TotalYearly)
		rows := make([]Row, len(s.Rows))
		for j, r := range s.Rows {
			r.MonthlyAmount = cloneAmount(r.MonthlyAmount)
			r.AnnualAmount = cloneAmount(r.AnnualAmount)
			rows[j] = r
		}
		s.Rows = rows
		cp.Sections[i] = s
	}
	return cp
}

func cloneAmount(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
