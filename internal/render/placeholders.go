package render

import (
	"regexp"
	"strings"

	"go-hrdocs/internal/composer"
)

// PlaceholderPrefix marks a per-section repeating block in a template,
// written as {{section:<sectionKey>}}.
const PlaceholderPrefix = "section:"

type BlockRow struct {
	Name    string `json:"name"`
	Monthly string `json:"monthly,omitempty"`
	Annual  string `json:"annual,omitempty"`
}

type Block struct {
	Title       string     `json:"title"`
	Rows        []BlockRow `json:"rows"`
	Total       string     `json:"total,omitempty"`
	TotalYearly string     `json:"totalYearly,omitempty"`
	TotalLabel  string     `json:"totalLabel,omitempty"`
}

// Placeholders maps "section:<sectionKey>" to the formatted rows of that
// section.
func Placeholders(model composer.RenderModel) map[string]Block {
	out := make(map[string]Block, len(model.Sections))
	for _, sec := range model.Sections {
		b := Block{
			Title:       sec.Title,
			Rows:        make([]BlockRow, 0, len(sec.Rows)),
			Total:       formatAmount(sec.Total),
			TotalYearly: formatAmount(sec.TotalYearly),
			TotalLabel:  sec.TotalLabel,
		}
		for _, r := range sec.Rows {
			b.Rows = append(b.Rows, BlockRow{
				Name:    r.Name,
				Monthly: formatAmount(r.MonthlyAmount),
				Annual:  formatAmount(r.AnnualAmount),
			})
		}
		out[PlaceholderPrefix+sec.SectionKey] = b
	}
	return out
}

var markerPattern = regexp.MustCompile(`\{\{\s*section:([A-Za-z0-9_\-]+)\s*\}\}`)

// Fill replaces each section marker in tmpl with a plain-text table of
// that section. Markers for unknown sections are left in place.
func Fill(tmpl string, model composer.RenderModel) string {
	blocks := Placeholders(model)
	return markerPattern.ReplaceAllStringFunc(tmpl, func(m string) string {
		key := markerPattern.FindStringSubmatch(m)[1]
		b, ok := blocks[PlaceholderPrefix+key]
		if !ok {
			return m
		}
		return b.text()
	})
}

func (b Block) text() string {
	var sb strings.Builder
	sb.WriteString(b.Title)
	for _, r := range b.Rows {
		sb.WriteString("\n")
		sb.WriteString(joinCells(r.Name, r.Monthly, r.Annual))
	}
	if b.Total != "" {
		label := b.TotalLabel
		if label == "" {
			label = "Total"
		}
		sb.WriteString("\n")
		sb.WriteString(joinCells(label, b.Total, b.TotalYearly))
	}
	return sb.String()
}
