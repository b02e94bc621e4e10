package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"go-hrdocs/internal/composer"
)

// maxPDFLines is what fits on one A4 page at 14pt leading.
const maxPDFLines = 54

type PDF struct{}

func (PDF) Render(_ context.Context, model composer.RenderModel) (Artifact, error) {
	content, err := buildSinglePagePDF(pdfLines(model))
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Content: content, ContentType: "application/pdf", Extension: "pdf"}, nil
}

func pdfLines(model composer.RenderModel) []string {
	lines := []string{
		strings.ReplaceAll(model.DocumentType, "_", " "),
		fmt.Sprintf("Salary structure version %d", model.SnapshotVersion),
		"",
	}
	for _, sec := range model.Sections {
		lines = append(lines, sec.Title)
		for _, r := range sec.Rows {
			lines = append(lines, joinCells("  "+r.Name, formatAmount(r.MonthlyAmount), formatAmount(r.AnnualAmount)))
		}
		if sec.Total != nil {
			label := sec.TotalLabel
			if label == "" {
				label = "Total"
			}
			lines = append(lines, joinCells("  "+label, formatAmount(sec.Total), formatAmount(sec.TotalYearly)))
		}
		lines = append(lines, "")
	}

	if len(lines) > maxPDFLines {
		lines = append(lines[:maxPDFLines-1], "...")
	}
	return lines
}

func joinCells(cells ...string) string {
	parts := make([]string, 0, len(cells))
	for _, c := range cells {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, "    ")
}

func buildSinglePagePDF(lines []string) ([]byte, error) {
	if len(lines) == 0 {
		lines = []string{"Document"}
	}

	var content strings.Builder
	content.WriteString("BT\n/F1 11 Tf\n14 TL\n50 800 Td\n")
	for i, line := range lines {
		escaped := pdfEscape(line)
		if i == 0 {
			fmt.Fprintf(&content, "(%s) Tj\n", escaped)
			continue
		}
		fmt.Fprintf(&content, "T* (%s) Tj\n", escaped)
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)
	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n", len(offsets))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		fmt.Fprintf(&out, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart)

	return out.Bytes(), nil
}

// pdfEscape escapes string literal delimiters and drops bytes outside
// printable ASCII, which the standard Helvetica encoding cannot show.
func pdfEscape(v string) string {
	var b strings.Builder
	for _, r := range v {
		switch {
		case r == '\\' || r == '(' || r == ')':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r >= 0x20 && r < 0x7f:
			b.WriteRune(r)
		default:
			b.WriteByte('?')
		}
	}
	return b.String()
}
