// Package render turns a composed RenderModel into downloadable artifacts
// and template placeholder blocks.
package render

import (
	"context"
	"net/http"

	"go-hrdocs/internal/composer"
	"go-hrdocs/internal/shared/apperror"

	"github.com/shopspring/decimal"
)

const (
	FormatNone = "none"
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

var ErrUnsupportedFormat = apperror.New(
	apperror.CodeInvalidInput,
	"Unsupported document format",
	http.StatusBadRequest,
)

type Artifact struct {
	Content     []byte
	ContentType string
	Extension   string
}

//go:generate mockgen -source=render.go -destination=mock/render_mock.go -package=mock
type Renderer interface {
	Render(ctx context.Context, model composer.RenderModel) (Artifact, error)
}

// ForFormat returns the renderer for format. FormatNone yields nil.
func ForFormat(format string) (Renderer, error) {
	switch format {
	case "", FormatNone:
		return nil, nil
	case FormatPDF:
		return PDF{}, nil
	case FormatXLSX:
		return XLSX{}, nil
	}
	return nil, ErrUnsupportedFormat.WithDetails(map[string]any{"format": format})
}

func formatAmount(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}
