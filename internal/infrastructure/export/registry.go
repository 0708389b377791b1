package export

import (
	"fmt"
	"strings"

	"github.com/jhoicas/almacen-api/internal/application/reports"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/infrastructure/pdf"
)

var _ reports.RendererProvider = (*Registry)(nil)

// Registry resuelve el renderer por formato (csv, json, xml, pdf).
// El charset solo aplica a CSV.
type Registry struct {
	renderers map[string]reports.TableRenderer
}

// NewRegistry registra los formatos soportados.
func NewRegistry() *Registry {
	return &Registry{renderers: map[string]reports.TableRenderer{
		"json": JSONRenderer{},
		"xml":  XMLRenderer{},
		"pdf":  pdf.NewTableRenderer(),
	}}
}

// Renderer devuelve el renderer o ErrInvalidInput.
func (r *Registry) Renderer(format, charset string) (reports.TableRenderer, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "csv" {
		c, ok := csvRenderer(charset)
		if !ok {
			return nil, fmt.Errorf("%w: charset %q no soportado", domain.ErrInvalidInput, charset)
		}
		return c, nil
	}
	if NormalizeCharset(charset) != CharsetUTF8 {
		return nil, fmt.Errorf("%w: charset solo aplica a csv", domain.ErrInvalidInput)
	}
	tr, ok := r.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: formato %q no soportado", domain.ErrInvalidInput, format)
	}
	return tr, nil
}
