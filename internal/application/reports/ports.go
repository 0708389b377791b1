package reports

import "io"

// Table datos tabulares listos para exportar (cabeceras + filas de texto).
type Table struct {
	Title   string
	Dataset string
	Headers []string
	Rows    [][]string
}

// TableRenderer serializa una Table en un formato concreto.
type TableRenderer interface {
	ContentType() string
	Extension() string
	Render(w io.Writer, t Table) error
}

// RendererProvider elige el renderer según formato y charset.
// Un formato o charset no soportado devuelve domain.ErrInvalidInput.
type RendererProvider interface {
	Renderer(format, charset string) (TableRenderer, error)
}
