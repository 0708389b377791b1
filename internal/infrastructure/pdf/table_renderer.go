// Package pdf genera reportes tabulares en PDF con Maroto v2.
//
// Layout de la página A4 (horizontal si la tabla tiene muchas columnas):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  TÍTULO del reporte              │  Fecha de generación      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CABECERA de la tabla (fondo azul)                           │
//	│  filas...                                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Total de registros                                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"io"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/almacen-api/internal/application/reports"
)

// gridSize columnas de la grilla de Maroto.
const gridSize = 12

var (
	colorPrimary = &props.Color{Red: 44, Green: 90, Blue: 160}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 250}
)

var _ reports.TableRenderer = (*TableRenderer)(nil)

// TableRenderer implementa reports.TableRenderer en PDF.
type TableRenderer struct {
	now func() time.Time
}

// NewTableRenderer construye el renderer.
func NewTableRenderer() *TableRenderer { return &TableRenderer{now: time.Now} }

func (r *TableRenderer) ContentType() string { return "application/pdf" }
func (r *TableRenderer) Extension() string   { return "pdf" }

// Render genera el documento y escribe sus bytes en w.
func (r *TableRenderer) Render(w io.Writer, t reports.Table) error {
	if len(t.Headers) == 0 {
		return fmt.Errorf("pdf: tabla sin columnas")
	}
	if len(t.Headers) > gridSize {
		return fmt.Errorf("pdf: máximo %d columnas, hay %d", gridSize, len(t.Headers))
	}

	orient := orientation.Vertical
	if len(t.Headers) > 6 {
		orient = orientation.Horizontal
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orient).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(t.Title, true).
		WithAuthor("almacen-api", true).
		Build()

	m := maroto.New(cfg)
	sizes := columnSizes(len(t.Headers))

	m.AddRows(titleRow(t.Title, r.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(headerRow(t.Headers, sizes))
	for i, cells := range t.Rows {
		m.AddRows(dataRow(cells, sizes, i%2 == 1))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(col.New(gridSize).Add(
		text.New(fmt.Sprintf("Total de registros: %d", len(t.Rows)), props.Text{
			Size: 8, Align: align.Right, Color: colorGray, Top: 1,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("pdf: generar documento: %w", err)
	}
	_, err = w.Write(doc.GetBytes())
	return err
}

func titleRow(title string, at time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
		})),
		col.New(4).Add(text.New("Generado: "+at.Format("02/01/2006 15:04"), props.Text{
			Size: 8, Align: align.Right, Color: colorGray, Top: 5,
		})),
	)
}

func headerRow(headers []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(headers))
	for i, h := range headers {
		cols = append(cols, col.New(sizes[i]).Add(text.New(h, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func dataRow(cells []string, sizes []int, striped bool) core.Row {
	cols := make([]core.Col, 0, len(sizes))
	for i := range sizes {
		v := ""
		if i < len(cells) {
			v = cells[i]
		}
		cols = append(cols, col.New(sizes[i]).Add(text.New(v, props.Text{
			Size: 7.5, Top: 1, Left: 1, Right: 1,
		})))
	}
	r := row.New(6).Add(cols...)
	if striped {
		r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
	}
	return r
}

// columnSizes reparte las 12 columnas de la grilla; el resto va a las primeras.
func columnSizes(n int) []int {
	sizes := make([]int, n)
	base, rest := gridSize/n, gridSize%n
	for i := range sizes {
		sizes[i] = base
		if i < rest {
			sizes[i]++
		}
	}
	return sizes
}
