package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/almacen-api/internal/application/reports"
)

// Charsets soportados en la exportación CSV.
const (
	CharsetUTF8        = "utf-8"
	CharsetWindows1251 = "windows-1251"
)

// utf8BOM permite que Excel detecte UTF-8 al abrir el CSV.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVRenderer exporta la tabla en CSV, opcionalmente transcodificada.
type CSVRenderer struct {
	enc encoding.Encoding // nil = UTF-8 con BOM
}

func (r CSVRenderer) ContentType() string {
	if r.enc != nil {
		return "text/csv; charset=" + CharsetWindows1251
	}
	return "text/csv; charset=" + CharsetUTF8
}

func (r CSVRenderer) Extension() string { return "csv" }

// Render escribe cabeceras y filas. Los caracteres sin equivalente en el charset destino se reemplazan.
func (r CSVRenderer) Render(w io.Writer, t reports.Table) error {
	out := w
	var tw *transform.Writer
	if r.enc != nil {
		tw = transform.NewWriter(w, encoding.ReplaceUnsupported(r.enc.NewEncoder()))
		out = tw
	} else if _, err := w.Write(utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(out)
	if err := cw.Write(t.Headers); err != nil {
		return fmt.Errorf("csv header: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("csv rows: %w", err)
	}
	if tw != nil {
		return tw.Close()
	}
	return nil
}

// JSONRenderer exporta la tabla como un arreglo de objetos {cabecera: valor}.
type JSONRenderer struct{}

func (JSONRenderer) ContentType() string { return "application/json" }
func (JSONRenderer) Extension() string   { return "json" }

type jsonDocument struct {
	Title   string              `json:"title"`
	Dataset string              `json:"dataset"`
	Count   int                 `json:"count"`
	Rows    []map[string]string `json:"rows"`
}

func (JSONRenderer) Render(w io.Writer, t reports.Table) error {
	doc := jsonDocument{Title: t.Title, Dataset: t.Dataset, Count: len(t.Rows), Rows: make([]map[string]string, 0, len(t.Rows))}
	for _, cells := range t.Rows {
		obj := make(map[string]string, len(t.Headers))
		for i, h := range t.Headers {
			if i < len(cells) {
				obj[h] = cells[i]
			}
		}
		doc.Rows = append(doc.Rows, obj)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// XMLRenderer exporta la tabla como <export><row><field name="...">valor</field></row></export>.
type XMLRenderer struct{}

func (XMLRenderer) ContentType() string { return "application/xml" }
func (XMLRenderer) Extension() string   { return "xml" }

func (XMLRenderer) Render(w io.Writer, t reports.Table) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("export")
	root.CreateAttr("dataset", t.Dataset)
	root.CreateAttr("title", t.Title)
	root.CreateAttr("count", fmt.Sprint(len(t.Rows)))

	for _, cells := range t.Rows {
		rowEl := root.CreateElement("row")
		for i, h := range t.Headers {
			f := rowEl.CreateElement("field")
			f.CreateAttr("name", h)
			if i < len(cells) {
				f.SetText(cells[i])
			}
		}
	}
	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}

// NormalizeCharset acepta alias comunes; vacío = utf-8.
func NormalizeCharset(charset string) string {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf8", "utf-8":
		return CharsetUTF8
	case "windows-1251", "cp1251", "win1251":
		return CharsetWindows1251
	}
	return strings.ToLower(strings.TrimSpace(charset))
}

func csvRenderer(charset string) (CSVRenderer, bool) {
	switch NormalizeCharset(charset) {
	case CharsetUTF8:
		return CSVRenderer{}, true
	case CharsetWindows1251:
		return CSVRenderer{enc: charmap.Windows1251}, true
	}
	return CSVRenderer{}, false
}
