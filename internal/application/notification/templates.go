package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

const layoutHead = `<div style="font-family:Arial,sans-serif;max-width:640px;margin:0 auto">
<div style="background:#2c5aa0;color:#fff;padding:16px"><h2 style="margin:0">{{.Title}}</h2></div>
<div style="padding:16px">`

const layoutFoot = `<p style="color:#888;font-size:12px">Mensaje automático del sistema de almacén. No responda a este correo.</p>
</div></div>`

var (
	lowStockTmpl = template.Must(template.New("low_stock").Funcs(funcs).Parse(layoutHead + `
<p>Los siguientes artículos están en o por debajo de su cantidad mínima:</p>
<table style="border-collapse:collapse;width:100%">
<tr><th align="left">Artículo</th><th align="right">Cantidad</th><th align="right">Mínimo</th></tr>
{{range .Items}}<tr><td>{{.Name}}</td><td align="right" style="color:#c0392b">{{.Quantity}}</td><td align="right">{{.MinQuantity}}</td></tr>
{{end}}</table>
<p>Se recomienda reponer stock.</p>` + layoutFoot))

	operationTmpl = template.Must(template.New("operation").Funcs(funcs).Parse(layoutHead + `
<p>Se registró una nueva operación:</p>
<ul>
<li><b>Tipo:</b> {{typeLabel .Op.Type}}</li>
<li><b>Artículo:</b> {{.Op.ItemName}}</li>
<li><b>Cantidad:</b> {{.Op.Quantity}}</li>
<li><b>Empleado:</b> {{.Op.EmployeeName}}</li>
<li><b>Fecha:</b> {{fmtDate .Op.Date}}</li>
{{if .Op.Notes}}<li><b>Notas:</b> {{.Op.Notes}}</li>{{end}}
</ul>` + layoutFoot))

	weeklyTmpl = template.Must(template.New("weekly").Funcs(funcs).Parse(layoutHead + `
<p>Período: <b>{{.Report.Period}}</b></p>
<ul>
<li>Operaciones: {{.Report.TotalOperations}}</li>
<li>Entradas: {{.Report.Incoming}}</li>
<li>Salidas: {{.Report.Outgoing}}</li>
</ul>
{{if .Report.Operations}}<table style="border-collapse:collapse;width:100%">
<tr><th align="left">Fecha</th><th align="left">Tipo</th><th align="left">Artículo</th><th align="right">Cantidad</th><th align="left">Empleado</th></tr>
{{range .Report.Operations}}<tr><td>{{fmtDate .Date}}</td><td>{{typeLabel .Type}}</td><td>{{.ItemName}}</td><td align="right">{{.Quantity}}</td><td>{{.EmployeeName}}</td></tr>
{{end}}</table>{{end}}` + layoutFoot))

	testTmpl = template.Must(template.New("test").Funcs(funcs).Parse(layoutHead + `
<p>{{.Message}}</p>` + layoutFoot))
)

var funcs = template.FuncMap{
	"typeLabel": typeLabel,
	"fmtDate":   func(t time.Time) string { return t.Format("02/01/2006 15:04") },
}

func typeLabel(t string) string {
	switch t {
	case entity.OperationIncoming:
		return "Entrada"
	case entity.OperationOutgoing:
		return "Salida"
	}
	return t
}

func render(t *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}

func lowStockHTML(items []dto.LowStockItem) (string, error) {
	return render(lowStockTmpl, map[string]interface{}{"Title": "Alerta de stock bajo", "Items": items})
}

func operationHTML(op dto.OperationNotice) (string, error) {
	return render(operationTmpl, map[string]interface{}{"Title": "Nueva operación de almacén", "Op": op})
}

func weeklyHTML(r dto.WeeklyReport) (string, error) {
	return render(weeklyTmpl, map[string]interface{}{"Title": "Reporte semanal de operaciones", "Report": r})
}

func testHTML(subject, message string) (string, error) {
	return render(testTmpl, map[string]interface{}{"Title": subject, "Message": message})
}
