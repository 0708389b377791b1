package reports

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Datasets exportables.
const (
	DatasetItems      = "items"
	DatasetOperations = "operations"
	DatasetStatistics = "statistics"
)

// ExportFile archivo generado para descarga.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportUseCase arma tablas de artículos, operaciones o estadísticas y las serializa.
type ExportUseCase struct {
	itemRepo   repository.ItemRepository
	opRepo     repository.OperationRepository
	reportRepo repository.ReportRepository
	renderers  RendererProvider
	now        func() time.Time
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(
	itemRepo repository.ItemRepository,
	opRepo repository.OperationRepository,
	reportRepo repository.ReportRepository,
	renderers RendererProvider,
) *ExportUseCase {
	return &ExportUseCase{itemRepo: itemRepo, opRepo: opRepo, reportRepo: reportRepo, renderers: renderers, now: time.Now}
}

// Export genera el archivo del dataset en el formato pedido. format vacío = csv.
func (uc *ExportUseCase) Export(ctx context.Context, dataset, format, charset string) (*ExportFile, error) {
	if format == "" {
		format = "csv"
	}
	renderer, err := uc.renderers.Renderer(format, charset)
	if err != nil {
		return nil, err
	}
	table, err := uc.Table(ctx, dataset)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := renderer.Render(&buf, table); err != nil {
		return nil, fmt.Errorf("export %s/%s: %w", dataset, format, err)
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("%s_%s.%s", dataset, uc.now().Format("2006-01-02"), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}

// Table construye la tabla del dataset.
func (uc *ExportUseCase) Table(ctx context.Context, dataset string) (Table, error) {
	switch dataset {
	case DatasetItems:
		return uc.itemsTable(ctx)
	case DatasetOperations:
		return uc.operationsTable(ctx)
	case DatasetStatistics:
		return uc.statisticsTable(ctx)
	}
	return Table{}, domain.ErrInvalidInput
}

func (uc *ExportUseCase) itemsTable(ctx context.Context) (Table, error) {
	items, err := uc.itemRepo.List(ctx)
	if err != nil {
		return Table{}, err
	}
	t := Table{
		Title:   "Inventario de artículos",
		Dataset: DatasetItems,
		Headers: []string{"ID", "Nombre", "Categoría", "Precio", "Cantidad", "Cantidad mínima", "Código de barras", "Ubicación", "Proveedor", "Estado"},
	}
	for _, i := range items {
		status := "OK"
		if inventory.IsLowStock(i.Quantity, i.MinQuantity) {
			status = "Stock bajo"
		}
		t.Rows = append(t.Rows, []string{
			i.ID, i.Name, i.CategoryName, i.Price.StringFixed(2),
			strconv.FormatInt(i.Quantity, 10), strconv.FormatInt(i.MinQuantity, 10),
			i.Barcode, i.Location, i.Supplier, status,
		})
	}
	return t, nil
}

func (uc *ExportUseCase) operationsTable(ctx context.Context) (Table, error) {
	ops, err := uc.opRepo.List(ctx, repository.OperationFilter{SortBy: "date", SortOrder: "desc"})
	if err != nil {
		return Table{}, err
	}
	t := Table{
		Title:   "Historial de operaciones",
		Dataset: DatasetOperations,
		Headers: []string{"Fecha", "Tipo", "Artículo", "Cantidad", "Empleado", "Proveedor", "Destinatario", "Notas"},
	}
	for _, op := range ops {
		t.Rows = append(t.Rows, []string{
			op.Date.Format("2006-01-02 15:04"), typeLabel(op.Type), op.ItemName,
			strconv.FormatInt(op.Quantity, 10), op.EmployeeName, op.Supplier, op.Recipient, op.Notes,
		})
	}
	return t, nil
}

func (uc *ExportUseCase) statisticsTable(ctx context.Context) (Table, error) {
	now := uc.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	s, err := uc.reportRepo.Stats(ctx, dayStart)
	if err != nil {
		return Table{}, err
	}
	return Table{
		Title:   "Estadísticas del almacén",
		Dataset: DatasetStatistics,
		Headers: []string{"Indicador", "Valor"},
		Rows: [][]string{
			{"Unidades en stock", strconv.FormatInt(s.TotalItems, 10)},
			{"Valor del inventario", s.TotalValue.StringFixed(2)},
			{"Artículos con stock bajo", strconv.FormatInt(s.LowStockItems, 10)},
			{"Operaciones de hoy", strconv.FormatInt(s.TodayOperations, 10)},
			{"Categorías", strconv.FormatInt(s.TotalCategories, 10)},
			{"Operaciones totales", strconv.FormatInt(s.TotalOperations, 10)},
		},
	}, nil
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
