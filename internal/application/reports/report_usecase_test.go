package reports_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/reports"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/export"
	"github.com/jhoicas/almacen-api/internal/testutil/fakes"
)

type seeded struct {
	store              *fakes.Store
	catA, catB         string
	tornillo, martillo string
}

func seed() seeded {
	store := fakes.NewStore()
	s := seeded{store: store}
	s.catA = store.AddCategory("Ferretería")
	s.catB = store.AddCategory("Limpieza")
	s.tornillo = store.AddItem(entity.Item{Name: "Tornillo", Barcode: "T-1", CategoryID: s.catA, Price: decimal.NewFromInt(1), Quantity: 100, MinQuantity: 10})
	s.martillo = store.AddItem(entity.Item{Name: "Martillo", CategoryID: s.catA, Price: decimal.NewFromInt(20), Quantity: 2, MinQuantity: 5})
	store.AddItem(entity.Item{Name: "Escoba", CategoryID: s.catB, Quantity: 7})
	ana := store.AddUser(entity.User{Username: "ana", Name: "Ana Díaz", Active: true})
	beto := store.AddUser(entity.User{Username: "beto", Name: "Beto Ruiz", Active: true})

	day := func(d int) time.Time { return time.Date(2024, 5, d, 10, 0, 0, 0, time.Local) }
	store.AddOperation(entity.Operation{Type: entity.OperationIncoming, ItemID: s.tornillo, EmployeeID: ana, Quantity: 50, Date: day(1)})
	store.AddOperation(entity.Operation{Type: entity.OperationOutgoing, ItemID: s.tornillo, EmployeeID: beto, Quantity: 30, Date: day(2)})
	store.AddOperation(entity.Operation{Type: entity.OperationOutgoing, ItemID: s.martillo, EmployeeID: ana, Quantity: 3, Date: day(3)})
	store.AddOperation(entity.Operation{Type: entity.OperationIncoming, ItemID: s.martillo, EmployeeID: beto, Quantity: 5, Date: day(10)})
	return s
}

func newReportUC(s seeded) *reports.ReportUseCase {
	return reports.NewReportUseCase(fakes.NewReportRepo(s.store), fakes.NewOperationRepo(s.store))
}

func TestSummary_Filtros(t *testing.T) {
	s := seed()
	uc := newReportUC(s)
	ctx := context.Background()

	all, err := uc.Summary(ctx, dto.ReportQuery{})
	require.NoError(t, err)
	assert.Equal(t, dto.ReportSummaryResponse{TotalIncoming: 55, TotalOutgoing: 33, TotalOperations: 4, UniqueItems: 2}, *all)

	ranged, err := uc.Summary(ctx, dto.ReportQuery{DateFrom: "2024-05-01", DateTo: "2024-05-03"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), ranged.TotalOperations, "dateTo incluye el día completo")

	byEmp, err := uc.Summary(ctx, dto.ReportQuery{EmployeeQuery: "ANA"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), byEmp.TotalOperations)

	byItem, err := uc.Summary(ctx, dto.ReportQuery{ItemQuery: "t-1", OpType: entity.OperationOutgoing})
	require.NoError(t, err)
	assert.Equal(t, int64(30), byItem.TotalOutgoing)
	assert.Equal(t, int64(1), byItem.TotalOperations)

	_, err = uc.Summary(ctx, dto.ReportQuery{OpType: "transfer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOperationsYTopItems(t *testing.T) {
	s := seed()
	uc := newReportUC(s)
	ctx := context.Background()

	rows, err := uc.Operations(ctx, dto.ReportQuery{CategoryID: s.catA})
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Martillo", rows[0].ItemName, "más recientes primero")
	assert.Equal(t, "Ferretería", rows[0].CategoryName)

	top, err := uc.TopItems(ctx, dto.ReportQuery{})
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, dto.TopItemResponse{ItemID: s.tornillo, ItemName: "Tornillo", TotalIncoming: 50, TotalOutgoing: 30, TotalVolume: 80}, top[0])
}

func TestByCategory(t *testing.T) {
	s := seed()
	out, err := newReportUC(s).ByCategory(context.Background(), dto.ReportQuery{})
	require.NoError(t, err)
	assert.Equal(t, []dto.CategoryReportResponse{
		{CategoryName: "Ferretería", ItemCount: 2, TotalQuantity: 102},
		{CategoryName: "Limpieza", ItemCount: 1, TotalQuantity: 7},
	}, out)
}

func TestMovement(t *testing.T) {
	s := seed()
	out, err := newReportUC(s).Movement(context.Background(), dto.MovementQuery{StartDate: "2024-05-01", EndDate: "2024-05-05", ItemID: s.tornillo})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.IncomingCount)
	assert.Equal(t, int64(1), out.OutgoingCount)
	assert.Equal(t, int64(50), out.IncomingQuantity)
	assert.Equal(t, int64(30), out.OutgoingQuantity)
	assert.Equal(t, int64(20), out.NetChange)
	assert.Len(t, out.Operations, 2)
}

func newExportUC(s seeded) *reports.ExportUseCase {
	return reports.NewExportUseCase(
		fakes.NewItemRepo(s.store), fakes.NewOperationRepo(s.store), fakes.NewReportRepo(s.store), export.NewRegistry(),
	)
}

func TestExport_ItemsCSV(t *testing.T) {
	s := seed()
	file, err := newExportUC(s).Export(context.Background(), reports.DatasetItems, "", "")
	require.NoError(t, err)

	assert.Contains(t, file.Filename, "items_")
	assert.True(t, bytes.HasSuffix([]byte(file.Filename), []byte(".csv")))
	assert.Contains(t, file.ContentType, "text/csv")

	body := bytes.TrimPrefix(file.Body, []byte("\xEF\xBB\xBF"))
	records, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4, "cabecera + 3 artículos")
	assert.Equal(t, "Nombre", records[0][1])
	assert.Equal(t, "Escoba", records[1][1], "ordenado por nombre")
	assert.Equal(t, "Stock bajo", records[2][9], "Martillo 2 <= 5")
}

func TestExport_FormatosYErrores(t *testing.T) {
	s := seed()
	uc := newExportUC(s)
	ctx := context.Background()

	file, err := uc.Export(ctx, reports.DatasetStatistics, "json", "")
	require.NoError(t, err)
	assert.Equal(t, "application/json", file.ContentType)
	assert.Contains(t, string(file.Body), "Valor del inventario")

	file, err = uc.Export(ctx, reports.DatasetOperations, "xml", "")
	require.NoError(t, err)
	assert.Contains(t, string(file.Body), "<export")

	_, err = uc.Export(ctx, "facturas", "csv", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Export(ctx, reports.DatasetItems, "docx", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Export(ctx, reports.DatasetItems, "json", "windows-1251")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "charset solo aplica a csv")
}
