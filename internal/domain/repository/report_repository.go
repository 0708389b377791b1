package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ReportFilter filtro compartido por los reportes.
type ReportFilter struct {
	DateFrom      *time.Time // inclusivo
	DateTo        *time.Time // exclusivo (el handler lo lleva al día siguiente)
	OpType        string
	CategoryID    string
	ItemQuery     string // nombre o código de barras
	EmployeeQuery string // username o nombre
}

// ReportSummary totales de operaciones del filtro.
type ReportSummary struct {
	TotalIncoming   int64
	TotalOutgoing   int64
	TotalOperations int64
	UniqueItems     int64
}

// ReportOperationRow fila detallada del reporte de operaciones.
type ReportOperationRow struct {
	ID           string
	Date         time.Time
	Type         string
	ItemName     string
	CategoryName string
	Quantity     int64
	EmployeeName string
	Supplier     string
	Recipient    string
	Notes        string
}

// CategoryReportRow agregado por categoría.
type CategoryReportRow struct {
	CategoryName  string
	ItemCount     int64
	TotalQuantity int64
}

// TopItemRow artículo por volumen movido.
type TopItemRow struct {
	ItemID        string
	ItemName      string
	TotalIncoming int64
	TotalOutgoing int64
	TotalVolume   int64
}

// InventoryStats indicadores del tablero.
type InventoryStats struct {
	TotalItems      int64 // suma de cantidades
	TotalValue      decimal.Decimal
	LowStockItems   int64
	TodayOperations int64
	TotalCategories int64
	TotalOperations int64
}

// ReportRepository consultas de solo lectura para reportes y estadísticas.
type ReportRepository interface {
	Summary(ctx context.Context, filter ReportFilter) (*ReportSummary, error)
	Operations(ctx context.Context, filter ReportFilter, limit int) ([]ReportOperationRow, error)
	ByCategory(ctx context.Context, filter ReportFilter) ([]CategoryReportRow, error)
	TopItems(ctx context.Context, filter ReportFilter, limit int) ([]TopItemRow, error)
	// Stats calcula los indicadores; dayStart marca el inicio del día para TodayOperations.
	Stats(ctx context.Context, dayStart time.Time) (*InventoryStats, error)
}
