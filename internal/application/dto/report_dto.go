package dto

import "time"

// ReportQuery filtro compartido de /api/reports/*. Fechas YYYY-MM-DD, dateTo inclusivo.
type ReportQuery struct {
	DateFrom      string `query:"dateFrom"`
	DateTo        string `query:"dateTo"`
	OpType        string `query:"opType"`
	CategoryID    string `query:"categoryId"`
	ItemQuery     string `query:"itemQuery"`
	EmployeeQuery string `query:"employeeQuery"`
}

// ReportSummaryResponse totales del filtro.
type ReportSummaryResponse struct {
	TotalIncoming   int64 `json:"totalIncoming"`
	TotalOutgoing   int64 `json:"totalOutgoing"`
	TotalOperations int64 `json:"totalOperations"`
	UniqueItems     int64 `json:"uniqueItems"`
}

// ReportOperationResponse fila del reporte detallado.
type ReportOperationResponse struct {
	ID           string    `json:"id"`
	Date         time.Time `json:"date"`
	Type         string    `json:"type"`
	ItemName     string    `json:"itemName"`
	CategoryName string    `json:"categoryName"`
	Quantity     int64     `json:"quantity"`
	EmployeeName string    `json:"employeeName"`
	Supplier     string    `json:"supplier"`
	Recipient    string    `json:"recipient"`
	Notes        string    `json:"notes"`
}

// CategoryReportResponse agregado por categoría.
type CategoryReportResponse struct {
	CategoryName  string `json:"categoryName"`
	ItemCount     int64  `json:"itemCount"`
	TotalQuantity int64  `json:"totalQuantity"`
}

// TopItemResponse artículo con más movimiento.
type TopItemResponse struct {
	ItemID        string `json:"itemId"`
	ItemName      string `json:"itemName"`
	TotalIncoming int64  `json:"totalIncoming"`
	TotalOutgoing int64  `json:"totalOutgoing"`
	TotalVolume   int64  `json:"totalVolume"`
}

// MovementQuery parámetros del reporte de movimiento por período.
type MovementQuery struct {
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	ItemID    string `query:"itemId"`
}

// MovementReportResponse conteos y sumas por tipo en el período, más las operaciones.
type MovementReportResponse struct {
	StartDate        string              `json:"startDate"`
	EndDate          string              `json:"endDate"`
	IncomingCount    int64               `json:"incomingCount"`
	OutgoingCount    int64               `json:"outgoingCount"`
	IncomingQuantity int64               `json:"incomingQuantity"`
	OutgoingQuantity int64               `json:"outgoingQuantity"`
	NetChange        int64               `json:"netChange"`
	Operations       []OperationResponse `json:"operations"`
}

// ExportQuery parámetros de GET /api/reports/export.
type ExportQuery struct {
	Dataset string `query:"dataset"` // items | operations | statistics
	Format  string `query:"format"`  // csv | json | xml | pdf
	Charset string `query:"charset"` // utf-8 | windows-1251 (solo csv)
}
