package dto

import "time"

// IncomingRequest registra una entrada de stock.
type IncomingRequest struct {
	ItemID   string `json:"itemId"`
	Quantity int64  `json:"quantity"`
	Supplier string `json:"supplier"`
	Notes    string `json:"notes"`
}

// OutgoingRequest registra una salida de stock.
type OutgoingRequest struct {
	ItemID    string `json:"itemId"`
	Quantity  int64  `json:"quantity"`
	Recipient string `json:"recipient"`
	Notes     string `json:"notes"`
}

// OperationListQuery parámetros de GET /api/operations. Fechas en formato YYYY-MM-DD.
type OperationListQuery struct {
	Type       string `query:"type"`
	StartDate  string `query:"startDate"`
	EndDate    string `query:"endDate"`
	ItemID     string `query:"itemId"`
	EmployeeID string `query:"employeeId"`
	SortBy     string `query:"sortBy"`
	SortOrder  string `query:"sortOrder"`
	Limit      int    `query:"limit"`
}

// OperationResponse operación con nombres resueltos.
type OperationResponse struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	ItemID       string    `json:"itemId"`
	ItemName     string    `json:"itemName"`
	EmployeeID   string    `json:"employeeId"`
	EmployeeName string    `json:"employeeName"`
	Quantity     int64     `json:"quantity"`
	Date         time.Time `json:"date"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes"`
	Supplier     string    `json:"supplier,omitempty"`
	Recipient    string    `json:"recipient,omitempty"`
}

// OperationCreatedResponse respuesta de entradas y salidas.
type OperationCreatedResponse struct {
	Message     string            `json:"message"`
	Operation   OperationResponse `json:"operation"`
	NewQuantity int64             `json:"newQuantity"`
}
