package dto

import "time"

// LowStockItem artículo en alerta de stock bajo.
type LowStockItem struct {
	Name        string `json:"name"`
	Quantity    int64  `json:"quantity"`
	MinQuantity int64  `json:"minQuantity"`
}

// LowStockNotificationRequest POST /api/notifications/low-stock.
type LowStockNotificationRequest struct {
	Items []LowStockItem `json:"items"`
}

// OperationNotice datos de una operación para el correo de aviso.
type OperationNotice struct {
	Type         string    `json:"type"`
	ItemName     string    `json:"itemName"`
	Quantity     int64     `json:"quantity"`
	EmployeeName string    `json:"employeeName"`
	Date         time.Time `json:"date"`
	Notes        string    `json:"notes"`
}

// OperationNotificationRequest POST /api/notifications/operation.
type OperationNotificationRequest struct {
	Operation *OperationNotice `json:"operation"`
}

// WeeklyReport resumen semanal enviado por correo.
type WeeklyReport struct {
	Period          string            `json:"period"`
	TotalOperations int64             `json:"totalOperations"`
	Incoming        int64             `json:"incoming"`
	Outgoing        int64             `json:"outgoing"`
	Operations      []OperationNotice `json:"operations"`
}

// WeeklyReportRequest POST /api/notifications/weekly-report.
type WeeklyReportRequest struct {
	Report *WeeklyReport `json:"report"`
}

// TestEmailRequest POST /api/notifications/test.
type TestEmailRequest struct {
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// DeliveryResult resultado del envío a un usuario.
type DeliveryResult struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Status    string `json:"status"` // success | error
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// NotificationResponse resultado de un envío masivo.
type NotificationResponse struct {
	Message string           `json:"message"`
	Results []DeliveryResult `json:"results"`
}

// TestEmailResponse resultado del correo de prueba.
type TestEmailResponse struct {
	Message   string `json:"message"`
	MessageID string `json:"messageId"`
}

// NotificationStatusResponse GET /api/notifications/status.
type NotificationStatusResponse struct {
	Service   string    `json:"service"`
	Status    string    `json:"status"` // active | demo
	Timestamp time.Time `json:"timestamp"`
	Features  []string  `json:"features"`
}
