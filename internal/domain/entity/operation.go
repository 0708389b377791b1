package entity

import "time"

// Tipos de operación de almacén.
const (
	OperationIncoming = "incoming" // entrada (reposición)
	OperationOutgoing = "outgoing" // salida (despacho)
)

// OperationStatusCompleted es el único estado que registra el sistema hoy.
const OperationStatusCompleted = "completed"

// Operation es un movimiento de stock registrado por un empleado.
type Operation struct {
	ID           string
	Type         string // incoming, outgoing
	ItemID       string
	ItemName     string // solo lectura (JOIN)
	EmployeeID   string
	EmployeeName string // solo lectura (JOIN)
	Quantity     int64
	Date         time.Time
	Status       string
	Notes        string
	Supplier     string // solo entradas
	Recipient    string // solo salidas
	CreatedAt    time.Time
}

// IsValidOperationType indica si t es incoming u outgoing.
func IsValidOperationType(t string) bool {
	return t == OperationIncoming || t == OperationOutgoing
}
