package repository

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// OperationFilter filtros del listado de operaciones.
type OperationFilter struct {
	Type       string
	StartDate  *time.Time // inclusivo
	EndDate    *time.Time // exclusivo
	ItemID     string
	EmployeeID string
	SortBy     string // date | quantity
	SortOrder  string // asc | desc
	Limit      int    // 0 = sin límite
}

// OperationRepository define el puerto de persistencia para Operation (DIP).
type OperationRepository interface {
	Create(ctx context.Context, op *entity.Operation) error
	// GetByID devuelve la operación con ItemName y EmployeeName resueltos.
	GetByID(ctx context.Context, id string) (*entity.Operation, error)
	List(ctx context.Context, filter OperationFilter) ([]*entity.Operation, error)
}
