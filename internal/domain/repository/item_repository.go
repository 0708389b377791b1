package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ItemSearch filtros de búsqueda de artículos. Campos vacíos o nil no filtran.
type ItemSearch struct {
	Query      string // nombre, descripción o código de barras (sin distinguir mayúsculas)
	CategoryID string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	InStock    bool // quantity > 0
	LowStock   bool // quantity <= min_quantity
}

// ItemRepository define el puerto de persistencia para Item (DIP).
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); solo tiene sentido dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	UpdateQuantity(ctx context.Context, id string, quantity int64) error
	Delete(ctx context.Context, id string) error
	DeleteByCategory(ctx context.Context, categoryID string) (int64, error)
	List(ctx context.Context) ([]*entity.Item, error)
	Search(ctx context.Context, filter ItemSearch) ([]*entity.Item, error)
	ListLowStock(ctx context.Context) ([]*entity.Item, error)
}
