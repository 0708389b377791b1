package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD y búsqueda de artículos. El stock solo cambia vía operaciones
// salvo en la edición manual del formulario.
type ItemUseCase struct {
	repo         repository.ItemRepository
	categoryRepo repository.CategoryRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository, categoryRepo repository.CategoryRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo, categoryRepo: categoryRepo}
}

// List devuelve todos los artículos ordenados por nombre.
func (uc *ItemUseCase) List(ctx context.Context) ([]dto.ItemResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.FromItems(list), nil
}

// GetByID obtiene un artículo por ID.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	out := dto.FromItem(item)
	return &out, nil
}

// Create crea un artículo. Numéricos omitidos valen 0.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	now := time.Now()
	item := &entity.Item{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	if err := uc.apply(ctx, item, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, item.ID)
}

// Update reemplaza los campos editables de un artículo existente.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	if err := uc.apply(ctx, item, in); err != nil {
		return nil, err
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, item.ID)
}

// Delete elimina un artículo. Sus operaciones se eliminan en cascada (FK).
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrItemNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// Search busca por texto con filtros de categoría, precio y stock.
func (uc *ItemUseCase) Search(ctx context.Context, q dto.ItemSearchQuery) ([]dto.ItemResponse, error) {
	filter := repository.ItemSearch{
		Query:      strings.TrimSpace(q.Q),
		CategoryID: q.CategoryID,
		InStock:    q.InStock,
		LowStock:   q.LowStock,
	}
	var err error
	if filter.MinPrice, err = parseOptionalDecimal(q.MinPrice); err != nil {
		return nil, err
	}
	if filter.MaxPrice, err = parseOptionalDecimal(q.MaxPrice); err != nil {
		return nil, err
	}
	list, err := uc.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.FromItems(list), nil
}

// LowStock devuelve los artículos con quantity <= min_quantity.
func (uc *ItemUseCase) LowStock(ctx context.Context) ([]dto.ItemResponse, error) {
	list, err := uc.repo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return dto.FromItems(list), nil
}

// apply valida el request y lo vuelca sobre item.
func (uc *ItemUseCase) apply(ctx context.Context, item *entity.Item, in dto.CreateItemRequest) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.ErrInvalidInput
	}
	price := decimal.Zero
	if in.Price != nil {
		price = *in.Price
	}
	var qty, minQty int64
	if in.Quantity != nil {
		qty = *in.Quantity
	}
	if in.MinQuantity != nil {
		minQty = *in.MinQuantity
	}
	if price.IsNegative() || qty < 0 || minQty < 0 {
		return domain.ErrInvalidInput
	}
	categoryID := strings.TrimSpace(in.CategoryID)
	if categoryID != "" {
		category, err := uc.categoryRepo.GetByID(ctx, categoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return domain.ErrCategoryNotFound
		}
	}
	item.Name = name
	item.Description = strings.TrimSpace(in.Description)
	item.CategoryID = categoryID
	item.Price = price
	item.Quantity = qty
	item.MinQuantity = minQty
	item.Barcode = strings.TrimSpace(in.Barcode)
	item.Location = strings.TrimSpace(in.Location)
	item.Supplier = strings.TrimSpace(in.Supplier)
	return nil
}

func parseOptionalDecimal(s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &d, nil
}
