package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// CategoryUseCase casos de uso de categorías.
type CategoryUseCase struct {
	repo     repository.CategoryRepository
	txRunner CatalogTxRunner
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, txRunner CatalogTxRunner) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, txRunner: txRunner}
}

// List devuelve las categorías con la cantidad de artículos de cada una.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.FromCategory(c))
	}
	return out, nil
}

// GetByID obtiene una categoría.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCategoryNotFound
	}
	out := dto.FromCategory(c)
	return &out, nil
}

// Create crea una categoría activa con icono y color por defecto si vienen vacíos.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	now := time.Now()
	c := &entity.Category{ID: uuid.New().String(), Active: true, CreatedAt: now, UpdatedAt: now}
	if err := applyCategory(c, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	out := dto.FromCategory(c)
	return &out, nil
}

// Update reemplaza nombre, descripción, icono, color y (opcional) estado.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCategoryNotFound
	}
	if err := applyCategory(c, in); err != nil {
		return nil, err
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	out := dto.FromCategory(c)
	return &out, nil
}

// Delete elimina los artículos de la categoría y luego la categoría, en una sola transacción.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) (int64, error) {
	var deleted int64
	err := uc.txRunner.RunCatalog(ctx, func(categoryRepo repository.CategoryRepository, itemRepo repository.ItemRepository) error {
		c, err := categoryRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrCategoryNotFound
		}
		if deleted, err = itemRepo.DeleteByCategory(ctx, id); err != nil {
			return err
		}
		return categoryRepo.Delete(ctx, id)
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func applyCategory(c *entity.Category, in dto.CategoryRequest) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.ErrInvalidInput
	}
	c.Name = name
	c.Description = strings.TrimSpace(in.Description)
	c.Icon = strings.TrimSpace(in.Icon)
	if c.Icon == "" {
		c.Icon = entity.DefaultCategoryIcon
	}
	c.Color = strings.TrimSpace(in.Color)
	if c.Color == "" {
		c.Color = entity.DefaultCategoryColor
	}
	if in.Active != nil {
		c.Active = *in.Active
	}
	return nil
}
