package usecase

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// CatalogTxRunner ejecuta fn en una transacción con repos de categorías y artículos.
// Se usa para el borrado en cascada de una categoría.
type CatalogTxRunner interface {
	RunCatalog(ctx context.Context, fn func(
		categoryRepo repository.CategoryRepository,
		itemRepo repository.ItemRepository,
	) error) error
}

// UserTxRunner ejecuta fn en una transacción con repos de usuarios y roles.
type UserTxRunner interface {
	RunUsers(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		roleRepo repository.RoleRepository,
	) error) error
}
