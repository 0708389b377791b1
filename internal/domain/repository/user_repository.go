package repository

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Las lecturas devuelven Roles y Permissions cargados desde las tablas de unión.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// Update persiste datos de perfil y estado; no toca contraseña ni roles.
	Update(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateSettings(ctx context.Context, id string, settings entity.NotificationSettings) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.User, error)
	// ListNotifiable devuelve usuarios activos con la preferencia de correo indicada.
	ListNotifiable(ctx context.Context, kind entity.NotificationKind) ([]*entity.User, error)
}

// RoleRepository roles, permisos y su asignación a usuarios.
type RoleRepository interface {
	List(ctx context.Context) ([]*entity.Role, error)
	ListPermissions(ctx context.Context) ([]*entity.Permission, error)
	// SetUserRoles reemplaza los roles del usuario. Un nombre desconocido devuelve ErrInvalidInput.
	SetUserRoles(ctx context.Context, userID string, roles []string) error
	RemoveUserRoles(ctx context.Context, userID string) error
	CountUsersByRole(ctx context.Context) (map[string]int64, error)
}
