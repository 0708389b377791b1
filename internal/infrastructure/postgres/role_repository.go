package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo implementación de RoleRepository (usable con pool o tx).
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// List devuelve los roles con sus permisos.
func (r *RoleRepo) List(ctx context.Context) ([]*entity.Role, error) {
	query := `
		SELECT r.id, r.name, r.description,
			COALESCE(array_agg(p.name ORDER BY p.name) FILTER (WHERE p.name IS NOT NULL), '{}')
		FROM roles r
		LEFT JOIN role_permissions rp ON rp.role_id = r.id
		LEFT JOIN permissions p ON p.id = rp.permission_id
		GROUP BY r.id
		ORDER BY r.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Role, 0)
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.Permissions); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		list = append(list, &role)
	}
	return list, rows.Err()
}

// ListPermissions devuelve el catálogo de permisos agrupado por módulo.
func (r *RoleRepo) ListPermissions(ctx context.Context) ([]*entity.Permission, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, description, module FROM permissions ORDER BY module, name`)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Permission, 0)
	for rows.Next() {
		var p entity.Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Module); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// SetUserRoles reemplaza los roles del usuario por los nombrados.
func (r *RoleRepo) SetUserRoles(ctx context.Context, userID string, roles []string) error {
	if err := r.RemoveUserRoles(ctx, userID); err != nil {
		return err
	}
	if len(roles) == 0 {
		return nil
	}
	cmd, err := r.q.Exec(ctx,
		`INSERT INTO user_roles (user_id, role_id) SELECT $1, id FROM roles WHERE name = ANY($2)`,
		userID, roles)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("set user roles: %w", err)
	}
	if cmd.RowsAffected() != int64(len(roles)) {
		return fmt.Errorf("%w: rol desconocido en %v", domain.ErrInvalidInput, roles)
	}
	return nil
}

// RemoveUserRoles quita todas las asignaciones del usuario.
func (r *RoleRepo) RemoveUserRoles(ctx context.Context, userID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("remove user roles: %w", err)
	}
	return nil
}

// CountUsersByRole cantidad de usuarios por nombre de rol (roles sin usuarios incluidos con 0).
func (r *RoleRepo) CountUsersByRole(ctx context.Context) (map[string]int64, error) {
	query := `
		SELECT r.name, COUNT(ur.user_id)
		FROM roles r
		LEFT JOIN user_roles ur ON ur.role_id = r.id
		GROUP BY r.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count users by role: %w", err)
	}
	defer rows.Close()
	out := make(map[string]int64)
	for rows.Next() {
		var name string
		var n int64
		if err := rows.Scan(&name, &n); err != nil {
			return nil, fmt.Errorf("scan role count: %w", err)
		}
		out[name] = n
	}
	return out, rows.Err()
}
