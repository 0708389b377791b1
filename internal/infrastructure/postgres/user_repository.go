package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userSelect = `
	SELECT u.id, u.username, u.name, u.email, u.department, u.position, u.password_hash, u.active, u.last_login,
		u.low_stock_alerts, u.email_notifications, u.operation_reports, u.created_at, u.updated_at,
		COALESCE((SELECT array_agg(r.name ORDER BY r.name) FROM user_roles ur JOIN roles r ON r.id = ur.role_id
			WHERE ur.user_id = u.id), '{}') AS roles,
		COALESCE((SELECT array_agg(DISTINCT p.name) FROM user_roles ur
			JOIN role_permissions rp ON rp.role_id = ur.role_id
			JOIN permissions p ON p.id = rp.permission_id
			WHERE ur.user_id = u.id), '{}') AS permissions
	FROM users u`

// UserRepo implementación de UserRepository (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Username, &u.Name, &u.Email, &u.Department, &u.Position, &u.PasswordHash, &u.Active, &u.LastLogin,
		&u.Settings.LowStockAlerts, &u.Settings.EmailNotifications, &u.Settings.OperationReports, &u.CreatedAt, &u.UpdatedAt,
		&u.Roles, &u.Permissions)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) getOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, userSelect+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *UserRepo) queryUsers(ctx context.Context, query string, args ...any) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Create inserta el usuario (sin roles; se asignan con RoleRepository.SetUserRoles).
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (id, username, name, email, department, position, password_hash, active,
			low_stock_alerts, email_notifications, operation_reports, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.Username, u.Name, u.Email, u.Department, u.Position, u.PasswordHash, u.Active,
		u.Settings.LowStockAlerts, u.Settings.EmailNotifications, u.Settings.OperationReports, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return mapUserWriteError("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID con roles y permisos.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, ` WHERE u.id = $1`, id)
}

// GetByUsername obtiene un usuario por nombre de usuario.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getOne(ctx, ` WHERE u.username = $1`, username)
}

// GetByEmail obtiene un usuario por email (sin distinguir mayúsculas).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, ` WHERE lower(u.email) = lower($1)`, email)
}

// Update persiste perfil y estado.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users SET username = $2, name = $3, email = $4, department = $5, position = $6, active = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, u.ID, u.Username, u.Name, u.Email, u.Department, u.Position, u.Active, u.UpdatedAt)
	if err != nil {
		return mapUserWriteError("update user", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdatePassword reemplaza el hash de la contraseña.
func (r *UserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdateSettings guarda las preferencias de notificación.
func (r *UserRepo) UpdateSettings(ctx context.Context, id string, s entity.NotificationSettings) error {
	query := `
		UPDATE users SET low_stock_alerts = $2, email_notifications = $3, operation_reports = $4, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, id, s.LowStockAlerts, s.EmailNotifications, s.OperationReports)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdateLastLogin registra la fecha del último ingreso.
func (r *UserRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE users SET last_login = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

// Delete elimina el usuario. Sus operaciones quedan con employee_id NULL.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List devuelve todos los usuarios, los más recientes primero.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	return r.queryUsers(ctx, userSelect+` ORDER BY u.created_at DESC`)
}

// ListNotifiable usuarios activos con email y la preferencia indicada habilitada.
func (r *UserRepo) ListNotifiable(ctx context.Context, kind entity.NotificationKind) ([]*entity.User, error) {
	var col string
	switch kind {
	case entity.NotifyLowStock:
		col = "u.low_stock_alerts"
	case entity.NotifyOperation:
		col = "u.email_notifications"
	case entity.NotifyWeeklyReport:
		col = "u.operation_reports"
	default:
		return nil, fmt.Errorf("%w: tipo de notificación %q", domain.ErrInvalidInput, kind)
	}
	return r.queryUsers(ctx, userSelect+` WHERE u.active AND u.email <> '' AND `+col+` ORDER BY u.username`)
}

// mapUserWriteError distingue username y email duplicados por el nombre del constraint.
func mapUserWriteError(op string, err error) error {
	if isUniqueViolation(err) {
		if strings.Contains(constraintName(err), "email") {
			return domain.ErrEmailAlreadyExists
		}
		return domain.ErrUsernameTaken
	}
	return fmt.Errorf("%s: %w", op, err)
}
