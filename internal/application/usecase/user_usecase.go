package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// UserUseCase administración de usuarios y roles (solo admin).
type UserUseCase struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	txRunner UserTxRunner
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(userRepo repository.UserRepository, roleRepo repository.RoleRepository, txRunner UserTxRunner) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, roleRepo: roleRepo, txRunner: txRunner}
}

// List devuelve todos los usuarios.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, dto.FromUser(u))
	}
	return out, nil
}

// GetByID obtiene un usuario con sus roles y permisos.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	out := dto.FromUser(u)
	return &out, nil
}

// Create crea un usuario activo con los roles indicados (al menos uno).
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if username == "" || name == "" || !auth.ValidEmail(email) || len(in.Password) < auth.MinPasswordLength {
		return nil, domain.ErrInvalidInput
	}
	roles, err := normalizeRoles(in.Roles)
	if err != nil {
		return nil, err
	}
	if err := uc.checkUnique(ctx, "", username, email); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Name:         name,
		Email:        email,
		Department:   strings.TrimSpace(in.Department),
		Position:     strings.TrimSpace(in.Position),
		PasswordHash: hash,
		Active:       true,
		Settings: entity.NotificationSettings{
			LowStockAlerts:     true,
			EmailNotifications: true,
			OperationReports:   true,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = uc.txRunner.RunUsers(ctx, func(userRepo repository.UserRepository, roleRepo repository.RoleRepository) error {
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		return roleRepo.SetUserRoles(ctx, user.ID, roles)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, user.ID)
}

// Update modifica datos, estado, contraseña (si viene) y roles (si vienen).
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	username := strings.TrimSpace(in.Username)
	if username == "" {
		username = user.Username
	}
	email := strings.TrimSpace(in.Email)
	if email == "" {
		email = user.Email
	}
	if !auth.ValidEmail(email) {
		return nil, domain.ErrInvalidInput
	}
	if in.Password != "" && len(in.Password) < auth.MinPasswordLength {
		return nil, domain.ErrInvalidInput
	}
	var roles []string
	if in.Roles != nil {
		if roles, err = normalizeRoles(in.Roles); err != nil {
			return nil, err
		}
	}
	if err := uc.checkUnique(ctx, user.ID, username, email); err != nil {
		return nil, err
	}
	user.Username = username
	user.Email = email
	if name := strings.TrimSpace(in.Name); name != "" {
		user.Name = name
	}
	user.Department = strings.TrimSpace(in.Department)
	user.Position = strings.TrimSpace(in.Position)
	if in.Active != nil {
		user.Active = *in.Active
	}
	user.UpdatedAt = time.Now()
	var hash string
	if in.Password != "" {
		if hash, err = auth.HashPassword(in.Password); err != nil {
			return nil, err
		}
	}
	err = uc.txRunner.RunUsers(ctx, func(userRepo repository.UserRepository, roleRepo repository.RoleRepository) error {
		if err := userRepo.Update(ctx, user); err != nil {
			return err
		}
		if hash != "" {
			if err := userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
				return err
			}
		}
		if roles != nil {
			return roleRepo.SetUserRoles(ctx, user.ID, roles)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, user.ID)
}

// Delete elimina un usuario y sus vínculos de rol. Un admin no puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return domain.ErrCannotDeleteSelf
	}
	return uc.txRunner.RunUsers(ctx, func(userRepo repository.UserRepository, roleRepo repository.RoleRepository) error {
		user, err := userRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		if err := roleRepo.RemoveUserRoles(ctx, id); err != nil {
			return err
		}
		return userRepo.Delete(ctx, id)
	})
}

// ToggleStatus invierte el estado activo del usuario.
func (uc *UserUseCase) ToggleStatus(ctx context.Context, id string) (*dto.ToggleStatusResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	user.Active = !user.Active
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	msg := "Usuario desactivado"
	if user.Active {
		msg = "Usuario activado"
	}
	return &dto.ToggleStatusResponse{Message: msg, Active: user.Active}, nil
}

// Overview totales de usuarios por estado y por rol.
func (uc *UserUseCase) Overview(ctx context.Context) (*dto.UserStatsResponse, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	byRole, err := uc.roleRepo.CountUsersByRole(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.UserStatsResponse{ByRole: make(map[string]int64, len(entity.KnownRoles))}
	for _, r := range entity.KnownRoles {
		out.ByRole[r] = byRole[r]
	}
	for _, u := range users {
		out.Total++
		if u.Active {
			out.Active++
		} else {
			out.Inactive++
		}
	}
	return out, nil
}

// AvailableRoles roles con sus permisos.
func (uc *UserUseCase) AvailableRoles(ctx context.Context) ([]dto.RoleResponse, error) {
	roles, err := uc.roleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoleResponse, 0, len(roles))
	for _, r := range roles {
		perms := r.Permissions
		if perms == nil {
			perms = []string{}
		}
		out = append(out, dto.RoleResponse{ID: r.ID, Name: r.Name, Description: r.Description, Permissions: perms})
	}
	return out, nil
}

// AvailablePermissions catálogo de permisos.
func (uc *UserUseCase) AvailablePermissions(ctx context.Context) ([]dto.PermissionResponse, error) {
	perms, err := uc.roleRepo.ListPermissions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PermissionResponse, 0, len(perms))
	for _, p := range perms {
		out = append(out, dto.PermissionResponse{ID: p.ID, Name: p.Name, Description: p.Description, Module: p.Module})
	}
	return out, nil
}

// checkUnique verifica username y email contra otros usuarios (selfID se excluye).
func (uc *UserUseCase) checkUnique(ctx context.Context, selfID, username, email string) error {
	existing, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.ErrUsernameTaken
	}
	existing, err = uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.ErrEmailAlreadyExists
	}
	return nil
}

// normalizeRoles quita duplicados y valida contra los roles conocidos.
func normalizeRoles(in []string) ([]string, error) {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, r := range in {
		r = strings.ToLower(strings.TrimSpace(r))
		if r == "" || seen[r] {
			continue
		}
		if !entity.IsKnownRole(r) {
			return nil, domain.ErrInvalidInput
		}
		seen[r] = true
		out = append(out, r)
	}
	if len(out) == 0 {
		return nil, domain.ErrRoleRequired
	}
	return out, nil
}
