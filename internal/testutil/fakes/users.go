package fakes

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// UserRepo implementa repository.UserRepository.
type UserRepo struct{ s *Store }

// NewUserRepo construye el repo.
func NewUserRepo(s *Store) *UserRepo { return &UserRepo{s: s} }

var _ repository.UserRepository = (*UserRepo)(nil)

// load completa roles y permisos como lo hace la consulta real.
func (r *UserRepo) load(u entity.User) *entity.User {
	u.Roles = append([]string(nil), r.s.UserRoles[u.ID]...)
	sort.Strings(u.Roles)
	seen := map[string]bool{}
	u.Permissions = nil
	for _, name := range u.Roles {
		for _, p := range r.s.Roles[name].Permissions {
			if !seen[p] {
				seen[p] = true
				u.Permissions = append(u.Permissions, p)
			}
		}
	}
	sort.Strings(u.Permissions)
	return &u
}

func (r *UserRepo) checkUnique(u *entity.User) error {
	for id, other := range r.s.Users {
		if id == u.ID {
			continue
		}
		if other.Username == u.Username {
			return domain.ErrUsernameTaken
		}
		if strings.EqualFold(other.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	return nil
}

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checkUnique(u); err != nil {
		return err
	}
	r.s.Users[u.ID] = *u
	return nil
}

func (r *UserRepo) find(match func(entity.User) bool) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.Users {
		if match(u) {
			return r.load(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.ID == id })
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Username == username })
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *UserRepo) update(id string, fn func(*entity.User)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.Users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	fn(&u)
	r.s.Users[id] = u
	return nil
}

func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	r.s.mu.Lock()
	if err := r.checkUnique(u); err != nil {
		r.s.mu.Unlock()
		return err
	}
	r.s.mu.Unlock()
	return r.update(u.ID, func(cur *entity.User) {
		hash, settings, last := cur.PasswordHash, cur.Settings, cur.LastLogin
		*cur = *u
		cur.PasswordHash, cur.Settings, cur.LastLogin = hash, settings, last
	})
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	return r.update(id, func(u *entity.User) { u.PasswordHash = hash })
}

func (r *UserRepo) UpdateSettings(ctx context.Context, id string, settings entity.NotificationSettings) error {
	return r.update(id, func(u *entity.User) { u.Settings = settings })
}

func (r *UserRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.update(id, func(u *entity.User) { u.LastLogin = &at })
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.Users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.s.Users, id)
	return nil
}

func (r *UserRepo) list(keep func(entity.User) bool) []*entity.User {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.User, 0)
	for _, u := range r.s.Users {
		if keep(u) {
			out = append(out, r.load(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	return r.list(func(entity.User) bool { return true }), nil
}

func (r *UserRepo) ListNotifiable(ctx context.Context, kind entity.NotificationKind) ([]*entity.User, error) {
	return r.list(func(u entity.User) bool {
		if !u.Active || u.Email == "" {
			return false
		}
		switch kind {
		case entity.NotifyLowStock:
			return u.Settings.LowStockAlerts
		case entity.NotifyOperation:
			return u.Settings.EmailNotifications
		case entity.NotifyWeeklyReport:
			return u.Settings.OperationReports
		}
		return false
	}), nil
}

// RoleRepo implementa repository.RoleRepository.
type RoleRepo struct{ s *Store }

// NewRoleRepo construye el repo.
func NewRoleRepo(s *Store) *RoleRepo { return &RoleRepo{s: s} }

var _ repository.RoleRepository = (*RoleRepo)(nil)

func (r *RoleRepo) List(ctx context.Context) ([]*entity.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Role, 0, len(r.s.Roles))
	for _, name := range entity.KnownRoles {
		role := r.s.Roles[name]
		out = append(out, &role)
	}
	return out, nil
}

func (r *RoleRepo) ListPermissions(ctx context.Context) ([]*entity.Permission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Permission, 0, len(r.s.Permissions))
	for i := range r.s.Permissions {
		p := r.s.Permissions[i]
		out = append(out, &p)
	}
	return out, nil
}

func (r *RoleRepo) SetUserRoles(ctx context.Context, userID string, roles []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.Users[userID]; !ok {
		return domain.ErrUserNotFound
	}
	for _, name := range roles {
		if _, ok := r.s.Roles[name]; !ok {
			return domain.ErrInvalidInput
		}
	}
	r.s.UserRoles[userID] = append([]string(nil), roles...)
	return nil
}

func (r *RoleRepo) RemoveUserRoles(ctx context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.UserRoles, userID)
	return nil
}

func (r *RoleRepo) CountUsersByRole(ctx context.Context) (map[string]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[string]int64{}
	for _, name := range entity.KnownRoles {
		out[name] = 0
	}
	for userID, roles := range r.s.UserRoles {
		if _, ok := r.s.Users[userID]; !ok {
			continue
		}
		for _, name := range roles {
			out[name]++
		}
	}
	return out, nil
}
