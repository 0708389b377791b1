package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/testutil/fakes"
)

func newUserUC() (*usecase.UserUseCase, *fakes.Store, string) {
	store := fakes.NewStore()
	admin := store.AddUser(entity.User{Username: "admin", Name: "Admin", Email: "admin@almacen.local", Active: true}, entity.RoleAdmin)
	uc := usecase.NewUserUseCase(fakes.NewUserRepo(store), fakes.NewRoleRepo(store), fakes.NewTxRunner(store))
	return uc, store, admin
}

func validUser() dto.CreateUserRequest {
	return dto.CreateUserRequest{
		Username: "carla", Name: "Carla Gómez", Email: "carla@almacen.local",
		Password: "secreta1", Roles: []string{"Operator", "operator", "viewer"},
	}
}

func TestUserCreate(t *testing.T) {
	uc, _, _ := newUserUC()
	out, err := uc.Create(context.Background(), validUser())
	require.NoError(t, err)

	assert.True(t, out.Active)
	assert.Equal(t, []string{entity.RoleOperator, entity.RoleViewer}, out.Roles, "roles normalizados y sin duplicados")
	assert.Contains(t, out.Permissions, entity.PermOperationsCreate)
	assert.Contains(t, out.Permissions, entity.PermReportsView)
}

func TestUserCreate_Validaciones(t *testing.T) {
	uc, _, _ := newUserUC()
	ctx := context.Background()

	in := validUser()
	in.Roles = nil
	_, err := uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrRoleRequired)

	in = validUser()
	in.Roles = []string{"superuser"}
	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = validUser()
	in.Password = "123"
	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = validUser()
	in.Username = "admin"
	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	in = validUser()
	in.Email = "ADMIN@almacen.local"
	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserUpdate_ReemplazaRoles(t *testing.T) {
	uc, _, _ := newUserUC()
	ctx := context.Background()
	created, err := uc.Create(ctx, validUser())
	require.NoError(t, err)

	active := false
	out, err := uc.Update(ctx, created.ID, dto.UpdateUserRequest{Name: "Carla G.", Roles: []string{"manager"}, Active: &active})
	require.NoError(t, err)
	assert.Equal(t, "Carla G.", out.Name)
	assert.Equal(t, "carla", out.Username, "username vacío conserva el actual")
	assert.Equal(t, []string{entity.RoleManager}, out.Roles)
	assert.False(t, out.Active)

	out, err = uc.Update(ctx, created.ID, dto.UpdateUserRequest{Department: "Compras"})
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleManager}, out.Roles, "roles nil no cambia los roles")
}

func TestUserDelete(t *testing.T) {
	uc, store, admin := newUserUC()
	ctx := context.Background()
	created, err := uc.Create(ctx, validUser())
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete(ctx, admin, admin), domain.ErrCannotDeleteSelf)

	require.NoError(t, uc.Delete(ctx, admin, created.ID))
	_, ok := store.UserRoles[created.ID]
	assert.False(t, ok, "los vínculos de rol se eliminan con el usuario")
	assert.ErrorIs(t, uc.Delete(ctx, admin, created.ID), domain.ErrUserNotFound)
}

func TestUserToggleYOverview(t *testing.T) {
	uc, _, _ := newUserUC()
	ctx := context.Background()
	created, err := uc.Create(ctx, validUser())
	require.NoError(t, err)

	res, err := uc.ToggleStatus(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, res.Active)
	assert.Equal(t, "Usuario desactivado", res.Message)

	stats, err := uc.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.Active)
	assert.Equal(t, int64(1), stats.Inactive)
	assert.Equal(t, map[string]int64{"admin": 1, "manager": 0, "operator": 1, "viewer": 1}, stats.ByRole)

	roles, err := uc.AvailableRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 4)
	perms, err := uc.AvailablePermissions(ctx)
	require.NoError(t, err)
	assert.Len(t, perms, 6)
}
