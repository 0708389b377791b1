package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/testutil/fakes"
	pkgjwt "github.com/jhoicas/almacen-api/pkg/jwt"
)

const secret = "secreto-de-prueba"

func setup(t *testing.T, active bool) (*auth.AuthUseCase, *fakes.Store, string) {
	t.Helper()
	store := fakes.NewStore()
	hash, err := auth.HashPassword("clave123")
	require.NoError(t, err)
	id := store.AddUser(entity.User{
		Username:     "ana",
		Name:         "Ana Pérez",
		Email:        "ana@almacen.local",
		PasswordHash: hash,
		Active:       active,
	}, entity.RoleManager)
	store.AddUser(entity.User{Username: "luis", Email: "luis@almacen.local", Active: true}, entity.RoleViewer)
	uc := auth.NewAuthUseCase(fakes.NewUserRepo(store), auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"})
	return uc, store, id
}

func TestLogin_OK(t *testing.T) {
	uc, store, id := setup(t, true)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "clave123"})
	require.NoError(t, err)
	assert.Equal(t, id, out.User.ID)
	assert.Equal(t, []string{entity.RoleManager}, out.User.Roles)
	assert.Contains(t, out.User.Permissions, entity.PermItemsWrite)

	claims, err := pkgjwt.Parse(secret, out.Token)
	require.NoError(t, err, "el token emitido debe validar con el mismo secret")
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, []string{entity.RoleManager}, claims.Roles)

	assert.NotNil(t, store.Users[id].LastLogin, "el login debe registrar last_login")
}

func TestLogin_Errores(t *testing.T) {
	uc, _, _ := setup(t, true)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "clave123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "usuario inexistente y contraseña mala dan el mismo error")

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "", Password: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, _, _ := setup(t, false)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "clave123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateProfile_EmailDuplicado(t *testing.T) {
	uc, _, id := setup(t, true)
	_, err := uc.UpdateProfile(context.Background(), id, dto.UpdateProfileRequest{Name: "Ana", Email: "LUIS@almacen.local"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUpdateProfile_OK(t *testing.T) {
	uc, _, id := setup(t, true)
	out, err := uc.UpdateProfile(context.Background(), id, dto.UpdateProfileRequest{
		Name: " Ana María ", Email: "ana.m@almacen.local", Department: "Logística", Position: "Jefa",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", out.Name)
	assert.Equal(t, "ana.m@almacen.local", out.Email)
	assert.Equal(t, "Logística", out.Department)

	me, err := uc.Me(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "ana.m@almacen.local", me.Email, "Me debe leer el perfil actualizado")
}

func TestChangePassword(t *testing.T) {
	uc, _, id := setup(t, true)
	ctx := context.Background()

	err := uc.ChangePassword(ctx, id, dto.ChangePasswordRequest{CurrentPassword: "otra", NewPassword: "nueva123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	err = uc.ChangePassword(ctx, id, dto.ChangePasswordRequest{CurrentPassword: "clave123", NewPassword: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, uc.ChangePassword(ctx, id, dto.ChangePasswordRequest{CurrentPassword: "clave123", NewPassword: "nueva123"}))
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "nueva123"})
	assert.NoError(t, err, "la nueva contraseña debe permitir el login")
}

func TestUpdateSettings(t *testing.T) {
	uc, store, id := setup(t, true)
	in := dto.NotificationSettingsDTO{LowStockAlerts: true, EmailNotifications: false, OperationReports: true}

	out, err := uc.UpdateSettings(context.Background(), id, in)
	require.NoError(t, err)
	assert.Equal(t, in, *out)
	assert.Equal(t, entity.NotificationSettings{LowStockAlerts: true, OperationReports: true}, store.Users[id].Settings)

	_, err = uc.UpdateSettings(context.Background(), "", in)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidEmail(t *testing.T) {
	assert.True(t, auth.ValidEmail("a@b.co"))
	assert.False(t, auth.ValidEmail(""))
	assert.False(t, auth.ValidEmail("sin-arroba"))
	assert.False(t, auth.ValidEmail("Ana <a@b.co>"))
}
