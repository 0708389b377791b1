package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/almacen-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "almacen-api-test"
)

func testIdentity() pkgjwt.Identity {
	return pkgjwt.Identity{
		UserID:      "00000000-0000-0000-0000-000000000001",
		Username:    "operador1",
		Roles:       []string{"operator"},
		Permissions: []string{"items.read", "operations.create"},
	}
}

func TestJWT_GenerateAndParse_ConRolesYPermisos(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testIssuer, 60, testIdentity())
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, "00000000-0000-0000-0000-000000000001", claims.UserID)
	assert.Equal(t, "operador1", claims.Username)
	assert.Equal(t, []string{"operator"}, claims.Roles)
	assert.Equal(t, []string{"items.read", "operations.create"}, claims.Permissions)
	assert.Equal(t, testIssuer, claims.Issuer)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	// Token con expiración -1 minuto (ya expirado)
	tok, err := pkgjwt.Generate(testSecret, testIssuer, -1, testIdentity())
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testIssuer, 60, testIdentity())
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestJWT_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", testIssuer, 60, testIdentity())
	assert.Error(t, err)

	_, err = pkgjwt.Parse("", "cualquier.cosa.aqui")
	assert.Error(t, err)
}
