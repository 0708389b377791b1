package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/notification"
	"github.com/jhoicas/almacen-api/internal/application/reports"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/export"
	apphttp "github.com/jhoicas/almacen-api/internal/interfaces/http"
	"github.com/jhoicas/almacen-api/internal/testutil/fakes"
)

type apiFixture struct {
	app     *fiber.App
	store   *fakes.Store
	adminID string
	admin   string // header Authorization
	viewer  string
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	store := fakes.NewStore()
	itemRepo := fakes.NewItemRepo(store)
	categoryRepo := fakes.NewCategoryRepo(store)
	opRepo := fakes.NewOperationRepo(store)
	userRepo := fakes.NewUserRepo(store)
	roleRepo := fakes.NewRoleRepo(store)
	reportRepo := fakes.NewReportRepo(store)
	tx := fakes.NewTxRunner(store)
	notifUC := notification.NewUseCase(userRepo, itemRepo, opRepo, &fakes.Mailer{}, nil)

	hash, err := auth.HashPassword("admin123")
	require.NoError(t, err)
	f := &apiFixture{store: store}
	f.adminID = store.AddUser(entity.User{Username: "admin", Name: "Administrador", Email: "admin@x.co", PasswordHash: hash, Active: true}, entity.RoleAdmin)
	viewerHash, err := auth.HashPassword("viewer123")
	require.NoError(t, err)
	store.AddUser(entity.User{Username: "vera", Name: "Vera", Email: "vera@x.co", PasswordHash: viewerHash, Active: true}, entity.RoleViewer)

	f.app = fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(nil)})
	apphttp.Router(f.app, apphttp.RouterDeps{
		AuthUC:         auth.NewAuthUseCase(userRepo, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}),
		ItemUC:         usecase.NewItemUseCase(itemRepo, categoryRepo),
		CategoryUC:     usecase.NewCategoryUseCase(categoryRepo, tx),
		OperationUC:    inventory.NewOperationUseCase(tx, opRepo, nil, notifUC, nil),
		StatsUC:        usecase.NewStatsUseCase(reportRepo),
		UserUC:         usecase.NewUserUseCase(userRepo, roleRepo, tx),
		ReportUC:       reports.NewReportUseCase(reportRepo, opRepo),
		ExportUC:       reports.NewExportUseCase(itemRepo, opRepo, reportRepo, export.NewRegistry()),
		NotificationUC: notifUC,
		JWTSecret:      testJWTSecret,
	})
	f.admin = f.login(t, "admin", "admin123")
	f.viewer = f.login(t, "vera", "viewer123")
	return f
}

func (f *apiFixture) do(t *testing.T, method, path, authHeader string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (f *apiFixture) login(t *testing.T, username, password string) string {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: username, Password: password})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return "Bearer " + out.Token
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	f := newAPI(t)
	for _, path := range []string{"/health", "/api/health"} {
		resp := f.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, map[string]string{"status": "ok"}, decode[map[string]string](t, resp))
	}
}

func TestLogin_Errores(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "admin", Password: "mala"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, apphttp.CodeValidation, decode[dto.ErrorResponse](t, resp).Code)
}

func TestMe(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/auth/me", f.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decode[dto.UserResponse](t, resp)
	assert.Equal(t, f.adminID, me.ID)
	assert.Equal(t, []string{entity.RoleAdmin}, me.Roles)

	resp = f.do(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestItems_PermisosYValidaciones(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodPost, "/api/items", f.viewer, dto.CreateItemRequest{Name: "Taladro"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "viewer no tiene items.write")

	resp = f.do(t, http.MethodPost, "/api/items", f.admin, dto.CreateItemRequest{Name: "Taladro", CategoryID: "no-existe"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "categoría inexistente es 400")

	resp = f.do(t, http.MethodPost, "/api/items", f.admin, dto.CreateItemRequest{Name: "Taladro", Barcode: "TAL-1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.ItemResponse](t, resp)

	resp = f.do(t, http.MethodPost, "/api/items", f.admin, dto.CreateItemRequest{Name: "Otro", Barcode: "TAL-1"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/items/search?q=tal", f.viewer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.ItemResponse](t, resp), 1)

	resp = f.do(t, http.MethodGet, "/api/items/low-stock", f.viewer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.ItemResponse](t, resp), 1)

	resp = f.do(t, http.MethodDelete, "/api/items/"+created.ID, f.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.SuccessResponse](t, resp).Success)

	resp = f.do(t, http.MethodGet, "/api/items/"+created.ID, f.admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCategories_DeleteCascada(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/categories", f.admin, dto.CategoryRequest{Name: "Pinturas"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	cat := decode[dto.CategoryResponse](t, resp)
	assert.Equal(t, entity.DefaultCategoryColor, cat.Color)
	f.store.AddItem(entity.Item{Name: "Látex", CategoryID: cat.ID})
	f.store.AddItem(entity.Item{Name: "Esmalte", CategoryID: cat.ID})

	resp = f.do(t, http.MethodDelete, "/api/categories/"+cat.ID, f.viewer, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = f.do(t, http.MethodDelete, "/api/categories/"+cat.ID, f.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, dto.CategoryDeleteResponse{Success: true, DeletedItems: 2}, decode[dto.CategoryDeleteResponse](t, resp))
	assert.Empty(t, f.store.Items)
}

func TestOperations_SalidaSinStock(t *testing.T) {
	f := newAPI(t)
	item := f.store.AddItem(entity.Item{Name: "Guantes", Quantity: 2})

	resp := f.do(t, http.MethodPost, "/api/operations/outgoing", f.admin, dto.OutgoingRequest{ItemID: item, Quantity: 3})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, apphttp.CodeInsufficientStock, decode[dto.ErrorResponse](t, resp).Code)
	it, _ := f.store.Item(item)
	assert.Equal(t, int64(2), it.Quantity)

	resp = f.do(t, http.MethodPost, "/api/operations/outgoing", f.admin, dto.OutgoingRequest{ItemID: item, Quantity: 0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/operations/incoming", f.admin, dto.IncomingRequest{ItemID: "nada", Quantity: 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/operations/incoming", f.viewer, dto.IncomingRequest{ItemID: item, Quantity: 1})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "viewer no tiene operations.create")

	resp = f.do(t, http.MethodPost, "/api/operations/incoming", f.admin, dto.IncomingRequest{ItemID: item, Quantity: 8})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decode[dto.OperationCreatedResponse](t, resp)
	assert.Equal(t, int64(10), out.NewQuantity)
	assert.Equal(t, f.adminID, out.Operation.EmployeeID)

	resp = f.do(t, http.MethodGet, "/api/operations?type=incoming", f.viewer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.OperationResponse](t, resp), 1)
}

func TestUsers_SoloAdmin(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodGet, "/api/users", f.viewer, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = f.do(t, http.MethodDelete, "/api/users/"+f.adminID, f.admin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "un admin no puede eliminarse a sí mismo")

	resp = f.do(t, http.MethodGet, "/api/users/stats/overview", f.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := decode[dto.UserStatsResponse](t, resp)
	assert.Equal(t, int64(2), stats.Total)

	resp = f.do(t, http.MethodPost, "/api/users", f.admin, dto.CreateUserRequest{
		Username: "admin", Name: "Dup", Email: "dup@x.co", Password: "secreta", Roles: []string{"viewer"},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestReports_Export(t *testing.T) {
	f := newAPI(t)
	f.store.AddItem(entity.Item{Name: "Casco", Quantity: 4})

	resp := f.do(t, http.MethodGet, "/api/reports/export?dataset=items&format=csv", f.viewer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `attachment; filename="items_`)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Casco")

	resp = f.do(t, http.MethodGet, "/api/reports/export", f.viewer, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/reports/summary?opType=otro", f.viewer, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNotifications(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodPost, "/api/notifications/low-stock", f.admin, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/notifications/operation", f.admin, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/notifications/weekly-report", f.admin, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/notifications/status", f.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, notification.ModeActive, decode[dto.NotificationStatusResponse](t, resp).Status)
}
