package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/testutil/fakes"
)

func i64(v int64) *int64 { return &v }

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func newItemUC() (*usecase.ItemUseCase, *fakes.Store) {
	store := fakes.NewStore()
	return usecase.NewItemUseCase(fakes.NewItemRepo(store), fakes.NewCategoryRepo(store)), store
}

func TestItemCreate_Defaults(t *testing.T) {
	uc, _ := newItemUC()
	out, err := uc.Create(context.Background(), dto.CreateItemRequest{Name: "  Tornillo 3mm "})
	require.NoError(t, err)

	assert.Equal(t, "Tornillo 3mm", out.Name)
	assert.True(t, out.Price.IsZero())
	assert.Equal(t, int64(0), out.Quantity)
	assert.Equal(t, int64(0), out.MinQuantity)
	assert.True(t, out.LowStock, "0 <= 0 es stock bajo")
}

func TestItemCreate_Validaciones(t *testing.T) {
	uc, _ := newItemUC()
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateItemRequest{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateItemRequest{Name: "x", Price: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateItemRequest{Name: "x", Quantity: i64(-3)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateItemRequest{Name: "x", CategoryID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestItemCreate_BarcodeDuplicado(t *testing.T) {
	uc, _ := newItemUC()
	ctx := context.Background()
	_, err := uc.Create(ctx, dto.CreateItemRequest{Name: "a", Barcode: "779"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateItemRequest{Name: "b", Barcode: "779"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = uc.Create(ctx, dto.CreateItemRequest{Name: "c"})
	assert.NoError(t, err, "barcode vacío no cuenta como duplicado")
}

func TestItemUpdateYDelete(t *testing.T) {
	uc, store := newItemUC()
	ctx := context.Background()
	cat := store.AddCategory("Ferretería")

	created, err := uc.Create(ctx, dto.CreateItemRequest{Name: "Martillo", Quantity: i64(5)})
	require.NoError(t, err)

	updated, err := uc.Update(ctx, created.ID, dto.UpdateItemRequest{Name: "Martillo grande", CategoryID: cat, Price: dec("12.50"), Quantity: i64(7), MinQuantity: i64(2)})
	require.NoError(t, err)
	assert.Equal(t, "Ferretería", updated.CategoryName)
	assert.Equal(t, int64(7), updated.Quantity)
	assert.False(t, updated.LowStock)

	_, err = uc.Update(ctx, "no-existe", dto.UpdateItemRequest{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	require.NoError(t, uc.Delete(ctx, created.ID))
	_, err = uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), domain.ErrItemNotFound)
}

func TestItemSearchYLowStock(t *testing.T) {
	uc, store := newItemUC()
	ctx := context.Background()
	cat := store.AddCategory("Eléctricos")
	store.AddItem(entity.Item{Name: "Cable UTP", CategoryID: cat, Price: decimal.NewFromInt(10), Quantity: 50, MinQuantity: 10})
	store.AddItem(entity.Item{Name: "Cinta aislante", Description: "negra", Price: decimal.NewFromInt(3), Quantity: 2, MinQuantity: 5})
	store.AddItem(entity.Item{Name: "Guantes", Barcode: "CAB-01", Price: decimal.NewFromInt(8), Quantity: 0, MinQuantity: 0})

	res, err := uc.Search(ctx, dto.ItemSearchQuery{Q: "CAB"})
	require.NoError(t, err)
	assert.Len(t, res, 2, "busca en nombre y código de barras sin distinguir mayúsculas")

	res, err = uc.Search(ctx, dto.ItemSearchQuery{MinPrice: "5", InStock: true})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Cable UTP", res[0].Name)

	res, err = uc.Search(ctx, dto.ItemSearchQuery{CategoryID: cat})
	require.NoError(t, err)
	assert.Len(t, res, 1)

	_, err = uc.Search(ctx, dto.ItemSearchQuery{MaxPrice: "abc"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	low, err := uc.LowStock(ctx)
	require.NoError(t, err)
	names := []string{}
	for _, it := range low {
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{"Cinta aislante", "Guantes"}, names)
}
