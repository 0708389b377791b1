package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/testutil/fakes"
)

func TestStatsGet(t *testing.T) {
	store := fakes.NewStore()
	store.AddCategory("A")
	store.AddCategory("B")
	a := store.AddItem(entity.Item{Name: "a", Price: decimal.RequireFromString("2.50"), Quantity: 4, MinQuantity: 1})
	store.AddItem(entity.Item{Name: "b", Price: decimal.NewFromInt(10), Quantity: 1, MinQuantity: 3})
	store.AddOperation(entity.Operation{ItemID: a, Type: entity.OperationIncoming, Quantity: 1, Date: time.Now()})
	store.AddOperation(entity.Operation{ItemID: a, Type: entity.OperationIncoming, Quantity: 1, Date: time.Now().AddDate(0, 0, -3)})

	out, err := usecase.NewStatsUseCase(fakes.NewReportRepo(store)).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), out.TotalItems, "suma de cantidades")
	assert.True(t, decimal.NewFromInt(20).Equal(out.TotalValue), "2.5×4 + 10×1")
	assert.Equal(t, int64(1), out.LowStockItems)
	assert.Equal(t, int64(1), out.TodayOperations)
	assert.Equal(t, int64(2), out.TotalCategories)
	assert.Equal(t, int64(2), out.TotalOperations)
}
