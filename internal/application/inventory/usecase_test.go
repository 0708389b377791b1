package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/testutil/fakes"
)

type fixture struct {
	uc        *inventory.OperationUseCase
	store     *fakes.Store
	notifier  *fakes.Notifier
	publisher *fakes.Publisher
	userID    string
	itemID    string
}

func newFixture(qty, minQty int64) *fixture {
	store := fakes.NewStore()
	f := &fixture{store: store, notifier: &fakes.Notifier{}, publisher: &fakes.Publisher{}}
	f.userID = store.AddUser(entity.User{Username: "op", Name: "Operador Uno", Active: true}, entity.RoleOperator)
	f.itemID = store.AddItem(entity.Item{Name: "Caja de cartón", Quantity: qty, MinQuantity: minQty})
	f.uc = inventory.NewOperationUseCase(fakes.NewTxRunner(store), fakes.NewOperationRepo(store), f.publisher, f.notifier, nil)
	return f
}

func TestRegisterIncoming(t *testing.T) {
	f := newFixture(10, 2)
	out, err := f.uc.RegisterIncoming(context.Background(), f.userID, dto.IncomingRequest{ItemID: f.itemID, Quantity: 5, Supplier: " ACME "})
	require.NoError(t, err)

	assert.Equal(t, int64(15), out.NewQuantity)
	assert.Equal(t, entity.OperationIncoming, out.Operation.Type)
	assert.Equal(t, "ACME", out.Operation.Supplier)
	assert.Equal(t, "Caja de cartón", out.Operation.ItemName)
	assert.Equal(t, "Operador Uno", out.Operation.EmployeeName, "el empleado es el usuario del token")
	assert.Equal(t, entity.OperationStatusCompleted, out.Operation.Status)

	it, _ := f.store.Item(f.itemID)
	assert.Equal(t, int64(15), it.Quantity)
	assert.Len(t, f.publisher.Events, 1)
	assert.Len(t, f.notifier.Operations, 1)
	assert.Empty(t, f.notifier.LowStock, "una entrada nunca dispara alerta de stock bajo")
}

func TestRegisterOutgoing_StockInsuficiente_NoCambiaNada(t *testing.T) {
	f := newFixture(3, 0)
	_, err := f.uc.RegisterOutgoing(context.Background(), f.userID, dto.OutgoingRequest{ItemID: f.itemID, Quantity: 4})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	it, _ := f.store.Item(f.itemID)
	assert.Equal(t, int64(3), it.Quantity, "el stock no debe cambiar")
	assert.Equal(t, 0, f.store.OperationCount(), "no se registra operación")
	assert.Empty(t, f.publisher.Events)
	assert.Empty(t, f.notifier.Operations)
}

func TestRegisterOutgoing_AlertaStockBajo(t *testing.T) {
	f := newFixture(10, 5)
	out, err := f.uc.RegisterOutgoing(context.Background(), f.userID, dto.OutgoingRequest{ItemID: f.itemID, Quantity: 5, Recipient: "Obra 7"})
	require.NoError(t, err)

	assert.Equal(t, int64(5), out.NewQuantity)
	require.Len(t, f.notifier.LowStock, 1, "quedar en el mínimo dispara la alerta")
	assert.Equal(t, []dto.LowStockItem{{Name: "Caja de cartón", Quantity: 5, MinQuantity: 5}}, f.notifier.LowStock[0])
}

func TestRegisterOutgoing_TodoElStock(t *testing.T) {
	f := newFixture(4, 0)
	out, err := f.uc.RegisterOutgoing(context.Background(), f.userID, dto.OutgoingRequest{ItemID: f.itemID, Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.NewQuantity)
}

func TestRegister_Validaciones(t *testing.T) {
	f := newFixture(10, 0)
	ctx := context.Background()

	_, err := f.uc.RegisterIncoming(ctx, f.userID, dto.IncomingRequest{ItemID: f.itemID, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.RegisterOutgoing(ctx, f.userID, dto.OutgoingRequest{ItemID: f.itemID, Quantity: -2})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.RegisterIncoming(ctx, f.userID, dto.IncomingRequest{ItemID: "no-existe", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	_, err = f.uc.RegisterIncoming(ctx, "", dto.IncomingRequest{ItemID: f.itemID, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRegister_RollbackSiFallaElInsert(t *testing.T) {
	f := newFixture(10, 0)
	f.store.FailOn["op.create"] = errors.New("insert falló")

	_, err := f.uc.RegisterIncoming(context.Background(), f.userID, dto.IncomingRequest{ItemID: f.itemID, Quantity: 5})
	require.Error(t, err)
	it, _ := f.store.Item(f.itemID)
	assert.Equal(t, int64(10), it.Quantity, "la actualización de stock se revierte")
}

func TestRegister_FallosPosterioresNoAfectanLaRespuesta(t *testing.T) {
	f := newFixture(10, 20)
	f.publisher.Err = errors.New("nats caído")
	f.notifier.Err = errors.New("smtp caído")

	out, err := f.uc.RegisterOutgoing(context.Background(), f.userID, dto.OutgoingRequest{ItemID: f.itemID, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(9), out.NewQuantity)
}

func TestListYGetByID(t *testing.T) {
	f := newFixture(100, 0)
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)
	f.store.AddOperation(entity.Operation{Type: entity.OperationIncoming, ItemID: f.itemID, EmployeeID: f.userID, Quantity: 5, Date: base})
	f.store.AddOperation(entity.Operation{Type: entity.OperationOutgoing, ItemID: f.itemID, EmployeeID: f.userID, Quantity: 9, Date: base.AddDate(0, 0, 1)})
	last := f.store.AddOperation(entity.Operation{Type: entity.OperationOutgoing, ItemID: f.itemID, EmployeeID: f.userID, Quantity: 1, Date: base.AddDate(0, 0, 2)})
	ctx := context.Background()

	list, err := f.uc.List(ctx, dto.OperationListQuery{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, last, list[0].ID, "por defecto fecha descendente")

	list, err = f.uc.List(ctx, dto.OperationListQuery{Type: entity.OperationOutgoing, SortBy: "quantity", SortOrder: "asc"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].Quantity)

	list, err = f.uc.List(ctx, dto.OperationListQuery{StartDate: "2024-03-10", EndDate: "2024-03-11"})
	require.NoError(t, err)
	assert.Len(t, list, 2, "endDate es inclusivo")

	list, err = f.uc.List(ctx, dto.OperationListQuery{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = f.uc.List(ctx, dto.OperationListQuery{SortBy: "nombre"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.List(ctx, dto.OperationListQuery{StartDate: "10/03/2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	op, err := f.uc.GetByID(ctx, last)
	require.NoError(t, err)
	assert.Equal(t, "Operador Uno", op.EmployeeName)
	_, err = f.uc.GetByID(ctx, "nada")
	assert.ErrorIs(t, err, domain.ErrOperationNotFound)
}

func TestParseDateRange(t *testing.T) {
	start, end, err := inventory.ParseDateRange("2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, 1, start.Day())
	assert.Equal(t, time.February, end.Month(), "el fin se lleva al día siguiente")

	_, _, err = inventory.ParseDateRange("2024-02-01", "2024-01-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	s, e, err := inventory.ParseDateRange("", "")
	require.NoError(t, err)
	assert.Nil(t, s)
	assert.Nil(t, e)
}
