package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

type recordingClient struct {
	tasks []*asynq.Task
	err   error
}

func (c *recordingClient) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.tasks = append(c.tasks, task)
	return &asynq.TaskInfo{ID: "t1", Type: task.Type()}, nil
}

type fakeRunner struct {
	op       *dto.OperationNotice
	lowStock []dto.LowStockItem
	weekly   int
	sweeps   int
}

func (f *fakeRunner) SendOperation(_ context.Context, op dto.OperationNotice) (*dto.NotificationResponse, error) {
	f.op = &op
	return &dto.NotificationResponse{Message: "ok"}, nil
}

func (f *fakeRunner) SendLowStock(_ context.Context, items []dto.LowStockItem) (*dto.NotificationResponse, error) {
	f.lowStock = items
	return &dto.NotificationResponse{Message: "ok"}, nil
}

func (f *fakeRunner) RunWeeklyReport(context.Context) (*dto.NotificationResponse, error) {
	f.weekly++
	return &dto.NotificationResponse{Message: "ok"}, nil
}

func (f *fakeRunner) RunLowStockSweep(context.Context) (*dto.NotificationResponse, error) {
	f.sweeps++
	return nil, nil
}

func TestEnqueuer_NotifyOperation(t *testing.T) {
	client := &recordingClient{}
	e := NewEnqueuer(client)
	notice := dto.OperationNotice{Type: "incoming", ItemName: "Tornillo", Quantity: 5, Date: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}

	require.NoError(t, e.NotifyOperation(context.Background(), notice))
	require.Len(t, client.tasks, 1)
	assert.Equal(t, TypeOperationNotification, client.tasks[0].Type())

	var got dto.OperationNotice
	require.NoError(t, json.Unmarshal(client.tasks[0].Payload(), &got))
	assert.Equal(t, "Tornillo", got.ItemName)
	assert.Equal(t, int64(5), got.Quantity)
}

func TestEnqueuer_NotifyLowStock_EmptyIsNoop(t *testing.T) {
	client := &recordingClient{}
	require.NoError(t, NewEnqueuer(client).NotifyLowStock(context.Background(), nil))
	assert.Empty(t, client.tasks)
}

func TestEnqueuer_PropagatesClientError(t *testing.T) {
	client := &recordingClient{err: errors.New("redis down")}
	err := NewEnqueuer(client).NotifyLowStock(context.Background(), []dto.LowStockItem{{Name: "A", Quantity: 1, MinQuantity: 2}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), TypeLowStockAlert)
}

func TestHandlers_RoundTrip(t *testing.T) {
	runner := &fakeRunner{}
	h := NewHandlers(runner, logger.Nop())
	ctx := context.Background()

	task, err := NewLowStockAlertTask([]dto.LowStockItem{{Name: "Cable", Quantity: 1, MinQuantity: 3}})
	require.NoError(t, err)
	require.NoError(t, h.HandleLowStockAlert(ctx, task))
	require.Len(t, runner.lowStock, 1)
	assert.Equal(t, "Cable", runner.lowStock[0].Name)

	task, err = NewOperationNotificationTask(dto.OperationNotice{Type: "outgoing", ItemName: "Cable", Quantity: 2})
	require.NoError(t, err)
	require.NoError(t, h.HandleOperationNotification(ctx, task))
	require.NotNil(t, runner.op)
	assert.Equal(t, "outgoing", runner.op.Type)

	require.NoError(t, h.HandleWeeklyReport(ctx, NewWeeklyReportTask()))
	require.NoError(t, h.HandleLowStockSweep(ctx, NewLowStockSweepTask()))
	assert.Equal(t, 1, runner.weekly)
	assert.Equal(t, 1, runner.sweeps)
}

func TestHandlers_BadPayloadSkipsRetry(t *testing.T) {
	h := NewHandlers(&fakeRunner{}, logger.Nop())
	err := h.HandleOperationNotification(context.Background(), asynq.NewTask(TypeOperationNotification, []byte("{")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}
