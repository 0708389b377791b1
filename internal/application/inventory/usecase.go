package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	domaininv "github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

const dateLayout = "2006-01-02"

// OperationUseCase registra entradas y salidas de stock de forma transaccional
// con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback, y consulta el historial.
type OperationUseCase struct {
	txRunner  TxRunner
	opRepo    repository.OperationRepository
	publisher EventPublisher
	notifier  Notifier
	log       *logger.Logger
	now       func() time.Time
}

// NewOperationUseCase construye el caso de uso. publisher y notifier pueden ser nil.
func NewOperationUseCase(
	txRunner TxRunner,
	opRepo repository.OperationRepository,
	publisher EventPublisher,
	notifier Notifier,
	log *logger.Logger,
) *OperationUseCase {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &OperationUseCase{
		txRunner:  txRunner,
		opRepo:    opRepo,
		publisher: publisher,
		notifier:  notifier,
		log:       log,
		now:       time.Now,
	}
}

// movementInput entrada común de entradas y salidas.
type movementInput struct {
	Type      string
	ItemID    string
	UserID    string
	Quantity  int64
	Supplier  string
	Recipient string
	Notes     string
}

// RegisterIncoming suma stock al artículo y registra la operación.
func (uc *OperationUseCase) RegisterIncoming(ctx context.Context, userID string, in dto.IncomingRequest) (*dto.OperationCreatedResponse, error) {
	return uc.register(ctx, movementInput{
		Type:     entity.OperationIncoming,
		ItemID:   in.ItemID,
		UserID:   userID,
		Quantity: in.Quantity,
		Supplier: strings.TrimSpace(in.Supplier),
		Notes:    strings.TrimSpace(in.Notes),
	})
}

// RegisterOutgoing resta stock al artículo y registra la operación.
// Si el stock no alcanza devuelve ErrInsufficientStock y no cambia nada.
func (uc *OperationUseCase) RegisterOutgoing(ctx context.Context, userID string, in dto.OutgoingRequest) (*dto.OperationCreatedResponse, error) {
	return uc.register(ctx, movementInput{
		Type:      entity.OperationOutgoing,
		ItemID:    in.ItemID,
		UserID:    userID,
		Quantity:  in.Quantity,
		Recipient: strings.TrimSpace(in.Recipient),
		Notes:     strings.TrimSpace(in.Notes),
	})
}

func (uc *OperationUseCase) register(ctx context.Context, in movementInput) (*dto.OperationCreatedResponse, error) {
	if in.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if strings.TrimSpace(in.ItemID) == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	now := uc.now()
	op := &entity.Operation{
		ID:         uuid.New().String(),
		Type:       in.Type,
		ItemID:     in.ItemID,
		EmployeeID: in.UserID,
		Quantity:   in.Quantity,
		Date:       now,
		Status:     entity.OperationStatusCompleted,
		Notes:      in.Notes,
		Supplier:   in.Supplier,
		Recipient:  in.Recipient,
		CreatedAt:  now,
	}
	var item entity.Item

	// Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace)
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, opRepo repository.OperationRepository) error {
		locked, err := itemRepo.GetForUpdate(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrItemNotFound
		}
		newQty, err := domaininv.ApplyMovement(in.Type, locked.Quantity, in.Quantity)
		if err != nil {
			return err
		}
		if err := itemRepo.UpdateQuantity(ctx, locked.ID, newQty); err != nil {
			return err
		}
		locked.Quantity = newQty
		item = *locked
		return opRepo.Create(ctx, op)
	})
	if err != nil {
		return nil, err
	}

	// Releer con nombres de artículo y empleado resueltos.
	if full, err := uc.opRepo.GetByID(ctx, op.ID); err == nil && full != nil {
		op = full
	} else if op.ItemName == "" {
		op.ItemName = item.Name
	}

	uc.afterCommit(ctx, op, &item)

	return &dto.OperationCreatedResponse{
		Message:     operationMessage(op.Type),
		Operation:   dto.FromOperation(op),
		NewQuantity: item.Quantity,
	}, nil
}

// afterCommit dispara evento y correos. Los fallos se registran y no afectan la respuesta.
func (uc *OperationUseCase) afterCommit(ctx context.Context, op *entity.Operation, item *entity.Item) {
	if err := uc.publisher.PublishOperation(ctx, op, item); err != nil {
		uc.log.Warn().Err(err).Str("operation_id", op.ID).Msg("publicar evento de operación")
	}
	if uc.notifier == nil {
		return
	}
	if err := uc.notifier.NotifyOperation(ctx, dto.NoticeFromOperation(op)); err != nil {
		uc.log.Warn().Err(err).Str("operation_id", op.ID).Msg("notificar operación")
	}
	if op.Type == entity.OperationOutgoing && domaininv.IsLowStock(item.Quantity, item.MinQuantity) {
		alert := []dto.LowStockItem{{Name: item.Name, Quantity: item.Quantity, MinQuantity: item.MinQuantity}}
		if err := uc.notifier.NotifyLowStock(ctx, alert); err != nil {
			uc.log.Warn().Err(err).Str("item_id", item.ID).Msg("notificar stock bajo")
		}
	}
}

// GetByID obtiene una operación con nombres resueltos.
func (uc *OperationUseCase) GetByID(ctx context.Context, id string) (*dto.OperationResponse, error) {
	op, err := uc.opRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, domain.ErrOperationNotFound
	}
	out := dto.FromOperation(op)
	return &out, nil
}

// List filtra y ordena el historial. Por defecto: fecha descendente.
func (uc *OperationUseCase) List(ctx context.Context, q dto.OperationListQuery) ([]dto.OperationResponse, error) {
	filter, err := FilterFromQuery(q)
	if err != nil {
		return nil, err
	}
	list, err := uc.opRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.FromOperations(list), nil
}

// FilterFromQuery valida y traduce los parámetros del listado. endDate es inclusivo.
func FilterFromQuery(q dto.OperationListQuery) (repository.OperationFilter, error) {
	f := repository.OperationFilter{
		Type:       q.Type,
		ItemID:     q.ItemID,
		EmployeeID: q.EmployeeID,
		SortBy:     "date",
		SortOrder:  "desc",
		Limit:      q.Limit,
	}
	if f.Type != "" && !entity.IsValidOperationType(f.Type) {
		return f, domain.ErrInvalidInput
	}
	switch q.SortBy {
	case "", "date":
	case "quantity":
		f.SortBy = "quantity"
	default:
		return f, domain.ErrInvalidInput
	}
	switch strings.ToLower(q.SortOrder) {
	case "", "desc":
	case "asc":
		f.SortOrder = "asc"
	default:
		return f, domain.ErrInvalidInput
	}
	if f.Limit < 0 {
		return f, domain.ErrInvalidInput
	}
	start, end, err := ParseDateRange(q.StartDate, q.EndDate)
	if err != nil {
		return f, err
	}
	f.StartDate, f.EndDate = start, end
	return f, nil
}

// ParseDateRange convierte fechas YYYY-MM-DD en [inicio, fin+1día). Vacío = sin límite.
func ParseDateRange(from, to string) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if from != "" {
		t, err := time.ParseInLocation(dateLayout, from, time.Local)
		if err != nil {
			return nil, nil, domain.ErrInvalidInput
		}
		start = &t
	}
	if to != "" {
		t, err := time.ParseInLocation(dateLayout, to, time.Local)
		if err != nil {
			return nil, nil, domain.ErrInvalidInput
		}
		t = t.AddDate(0, 0, 1)
		end = &t
	}
	if start != nil && end != nil && !start.Before(*end) {
		return nil, nil, domain.ErrInvalidInput
	}
	return start, end, nil
}

func operationMessage(opType string) string {
	if opType == entity.OperationIncoming {
		return "Entrada registrada correctamente"
	}
	return "Salida registrada correctamente"
}
