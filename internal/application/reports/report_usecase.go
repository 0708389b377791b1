package reports

import (
	"context"
	"strings"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

const (
	operationsReportLimit = 1000
	topItemsLimit         = 20
)

// ReportUseCase reportes de operaciones sobre el filtro compartido.
type ReportUseCase struct {
	repo   repository.ReportRepository
	opRepo repository.OperationRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository, opRepo repository.OperationRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo, opRepo: opRepo}
}

// Summary totales de entradas, salidas, operaciones y artículos distintos.
func (uc *ReportUseCase) Summary(ctx context.Context, q dto.ReportQuery) (*dto.ReportSummaryResponse, error) {
	f, err := FilterFromQuery(q)
	if err != nil {
		return nil, err
	}
	s, err := uc.repo.Summary(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.ReportSummaryResponse{
		TotalIncoming:   s.TotalIncoming,
		TotalOutgoing:   s.TotalOutgoing,
		TotalOperations: s.TotalOperations,
		UniqueItems:     s.UniqueItems,
	}, nil
}

// Operations filas detalladas (máximo 1000, más recientes primero).
func (uc *ReportUseCase) Operations(ctx context.Context, q dto.ReportQuery) ([]dto.ReportOperationResponse, error) {
	f, err := FilterFromQuery(q)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.Operations(ctx, f, operationsReportLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReportOperationResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ReportOperationResponse{
			ID:           r.ID,
			Date:         r.Date,
			Type:         r.Type,
			ItemName:     r.ItemName,
			CategoryName: r.CategoryName,
			Quantity:     r.Quantity,
			EmployeeName: r.EmployeeName,
			Supplier:     r.Supplier,
			Recipient:    r.Recipient,
			Notes:        r.Notes,
		})
	}
	return out, nil
}

// ByCategory cantidad de artículos y stock total por categoría.
func (uc *ReportUseCase) ByCategory(ctx context.Context, q dto.ReportQuery) ([]dto.CategoryReportResponse, error) {
	f, err := FilterFromQuery(q)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.ByCategory(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryReportResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CategoryReportResponse{CategoryName: r.CategoryName, ItemCount: r.ItemCount, TotalQuantity: r.TotalQuantity})
	}
	return out, nil
}

// TopItems los 20 artículos con más volumen movido.
func (uc *ReportUseCase) TopItems(ctx context.Context, q dto.ReportQuery) ([]dto.TopItemResponse, error) {
	f, err := FilterFromQuery(q)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.TopItems(ctx, f, topItemsLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopItemResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopItemResponse{
			ItemID:        r.ItemID,
			ItemName:      r.ItemName,
			TotalIncoming: r.TotalIncoming,
			TotalOutgoing: r.TotalOutgoing,
			TotalVolume:   r.TotalVolume,
		})
	}
	return out, nil
}

// Movement reporte de período: conteos y sumas por tipo más la lista de operaciones.
func (uc *ReportUseCase) Movement(ctx context.Context, q dto.MovementQuery) (*dto.MovementReportResponse, error) {
	start, end, err := inventory.ParseDateRange(q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}
	ops, err := uc.opRepo.List(ctx, repository.OperationFilter{
		StartDate: start,
		EndDate:   end,
		ItemID:    q.ItemID,
		SortBy:    "date",
		SortOrder: "desc",
	})
	if err != nil {
		return nil, err
	}
	out := &dto.MovementReportResponse{
		StartDate:  q.StartDate,
		EndDate:    q.EndDate,
		Operations: dto.FromOperations(ops),
	}
	for _, op := range ops {
		switch op.Type {
		case entity.OperationIncoming:
			out.IncomingCount++
			out.IncomingQuantity += op.Quantity
		case entity.OperationOutgoing:
			out.OutgoingCount++
			out.OutgoingQuantity += op.Quantity
		}
	}
	out.NetChange = out.IncomingQuantity - out.OutgoingQuantity
	return out, nil
}

// FilterFromQuery valida el filtro compartido. dateTo incluye el día completo.
func FilterFromQuery(q dto.ReportQuery) (repository.ReportFilter, error) {
	f := repository.ReportFilter{
		OpType:        q.OpType,
		CategoryID:    strings.TrimSpace(q.CategoryID),
		ItemQuery:     strings.TrimSpace(q.ItemQuery),
		EmployeeQuery: strings.TrimSpace(q.EmployeeQuery),
	}
	if f.OpType != "" && !entity.IsValidOperationType(f.OpType) {
		return f, domain.ErrInvalidInput
	}
	start, end, err := inventory.ParseDateRange(q.DateFrom, q.DateTo)
	if err != nil {
		return f, err
	}
	f.DateFrom, f.DateTo = start, end
	return f, nil
}
