package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// StatsUseCase indicadores del tablero.
type StatsUseCase struct {
	repo repository.ReportRepository
	now  func() time.Time
}

// NewStatsUseCase construye el caso de uso.
func NewStatsUseCase(repo repository.ReportRepository) *StatsUseCase {
	return &StatsUseCase{repo: repo, now: time.Now}
}

// Get calcula los indicadores; "hoy" se mide en la zona horaria local del servidor.
func (uc *StatsUseCase) Get(ctx context.Context) (*dto.StatsResponse, error) {
	now := uc.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	s, err := uc.repo.Stats(ctx, dayStart)
	if err != nil {
		return nil, err
	}
	return &dto.StatsResponse{
		TotalItems:      s.TotalItems,
		TotalValue:      s.TotalValue,
		LowStockItems:   s.LowStockItems,
		TodayOperations: s.TodayOperations,
		TotalCategories: s.TotalCategories,
		TotalOperations: s.TotalOperations,
	}, nil
}
