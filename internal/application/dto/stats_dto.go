package dto

import "github.com/shopspring/decimal"

// StatsResponse indicadores del tablero principal.
type StatsResponse struct {
	TotalItems      int64           `json:"totalItems"`
	TotalValue      decimal.Decimal `json:"totalValue"`
	LowStockItems   int64           `json:"lowStockItems"`
	TodayOperations int64           `json:"todayOperations"`
	TotalCategories int64           `json:"totalCategories"`
	TotalOperations int64           `json:"totalOperations"`
}
