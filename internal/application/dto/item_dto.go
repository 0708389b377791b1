package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest request para crear un artículo. Los numéricos omitidos valen 0.
type CreateItemRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	CategoryID  string           `json:"category_id"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int64           `json:"quantity"`
	MinQuantity *int64           `json:"min_quantity"`
	Barcode     string           `json:"barcode"`
	Location    string           `json:"location"`
	Supplier    string           `json:"supplier"`
}

// UpdateItemRequest reemplaza todos los campos editables del artículo.
type UpdateItemRequest = CreateItemRequest

// ItemSearchQuery parámetros de GET /api/items/search.
type ItemSearchQuery struct {
	Q          string `query:"q"`
	CategoryID string `query:"category_id"`
	MinPrice   string `query:"min_price"`
	MaxPrice   string `query:"max_price"`
	InStock    bool   `query:"in_stock"`
	LowStock   bool   `query:"low_stock"`
}

// ItemResponse artículo en respuestas.
type ItemResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int64           `json:"quantity"`
	MinQuantity  int64           `json:"min_quantity"`
	Barcode      string          `json:"barcode"`
	Location     string          `json:"location"`
	Supplier     string          `json:"supplier"`
	LowStock     bool            `json:"low_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
