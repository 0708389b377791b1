package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo almacenado. Quantity es el stock actual y MinQuantity el umbral de reposición.
type Item struct {
	ID           string
	Name         string
	Description  string
	CategoryID   string // vacío si no tiene categoría
	CategoryName string // solo lectura (JOIN con categories)
	Price        decimal.Decimal
	Quantity     int64
	MinQuantity  int64
	Barcode      string // único cuando no está vacío
	Location     string
	Supplier     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Value devuelve price × quantity.
func (i *Item) Value() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}
