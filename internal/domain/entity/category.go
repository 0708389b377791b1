package entity

import "time"

// Valores por defecto de presentación de una categoría.
const (
	DefaultCategoryIcon  = "fas fa-tag"
	DefaultCategoryColor = "#2c5aa0"
)

// Category agrupa artículos y lleva metadatos de presentación (icono, color).
type Category struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Color       string
	Active      bool
	ItemCount   int64 // solo lectura en listados
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
