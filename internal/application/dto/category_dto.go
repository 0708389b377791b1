package dto

import "time"

// CategoryRequest request para crear o actualizar una categoría.
// Icon y Color vacíos toman los valores por defecto.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Active      *bool  `json:"active"`
}

// CategoryResponse categoría en respuestas.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	Active      bool      `json:"active"`
	ItemCount   int64     `json:"item_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryDeleteResponse resultado del borrado en cascada.
type CategoryDeleteResponse struct {
	Success      bool  `json:"success"`
	DeletedItems int64 `json:"deletedItems"`
}
