package inventory

import (
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// IsLowStock indica si el stock está en o por debajo del umbral de reposición.
func IsLowStock(quantity, minQuantity int64) bool {
	return quantity <= minQuantity
}

// ApplyMovement calcula el nuevo stock tras una operación (servicio de dominio).
// Una salida mayor al stock actual devuelve ErrInsufficientStock y el stock no cambia.
func ApplyMovement(opType string, current, quantity int64) (int64, error) {
	if quantity <= 0 {
		return current, domain.ErrInvalidInput
	}
	switch opType {
	case entity.OperationIncoming:
		return current + quantity, nil
	case entity.OperationOutgoing:
		if current < quantity {
			return current, domain.ErrInsufficientStock
		}
		return current - quantity, nil
	}
	return current, domain.ErrInvalidInput
}
