package dto

import (
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
)

// FromUser convierte la entidad a respuesta (nunca expone el hash).
func FromUser(u *entity.User) UserResponse {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	perms := u.Permissions
	if perms == nil {
		perms = []string{}
	}
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Name:        u.Name,
		Email:       u.Email,
		Department:  u.Department,
		Position:    u.Position,
		Active:      u.Active,
		LastLogin:   u.LastLogin,
		Roles:       roles,
		Permissions: perms,
		Settings: NotificationSettingsDTO{
			LowStockAlerts:     u.Settings.LowStockAlerts,
			EmailNotifications: u.Settings.EmailNotifications,
			OperationReports:   u.Settings.OperationReports,
		},
		CreatedAt: u.CreatedAt,
	}
}

// FromItem convierte la entidad a respuesta.
func FromItem(i *entity.Item) ItemResponse {
	return ItemResponse{
		ID:           i.ID,
		Name:         i.Name,
		Description:  i.Description,
		CategoryID:   i.CategoryID,
		CategoryName: i.CategoryName,
		Price:        i.Price,
		Quantity:     i.Quantity,
		MinQuantity:  i.MinQuantity,
		Barcode:      i.Barcode,
		Location:     i.Location,
		Supplier:     i.Supplier,
		LowStock:     inventory.IsLowStock(i.Quantity, i.MinQuantity),
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

// FromItems convierte una lista; nunca devuelve nil para que el JSON sea [].
func FromItems(list []*entity.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(list))
	for _, i := range list {
		out = append(out, FromItem(i))
	}
	return out
}

// FromCategory convierte la entidad a respuesta.
func FromCategory(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Icon:        c.Icon,
		Color:       c.Color,
		Active:      c.Active,
		ItemCount:   c.ItemCount,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// FromOperation convierte la entidad a respuesta.
func FromOperation(op *entity.Operation) OperationResponse {
	return OperationResponse{
		ID:           op.ID,
		Type:         op.Type,
		ItemID:       op.ItemID,
		ItemName:     op.ItemName,
		EmployeeID:   op.EmployeeID,
		EmployeeName: op.EmployeeName,
		Quantity:     op.Quantity,
		Date:         op.Date,
		Status:       op.Status,
		Notes:        op.Notes,
		Supplier:     op.Supplier,
		Recipient:    op.Recipient,
	}
}

// FromOperations convierte una lista; nunca devuelve nil.
func FromOperations(list []*entity.Operation) []OperationResponse {
	out := make([]OperationResponse, 0, len(list))
	for _, op := range list {
		out = append(out, FromOperation(op))
	}
	return out
}

// NoticeFromOperation arma el aviso de correo a partir de una operación.
func NoticeFromOperation(op *entity.Operation) OperationNotice {
	return OperationNotice{
		Type:         op.Type,
		ItemName:     op.ItemName,
		Quantity:     op.Quantity,
		EmployeeName: op.EmployeeName,
		Date:         op.Date,
		Notes:        op.Notes,
	}
}
