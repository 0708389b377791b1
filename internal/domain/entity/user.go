package entity

import "time"

// Roles del sistema.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleOperator = "operator"
	RoleViewer   = "viewer"
)

// Permisos que se verifican en las rutas.
const (
	PermItemsRead        = "items.read"
	PermItemsWrite       = "items.write"
	PermCategoriesWrite  = "categories.write"
	PermOperationsCreate = "operations.create"
	PermReportsView      = "reports.view"
	PermUsersManage      = "users.manage"
)

// KnownRoles en el orden en que se reportan.
var KnownRoles = []string{RoleAdmin, RoleManager, RoleOperator, RoleViewer}

// NotificationSettings preferencias de correo del usuario.
type NotificationSettings struct {
	LowStockAlerts     bool
	EmailNotifications bool
	OperationReports   bool
}

// NotificationKind selecciona qué preferencia debe estar activa para recibir un correo.
type NotificationKind string

const (
	NotifyLowStock     NotificationKind = "low_stock"
	NotifyOperation    NotificationKind = "operation"
	NotifyWeeklyReport NotificationKind = "weekly_report"
)

// User representa un empleado con acceso al sistema.
type User struct {
	ID           string
	Username     string
	Name         string
	Email        string
	Department   string
	Position     string
	PasswordHash string // bcrypt
	Active       bool
	LastLogin    *time.Time
	Roles        []string // nombres de rol
	Permissions  []string // unión de permisos de sus roles
	Settings     NotificationSettings
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole indica si el usuario tiene el rol dado.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Role agrupa permisos.
type Role struct {
	ID          string
	Name        string
	Description string
	Permissions []string
}

// Permission es una acción autorizable.
type Permission struct {
	ID          string
	Name        string
	Description string
	Module      string
}

// IsKnownRole indica si name es uno de los roles del sistema.
func IsKnownRole(name string) bool {
	for _, r := range KnownRoles {
		if r == name {
			return true
		}
	}
	return false
}
