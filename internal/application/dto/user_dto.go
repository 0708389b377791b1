package dto

import "time"

// LoginRequest request para POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse token JWT + datos del usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// NotificationSettingsDTO preferencias de correo.
type NotificationSettingsDTO struct {
	LowStockAlerts     bool `json:"low_stock_alerts"`
	EmailNotifications bool `json:"email_notifications"`
	OperationReports   bool `json:"operation_reports"`
}

// UserResponse usuario en respuestas (sin password).
type UserResponse struct {
	ID          string                  `json:"id"`
	Username    string                  `json:"username"`
	Name        string                  `json:"name"`
	Email       string                  `json:"email"`
	Department  string                  `json:"department"`
	Position    string                  `json:"position"`
	Active      bool                    `json:"active"`
	LastLogin   *time.Time              `json:"last_login"`
	Roles       []string                `json:"roles"`
	Permissions []string                `json:"permissions"`
	Settings    NotificationSettingsDTO `json:"settings"`
	CreatedAt   time.Time               `json:"created_at"`
}

// UpdateProfileRequest PUT /api/auth/profile.
type UpdateProfileRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

// ChangePasswordRequest PUT /api/auth/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// CreateUserRequest POST /api/users.
type CreateUserRequest struct {
	Username   string   `json:"username"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Department string   `json:"department"`
	Position   string   `json:"position"`
	Password   string   `json:"password"`
	Roles      []string `json:"roles"`
}

// UpdateUserRequest PUT /api/users/:id. Password vacío no cambia; Roles nil no cambia.
type UpdateUserRequest struct {
	Username   string   `json:"username"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Department string   `json:"department"`
	Position   string   `json:"position"`
	Password   string   `json:"password"`
	Roles      []string `json:"roles"`
	Active     *bool    `json:"active"`
}

// ToggleStatusResponse resultado de activar/desactivar.
type ToggleStatusResponse struct {
	Message string `json:"message"`
	Active  bool   `json:"active"`
}

// UserStatsResponse GET /api/users/stats/overview.
type UserStatsResponse struct {
	Total    int64            `json:"total"`
	Active   int64            `json:"active"`
	Inactive int64            `json:"inactive"`
	ByRole   map[string]int64 `json:"byRole"`
}

// RoleResponse rol disponible.
type RoleResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

// PermissionResponse permiso disponible.
type PermissionResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Module      string `json:"module"`
}
