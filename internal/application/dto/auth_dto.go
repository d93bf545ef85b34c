package dto

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token emitido + perfil del empleado.
type LoginResponse struct {
	Token    string           `json:"token"`
	Employee EmployeeResponse `json:"employee"`
}

// ChangePasswordRequest cambio de contraseña por el propio usuario.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// ResetAdminRequest restablecimiento de la contraseña del admin, protegido
// por el secreto ADMIN_RESET_SECRET (solo para recuperación).
type ResetAdminRequest struct {
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
	Secret      string `json:"secret" validate:"required"`
}
