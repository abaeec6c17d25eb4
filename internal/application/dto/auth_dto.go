package dto

// LoginRequest credenciales de acceso (form-encoded: DNI + password).
type LoginRequest struct {
	DNI      string `json:"dni" form:"dni"`
	Password string `json:"password" form:"password"`
}

// LoginResponse token emitido tras autenticación.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"` // "bearer"
	ExpiresIn   int    `json:"expires_in"` // segundos
	UserID      string `json:"user_id"`
	Nombre      string `json:"nombre"`
	Rol         string `json:"rol"`
}

// RegisterUsuarioRequest alta de usuario interno.
type RegisterUsuarioRequest struct {
	DNI       string `json:"dni"`
	Nombres   string `json:"nombres"`
	Apellidos string `json:"apellidos"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Rol       string `json:"rol"`
	AreaID    string `json:"area_id"`
}
