package entity

import "time"

// Roles de usuario del sistema.
const (
	RolAdmin      = "admin"
	RolOperador   = "operador"
	RolMesaPartes = "mesa_partes"
	RolConsulta   = "consulta"
)

// Usuario cuenta interna de la DRTC. El login es por DNI.
type Usuario struct {
	ID           string
	DNI          string // 8 dígitos, único
	Nombres      string
	Apellidos    string
	Email        string
	PasswordHash string // bcrypt
	Rol          string
	AreaID       string // área a la que pertenece (Mesa de Partes)

	EstaActivo bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
