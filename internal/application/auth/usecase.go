// Package auth autenticación de usuarios internos: login por DNI con
// contraseña bcrypt y emisión de tokens JWT.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
	"github.com/drtc-puno/sirret-api/internal/domain/validacion"
	"github.com/drtc-puno/sirret-api/pkg/config"
	"github.com/drtc-puno/sirret-api/pkg/jwt"
)

// UseCase casos de uso de autenticación.
type UseCase struct {
	usuarios repository.UsuarioRepository
	cfg      config.JWTConfig
}

// New construye el caso de uso.
func New(usuarios repository.UsuarioRepository, cfg config.JWTConfig) *UseCase {
	return &UseCase{usuarios: usuarios, cfg: cfg}
}

// Login valida DNI + contraseña y emite un JWT. Credenciales incorrectas y
// usuarios inexistentes devuelven el mismo error para no filtrar existencia.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := validacion.ValidarDNI(in.DNI); err != nil {
		return nil, domain.ErrCredencialesInvalidas
	}
	u, err := uc.usuarios.GetByDNI(ctx, in.DNI)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.EstaActivo {
		return nil, domain.ErrCredencialesInvalidas
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrCredencialesInvalidas
	}

	token, err := jwt.Generate(uc.cfg.Secret, u.ID, u.DNI, u.Rol, uc.cfg.Issuer, uc.cfg.Expiration)
	if err != nil {
		return nil, fmt.Errorf("emitir token: %w", err)
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   uc.cfg.Expiration * 60,
		UserID:      u.ID,
		Nombre:      strings.TrimSpace(u.Nombres + " " + u.Apellidos),
		Rol:         u.Rol,
	}, nil
}

// Register da de alta un usuario interno. El DNI es único; la contraseña se
// guarda como hash bcrypt.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterUsuarioRequest) (*entity.Usuario, error) {
	if err := validacion.ValidarDNI(in.DNI); err != nil {
		return nil, err
	}
	if len(in.Password) < 8 {
		return nil, fmt.Errorf("la contraseña debe tener al menos 8 caracteres: %w", domain.ErrEntradaInvalida)
	}
	if !rolValido(in.Rol) {
		return nil, fmt.Errorf("rol %q: %w", in.Rol, domain.ErrEntradaInvalida)
	}

	existente, err := uc.usuarios.GetByDNI(ctx, in.DNI)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, fmt.Errorf("DNI %s ya registrado: %w", in.DNI, domain.ErrDuplicado)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashear contraseña: %w", err)
	}

	ahora := time.Now()
	u := &entity.Usuario{
		ID:           uuid.New().String(),
		DNI:          in.DNI,
		Nombres:      strings.TrimSpace(in.Nombres),
		Apellidos:    strings.TrimSpace(in.Apellidos),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: string(hash),
		Rol:          in.Rol,
		AreaID:       in.AreaID,
		EstaActivo:   true,
		CreatedAt:    ahora,
		UpdatedAt:    ahora,
	}
	if err := uc.usuarios.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func rolValido(rol string) bool {
	switch rol {
	case entity.RolAdmin, entity.RolOperador, entity.RolMesaPartes, entity.RolConsulta:
		return true
	}
	return false
}
