// Package validacion agrupa las validaciones estructurales puras del dominio:
// formatos de RUC, DNI, placa y número de resolución, normalización de códigos
// de ruta y de razones sociales, y aritmética de fechas de negocio.
package validacion

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/drtc-puno/sirret-api/internal/domain"
)

var (
	reDigitos          = regexp.MustCompile(`^[0-9]+$`)
	rePlaca            = regexp.MustCompile(`^[A-Z0-9]{3}-[0-9]{3}$`)
	reNumeroResolucion = regexp.MustCompile(`^R-[0-9]{1,4}-[0-9]{4}$`)
	reHora             = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

// ValidarRUC exige 11 dígitos numéricos.
func ValidarRUC(ruc string) error {
	if len(ruc) != 11 || !reDigitos.MatchString(ruc) {
		return fmt.Errorf("RUC %q: se esperan 11 dígitos: %w", ruc, domain.ErrEntradaInvalida)
	}
	return nil
}

// ValidarDNI exige 8 dígitos numéricos.
func ValidarDNI(dni string) error {
	if len(dni) != 8 || !reDigitos.MatchString(dni) {
		return fmt.Errorf("DNI %q: se esperan 8 dígitos: %w", dni, domain.ErrEntradaInvalida)
	}
	return nil
}

// ValidarPlaca exige el formato XXX-NNN (tres alfanuméricos, guion, tres dígitos).
func ValidarPlaca(placa string) error {
	if !rePlaca.MatchString(strings.ToUpper(strings.TrimSpace(placa))) {
		return fmt.Errorf("placa %q: formato esperado XXX-NNN: %w", placa, domain.ErrEntradaInvalida)
	}
	return nil
}

// NormalizarPlaca devuelve la placa en mayúsculas y sin espacios.
func NormalizarPlaca(placa string) string {
	return strings.ToUpper(strings.TrimSpace(placa))
}

// ValidarNumeroResolucion exige el formato R-NNNN-YYYY.
func ValidarNumeroResolucion(numero string) error {
	if !reNumeroResolucion.MatchString(strings.TrimSpace(numero)) {
		return fmt.Errorf("número de resolución %q: formato esperado R-NNNN-YYYY: %w", numero, domain.ErrEntradaInvalida)
	}
	return nil
}

// NormalizarCodigoRuta recorta, elimina ceros a la izquierda y formatea como
// cadena de dos dígitos: "1", "01" y "001" normalizan todas a "01". Es
// idempotente. Códigos de tres dígitos (>= 100) se conservan tal cual.
func NormalizarCodigoRuta(codigo string) (string, error) {
	c := strings.TrimSpace(codigo)
	if c == "" || !reDigitos.MatchString(c) {
		return "", fmt.Errorf("código de ruta %q: se esperan solo dígitos: %w", codigo, domain.ErrEntradaInvalida)
	}
	n, err := strconv.Atoi(c)
	if err != nil || n <= 0 {
		return "", fmt.Errorf("código de ruta %q: debe ser un entero positivo: %w", codigo, domain.ErrEntradaInvalida)
	}
	return fmt.Sprintf("%02d", n), nil
}

// ValidarHora exige el formato 24h "HH:MM".
func ValidarHora(hora string) error {
	if !reHora.MatchString(hora) {
		return fmt.Errorf("hora %q: formato esperado HH:MM: %w", hora, domain.ErrEntradaInvalida)
	}
	return nil
}

// HoraPosterior informa si b es estrictamente posterior a a (mismo día).
// Asume horas ya validadas.
func HoraPosterior(a, b string) bool {
	return b > a
}

// NormalizarRazonSocial devuelve la variante de matching: mayúsculas, sin
// tildes ni diacríticos, espacios colapsados.
func NormalizarRazonSocial(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	limpio, _, err := transform.String(t, s)
	if err != nil {
		limpio = s
	}
	limpio = strings.ToUpper(strings.TrimSpace(limpio))
	return strings.Join(strings.Fields(limpio), " ")
}
