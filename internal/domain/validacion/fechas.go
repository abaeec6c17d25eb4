package validacion

import (
	"fmt"
	"strings"
	"time"

	"github.com/drtc-puno/sirret-api/internal/domain"
)

// Formatos de fecha aceptados en la carga masiva.
var formatosFecha = []string{
	"02/01/2006",
	"2006-01-02",
	"02-01-2006",
}

// zonaLima zona civil de las fechas de negocio. Si la base de zonas no está
// disponible se usa el offset fijo UTC-5 (Perú no tiene horario de verano).
var zonaLima = func() *time.Location {
	loc, err := time.LoadLocation("America/Lima")
	if err != nil {
		return time.FixedZone("America/Lima", -5*60*60)
	}
	return loc
}()

// ZonaLima devuelve la zona horaria de negocio.
func ZonaLima() *time.Location { return zonaLima }

// HoyLima devuelve la fecha civil de hoy en Lima, truncada a medianoche.
func HoyLima() time.Time {
	ahora := time.Now().In(zonaLima)
	return time.Date(ahora.Year(), ahora.Month(), ahora.Day(), 0, 0, 0, 0, zonaLima)
}

// ParseFecha interpreta una fecha de negocio aceptando dd/mm/yyyy, yyyy-mm-dd
// y dd-mm-yyyy, siempre en la zona de Lima.
func ParseFecha(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("fecha vacía: %w", domain.ErrEntradaInvalida)
	}
	for _, f := range formatosFecha {
		if t, err := time.ParseInLocation(f, s, zonaLima); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha %q: formatos aceptados dd/mm/yyyy, yyyy-mm-dd, dd-mm-yyyy: %w", s, domain.ErrEntradaInvalida)
}

// MismoDiaOAnterior compara fechas por día civil.
func MismoDiaOAnterior(a, b time.Time) bool {
	a, b = a.In(zonaLima), b.In(zonaLima)
	if a.Year() != b.Year() {
		return a.Year() < b.Year()
	}
	return a.YearDay() <= b.YearDay()
}
