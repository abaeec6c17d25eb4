// Package externo implementa el push de documentos hacia la plataforma de
// interoperabilidad del gobierno regional. Todos los fallos de red o del
// servicio se envuelven en domain.ErrServicioExterno; la cola reintenta
// reencolando la tarea.
package externo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/drtc-puno/sirret-api/internal/application/ports"
	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/pkg/config"
)

// Cliente implementa ports.SincronizadorDocumentos sobre HTTP.
type Cliente struct {
	baseURL string
	token   string
	http    *http.Client
}

var _ ports.SincronizadorDocumentos = (*Cliente)(nil)

// New crea el cliente. Devuelve nil si la sincronización no está configurada.
func New(cfg config.ExternoConfig) *Cliente {
	if !cfg.Habilitado() {
		return nil
	}
	timeout := time.Duration(cfg.TimeoutSegundos) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Cliente{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout},
	}
}

// cuerpoDocumento payload publicado hacia la plataforma externa.
type cuerpoDocumento struct {
	NumeroExpediente string     `json:"numero_expediente"`
	TipoDocumento    string     `json:"tipo_documento"`
	Asunto           string     `json:"asunto"`
	Folios           int        `json:"folios"`
	Estado           string     `json:"estado"`
	Prioridad        string     `json:"prioridad"`
	AreaActual       string     `json:"area_actual"`
	Remitente        string     `json:"remitente"`
	FechaLimite      *time.Time `json:"fecha_limite,omitempty"`
	RegistradoEn     time.Time  `json:"registrado_en"`
}

func (c *Cliente) EnviarDocumento(ctx context.Context, d *entity.Documento) error {
	cuerpo, err := json.Marshal(cuerpoDocumento{
		NumeroExpediente: d.NumeroExpediente,
		TipoDocumento:    d.TipoDocumentoID,
		Asunto:           d.Asunto,
		Folios:           d.Folios,
		Estado:           d.Estado,
		Prioridad:        d.Prioridad,
		AreaActual:       d.AreaActualID,
		Remitente:        d.Remitente.Nombre,
		FechaLimite:      d.FechaLimite,
		RegistradoEn:     d.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("externo: serializar documento: %w", err)
	}

	url := c.baseURL + "/documentos"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(cuerpo))
	if err != nil {
		return fmt.Errorf("externo: armar request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("externo: enviar expediente %s: %v: %w", d.NumeroExpediente, err, domain.ErrServicioExterno)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("externo: respuesta %d: %w", resp.StatusCode, domain.ErrServicioExterno)
	}
	return nil
}
