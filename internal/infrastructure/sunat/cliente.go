// Package sunat implementa la consulta RUC contra el servicio externo de
// padrón. Todos los fallos de red o del servicio se envuelven en
// domain.ErrServicioExterno; la decisión de continuar sin el dato es del
// caller.
package sunat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/drtc-puno/sirret-api/internal/application/ports"
	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/pkg/config"
)

// Cliente implementa ports.ConsultaRUC sobre HTTP.
type Cliente struct {
	baseURL string
	token   string
	http    *http.Client
}

var _ ports.ConsultaRUC = (*Cliente)(nil)

// New crea el cliente. Devuelve nil si la consulta no está configurada.
func New(cfg config.SUNATConfig) *Cliente {
	if !cfg.Habilitado() {
		return nil
	}
	timeout := time.Duration(cfg.TimeoutSegundos) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Cliente{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout},
	}
}

// respuestaRUC cuerpo de la respuesta del padrón.
type respuestaRUC struct {
	RUC         string `json:"numeroDocumento"`
	RazonSocial string `json:"razonSocial"`
	Estado      string `json:"estado"`
	Condicion   string `json:"condicion"`
	Direccion   string `json:"direccion"`
}

func (c *Cliente) Consultar(ctx context.Context, ruc string) (*ports.ResultadoRUC, error) {
	url := fmt.Sprintf("%s/ruc/%s", c.baseURL, ruc)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("sunat: armar request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sunat: consultar RUC %s: %v: %w", ruc, err, domain.ErrServicioExterno)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		// RUC no registrado en el padrón: respuesta válida, no un fallo.
		return &ports.ResultadoRUC{Valido: false}, nil
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("sunat: respuesta %d: %w", resp.StatusCode, domain.ErrServicioExterno)
	}

	var cuerpo respuestaRUC
	if err := json.NewDecoder(resp.Body).Decode(&cuerpo); err != nil {
		return nil, fmt.Errorf("sunat: decodificar respuesta: %v: %w", err, domain.ErrServicioExterno)
	}

	return &ports.ResultadoRUC{
		Valido:      true,
		RazonSocial: cuerpo.RazonSocial,
		Estado:      cuerpo.Estado,
		Condicion:   cuerpo.Condicion,
		Direccion:   cuerpo.Direccion,
	}, nil
}
