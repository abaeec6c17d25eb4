// Package notificaciones implementa el bus de notificaciones de Mesa de
// Partes sobre WebSocket. La entrega es best-effort: un suscriptor caído se
// poda en silencio y el resto sigue recibiendo.
package notificaciones

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"

	"github.com/drtc-puno/sirret-api/internal/application/ports"
	"github.com/drtc-puno/sirret-api/pkg/logger"
)

// suscriptor una conexión WebSocket con su mutex de escritura. gorilla no
// admite escrituras concurrentes sobre la misma conexión.
type suscriptor struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *suscriptor) enviar(datos []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, datos)
}

// Hub implementa ports.Notificador. Mantiene suscriptores por usuario y por
// área; un evento con UsuarioID va a las conexiones de ese usuario, uno con
// AreaID a todas las del área.
type Hub struct {
	mu         sync.RWMutex
	porUsuario map[string]map[*suscriptor]struct{}
	porArea    map[string]map[*suscriptor]struct{}
	log        *logger.Logger
}

var _ ports.Notificador = (*Hub)(nil)

// NewHub crea el bus de notificaciones.
func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		porUsuario: make(map[string]map[*suscriptor]struct{}),
		porArea:    make(map[string]map[*suscriptor]struct{}),
		log:        log,
	}
}

// Suscribir registra la conexión y bloquea hasta que el cliente la cierre.
// Pensada para llamarse desde el handler WebSocket.
func (h *Hub) Suscribir(usuarioID, areaID string, conn *websocket.Conn) {
	s := &suscriptor{conn: conn}

	h.mu.Lock()
	if usuarioID != "" {
		if h.porUsuario[usuarioID] == nil {
			h.porUsuario[usuarioID] = make(map[*suscriptor]struct{})
		}
		h.porUsuario[usuarioID][s] = struct{}{}
	}
	if areaID != "" {
		if h.porArea[areaID] == nil {
			h.porArea[areaID] = make(map[*suscriptor]struct{})
		}
		h.porArea[areaID][s] = struct{}{}
	}
	h.mu.Unlock()

	h.log.Debug().Str("usuario_id", usuarioID).Str("area_id", areaID).
		Msg("suscriptor de notificaciones conectado")

	// Drenar lecturas para detectar el cierre del cliente.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.desuscribir(usuarioID, areaID, s)
}

func (h *Hub) desuscribir(usuarioID, areaID string, s *suscriptor) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conjunto := h.porUsuario[usuarioID]; conjunto != nil {
		delete(conjunto, s)
		if len(conjunto) == 0 {
			delete(h.porUsuario, usuarioID)
		}
	}
	if conjunto := h.porArea[areaID]; conjunto != nil {
		delete(conjunto, s)
		if len(conjunto) == 0 {
			delete(h.porArea, areaID)
		}
	}
}

// Publicar entrega el evento a los suscriptores del destino. Nunca falla:
// las conexiones con error de escritura se podan.
func (h *Hub) Publicar(e ports.Evento) {
	datos, err := json.Marshal(e)
	if err != nil {
		h.log.Error().Err(err).Str("tipo", e.Tipo).Msg("notificaciones: evento no serializable")
		return
	}

	h.mu.RLock()
	var destinos []*suscriptor
	if e.UsuarioID != "" {
		for s := range h.porUsuario[e.UsuarioID] {
			destinos = append(destinos, s)
		}
	}
	if e.AreaID != "" {
		for s := range h.porArea[e.AreaID] {
			destinos = append(destinos, s)
		}
	}
	h.mu.RUnlock()

	for _, s := range destinos {
		if err := s.enviar(datos); err != nil {
			h.log.Debug().Err(err).Str("tipo", e.Tipo).Msg("notificaciones: suscriptor caído, se poda")
			h.podar(s)
		}
	}
}

// podar elimina la conexión de todos los registros.
func (h *Hub) podar(s *suscriptor) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for usuario, conjunto := range h.porUsuario {
		delete(conjunto, s)
		if len(conjunto) == 0 {
			delete(h.porUsuario, usuario)
		}
	}
	for area, conjunto := range h.porArea {
		delete(conjunto, s)
		if len(conjunto) == 0 {
			delete(h.porArea, area)
		}
	}
	_ = s.conn.Close()
}
