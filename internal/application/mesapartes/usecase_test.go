package mesapartes_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drtc-puno/sirret-api/internal/application/dto"
	"github.com/drtc-puno/sirret-api/internal/application/mesapartes"
	"github.com/drtc-puno/sirret-api/internal/application/ports"
	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/internal/domain/repository"
	"github.com/drtc-puno/sirret-api/internal/infrastructure/memoria"
)

// notificadorCaptura acumula los eventos publicados.
type notificadorCaptura struct {
	eventos []ports.Evento
}

func (n *notificadorCaptura) Publicar(e ports.Evento) { n.eventos = append(n.eventos, e) }

func (n *notificadorCaptura) porTipo(tipo string) []ports.Evento {
	var out []ports.Evento
	for _, e := range n.eventos {
		if e.Tipo == tipo {
			out = append(out, e)
		}
	}
	return out
}

// generadorFijo devuelve siempre los mismos bytes.
type generadorFijo struct {
	contenido []byte
}

func (g generadorFijo) GenerarReporteDocumentos(context.Context, []*entity.Documento) ([]byte, error) {
	return g.contenido, nil
}

// colaStub cola controlable desde el test.
type colaStub struct {
	disponible   bool
	fallaEncolar bool
	encoladas    []string
}

func (c *colaStub) Encolar(_ context.Context, nombre string, _ map[string]string) (string, error) {
	if c.fallaEncolar {
		return "", errors.New("cola saturada")
	}
	c.encoladas = append(c.encoladas, nombre)
	return "task-1", nil
}

func (c *colaStub) Estado(context.Context, string) (*ports.Tarea, error) { return nil, nil }
func (c *colaStub) Cancelar(context.Context, string) error               { return nil }
func (c *colaStub) Disponible() bool                                     { return c.disponible }

// sincronizadorCaptura acumula los expedientes enviados al servicio externo.
type sincronizadorCaptura struct {
	expedientes []string
	falla       bool
}

func (s *sincronizadorCaptura) EnviarDocumento(_ context.Context, d *entity.Documento) error {
	if s.falla {
		return errors.New("servicio externo caído")
	}
	s.expedientes = append(s.expedientes, d.NumeroExpediente)
	return nil
}

type entorno struct {
	uc           *mesapartes.UseCase
	documentos   *memoria.DocumentoStore
	derivaciones *memoria.DerivacionStore
	archivos     *memoria.ArchivoStore
	notificador  *notificadorCaptura
	externo      *sincronizadorCaptura
}

func nuevoEntorno(t *testing.T, cola ports.Cola) *entorno {
	return nuevoEntornoConExterno(t, cola, nil)
}

func nuevoEntornoConExterno(t *testing.T, cola ports.Cola, externo *sincronizadorCaptura) *entorno {
	t.Helper()
	documentos := memoria.NewDocumentoStore()
	derivaciones := memoria.NewDerivacionStore()
	archivos := memoria.NewArchivoStore()
	notificador := &notificadorCaptura{}
	var sincronizador ports.SincronizadorDocumentos
	if externo != nil {
		sincronizador = externo
	}
	uc := mesapartes.New(documentos, derivaciones, archivos, cola, notificador, sincronizador,
		generadorFijo{[]byte("XLSX")}, generadorFijo{[]byte("PDF")}, nil, 0, nil)
	uc.Ahora = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
	return &entorno{
		uc: uc, documentos: documentos, derivaciones: derivaciones,
		archivos: archivos, notificador: notificador, externo: externo,
	}
}

func documentoRequest() dto.CreateDocumentoRequest {
	return dto.CreateDocumentoRequest{
		Remitente: dto.RemitenteDTO{
			TipoDocumento:   "DNI",
			NumeroDocumento: "40123456",
			Nombre:          "Juan Quispe Mamani",
		},
		Asunto:        "Solicitud de renovación de autorización",
		Folios:        12,
		AreaDestinoID: "area-fiscalizacion",
	}
}

func (e *entorno) conDocumento(t *testing.T) *dto.DocumentoResponse {
	t.Helper()
	doc, err := e.uc.Create(context.Background(), documentoRequest(), "user-1")
	require.NoError(t, err)
	return doc
}

func TestCreateAsignaExpedienteAnual(t *testing.T) {
	e := nuevoEntorno(t, nil)

	d1 := e.conDocumento(t)
	d2 := e.conDocumento(t)

	assert.Equal(t, "EXP-2025-0001", d1.NumeroExpediente)
	assert.Equal(t, "EXP-2025-0002", d2.NumeroExpediente)
	assert.Equal(t, entity.DocumentoRegistrado, d1.Estado)
	// Sin prioridad explícita se asume NORMAL.
	assert.Equal(t, entity.PrioridadNormal, d1.Prioridad)
	assert.Equal(t, "user-1", d1.RegistradoPor)

	porExp, err := e.uc.GetByExpediente(context.Background(), " exp-2025-0002 ")
	require.NoError(t, err)
	require.NotNil(t, porExp)
	assert.Equal(t, d2.ID, porExp.ID)
}

func TestCreateUrgenteNotificaAlArea(t *testing.T) {
	e := nuevoEntorno(t, nil)

	in := documentoRequest()
	in.Prioridad = entity.PrioridadUrgente
	_, err := e.uc.Create(context.Background(), in, "user-1")
	require.NoError(t, err)

	urgentes := e.notificador.porTipo(ports.EventoDocumentoUrgente)
	require.Len(t, urgentes, 1)
	assert.Equal(t, "area-fiscalizacion", urgentes[0].AreaID)
}

func TestCreateEntradaInvalida(t *testing.T) {
	e := nuevoEntorno(t, nil)

	sinAsunto := documentoRequest()
	sinAsunto.Asunto = "   "
	_, err := e.uc.Create(context.Background(), sinAsunto, "user-1")
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)

	sinRemitente := documentoRequest()
	sinRemitente.Remitente.NumeroDocumento = ""
	_, err = e.uc.Create(context.Background(), sinRemitente, "user-1")
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)

	prioridadRara := documentoRequest()
	prioridadRara.Prioridad = "YA"
	_, err = e.uc.Create(context.Background(), prioridadRara, "user-1")
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestDerivarUnaAbiertaPorArea(t *testing.T) {
	e := nuevoEntorno(t, nil)
	doc := e.conDocumento(t)

	dv, err := e.uc.Derivar(context.Background(), doc.ID, dto.DerivarDocumentoRequest{
		AreaDestinoID: "area-legal",
		Instrucciones: "revisar expediente",
	}, "user-1")
	require.NoError(t, err)
	assert.Equal(t, entity.DerivacionPendiente, dv.Estado)
	assert.Equal(t, "area-fiscalizacion", dv.AreaOrigenID)

	// El primer pase lleva el documento a EN_PROCESO y mueve el área actual.
	actual, err := e.uc.GetByID(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentoEnProceso, actual.Estado)
	assert.Equal(t, "area-legal", actual.AreaActualID)

	// Segunda derivación hacia la misma área con la primera aún abierta.
	_, err = e.uc.Derivar(context.Background(), doc.ID, dto.DerivarDocumentoRequest{
		AreaDestinoID: "area-legal",
	}, "user-1")
	assert.ErrorIs(t, err, domain.ErrConflicto)
}

func TestRecibirYAtender(t *testing.T) {
	e := nuevoEntorno(t, nil)
	doc := e.conDocumento(t)

	dv, err := e.uc.Derivar(context.Background(), doc.ID, dto.DerivarDocumentoRequest{AreaDestinoID: "area-legal"}, "user-1")
	require.NoError(t, err)

	// Atender sin recibir no es una transición válida.
	_, err = e.uc.Atender(context.Background(), dv.ID, dto.AtenderDerivacionRequest{}, "user-2")
	assert.ErrorIs(t, err, domain.ErrTransicionInvalida)

	recibida, err := e.uc.Recibir(context.Background(), dv.ID, "user-2")
	require.NoError(t, err)
	assert.Equal(t, entity.DerivacionRecibida, recibida.Estado)
	require.NotNil(t, recibida.FechaRecepcion)

	atendida, err := e.uc.Atender(context.Background(), dv.ID, dto.AtenderDerivacionRequest{}, "user-2")
	require.NoError(t, err)
	assert.Equal(t, entity.DerivacionAtendida, atendida.Estado)

	actual, err := e.uc.GetByID(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentoAtendido, actual.Estado)
	assert.Len(t, e.notificador.porTipo(ports.EventoDocumentoAtendido), 1)
}

func TestAtenderEncadenaSiguientePase(t *testing.T) {
	e := nuevoEntorno(t, nil)
	doc := e.conDocumento(t)

	dv, err := e.uc.Derivar(context.Background(), doc.ID, dto.DerivarDocumentoRequest{AreaDestinoID: "area-legal"}, "user-1")
	require.NoError(t, err)
	_, err = e.uc.Recibir(context.Background(), dv.ID, "user-2")
	require.NoError(t, err)

	_, err = e.uc.Atender(context.Background(), dv.ID, dto.AtenderDerivacionRequest{
		RequiereDerivacionAdicional: true,
		SiguienteAreaID:             "area-direccion",
	}, "user-2")
	require.NoError(t, err)

	// El documento sigue en trámite, ahora en la siguiente área.
	actual, err := e.uc.GetByID(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentoEnProceso, actual.Estado)
	assert.Equal(t, "area-direccion", actual.AreaActualID)

	pases, err := e.uc.ListDerivaciones(context.Background(), doc.ID)
	require.NoError(t, err)
	require.Len(t, pases, 2)
}

func TestRechazarRequiereMotivo(t *testing.T) {
	e := nuevoEntorno(t, nil)
	doc := e.conDocumento(t)

	dv, err := e.uc.Derivar(context.Background(), doc.ID, dto.DerivarDocumentoRequest{AreaDestinoID: "area-legal"}, "user-1")
	require.NoError(t, err)

	_, err = e.uc.Rechazar(context.Background(), dv.ID, dto.RechazarDerivacionRequest{Motivo: "  "}, "user-2")
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)

	rechazada, err := e.uc.Rechazar(context.Background(), dv.ID, dto.RechazarDerivacionRequest{Motivo: "no corresponde al área"}, "user-2")
	require.NoError(t, err)
	assert.Equal(t, entity.DerivacionRechazada, rechazada.Estado)
	assert.Equal(t, "no corresponde al área", rechazada.MotivoRechazo)
}

// atendido deja un documento listo para archivar.
func (e *entorno) atendido(t *testing.T) *dto.DocumentoResponse {
	t.Helper()
	doc := e.conDocumento(t)
	dv, err := e.uc.Derivar(context.Background(), doc.ID, dto.DerivarDocumentoRequest{AreaDestinoID: "area-legal"}, "user-1")
	require.NoError(t, err)
	_, err = e.uc.Recibir(context.Background(), dv.ID, "user-2")
	require.NoError(t, err)
	_, err = e.uc.Atender(context.Background(), dv.ID, dto.AtenderDerivacionRequest{}, "user-2")
	require.NoError(t, err)
	return doc
}

func TestArchivarSoloDesdeAtendido(t *testing.T) {
	e := nuevoEntorno(t, nil)
	doc := e.conDocumento(t)

	_, err := e.uc.Archivar(context.Background(), doc.ID, dto.ArchivarDocumentoRequest{
		Clasificacion:     "Serie Documental Administrativa",
		PoliticaRetencion: entity.RetencionCincoAnios,
	}, "user-3")
	assert.ErrorIs(t, err, domain.ErrTransicionInvalida)
}

func TestArchivarCalculaRetencion(t *testing.T) {
	e := nuevoEntorno(t, nil)
	doc := e.atendido(t)

	a, err := e.uc.Archivar(context.Background(), doc.ID, dto.ArchivarDocumentoRequest{
		Clasificacion:     "Serie Documental Administrativa",
		PoliticaRetencion: entity.RetencionCincoAnios,
	}, "user-3")
	require.NoError(t, err)
	assert.Equal(t, "SDA-0001", a.CodigoUbicacion)
	require.NotNil(t, a.FechaExpiracion)
	assert.Equal(t, 2030, a.FechaExpiracion.Year())

	actual, err := e.uc.GetByID(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentoArchivado, actual.Estado)

	// La retención permanente no expira; el correlativo del prefijo avanza.
	otro := e.atendido(t)
	b, err := e.uc.Archivar(context.Background(), otro.ID, dto.ArchivarDocumentoRequest{
		Clasificacion:     "Serie Documental Administrativa",
		PoliticaRetencion: entity.RetencionPermanente,
	}, "user-3")
	require.NoError(t, err)
	assert.Equal(t, "SDA-0002", b.CodigoUbicacion)
	assert.Nil(t, b.FechaExpiracion)
}

func TestRestaurarDesactivaArchivo(t *testing.T) {
	e := nuevoEntorno(t, nil)
	doc := e.atendido(t)

	_, err := e.uc.Archivar(context.Background(), doc.ID, dto.ArchivarDocumentoRequest{
		Clasificacion:     "Serie Legal",
		PoliticaRetencion: entity.RetencionUnAnio,
	}, "user-3")
	require.NoError(t, err)

	restaurado, err := e.uc.Restaurar(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentoEnProceso, restaurado.Estado)

	a, err := e.archivos.GetByDocumento(context.Background(), doc.ID)
	require.NoError(t, err)
	if a != nil {
		assert.False(t, a.EstaActivo)
	}
}

func TestArchivosPorVencerYExpirados(t *testing.T) {
	e := nuevoEntorno(t, nil)

	porVencer := e.atendido(t)
	_, err := e.uc.Archivar(context.Background(), porVencer.ID, dto.ArchivarDocumentoRequest{
		Clasificacion:     "Serie Legal",
		PoliticaRetencion: entity.RetencionUnAnio,
	}, "user-3")
	require.NoError(t, err)

	// Un año después del archivo menos unos días: dentro de la ventana de aviso.
	e.uc.Ahora = func() time.Time { return time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC) }
	avisos, err := e.uc.ArchivosPorVencer(context.Background())
	require.NoError(t, err)
	require.Len(t, avisos, 1)
	assert.Len(t, e.notificador.porTipo(ports.EventoDocumentoProximoVencer), 1)

	expirados, err := e.uc.ArchivosExpirados(context.Background())
	require.NoError(t, err)
	assert.Empty(t, expirados)

	// Pasada la fecha de expiración el archivo figura como vencido.
	e.uc.Ahora = func() time.Time { return time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC) }
	expirados, err = e.uc.ArchivosExpirados(context.Background())
	require.NoError(t, err)
	require.Len(t, expirados, 1)
}

func TestExportarSinColaEsSincrono(t *testing.T) {
	e := nuevoEntorno(t, nil)
	e.conDocumento(t)

	tarea, b, err := e.uc.ExportarExcel(context.Background(), repository.FiltroDocumentos{})
	require.NoError(t, err)
	assert.Equal(t, []byte("XLSX"), b)
	assert.Empty(t, tarea.TaskID)
	assert.Equal(t, ports.TareaCompletada, tarea.Estado)

	_, b, err = e.uc.ExportarPDF(context.Background(), repository.FiltroDocumentos{})
	require.NoError(t, err)
	assert.Equal(t, []byte("PDF"), b)
}

func TestExportarConColaEncola(t *testing.T) {
	cola := &colaStub{disponible: true}
	e := nuevoEntorno(t, cola)
	e.conDocumento(t)

	tarea, b, err := e.uc.ExportarExcel(context.Background(), repository.FiltroDocumentos{Estado: entity.DocumentoRegistrado})
	require.NoError(t, err)
	assert.Nil(t, b)
	assert.Equal(t, "task-1", tarea.TaskID)
	assert.Equal(t, ports.TareaPendiente, tarea.Estado)
	assert.Equal(t, []string{ports.TareaReporteExcel}, cola.encoladas)
}

func TestExportarFalloDeColaCaeASincrono(t *testing.T) {
	cola := &colaStub{disponible: true, fallaEncolar: true}
	e := nuevoEntorno(t, cola)
	e.conDocumento(t)

	tarea, b, err := e.uc.ExportarExcel(context.Background(), repository.FiltroDocumentos{})
	require.NoError(t, err)
	assert.Equal(t, []byte("XLSX"), b)
	assert.Empty(t, tarea.TaskID)
	assert.Equal(t, ports.TareaCompletada, tarea.Estado)
}

func TestFiltroDesdeArgumentos(t *testing.T) {
	f := mesapartes.FiltroDesdeArgumentos(map[string]string{
		"estado":  entity.DocumentoEnProceso,
		"area_id": "area-legal",
		"desde":   "2025-01-01",
		"hasta":   "no-es-fecha",
	})
	assert.Equal(t, entity.DocumentoEnProceso, f.Estado)
	assert.Equal(t, "area-legal", f.AreaID)
	require.NotNil(t, f.Desde)
	assert.Equal(t, 2025, f.Desde.Year())
	assert.Nil(t, f.Hasta)
}

func TestAgregarAdjuntoSinColaVerificaInline(t *testing.T) {
	e := nuevoEntorno(t, nil)
	doc := e.conDocumento(t)

	tarea, err := e.uc.AgregarAdjunto(context.Background(), doc.ID, dto.AdjuntoRequest{
		Nombre:    "solicitud.pdf",
		Ruta:      "uploads/solicitud.pdf",
		TamanioKB: 512,
	})
	require.NoError(t, err)
	assert.Empty(t, tarea.TaskID)
	assert.Equal(t, ports.TareaCompletada, tarea.Estado)

	out, err := e.uc.GetByID(context.Background(), doc.ID)
	require.NoError(t, err)
	require.Len(t, out.Adjuntos, 1)
	assert.Equal(t, "solicitud.pdf", out.Adjuntos[0].Nombre)
	assert.True(t, out.Adjuntos[0].Verificado)
}

func TestAgregarAdjuntoConColaEncola(t *testing.T) {
	cola := &colaStub{disponible: true}
	e := nuevoEntorno(t, cola)
	doc := e.conDocumento(t)

	tarea, err := e.uc.AgregarAdjunto(context.Background(), doc.ID, dto.AdjuntoRequest{
		Nombre:    "acta.pdf",
		TamanioKB: 128,
	})
	require.NoError(t, err)
	assert.Equal(t, "task-1", tarea.TaskID)
	assert.Equal(t, ports.TareaPendiente, tarea.Estado)
	assert.Equal(t, []string{ports.TareaProcesarAdjunto}, cola.encoladas)

	// El adjunto queda registrado de inmediato; la verificación corre después.
	out, err := e.uc.GetByID(context.Background(), doc.ID)
	require.NoError(t, err)
	require.Len(t, out.Adjuntos, 1)
	assert.False(t, out.Adjuntos[0].Verificado)

	require.NoError(t, e.uc.ProcesarAdjunto(context.Background(), doc.ID, out.Adjuntos[0].ID))
	out, err = e.uc.GetByID(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.True(t, out.Adjuntos[0].Verificado)
}

func TestAgregarAdjuntoInvalido(t *testing.T) {
	e := nuevoEntorno(t, nil)
	doc := e.conDocumento(t)

	_, err := e.uc.AgregarAdjunto(context.Background(), doc.ID, dto.AdjuntoRequest{Nombre: "", TamanioKB: 10})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)

	_, err = e.uc.AgregarAdjunto(context.Background(), doc.ID, dto.AdjuntoRequest{Nombre: "a.pdf", TamanioKB: 0})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)

	// Extensión rechazada por la verificación.
	_, err = e.uc.AgregarAdjunto(context.Background(), doc.ID, dto.AdjuntoRequest{Nombre: "script.exe", TamanioKB: 10})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestSincronizarDocumentoSinConfiguracion(t *testing.T) {
	e := nuevoEntorno(t, nil)
	doc := e.conDocumento(t)

	_, err := e.uc.SincronizarDocumento(context.Background(), doc.ID)
	assert.ErrorIs(t, err, domain.ErrServicioExterno)
}

func TestSincronizarDocumentoSinColaEnviaInline(t *testing.T) {
	externo := &sincronizadorCaptura{}
	e := nuevoEntornoConExterno(t, nil, externo)
	doc := e.conDocumento(t)

	tarea, err := e.uc.SincronizarDocumento(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, ports.TareaCompletada, tarea.Estado)
	assert.Equal(t, []string{doc.NumeroExpediente}, externo.expedientes)
}

func TestSincronizarDocumentoConColaEncola(t *testing.T) {
	cola := &colaStub{disponible: true}
	externo := &sincronizadorCaptura{}
	e := nuevoEntornoConExterno(t, cola, externo)
	doc := e.conDocumento(t)

	tarea, err := e.uc.SincronizarDocumento(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "task-1", tarea.TaskID)
	assert.Equal(t, ports.TareaPendiente, tarea.Estado)
	assert.Equal(t, []string{ports.TareaSincronizarDoc}, cola.encoladas)
	assert.Empty(t, externo.expedientes)

	// Cuerpo que ejecuta el worker.
	require.NoError(t, e.uc.EnviarDocumentoExterno(context.Background(), doc.ID))
	assert.Equal(t, []string{doc.NumeroExpediente}, externo.expedientes)
}

func TestEnviarDocumentoExternoPropagaFallo(t *testing.T) {
	externo := &sincronizadorCaptura{falla: true}
	e := nuevoEntornoConExterno(t, nil, externo)
	doc := e.conDocumento(t)

	err := e.uc.EnviarDocumentoExterno(context.Background(), doc.ID)
	assert.Error(t, err)
}

func TestNotificarMasivoSinColaDifundeInline(t *testing.T) {
	e := nuevoEntorno(t, nil)

	tarea, err := e.uc.NotificarMasivo(context.Background(), dto.NotificarMasivoRequest{
		Mensaje: "Corte de atención el viernes",
		Areas:   []string{"area-legal", "area-fiscalizacion"},
	})
	require.NoError(t, err)
	assert.Equal(t, ports.TareaCompletada, tarea.Estado)

	avisos := e.notificador.porTipo(ports.EventoAvisoGeneral)
	require.Len(t, avisos, 2)
	assert.Equal(t, "area-legal", avisos[0].AreaID)
	assert.Equal(t, "area-fiscalizacion", avisos[1].AreaID)
	assert.Equal(t, "Corte de atención el viernes", avisos[0].Mensaje)
}

func TestNotificarMasivoConColaEncola(t *testing.T) {
	cola := &colaStub{disponible: true}
	e := nuevoEntorno(t, cola)

	tarea, err := e.uc.NotificarMasivo(context.Background(), dto.NotificarMasivoRequest{
		Mensaje: "Mantenimiento programado",
		Areas:   []string{"area-legal"},
	})
	require.NoError(t, err)
	assert.Equal(t, "task-1", tarea.TaskID)
	assert.Equal(t, []string{ports.TareaNotificarMasivo}, cola.encoladas)
	assert.Empty(t, e.notificador.porTipo(ports.EventoAvisoGeneral))
}

func TestNotificarMasivoEntradaInvalida(t *testing.T) {
	e := nuevoEntorno(t, nil)

	_, err := e.uc.NotificarMasivo(context.Background(), dto.NotificarMasivoRequest{Areas: []string{"a"}})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)

	_, err = e.uc.NotificarMasivo(context.Background(), dto.NotificarMasivoRequest{Mensaje: "hola", Areas: []string{" "}})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}
