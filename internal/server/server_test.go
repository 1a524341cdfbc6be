package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/smallbiznis/facturador/internal/catalog/domain"
	"github.com/smallbiznis/facturador/internal/catalog/repository"
	catalogservice "github.com/smallbiznis/facturador/internal/catalog/service"
	"github.com/smallbiznis/facturador/internal/clock"
	"github.com/smallbiznis/facturador/internal/config"
	invoicingservice "github.com/smallbiznis/facturador/internal/invoicing/service"
	"github.com/smallbiznis/facturador/internal/providers/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) (*gin.Engine, *repository.Stores) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	cfg := config.Config{AppVersion: "test", DataDir: t.TempDir()}
	clk := clock.NewFakeClock(time.Date(2024, 2, 1, 9, 0, 0, 0, time.Local))
	log := zap.NewNop()

	stores := repository.Provide(cfg, log, clk)
	require.NoError(t, stores.EnsureInitialized())

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(ErrorHandlingMiddleware())

	srv := NewServer(ServerParams{
		Gin:          engine,
		Cfg:          cfg,
		Log:          log,
		CatalogSvc:   catalogservice.New(catalogservice.Params{Log: log, Stores: stores}),
		InvoicingSvc: invoicingservice.New(invoicingservice.Params{Log: log, Stores: stores}),
		PDFProvider:  pdf.New(),
	})
	srv.RegisterRoutes()

	return engine, stores
}

func doXML(engine *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/xml")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestIndex(t *testing.T) {
	engine, _ := newTestServer(t)

	w := doXML(engine, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "API en funcionamiento")
	assert.Contains(t, w.Body.String(), "<version>test</version>")
}

func TestCrearRecurso(t *testing.T) {
	engine, stores := newTestServer(t)

	body := `<recurso><id>R1</id><nombre>CPU</nombre><abreviatura>cpu</abreviatura><metrica>horas</metrica><precio_hora>2.5</precio_hora></recurso>`
	w := doXML(engine, http.MethodPost, "/crearRecurso", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Recurso creado con éxito")

	resources := stores.Resources.ReadAll()
	require.Len(t, resources, 1)
	assert.Equal(t, "CPU", resources[0].Name)
	assert.Equal(t, 2.5, resources[0].HourlyPrice)
	assert.NotEmpty(t, resources[0].Timestamp)
}

func TestCrearRecursoMalformedBody(t *testing.T) {
	engine, _ := newTestServer(t)

	w := doXML(engine, http.MethodPost, "/crearRecurso", "<recurso><id>")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Formato XML incorrecto")
}

func TestCrearClienteInvalidNIT(t *testing.T) {
	engine, stores := newTestServer(t)

	body := `<cliente><id>C1</id><nit>sin-guion</nit><nombre>Acme</nombre></cliente>`
	w := doXML(engine, http.MethodPost, "/crearCliente", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "NIT inválido")
	assert.Empty(t, stores.Clients.ReadAll())
}

func TestCrearInstanciaDefaultsEstado(t *testing.T) {
	engine, stores := newTestServer(t)

	body := `<instancia><id>I1</id><id_cliente>C1</id_cliente><nombre>web</nombre></instancia>`
	w := doXML(engine, http.MethodPost, "/crearInstancia", body)
	require.Equal(t, http.StatusOK, w.Code)

	instances := stores.Instances.ReadAll()
	require.Len(t, instances, 1)
	assert.Equal(t, catalogdomain.InstanceStatusActive, instances[0].Status)
}

func TestConsultarDatos(t *testing.T) {
	engine, stores := newTestServer(t)
	require.NoError(t, stores.Resources.Insert(&catalogdomain.Resource{ID: "R1", Name: "CPU"}))

	// tipo defaults to recursos.
	w := doXML(engine, http.MethodGet, "/consultarDatos", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<recurso>")

	w = doXML(engine, http.MethodGet, "/consultarDatos?tipo=clientes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<clientes>")

	w = doXML(engine, http.MethodGet, "/consultarDatos?tipo=naves", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Tipo de datos no válido")
}

func TestCrearConfiguracion(t *testing.T) {
	engine, stores := newTestServer(t)

	body := `<configuracion>
		<recursos>
			<recurso><id>R1</id><nombre>CPU</nombre><precio_hora>2.5</precio_hora></recurso>
		</recursos>
		<clientes>
			<cliente><id>C1</id><nit>123-4</nit><nombre>Acme</nombre></cliente>
			<cliente><id>C2</id><nit>malo</nit><nombre>Bad</nombre></cliente>
		</clientes>
		<instancias>
			<instancia><id>I1</id><id_cliente>C1</id_cliente><nombre>web</nombre></instancia>
		</instancias>
	</configuracion>`
	w := doXML(engine, http.MethodPost, "/crearConfiguracion", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<recursos_creados>1</recursos_creados>")
	assert.Contains(t, w.Body.String(), "<clientes_creados>1</clientes_creados>")
	assert.Contains(t, w.Body.String(), "<instancias_creadas>1</instancias_creadas>")
	assert.Len(t, stores.Clients.ReadAll(), 1)
}

func TestCargarConsumos(t *testing.T) {
	engine, stores := newTestServer(t)

	body := `<consumos>
		<consumo><id>K1</id><id_instancia>I1</id_instancia><id_recurso>R1</id_recurso><fecha>10/01/2024</fecha><tiempo>3</tiempo></consumo>
		<consumo><id>K2</id><id_instancia>I1</id_instancia><id_recurso>R1</id_recurso><fecha>2024-01-10</fecha><tiempo>1</tiempo></consumo>
	</consumos>`
	w := doXML(engine, http.MethodPost, "/cargarConsumos", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<total_procesados>1</total_procesados>")
	assert.Len(t, stores.Consumptions.ReadAll(), 1)
}

func seedBillableData(t *testing.T, stores *repository.Stores) {
	t.Helper()
	require.NoError(t, stores.Resources.Insert(&catalogdomain.Resource{
		ID: "R1", Name: "CPU", Abbreviation: "cpu", HourlyPrice: 2.5,
	}))
	require.NoError(t, stores.Instances.Insert(&catalogdomain.Instance{
		ID: "I1", ClientID: "C1", Name: "web", Status: catalogdomain.InstanceStatusActive,
	}))
	require.NoError(t, stores.Clients.Insert(&catalogdomain.Client{
		ID: "C1", NIT: "123-4", Name: "Acme",
	}))
	require.NoError(t, stores.Consumptions.Insert(&catalogdomain.Consumption{
		ID: "K1", InstanceID: "I1", ResourceID: "R1", Date: "10/01/2024", Hours: 3,
	}))
}

func TestGenerarFactura(t *testing.T) {
	engine, stores := newTestServer(t)
	seedBillableData(t, stores)

	body := `<periodo><fecha_inicio>01/01/2024</fecha_inicio><fecha_fin>31/01/2024</fecha_fin></periodo>`
	w := doXML(engine, http.MethodPost, "/generarFactura", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Facturas generadas con éxito")
	assert.Contains(t, w.Body.String(), "<facturas_generadas>1</facturas_generadas>")
	assert.Contains(t, w.Body.String(), "<monto_total>7.5</monto_total>")
	assert.Len(t, stores.Invoices.ReadAll(), 1)
}

func TestGenerarFacturaInvalidDate(t *testing.T) {
	engine, stores := newTestServer(t)
	seedBillableData(t, stores)

	body := `<periodo><fecha_inicio>2024-01-01</fecha_inicio><fecha_fin>31/01/2024</fecha_fin></periodo>`
	w := doXML(engine, http.MethodPost, "/generarFactura", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Formato de fecha inválido")
	assert.Empty(t, stores.Invoices.ReadAll())
}

func TestGenerarFacturaEmptyPeriod(t *testing.T) {
	engine, stores := newTestServer(t)
	seedBillableData(t, stores)

	body := `<periodo><fecha_inicio>01/06/2024</fecha_inicio><fecha_fin>30/06/2024</fecha_fin></periodo>`
	w := doXML(engine, http.MethodPost, "/generarFactura", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No hay consumos en el periodo especificado")
	assert.Contains(t, w.Body.String(), "<facturas_generadas>0</facturas_generadas>")
}

func TestFacturaPDF(t *testing.T) {
	engine, stores := newTestServer(t)
	require.NoError(t, stores.Invoices.Insert(&catalogdomain.Invoice{
		ID:         "F1",
		ClientID:   "C1",
		IssueDate:  "31/01/2024",
		Total:      7.5,
		ClientNIT:  "123-4",
		ClientName: "Acme",
		Items: []catalogdomain.InvoiceItem{
			{
				InstanceID:   "I1",
				InstanceName: "web",
				Subtotal:     7.5,
				Consumptions: []catalogdomain.ConsumptionDetail{
					{ResourceID: "R1", ResourceName: "CPU", Abbreviation: "cpu", Hours: 3, UnitPrice: 2.5, Amount: 7.5},
				},
			},
		},
	}))

	w := doXML(engine, http.MethodGet, "/facturas/F1/pdf", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "factura_F1.pdf")
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestFacturaPDFNotFound(t *testing.T) {
	engine, _ := newTestServer(t)

	w := doXML(engine, http.MethodGet, "/facturas/nope/pdf", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Factura no encontrada")
}

func TestReiniciarSistema(t *testing.T) {
	engine, stores := newTestServer(t)
	require.NoError(t, stores.Resources.Insert(&catalogdomain.Resource{ID: "R1", Name: "CPU"}))

	w := doXML(engine, http.MethodPost, "/reiniciarSistema", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sistema reiniciado con éxito")
	assert.Empty(t, stores.Resources.ReadAll())
}
