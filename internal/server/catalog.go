package server

import (
	"encoding/xml"
	"net/http"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/smallbiznis/facturador/internal/catalog/domain"
)

type statusResponse struct {
	XMLName xml.Name `xml:"respuesta"`
	Estado  string   `xml:"estado"`
	Version string   `xml:"version"`
}

func (s *Server) Index(c *gin.Context) {
	c.XML(http.StatusOK, statusResponse{
		Estado:  "API en funcionamiento",
		Version: s.cfg.AppVersion,
	})
}

type resourceListResponse struct {
	XMLName xml.Name                  `xml:"respuesta"`
	Items   []*catalogdomain.Resource `xml:"recursos>recurso"`
}

type categoryListResponse struct {
	XMLName xml.Name                  `xml:"respuesta"`
	Items   []*catalogdomain.Category `xml:"categorias>categoria"`
}

type clientListResponse struct {
	XMLName xml.Name                `xml:"respuesta"`
	Items   []*catalogdomain.Client `xml:"clientes>cliente"`
}

type instanceListResponse struct {
	XMLName xml.Name                  `xml:"respuesta"`
	Items   []*catalogdomain.Instance `xml:"instancias>instancia"`
}

type consumptionListResponse struct {
	XMLName xml.Name                     `xml:"respuesta"`
	Items   []*catalogdomain.Consumption `xml:"consumos>consumo"`
}

type invoiceListResponse struct {
	XMLName xml.Name                 `xml:"respuesta"`
	Items   []*catalogdomain.Invoice `xml:"facturas>factura"`
}

// ConsultarDatos lists any collection, selected by the tipo query parameter.
func (s *Server) ConsultarDatos(c *gin.Context) {
	ctx := c.Request.Context()

	tipo := c.DefaultQuery("tipo", catalogdomain.CollectionResources)
	switch tipo {
	case catalogdomain.CollectionResources:
		c.XML(http.StatusOK, resourceListResponse{Items: s.catalogSvc.ListResources(ctx)})
	case catalogdomain.CollectionCategories:
		c.XML(http.StatusOK, categoryListResponse{Items: s.catalogSvc.ListCategories(ctx)})
	case catalogdomain.CollectionClients:
		c.XML(http.StatusOK, clientListResponse{Items: s.catalogSvc.ListClients(ctx)})
	case catalogdomain.CollectionInstances:
		c.XML(http.StatusOK, instanceListResponse{Items: s.catalogSvc.ListInstances(ctx)})
	case catalogdomain.CollectionConsumptions:
		c.XML(http.StatusOK, consumptionListResponse{Items: s.catalogSvc.ListConsumptions(ctx)})
	case catalogdomain.CollectionInvoices:
		c.XML(http.StatusOK, invoiceListResponse{Items: s.catalogSvc.ListInvoices(ctx)})
	default:
		AbortWithError(c, errUnknownCollection)
	}
}

type resourceCreatedResponse struct {
	XMLName  xml.Name                `xml:"respuesta"`
	Mensaje  string                  `xml:"mensaje"`
	Resource *catalogdomain.Resource `xml:"recurso"`
}

func (s *Server) CrearRecurso(c *gin.Context) {
	var rec catalogdomain.Resource
	if err := c.ShouldBindXML(&rec); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}
	if err := s.catalogSvc.CreateResource(c.Request.Context(), &rec); err != nil {
		AbortWithError(c, err)
		return
	}
	c.XML(http.StatusOK, resourceCreatedResponse{
		Mensaje:  "Recurso creado con éxito",
		Resource: &rec,
	})
}

type categoryCreatedResponse struct {
	XMLName  xml.Name                `xml:"respuesta"`
	Mensaje  string                  `xml:"mensaje"`
	Category *catalogdomain.Category `xml:"categoria"`
}

func (s *Server) CrearCategoria(c *gin.Context) {
	var rec catalogdomain.Category
	if err := c.ShouldBindXML(&rec); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}
	if err := s.catalogSvc.CreateCategory(c.Request.Context(), &rec); err != nil {
		AbortWithError(c, err)
		return
	}
	c.XML(http.StatusOK, categoryCreatedResponse{
		Mensaje:  "Categoría creada con éxito",
		Category: &rec,
	})
}

type clientCreatedResponse struct {
	XMLName xml.Name              `xml:"respuesta"`
	Mensaje string                `xml:"mensaje"`
	Client  *catalogdomain.Client `xml:"cliente"`
}

func (s *Server) CrearCliente(c *gin.Context) {
	var rec catalogdomain.Client
	if err := c.ShouldBindXML(&rec); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}
	if err := s.catalogSvc.CreateClient(c.Request.Context(), &rec); err != nil {
		AbortWithError(c, err)
		return
	}
	c.XML(http.StatusOK, clientCreatedResponse{
		Mensaje: "Cliente creado con éxito",
		Client:  &rec,
	})
}

type instanceCreatedResponse struct {
	XMLName  xml.Name                `xml:"respuesta"`
	Mensaje  string                  `xml:"mensaje"`
	Instance *catalogdomain.Instance `xml:"instancia"`
}

func (s *Server) CrearInstancia(c *gin.Context) {
	var rec catalogdomain.Instance
	if err := c.ShouldBindXML(&rec); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}
	if err := s.catalogSvc.CreateInstance(c.Request.Context(), &rec); err != nil {
		AbortWithError(c, err)
		return
	}
	c.XML(http.StatusOK, instanceCreatedResponse{
		Mensaje:  "Instancia creada con éxito",
		Instance: &rec,
	})
}

type configurationRequest struct {
	Resources  []*catalogdomain.Resource `xml:"recursos>recurso"`
	Categories []*catalogdomain.Category `xml:"categorias>categoria"`
	Clients    []*catalogdomain.Client   `xml:"clientes>cliente"`
	Instances  []*catalogdomain.Instance `xml:"instancias>instancia"`
}

type configurationResponse struct {
	XMLName   xml.Name                           `xml:"respuesta"`
	Mensaje   string                             `xml:"mensaje"`
	Resultado *catalogdomain.ConfigurationResult `xml:"resultado"`
}

// CrearConfiguracion bulk-loads reference data in one request.
func (s *Server) CrearConfiguracion(c *gin.Context) {
	var req configurationRequest
	if err := c.ShouldBindXML(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	result, err := s.catalogSvc.LoadConfiguration(c.Request.Context(), catalogdomain.ConfigurationLoad{
		Resources:  req.Resources,
		Categories: req.Categories,
		Clients:    req.Clients,
		Instances:  req.Instances,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.XML(http.StatusOK, configurationResponse{
		Mensaje:   "Configuración cargada con éxito",
		Resultado: result,
	})
}

type consumptionsRequest struct {
	Consumptions []*catalogdomain.Consumption `xml:"consumo"`
}

type consumptionsResponse struct {
	XMLName         xml.Name `xml:"respuesta"`
	Mensaje         string   `xml:"mensaje"`
	TotalProcesados int      `xml:"total_procesados"`
}

// CargarConsumos bulk-loads usage records; only records with a well-formed
// date are accepted.
func (s *Server) CargarConsumos(c *gin.Context) {
	var req consumptionsRequest
	if err := c.ShouldBindXML(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	processed, err := s.catalogSvc.LoadConsumptions(c.Request.Context(), req.Consumptions)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if s.metrics != nil {
		s.metrics.ConsumptionsLoaded.Add(float64(processed))
	}

	c.XML(http.StatusOK, consumptionsResponse{
		Mensaje:         "Consumos cargados con éxito",
		TotalProcesados: processed,
	})
}

type messageResponse struct {
	XMLName xml.Name `xml:"respuesta"`
	Mensaje string   `xml:"mensaje"`
}

func (s *Server) ReiniciarSistema(c *gin.Context) {
	if err := s.catalogSvc.Reset(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}
	c.XML(http.StatusOK, messageResponse{Mensaje: "Sistema reiniciado con éxito"})
}
