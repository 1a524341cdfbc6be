package server

import (
	"encoding/xml"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	invoicingdomain "github.com/smallbiznis/facturador/internal/invoicing/domain"
)

type generateRequest struct {
	FechaInicio string `xml:"fecha_inicio"`
	FechaFin    string `xml:"fecha_fin"`
}

type generateResponse struct {
	XMLName           xml.Name                         `xml:"respuesta"`
	Mensaje           string                           `xml:"mensaje"`
	Periodo           *generateRequest                 `xml:"periodo,omitempty"`
	FacturasGeneradas int                              `xml:"facturas_generadas"`
	Facturas          []invoicingdomain.InvoiceSummary `xml:"facturas>factura"`
}

// GenerarFactura runs the invoicing engine over the requested period.
func (s *Server) GenerarFactura(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindXML(&req); err != nil {
		AbortWithError(c, errInvalidRequest)
		return
	}

	result, err := s.invoicingSvc.Generate(c.Request.Context(), invoicingdomain.GenerateRequest{
		PeriodStart: strings.TrimSpace(req.FechaInicio),
		PeriodEnd:   strings.TrimSpace(req.FechaFin),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	// A nil summary slice means no consumption survived the period filter;
	// an empty one means consumptions matched but no invoice could be built.
	if result.Invoices == nil {
		c.XML(http.StatusOK, generateResponse{
			Mensaje:           "No hay consumos en el periodo especificado",
			FacturasGeneradas: 0,
		})
		return
	}

	c.XML(http.StatusOK, generateResponse{
		Mensaje:           "Facturas generadas con éxito",
		Periodo:           &req,
		FacturasGeneradas: result.InvoicesCreated,
		Facturas:          result.Invoices,
	})
}

// FacturaPDF renders one stored invoice as a PDF document.
func (s *Server) FacturaPDF(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	invoice, ok := s.catalogSvc.GetInvoice(c.Request.Context(), id)
	if !ok {
		AbortWithError(c, errInvoiceNotFound)
		return
	}

	doc, err := s.pdfProvider.GenerateInvoice(c.Request.Context(), invoice)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="factura_`+invoice.ID+`.pdf"`)
	c.Status(http.StatusOK)
	c.Writer.Header().Set("Content-Type", "application/pdf")
	_, _ = io.Copy(c.Writer, doc)
}
