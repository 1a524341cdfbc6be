package server

import (
	"encoding/xml"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/smallbiznis/facturador/internal/catalog/domain"
	invoicingdomain "github.com/smallbiznis/facturador/internal/invoicing/domain"
)

type errorResponse struct {
	XMLName xml.Name `xml:"respuesta"`
	Error   string   `xml:"error"`
}

var (
	errInvalidRequest    = errors.New("invalid_request")
	errUnknownCollection = errors.New("unknown_collection")
	errInvoiceNotFound   = errors.New("invoice_not_found")
)

// AbortWithError records err on the context; the error middleware turns it
// into the structured payload.
func AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorHandlingMiddleware maps recorded errors to the XML error payload.
// User-visible failures are a single message string.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		last := c.Errors.Last()
		if last == nil {
			return
		}

		status, message := classifyError(last.Err)
		c.XML(status, errorResponse{Error: message})
	}
}

func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, invoicingdomain.ErrInvalidPeriod):
		return http.StatusBadRequest, "Formato de fecha inválido"
	case errors.Is(err, catalogdomain.ErrInvalidNIT):
		return http.StatusBadRequest, "NIT inválido"
	case errors.Is(err, errInvalidRequest):
		return http.StatusBadRequest, "Formato XML incorrecto"
	case errors.Is(err, errUnknownCollection):
		return http.StatusBadRequest, "Tipo de datos no válido"
	case errors.Is(err, errInvoiceNotFound):
		return http.StatusNotFound, "Factura no encontrada"
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
