// Package pdf renders stored invoices as PDF documents.
package pdf

import (
	"context"
	"io"

	catalogdomain "github.com/smallbiznis/facturador/internal/catalog/domain"
	"go.uber.org/fx"
)

type Provider interface {
	GenerateInvoice(ctx context.Context, invoice *catalogdomain.Invoice) (io.Reader, error)
}

var Module = fx.Module("providers.pdf",
	fx.Provide(New),
)
