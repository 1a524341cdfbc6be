// Package domain defines the invoicing engine contract.
package domain

import (
	"context"
	"errors"
)

// Service generates invoices from the consumption recorded in a period.
type Service interface {
	Generate(ctx context.Context, req GenerateRequest) (*Result, error)
}

// GenerateRequest carries the period bounds, both in DD/MM/YYYY or
// DD/MM/YYYY HH:MM form.
type GenerateRequest struct {
	PeriodStart string `xml:"fecha_inicio"`
	PeriodEnd   string `xml:"fecha_fin"`
}

// InvoiceSummary describes one created invoice.
type InvoiceSummary struct {
	InvoiceID  string  `xml:"id_factura"`
	ClientName string  `xml:"cliente"`
	NIT        string  `xml:"nit"`
	Total      float64 `xml:"monto_total"`
}

// Result reports what a generation run produced, in creation order.
type Result struct {
	InvoicesCreated int
	Invoices        []InvoiceSummary
}

// ErrInvalidPeriod is returned when either period bound fails to parse. No
// side effects have been performed in that case.
var ErrInvalidPeriod = errors.New("invalid_period")
