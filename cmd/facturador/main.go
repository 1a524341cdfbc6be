package main

import (
	"github.com/smallbiznis/facturador/internal/catalog"
	"github.com/smallbiznis/facturador/internal/clock"
	"github.com/smallbiznis/facturador/internal/config"
	"github.com/smallbiznis/facturador/internal/invoicing"
	"github.com/smallbiznis/facturador/internal/observability"
	"github.com/smallbiznis/facturador/internal/providers/pdf"
	"github.com/smallbiznis/facturador/internal/server"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		clock.Module,

		// Functional domains
		catalog.Module,
		invoicing.Module,
		pdf.Module,

		// HTTP boundary
		server.Module,
	)

	app.Run()
}
