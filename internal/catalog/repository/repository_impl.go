// Package repository wires one xmlstore collection per entity kind.
package repository

import (
	"fmt"
	"os"

	"github.com/smallbiznis/facturador/internal/catalog/domain"
	"github.com/smallbiznis/facturador/internal/clock"
	"github.com/smallbiznis/facturador/internal/config"
	"github.com/smallbiznis/facturador/pkg/xmlstore"
	"go.uber.org/zap"
)

// Stores bundles the six typed collection stores rooted at the configured
// data directory.
type Stores struct {
	Resources    *xmlstore.Store[*domain.Resource]
	Categories   *xmlstore.Store[*domain.Category]
	Clients      *xmlstore.Store[*domain.Client]
	Instances    *xmlstore.Store[*domain.Instance]
	Consumptions *xmlstore.Store[*domain.Consumption]
	Invoices     *xmlstore.Store[*domain.Invoice]
}

// Provide builds the stores bundle.
func Provide(cfg config.Config, log *zap.Logger, clk clock.Clock) *Stores {
	dir := cfg.DataDir
	return &Stores{
		Resources:    xmlstore.New[*domain.Resource](dir, domain.CollectionResources, log, clk),
		Categories:   xmlstore.New[*domain.Category](dir, domain.CollectionCategories, log, clk),
		Clients:      xmlstore.New[*domain.Client](dir, domain.CollectionClients, log, clk),
		Instances:    xmlstore.New[*domain.Instance](dir, domain.CollectionInstances, log, clk),
		Consumptions: xmlstore.New[*domain.Consumption](dir, domain.CollectionConsumptions, log, clk),
		Invoices:     xmlstore.New[*domain.Invoice](dir, domain.CollectionInvoices, log, clk),
	}
}

// EnsureInitialized creates the data directory and an empty shell for every
// collection that does not exist yet.
func (s *Stores) EnsureInitialized() error {
	for _, init := range []func() error{
		s.Resources.EnsureInitialized,
		s.Categories.EnsureInitialized,
		s.Clients.EnsureInitialized,
		s.Instances.EnsureInitialized,
		s.Consumptions.EnsureInitialized,
		s.Invoices.EnsureInitialized,
	} {
		if err := init(); err != nil {
			return err
		}
	}
	return nil
}

// Reset removes every collection file. Missing files are not an error.
func (s *Stores) Reset() error {
	for _, path := range []string{
		s.Resources.Path(),
		s.Categories.Path(),
		s.Clients.Path(),
		s.Instances.Path(),
		s.Consumptions.Path(),
		s.Invoices.Path(),
	} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("repository: remove %s: %w", path, err)
		}
	}
	return nil
}
