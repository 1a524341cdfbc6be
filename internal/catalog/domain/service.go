package domain

import (
	"context"
	"errors"
)

// Service is the typed access layer over the entity collections.
type Service interface {
	CreateResource(ctx context.Context, r *Resource) error
	CreateCategory(ctx context.Context, c *Category) error
	CreateClient(ctx context.Context, c *Client) error
	CreateInstance(ctx context.Context, i *Instance) error

	ListResources(ctx context.Context) []*Resource
	ListCategories(ctx context.Context) []*Category
	ListClients(ctx context.Context) []*Client
	ListInstances(ctx context.Context) []*Instance
	ListConsumptions(ctx context.Context) []*Consumption
	ListInvoices(ctx context.Context) []*Invoice

	GetInvoice(ctx context.Context, id string) (*Invoice, bool)

	// LoadConfiguration bulk-creates reference data and reports per-kind
	// created counts. Clients with an invalid NIT are skipped, not failed.
	LoadConfiguration(ctx context.Context, req ConfigurationLoad) (*ConfigurationResult, error)

	// LoadConsumptions accepts only records carrying a well-formed date and
	// returns how many were persisted.
	LoadConsumptions(ctx context.Context, records []*Consumption) (int, error)

	// Reset removes every collection file.
	Reset(ctx context.Context) error
}

// ConfigurationLoad is a bulk reference-data payload.
type ConfigurationLoad struct {
	Resources  []*Resource
	Categories []*Category
	Clients    []*Client
	Instances  []*Instance
}

// ConfigurationResult reports per-kind created counts.
type ConfigurationResult struct {
	ResourcesCreated  int `xml:"recursos_creados"`
	CategoriesCreated int `xml:"categorias_creadas"`
	ClientsCreated    int `xml:"clientes_creados"`
	InstancesCreated  int `xml:"instancias_creadas"`
}

var (
	ErrInvalidNIT = errors.New("invalid_nit")
)
