package service

import (
	"context"
	"strings"

	catalogdomain "github.com/smallbiznis/facturador/internal/catalog/domain"
	"github.com/smallbiznis/facturador/internal/catalog/repository"
	"github.com/smallbiznis/facturador/internal/validate"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log    *zap.Logger
	Stores *repository.Stores
}

type Service struct {
	log    *zap.Logger
	stores *repository.Stores
}

func New(p Params) catalogdomain.Service {
	return &Service{
		log:    p.Log.Named("catalog.service"),
		stores: p.Stores,
	}
}

func (s *Service) CreateResource(ctx context.Context, r *catalogdomain.Resource) error {
	return s.stores.Resources.Insert(r)
}

func (s *Service) CreateCategory(ctx context.Context, c *catalogdomain.Category) error {
	return s.stores.Categories.Insert(c)
}

func (s *Service) CreateClient(ctx context.Context, c *catalogdomain.Client) error {
	if !validate.NIT(strings.TrimSpace(c.NIT)) {
		return catalogdomain.ErrInvalidNIT
	}
	return s.stores.Clients.Insert(c)
}

func (s *Service) CreateInstance(ctx context.Context, i *catalogdomain.Instance) error {
	i.Normalize()
	return s.stores.Instances.Insert(i)
}

func (s *Service) ListResources(ctx context.Context) []*catalogdomain.Resource {
	return s.stores.Resources.ReadAll()
}

func (s *Service) ListCategories(ctx context.Context) []*catalogdomain.Category {
	return s.stores.Categories.ReadAll()
}

func (s *Service) ListClients(ctx context.Context) []*catalogdomain.Client {
	return s.stores.Clients.ReadAll()
}

func (s *Service) ListInstances(ctx context.Context) []*catalogdomain.Instance {
	return s.stores.Instances.ReadAll()
}

func (s *Service) ListConsumptions(ctx context.Context) []*catalogdomain.Consumption {
	return s.stores.Consumptions.ReadAll()
}

func (s *Service) ListInvoices(ctx context.Context) []*catalogdomain.Invoice {
	return s.stores.Invoices.ReadAll()
}

func (s *Service) GetInvoice(ctx context.Context, id string) (*catalogdomain.Invoice, bool) {
	return s.stores.Invoices.FindByID(id)
}

func (s *Service) LoadConfiguration(ctx context.Context, req catalogdomain.ConfigurationLoad) (*catalogdomain.ConfigurationResult, error) {
	result := &catalogdomain.ConfigurationResult{}

	for _, r := range req.Resources {
		if err := s.stores.Resources.Insert(r); err != nil {
			return nil, err
		}
		result.ResourcesCreated++
	}
	for _, c := range req.Categories {
		if err := s.stores.Categories.Insert(c); err != nil {
			return nil, err
		}
		result.CategoriesCreated++
	}
	for _, c := range req.Clients {
		if !validate.NIT(strings.TrimSpace(c.NIT)) {
			s.log.Warn("skipping client with invalid nit", zap.String("id", c.ID))
			continue
		}
		if err := s.stores.Clients.Insert(c); err != nil {
			return nil, err
		}
		result.ClientsCreated++
	}
	for _, i := range req.Instances {
		i.Normalize()
		if err := s.stores.Instances.Insert(i); err != nil {
			return nil, err
		}
		result.InstancesCreated++
	}

	return result, nil
}

func (s *Service) LoadConsumptions(ctx context.Context, records []*catalogdomain.Consumption) (int, error) {
	processed := 0
	for _, c := range records {
		if !validate.Date(c.Date) {
			s.log.Warn("skipping consumption with malformed date",
				zap.String("id", c.ID),
				zap.String("fecha", c.Date),
			)
			continue
		}
		if err := s.stores.Consumptions.Insert(c); err != nil {
			return processed, err
		}
		processed++
	}
	return processed, nil
}

func (s *Service) Reset(ctx context.Context) error {
	s.log.Info("removing all collection files")
	return s.stores.Reset()
}
