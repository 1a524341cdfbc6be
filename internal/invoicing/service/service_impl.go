package service

import (
	"context"
	"fmt"
	"math"

	catalogdomain "github.com/smallbiznis/facturador/internal/catalog/domain"
	"github.com/smallbiznis/facturador/internal/catalog/repository"
	invoicingdomain "github.com/smallbiznis/facturador/internal/invoicing/domain"
	"github.com/smallbiznis/facturador/internal/observability/metrics"
	"github.com/smallbiznis/facturador/internal/period"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Stores  *repository.Stores
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	stores  *repository.Stores
	metrics *metrics.Metrics
}

func New(p Params) invoicingdomain.Service {
	return &Service{
		log:     p.Log.Named("invoicing.service"),
		stores:  p.Stores,
		metrics: p.Metrics,
	}
}

// instanceGroup accumulates the priced consumption of one instance.
type instanceGroup struct {
	name    string
	details []catalogdomain.ConsumptionDetail
}

// clientGroup keeps its instances in first-seen order.
type clientGroup struct {
	order     []string
	instances map[string]*instanceGroup
}

// Generate correlates the consumption recorded in [req.PeriodStart,
// req.PeriodEnd] with instances, resources and clients, and persists one
// invoice per client. Consumptions whose instance or resource no longer
// exists are skipped silently; an unparsable period aborts before any read
// or write. Re-running over an overlapping period creates a second, disjoint
// set of invoices.
func (s *Service) Generate(ctx context.Context, req invoicingdomain.GenerateRequest) (*invoicingdomain.Result, error) {
	start, ok := period.Parse(req.PeriodStart)
	if !ok {
		return nil, invoicingdomain.ErrInvalidPeriod
	}
	end, ok := period.Parse(req.PeriodEnd)
	if !ok {
		return nil, invoicingdomain.ErrInvalidPeriod
	}
	// A period end given without a time component covers the whole day.
	end = period.NormalizeEnd(end, req.PeriodEnd)

	consumptions := s.stores.Consumptions.ReadAll()
	instances := s.stores.Instances.ReadAll()
	resources := s.stores.Resources.ReadAll()
	clients := s.stores.Clients.ReadAll()

	filtered := make([]*catalogdomain.Consumption, 0, len(consumptions))
	for _, c := range consumptions {
		ts, ok := period.Parse(c.Date)
		if !ok {
			continue
		}
		if ts.Before(start) || ts.After(end) {
			continue
		}
		filtered = append(filtered, c)
	}
	if len(filtered) == 0 {
		s.log.Info("no consumption in period",
			zap.String("fecha_inicio", req.PeriodStart),
			zap.String("fecha_fin", req.PeriodEnd),
		)
		return &invoicingdomain.Result{InvoicesCreated: 0}, nil
	}

	// Group per client, per instance, preserving first-seen order while
	// scanning the filtered consumptions.
	clientOrder := make([]string, 0)
	groups := make(map[string]*clientGroup)
	billed := 0

	for _, c := range filtered {
		instance, ok := findInstance(instances, c.InstanceID)
		if !ok {
			continue
		}

		clientID := instance.ClientID
		cg, ok := groups[clientID]
		if !ok {
			cg = &clientGroup{instances: make(map[string]*instanceGroup)}
			groups[clientID] = cg
			clientOrder = append(clientOrder, clientID)
		}

		ig, ok := cg.instances[c.InstanceID]
		if !ok {
			name := instance.Name
			if name == "" {
				name = "Sin nombre"
			}
			ig = &instanceGroup{name: name}
			cg.instances[c.InstanceID] = ig
			cg.order = append(cg.order, c.InstanceID)
		}

		resource, ok := findResource(resources, c.ResourceID)
		if !ok {
			continue
		}

		ig.details = append(ig.details, catalogdomain.ConsumptionDetail{
			ResourceID:   c.ResourceID,
			ResourceName: resource.Name,
			Abbreviation: resource.Abbreviation,
			Hours:        c.Hours,
			UnitPrice:    resource.HourlyPrice,
			Amount:       round2(c.Hours * resource.HourlyPrice),
		})
		billed++
	}

	issueDate := end.Format(period.DateLayout)
	summaries := make([]invoicingdomain.InvoiceSummary, 0, len(clientOrder))

	for _, clientID := range clientOrder {
		client, ok := findClient(clients, clientID)
		if !ok {
			continue
		}
		cg := groups[clientID]

		invoice := &catalogdomain.Invoice{
			ClientID:   clientID,
			IssueDate:  issueDate,
			ClientNIT:  client.NIT,
			ClientName: client.Name,
		}
		invoice.Normalize()
		for _, instanceID := range cg.order {
			ig := cg.instances[instanceID]
			invoice.AddItem(instanceID, ig.name, ig.details)
		}

		if err := s.stores.Invoices.Insert(invoice); err != nil {
			// No rollback: invoices already written in this run stay.
			return nil, fmt.Errorf("persist invoice for client %s: %w", clientID, err)
		}
		if s.metrics != nil {
			s.metrics.InvoicesGenerated.Inc()
		}

		s.log.Info("invoice generated",
			zap.String("invoice_id", invoice.ID),
			zap.String("client_id", clientID),
			zap.Float64("total", invoice.Total),
		)
		summaries = append(summaries, invoicingdomain.InvoiceSummary{
			InvoiceID:  invoice.ID,
			ClientName: client.Name,
			NIT:        client.NIT,
			Total:      invoice.Total,
		})
	}

	if s.metrics != nil {
		s.metrics.ConsumptionsBilled.Add(float64(billed))
	}

	return &invoicingdomain.Result{
		InvoicesCreated: len(summaries),
		Invoices:        summaries,
	}, nil
}

// round2 rounds to 2 decimal places. Applied once, at the per-consumption
// amount; subtotals and totals are exact sums of already-rounded amounts.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func findInstance(instances []*catalogdomain.Instance, id string) (*catalogdomain.Instance, bool) {
	for _, i := range instances {
		if i.ID == id {
			return i, true
		}
	}
	return nil, false
}

func findResource(resources []*catalogdomain.Resource, id string) (*catalogdomain.Resource, bool) {
	for _, r := range resources {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

func findClient(clients []*catalogdomain.Client, id string) (*catalogdomain.Client, bool) {
	for _, c := range clients {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}
