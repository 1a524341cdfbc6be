// Package domain contains the persisted entity models of the catalog. Field
// tags are the XML wire contract shared with the collection files; none of
// the types declare an XMLName so the store and the HTTP boundary pick the
// element name per context.
package domain

import (
	"github.com/google/uuid"
)

// Collection names; each backs one XML file in the data directory.
const (
	CollectionResources    = "recursos"
	CollectionCategories   = "categorias"
	CollectionClients      = "clientes"
	CollectionInstances    = "instancias"
	CollectionConsumptions = "consumos"
	CollectionInvoices     = "facturas"
)

// InstanceStatusActive is the default lifecycle status of an instance. No
// other transitions are modeled.
const InstanceStatusActive = "activa"

// Resource is a priced, metered unit type (e.g. CPU-hour). Immutable once
// priced consumption references it.
type Resource struct {
	ID           string  `xml:"id"`
	Name         string  `xml:"nombre"`
	Abbreviation string  `xml:"abreviatura"`
	Unit         string  `xml:"metrica"`
	HourlyPrice  float64 `xml:"precio_hora"`
	Timestamp    string  `xml:"timestamp,omitempty"`
}

func (r *Resource) RecordID() string      { return r.ID }
func (r *Resource) StampedAt() string     { return r.Timestamp }
func (r *Resource) SetStampedAt(s string) { r.Timestamp = s }

// Category is reference data only; the invoicing join does not use it.
type Category struct {
	ID          string  `xml:"id"`
	Name        string  `xml:"nombre"`
	Description string  `xml:"descripcion"`
	Workload    float64 `xml:"carga_trabajo"`
	Timestamp   string  `xml:"timestamp,omitempty"`
}

func (c *Category) RecordID() string      { return c.ID }
func (c *Category) StampedAt() string     { return c.Timestamp }
func (c *Category) SetStampedAt(s string) { c.Timestamp = s }

// Client owns instances and receives invoices.
type Client struct {
	ID        string `xml:"id"`
	NIT       string `xml:"nit"`
	Name      string `xml:"nombre"`
	Address   string `xml:"direccion"`
	Email     string `xml:"correo,omitempty"`
	Phone     string `xml:"telefono,omitempty"`
	Timestamp string `xml:"timestamp,omitempty"`
}

func (c *Client) RecordID() string      { return c.ID }
func (c *Client) StampedAt() string     { return c.Timestamp }
func (c *Client) SetStampedAt(s string) { c.Timestamp = s }

// Instance is a running resource allocation owned by a client. It links a
// consumption record to that client.
type Instance struct {
	ID              string `xml:"id"`
	ClientID        string `xml:"id_cliente"`
	ConfigurationID string `xml:"id_configuracion"`
	Name            string `xml:"nombre"`
	StartDate       string `xml:"fecha_inicio"`
	Status          string `xml:"estado"`
	Timestamp       string `xml:"timestamp,omitempty"`
}

func (i *Instance) RecordID() string      { return i.ID }
func (i *Instance) StampedAt() string     { return i.Timestamp }
func (i *Instance) SetStampedAt(s string) { i.Timestamp = s }

// Normalize applies the default lifecycle status.
func (i *Instance) Normalize() {
	if i.Status == "" {
		i.Status = InstanceStatusActive
	}
}

// Consumption is a timestamped metered-usage record linking an instance to a
// resource and a quantity of decimal hours.
type Consumption struct {
	ID         string  `xml:"id"`
	InstanceID string  `xml:"id_instancia"`
	ResourceID string  `xml:"id_recurso"`
	Date       string  `xml:"fecha"`
	Hours      float64 `xml:"tiempo"`
	Timestamp  string  `xml:"timestamp,omitempty"`
}

func (c *Consumption) RecordID() string      { return c.ID }
func (c *Consumption) StampedAt() string     { return c.Timestamp }
func (c *Consumption) SetStampedAt(s string) { c.Timestamp = s }

// ConsumptionDetail is one priced usage row inside an invoice line item.
type ConsumptionDetail struct {
	ResourceID   string  `xml:"id_recurso"`
	ResourceName string  `xml:"nombre_recurso"`
	Abbreviation string  `xml:"abreviatura"`
	Hours        float64 `xml:"tiempo"`
	UnitPrice    float64 `xml:"precio_hora"`
	Amount       float64 `xml:"monto"`
}

// InvoiceItem is the per-instance grouping within an invoice. Its subtotal is
// always the exact sum of its detail amounts.
type InvoiceItem struct {
	InstanceID   string              `xml:"id_instancia"`
	InstanceName string              `xml:"nombre_instancia"`
	Consumptions []ConsumptionDetail `xml:"consumos"`
	Subtotal     float64             `xml:"subtotal"`
}

// Invoice is created only by the invoicing engine, never authored directly.
// Total and subtotals are recomputed whenever an item is added, so they can
// never diverge from their children.
type Invoice struct {
	ID         string        `xml:"id"`
	ClientID   string        `xml:"id_cliente"`
	IssueDate  string        `xml:"fecha_emision"`
	Total      float64       `xml:"monto_total"`
	Items      []InvoiceItem `xml:"items"`
	ClientNIT  string        `xml:"nit_cliente"`
	ClientName string        `xml:"nombre_cliente"`
	Timestamp  string        `xml:"timestamp,omitempty"`
}

func (f *Invoice) RecordID() string      { return f.ID }
func (f *Invoice) StampedAt() string     { return f.Timestamp }
func (f *Invoice) SetStampedAt(s string) { f.Timestamp = s }

// Normalize generates a unique id when the caller supplied none.
func (f *Invoice) Normalize() {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
}

// AddItem appends a line item for one instance and recomputes the subtotal
// and the invoice total. Amounts are already rounded per consumption; the
// sums are exact and never re-rounded.
func (f *Invoice) AddItem(instanceID, instanceName string, details []ConsumptionDetail) {
	var subtotal float64
	for _, d := range details {
		subtotal += d.Amount
	}
	f.Items = append(f.Items, InvoiceItem{
		InstanceID:   instanceID,
		InstanceName: instanceName,
		Consumptions: details,
		Subtotal:     subtotal,
	})

	var total float64
	for _, item := range f.Items {
		total += item.Subtotal
	}
	f.Total = total
}
