package domain

import (
	"context"
	"time"
)

// Invoice aggregates one or more orders for external billing. An order may
// belong to at most one unpaid invoice at a time.
// swagger:model Invoice
type Invoice struct {
	ID                int64          `json:"invoiceId"`
	OrganizationID    int            `json:"organizationId"`
	ExternalInvoiceID string         `json:"externalInvoiceId"`
	Paid              bool           `json:"paid"`
	OrderIDs          []int64        `json:"orderIds"`
	Lines             []*InvoiceLine `json:"lines"`
	CreatedAt         time.Time      `json:"createdAt"`
}

// InvoiceLine is one aggregated billing line, derived from the union of the
// covered orders' order lines at creation time.
type InvoiceLine struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	VatPercent  int     `json:"vatPercent"`
}

// InvoiceInfo carries caller-supplied invoice metadata.
type InvoiceInfo struct {
	ExternalInvoiceID string
	Note              string
}

// InvoiceRepository defines storage operations for invoices.
type InvoiceRepository interface {
	// CreateWithOrders inserts the invoice, its lines, and attaches the
	// orders in a single transaction. Returns ErrInvoicingConflict when any
	// order is already attached to an unpaid invoice; on any failure no
	// partial invoice row remains.
	CreateWithOrders(ctx context.Context, inv *Invoice, orderIDs []int64) error
	GetByID(ctx context.Context, id int64, orgID int) (*Invoice, error)
	MarkPaid(ctx context.Context, id int64, orgID int) error
}

// InvoicingService aggregates orders into invoices, idempotently.
type InvoicingService interface {
	CreateInvoice(ctx context.Context, principal *Principal, orgID int, orderIDs []int64, info InvoiceInfo) (*Invoice, error)
	GetInvoiceByID(ctx context.Context, principal *Principal, orgID int, id int64) (*Invoice, error)
	MarkInvoicePaid(ctx context.Context, principal *Principal, orgID int, id int64) (*Invoice, error)
}
