package domain

import (
	"context"
	"time"
)

// OrderStatus is the lifecycle state of an order. A draft order is the single
// open, still-editable order of a registration.
type OrderStatus string

const (
	OrderDraft     OrderStatus = "draft"
	OrderInvoiced  OrderStatus = "invoiced"
	OrderCancelled OrderStatus = "cancelled"
)

// Order is the billable unit attached to a registration. A registration may
// accumulate several orders over time (e.g. a new draft after cancellation),
// but at most one is open. Version backs optimistic concurrency.
// swagger:model Order
type Order struct {
	ID               int64        `json:"id"`
	RegistrationID   int64        `json:"registration_id"`
	OrganizationID   int          `json:"organization_id"`
	Status           OrderStatus  `json:"status"`
	CustomerName     string       `json:"customer_name"`
	CustomerEmail    string       `json:"customer_email"`
	InvoiceReference string       `json:"invoice_reference"`
	PaymentProvider  string       `json:"payment_provider"`
	FreeOrder        bool         `json:"free_order"`
	Version          int          `json:"-"`
	Lines            []*OrderLine `json:"lines"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// Total returns the sum of all line totals.
func (o *Order) Total() float64 {
	var sum float64
	for _, l := range o.Lines {
		sum += l.Total()
	}
	return sum
}

// Line returns the line matching product and variant, or nil.
func (o *Order) Line(productID int64, variantID *int64) *OrderLine {
	for _, l := range o.Lines {
		if l.ProductID != productID {
			continue
		}
		if (l.VariantID == nil) != (variantID == nil) {
			continue
		}
		if l.VariantID == nil || *l.VariantID == *variantID {
			return l
		}
	}
	return nil
}

// OrderLine is one product/variant line of an order. Price and VAT are
// snapshots captured when the line is created and never refreshed afterwards,
// so later product price changes do not alter billing history.
// swagger:model OrderLine
type OrderLine struct {
	ID          int64   `json:"id"`
	OrderID     int64   `json:"order_id"`
	ProductID   int64   `json:"product_id"`
	VariantID   *int64  `json:"variant_id,omitempty"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	VatPercent  int     `json:"vat_percent"`
}

// Total returns quantity times unit price.
func (l *OrderLine) Total() float64 {
	return float64(l.Quantity) * l.Price
}

// OrderLogEntry is one append-only audit record on an order.
type OrderLogEntry struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"order_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductSelection is one desired product/variant quantity from the caller.
type ProductSelection struct {
	ProductID int64  `json:"productId"`
	VariantID *int64 `json:"variantId,omitempty"`
	Quantity  int    `json:"quantity"`
}

// OrderRepository defines storage operations for orders and their lines.
type OrderRepository interface {
	// Create inserts the order and any initial lines in one transaction.
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id int64, orgID int) (*Order, error)
	// GetOpenByRegistrationID returns the registration's draft order with
	// lines, or ErrNotFound when none is open.
	GetOpenByRegistrationID(ctx context.Context, registrationID int64) (*Order, error)
	// ReplaceLines atomically replaces the order's lines with the given set,
	// subject to a version check. Returns ErrConflict on a lost race.
	ReplaceLines(ctx context.Context, orderID int64, version int, lines []*OrderLine) error
	// SetStatus updates the order status with a version check.
	SetStatus(ctx context.Context, orderID int64, status OrderStatus, version int) error
	ListByIDs(ctx context.Context, ids []int64, orgID int) ([]*Order, error)
	AppendLog(ctx context.Context, orderID int64, message string) error
	ListLog(ctx context.Context, orderID int64) ([]*OrderLogEntry, error)
}

// OrderService reconciles a registration's product selections into order
// lines on its open order.
type OrderService interface {
	// ReconcileProducts applies the desired quantity map onto the
	// registration's open order, creating one if needed. Mandatory products
	// are clamped up to their minimum quantity, never errored. The operation
	// is idempotent.
	ReconcileProducts(ctx context.Context, principal *Principal, orgID int, registrationID int64, selections []ProductSelection) (*Order, error)
	GetOrderByID(ctx context.Context, principal *Principal, orgID int, id int64) (*Order, error)
}
