package domain

import (
	"context"
	"time"
)

// EventInfo represents an event or course offering owned by an organization.
// Events are never hard-deleted; lifecycle is driven by Published/Archived.
// swagger:model EventInfo
type EventInfo struct {
	ID             int64      `json:"id"`
	OrganizationID int        `json:"organization_id"`
	Title          string     `json:"title"`
	Code           string     `json:"code"`
	Description    string     `json:"description"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	Published      bool       `json:"published"`
	OnDemand       bool       `json:"on_demand"`
	Archived       bool       `json:"archived"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Product is a purchasable add-on tied to one event. A minimum quantity
// greater than zero makes the product mandatory on every order.
// swagger:model Product
type Product struct {
	ID              int64             `json:"id"`
	EventID         int64             `json:"event_id"`
	Name            string            `json:"name"`
	Price           float64           `json:"price"`
	VatPercent      int               `json:"vat_percent"`
	MinimumQuantity int               `json:"minimum_quantity"`
	EnableQuantity  bool              `json:"enable_quantity"`
	Visible         bool              `json:"visible"`
	Archived        bool              `json:"archived"`
	Variants        []*ProductVariant `json:"variants,omitempty"`
}

// IsMandatory reports whether the product must always be present on an order.
func (p *Product) IsMandatory() bool {
	return p.MinimumQuantity > 0
}

// Variant returns the non-archived variant with the given id, if it belongs
// to this product.
func (p *Product) Variant(variantID int64) *ProductVariant {
	for _, v := range p.Variants {
		if v.ID == variantID && !v.Archived {
			return v
		}
	}
	return nil
}

// ProductVariant is a priced variant of a product (e.g. size or tier).
// swagger:model ProductVariant
type ProductVariant struct {
	ID         int64   `json:"id"`
	ProductID  int64   `json:"product_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	VatPercent int     `json:"vat_percent"`
	Archived   bool    `json:"archived"`
}

// EventRepository defines storage operations for events.
// All reads are organization-scoped; an event outside the caller's
// organization behaves exactly like a missing one.
type EventRepository interface {
	Create(ctx context.Context, event *EventInfo) error
	GetByID(ctx context.Context, id int64, orgID int) (*EventInfo, error)
	GetByCode(ctx context.Context, code string, orgID int) (*EventInfo, error)
	ListByOrganization(ctx context.Context, orgID int, params PaginationParams) ([]*EventInfo, int, error)
	Update(ctx context.Context, event *EventInfo) error
}

// ProductRepository defines storage operations for products and variants.
type ProductRepository interface {
	// ListByEventID returns the event's non-archived products with their
	// variants (archived variants excluded), ordered by id.
	ListByEventID(ctx context.Context, eventID int64) ([]*Product, error)
	GetByID(ctx context.Context, productID int64) (*Product, error)
	Create(ctx context.Context, product *Product) error
}

// EventService defines administrative event operations.
type EventService interface {
	CreateEvent(ctx context.Context, principal *Principal, event *EventInfo) error
	GetEventByID(ctx context.Context, orgID int, eventID int64) (*EventInfo, []*Product, error)
	AddProduct(ctx context.Context, principal *Principal, orgID int, product *Product) error
	ListEvents(ctx context.Context, orgID int, params PaginationParams) ([]*EventInfo, int, error)
}
