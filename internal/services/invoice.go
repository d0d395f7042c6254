package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"eventuras/internal/domain"
)

type invoicingService struct {
	orderRepo      domain.OrderRepository
	invoiceRepo    domain.InvoiceRepository
	access         domain.AccessControlService
	contextTimeout time.Duration
}

// NewInvoicingService creates the invoicing service.
func NewInvoicingService(
	orderRepo domain.OrderRepository,
	invoiceRepo domain.InvoiceRepository,
	access domain.AccessControlService,
	timeout time.Duration,
) domain.InvoicingService {
	return &invoicingService{
		orderRepo:      orderRepo,
		invoiceRepo:    invoiceRepo,
		access:         access,
		contextTimeout: timeout,
	}
}

func (s *invoicingService) CreateInvoice(ctx context.Context, principal *domain.Principal, orgID int, orderIDs []int64, info domain.InvoiceInfo) (*domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.access.RequireOrgAdmin(principal, orgID); err != nil {
		return nil, err
	}
	if len(orderIDs) == 0 {
		return nil, fmt.Errorf("%w: no orders given", domain.ErrInvalidInput)
	}
	seen := make(map[int64]bool, len(orderIDs))
	for _, id := range orderIDs {
		if seen[id] {
			return nil, fmt.Errorf("%w: order %d listed twice", domain.ErrInvalidInput, id)
		}
		seen[id] = true
	}

	orders, err := s.orderRepo.ListByIDs(ctx, orderIDs, orgID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	// Orders outside the tenant are indistinguishable from missing ones.
	if len(orders) != len(orderIDs) {
		return nil, domain.ErrNotFound
	}
	for _, o := range orders {
		if o.Status == domain.OrderCancelled {
			return nil, fmt.Errorf("%w: order %d is cancelled", domain.ErrInvalidInput, o.ID)
		}
	}

	external := info.ExternalInvoiceID
	if external == "" {
		external = uuid.NewString()
	}
	inv := &domain.Invoice{
		OrganizationID:    orgID,
		ExternalInvoiceID: external,
		Paid:              false,
		OrderIDs:          orderIDs,
		Lines:             aggregateInvoiceLines(orders),
		CreatedAt:         time.Now(),
	}
	if err := s.invoiceRepo.CreateWithOrders(ctx, inv, orderIDs); err != nil {
		if errors.Is(err, domain.ErrInvoicingConflict) {
			return nil, domain.ErrInvoicingConflict
		}
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	return inv, nil
}

// aggregateInvoiceLines unions all orders' lines, merging lines with the same
// product, variant, unit price, and VAT into one.
func aggregateInvoiceLines(orders []*domain.Order) []*domain.InvoiceLine {
	type key struct {
		productID int64
		variantID int64
		price     float64
		vat       int
	}
	index := make(map[key]*domain.InvoiceLine)
	var lines []*domain.InvoiceLine
	for _, o := range orders {
		for _, l := range o.Lines {
			k := key{productID: l.ProductID, price: l.Price, vat: l.VatPercent}
			if l.VariantID != nil {
				k.variantID = *l.VariantID
			}
			if existing, ok := index[k]; ok {
				existing.Quantity += l.Quantity
				continue
			}
			line := &domain.InvoiceLine{
				Description: l.ProductName,
				Quantity:    l.Quantity,
				Price:       l.Price,
				VatPercent:  l.VatPercent,
			}
			index[k] = line
			lines = append(lines, line)
		}
	}
	return lines
}

func (s *invoicingService) GetInvoiceByID(ctx context.Context, principal *domain.Principal, orgID int, id int64) (*domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.access.RequireOrgAdmin(principal, orgID); err != nil {
		return nil, err
	}
	inv, err := s.invoiceRepo.GetByID(ctx, id, orgID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

func (s *invoicingService) MarkInvoicePaid(ctx context.Context, principal *domain.Principal, orgID int, id int64) (*domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.access.RequireOrgAdmin(principal, orgID); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.MarkPaid(ctx, id, orgID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("mark invoice paid: %w", err)
	}
	inv, err := s.invoiceRepo.GetByID(ctx, id, orgID)
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}
