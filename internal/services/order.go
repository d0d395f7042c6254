package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventuras/internal/domain"
)

type orderService struct {
	registrationRepo domain.RegistrationRepository
	productRepo      domain.ProductRepository
	orderRepo        domain.OrderRepository
	access           domain.AccessControlService
	logger           *slog.Logger
	contextTimeout   time.Duration
}

// NewOrderService creates the product/order reconciliation service.
func NewOrderService(
	registrationRepo domain.RegistrationRepository,
	productRepo domain.ProductRepository,
	orderRepo domain.OrderRepository,
	access domain.AccessControlService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.OrderService {
	return &orderService{
		registrationRepo: registrationRepo,
		productRepo:      productRepo,
		orderRepo:        orderRepo,
		access:           access,
		logger:           logger,
		contextTimeout:   timeout,
	}
}

// desiredLine is one validated, clamped selection.
type desiredLine struct {
	product  *domain.Product
	variant  *domain.ProductVariant
	quantity int
}

func (s *orderService) ReconcileProducts(ctx context.Context, principal *domain.Principal, orgID int, registrationID int64, selections []domain.ProductSelection) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.registrationRepo.GetByID(ctx, registrationID, orgID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}

	order, err := s.orderRepo.GetOpenByRegistrationID(ctx, reg.ID)
	if errors.Is(err, domain.ErrNotFound) {
		order = &domain.Order{
			RegistrationID: reg.ID,
			OrganizationID: reg.OrganizationID,
			Status:         domain.OrderDraft,
			CustomerName:   reg.ParticipantName,
			CustomerEmail:  reg.ParticipantEmail,
			CreatedAt:      time.Now(),
			UpdatedAt:      time.Now(),
		}
		// The access check runs before Create so a denied caller never
		// leaves a stray draft order behind.
		if err := s.access.CheckUpdateOrder(principal, order, reg); err != nil {
			return nil, err
		}
		if err := s.orderRepo.Create(ctx, order); err != nil {
			return nil, fmt.Errorf("create order: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("get open order: %w", err)
	} else if err := s.access.CheckUpdateOrder(principal, order, reg); err != nil {
		return nil, err
	}

	products, err := s.productRepo.ListByEventID(ctx, reg.EventID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	desired, err := buildDesired(products, selections)
	if err != nil {
		return nil, err
	}

	lines := reconcileLines(order, desired)
	if err := s.orderRepo.ReplaceLines(ctx, order.ID, order.Version, lines); err != nil {
		if !errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("replace order lines: %w", err)
		}
		// Lost the race against a concurrent edit: reload the order and its
		// lines, recompute against the fresh state, retry exactly once.
		order, err = s.orderRepo.GetOpenByRegistrationID(ctx, reg.ID)
		if err != nil {
			return nil, fmt.Errorf("reload order after conflict: %w", err)
		}
		lines = reconcileLines(order, desired)
		if err := s.orderRepo.ReplaceLines(ctx, order.ID, order.Version, lines); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return nil, domain.ErrConflict
			}
			return nil, fmt.Errorf("replace order lines: %w", err)
		}
	}

	if err := s.orderRepo.AppendLog(ctx, order.ID, fmt.Sprintf("products reconciled to %d line(s)", len(lines))); err != nil {
		s.logger.WarnContext(ctx, "append order log failed", "order_id", order.ID, "err", err)
	}

	updated, err := s.orderRepo.GetByID(ctx, order.ID, orgID)
	if err != nil {
		return nil, fmt.Errorf("reload order: %w", err)
	}
	return updated, nil
}

// buildDesired validates selections against the event's products, injects
// missing mandatory products at their minimum quantity, and clamps explicit
// attempts to go below a mandatory minimum.
func buildDesired(products []*domain.Product, selections []domain.ProductSelection) ([]desiredLine, error) {
	byID := make(map[int64]*domain.Product, len(products))
	for _, p := range products {
		if !p.Archived {
			byID[p.ID] = p
		}
	}

	var desired []desiredLine
	seen := make(map[int64]bool)
	for _, sel := range selections {
		if sel.Quantity < 0 {
			return nil, fmt.Errorf("%w: negative quantity for product %d", domain.ErrInvalidInput, sel.ProductID)
		}
		product, ok := byID[sel.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: product %d does not belong to the event", domain.ErrInvalidInput, sel.ProductID)
		}
		if seen[sel.ProductID] {
			return nil, fmt.Errorf("%w: product %d selected more than once", domain.ErrInvalidInput, sel.ProductID)
		}
		seen[sel.ProductID] = true

		var variant *domain.ProductVariant
		if sel.VariantID != nil {
			variant = product.Variant(*sel.VariantID)
			if variant == nil {
				return nil, fmt.Errorf("%w: variant %d is not available for product %d", domain.ErrInvalidInput, *sel.VariantID, sel.ProductID)
			}
		}

		quantity := sel.Quantity
		if quantity < product.MinimumQuantity {
			// Mandatory products are clamped, not errored, so a missed form
			// field never blocks checkout.
			quantity = product.MinimumQuantity
		}
		desired = append(desired, desiredLine{product: product, variant: variant, quantity: quantity})
	}

	for _, p := range products {
		if p.Archived || !p.IsMandatory() || seen[p.ID] {
			continue
		}
		desired = append(desired, desiredLine{product: p, quantity: p.MinimumQuantity})
	}
	return desired, nil
}

// reconcileLines computes the order's next line set. Lines for products not
// mentioned in desired stay untouched; mentioned lines are updated in place
// keeping their price snapshot; new lines snapshot the current price.
func reconcileLines(order *domain.Order, desired []desiredLine) []*domain.OrderLine {
	mentioned := make(map[int64]bool, len(desired))
	for _, d := range desired {
		mentioned[d.product.ID] = true
	}

	var lines []*domain.OrderLine
	for _, l := range order.Lines {
		if !mentioned[l.ProductID] {
			copied := *l
			lines = append(lines, &copied)
		}
	}

	for _, d := range desired {
		if d.quantity == 0 {
			continue
		}
		var variantID *int64
		if d.variant != nil {
			id := d.variant.ID
			variantID = &id
		}
		if existing := order.Line(d.product.ID, variantID); existing != nil {
			copied := *existing
			copied.Quantity = d.quantity
			lines = append(lines, &copied)
			continue
		}
		price := d.product.Price
		vat := d.product.VatPercent
		name := d.product.Name
		if d.variant != nil {
			price = d.variant.Price
			vat = d.variant.VatPercent
			name = fmt.Sprintf("%s (%s)", d.product.Name, d.variant.Name)
		}
		lines = append(lines, &domain.OrderLine{
			OrderID:     order.ID,
			ProductID:   d.product.ID,
			VariantID:   variantID,
			ProductName: name,
			Quantity:    d.quantity,
			Price:       price,
			VatPercent:  vat,
		})
	}
	return lines
}

func (s *orderService) GetOrderByID(ctx context.Context, principal *domain.Principal, orgID int, id int64) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	order, err := s.orderRepo.GetByID(ctx, id, orgID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	reg, err := s.registrationRepo.GetByID(ctx, order.RegistrationID, orgID)
	if err != nil {
		return nil, fmt.Errorf("get registration: %w", err)
	}
	if err := s.access.CheckReadOrder(principal, order, reg); err != nil {
		return nil, err
	}
	return order, nil
}
