package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventuras/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	productRepo    domain.ProductRepository
	access         domain.AccessControlService
	contextTimeout time.Duration
}

// NewEventService creates the administrative event service.
func NewEventService(
	eventRepo domain.EventRepository,
	productRepo domain.ProductRepository,
	access domain.AccessControlService,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		productRepo:    productRepo,
		access:         access,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, principal *domain.Principal, event *domain.EventInfo) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.access.RequireOrgAdmin(principal, event.OrganizationID); err != nil {
		return err
	}
	event.Title = strings.TrimSpace(event.Title)
	if event.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	event.Code = strings.ToLower(strings.TrimSpace(event.Code))
	if event.Code == "" {
		return fmt.Errorf("%w: code is required", domain.ErrInvalidInput)
	}
	if event.StartDate != nil && event.EndDate != nil && event.EndDate.Before(*event.StartDate) {
		return fmt.Errorf("%w: end date before start date", domain.ErrInvalidInput)
	}

	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return fmt.Errorf("%w: event code %q already in use", domain.ErrInvalidInput, event.Code)
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) GetEventByID(ctx context.Context, orgID int, eventID int64) (*domain.EventInfo, []*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID, orgID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get event: %w", err)
	}
	products, err := s.productRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, nil, fmt.Errorf("list products: %w", err)
	}
	if products == nil {
		products = []*domain.Product{}
	}
	return event, products, nil
}

func (s *eventService) AddProduct(ctx context.Context, principal *domain.Principal, orgID int, product *domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.access.RequireOrgAdmin(principal, orgID); err != nil {
		return err
	}
	if _, err := s.eventRepo.GetByID(ctx, product.EventID, orgID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" {
		return fmt.Errorf("%w: product name is required", domain.ErrInvalidInput)
	}
	if product.Price < 0 || product.MinimumQuantity < 0 {
		return fmt.Errorf("%w: price and minimum quantity must not be negative", domain.ErrInvalidInput)
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (s *eventService) ListEvents(ctx context.Context, orgID int, params domain.PaginationParams) ([]*domain.EventInfo, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.ListByOrganization(ctx, orgID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.EventInfo{}
	}
	return events, total, nil
}
