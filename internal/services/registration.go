package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventuras/internal/domain"
)

type registrationService struct {
	eventRepo        domain.EventRepository
	productRepo      domain.ProductRepository
	registrationRepo domain.RegistrationRepository
	orderRepo        domain.OrderRepository
	userRepo         domain.UserRepository
	access           domain.AccessControlService
	notifications    domain.NotificationService
	logger           *slog.Logger
	contextTimeout   time.Duration
}

// NewRegistrationService creates a RegistrationService with the given
// repositories and collaborators.
func NewRegistrationService(
	eventRepo domain.EventRepository,
	productRepo domain.ProductRepository,
	registrationRepo domain.RegistrationRepository,
	orderRepo domain.OrderRepository,
	userRepo domain.UserRepository,
	access domain.AccessControlService,
	notifications domain.NotificationService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		eventRepo:        eventRepo,
		productRepo:      productRepo,
		registrationRepo: registrationRepo,
		orderRepo:        orderRepo,
		userRepo:         userRepo,
		access:           access,
		notifications:    notifications,
		logger:           logger,
		contextTimeout:   timeout,
	}
}

func (s *registrationService) CreateRegistration(ctx context.Context, principal *domain.Principal, orgID int, userID string, eventID int64, typ domain.RegistrationType, info domain.ParticipantInfo) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if principal == nil {
		return nil, domain.ErrNotAccessible
	}
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: unknown registration type %q", domain.ErrInvalidInput, typ)
	}

	// Registering on behalf of another user is an admin operation; the
	// target must be an existing account.
	if userID == "" {
		userID = principal.UserID
	} else if userID != principal.UserID {
		if err := s.access.RequireOrgAdmin(principal, orgID); err != nil {
			return nil, err
		}
		if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return nil, domain.ErrUserNotFound
			}
			return nil, fmt.Errorf("get user: %w", err)
		}
	}

	event, err := s.eventRepo.GetByID(ctx, eventID, orgID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !event.Published || event.Archived {
		return nil, fmt.Errorf("%w: event is not open for registration", domain.ErrInvalidInput)
	}

	// Pre-check the one-active-registration invariant; the partial unique
	// index on the registrations table closes the remaining race.
	if _, err := s.registrationRepo.GetActiveByEventAndUser(ctx, eventID, userID); err == nil {
		return nil, domain.ErrDuplicateRegistration
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get registration: %w", err)
	}

	now := time.Now()
	reg := &domain.Registration{
		EventID:          eventID,
		UserID:           userID,
		OrganizationID:   orgID,
		Status:           domain.StatusDraft,
		Type:             typ,
		ParticipantName:  strings.TrimSpace(info.Name),
		ParticipantEmail: strings.TrimSpace(strings.ToLower(info.Email)),
		ParticipantPhone: strings.TrimSpace(info.Phone),
		Notes:            info.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		if errors.Is(err, domain.ErrDuplicateRegistration) {
			return nil, domain.ErrDuplicateRegistration
		}
		return nil, fmt.Errorf("create registration: %w", err)
	}

	if _, err := s.openDraftOrder(ctx, reg); err != nil {
		return nil, err
	}

	// Notification runs strictly after the committed write; a send failure
	// never affects the registration.
	s.sendConfirmation(context.WithoutCancel(ctx), reg, event)

	return reg, nil
}

// openDraftOrder creates a new draft order for the registration with all
// mandatory products pre-attached at their minimum quantity.
func (s *registrationService) openDraftOrder(ctx context.Context, reg *domain.Registration) (*domain.Order, error) {
	products, err := s.productRepo.ListByEventID(ctx, reg.EventID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	now := time.Now()
	order := &domain.Order{
		RegistrationID: reg.ID,
		OrganizationID: reg.OrganizationID,
		Status:         domain.OrderDraft,
		CustomerName:   reg.ParticipantName,
		CustomerEmail:  reg.ParticipantEmail,
		Lines:          mandatoryOrderLines(products),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	if err := s.orderRepo.AppendLog(ctx, order.ID, fmt.Sprintf("draft order opened with %d mandatory line(s)", len(order.Lines))); err != nil {
		s.logger.WarnContext(ctx, "append order log failed", "order_id", order.ID, "err", err)
	}
	return order, nil
}

// mandatoryOrderLines builds the initial lines for every mandatory product,
// capturing the current price and VAT as the snapshot.
func mandatoryOrderLines(products []*domain.Product) []*domain.OrderLine {
	var lines []*domain.OrderLine
	for _, p := range products {
		if p.Archived || !p.IsMandatory() {
			continue
		}
		lines = append(lines, &domain.OrderLine{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    p.MinimumQuantity,
			Price:       p.Price,
			VatPercent:  p.VatPercent,
		})
	}
	return lines
}

func (s *registrationService) sendConfirmation(ctx context.Context, reg *domain.Registration, event *domain.EventInfo) {
	if reg.ParticipantEmail == "" {
		return
	}
	msg := &domain.EmailMessage{
		To:      reg.ParticipantEmail,
		Subject: fmt.Sprintf("Registration received: %s", event.Title),
		Text:    fmt.Sprintf("Hi %s,\n\nwe have received your registration for %s.\n", reg.ParticipantName, event.Title),
	}
	if err := s.notifications.SendEmail(ctx, reg.OrganizationID, msg); err != nil {
		s.logger.WarnContext(ctx, "registration confirmation email failed",
			"registration_id", reg.ID, "org_id", reg.OrganizationID, "err", err)
	}
}

func (s *registrationService) GetRegistrationByID(ctx context.Context, principal *domain.Principal, orgID int, id int64) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.registrationRepo.GetByID(ctx, id, orgID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	if err := s.access.CheckReadRegistration(principal, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

func (s *registrationService) UpdateRegistrationStatus(ctx context.Context, principal *domain.Principal, orgID int, id int64, newStatus domain.RegistrationStatus) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, newStatus)
	}

	reg, err := s.registrationRepo.GetByID(ctx, id, orgID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}

	if newStatus.RequiresAdmin() {
		if err := s.access.RequireOrgAdmin(principal, reg.OrganizationID); err != nil {
			return nil, err
		}
	} else if err := s.access.CheckUpdateRegistration(principal, reg); err != nil {
		return nil, err
	}

	applied, err := s.applyTransition(ctx, reg, newStatus)
	if err == nil {
		return applied, nil
	}
	if !errors.Is(err, domain.ErrConflict) {
		return nil, err
	}

	// Lost the optimistic concurrency race: reload once, re-validate the
	// transition against the fresh status, and retry. A second conflict is
	// surfaced to the caller.
	reg, rerr := s.registrationRepo.GetByID(ctx, id, orgID)
	if rerr != nil {
		return nil, fmt.Errorf("reload registration after conflict: %w", rerr)
	}
	return s.applyTransition(ctx, reg, newStatus)
}

func (s *registrationService) applyTransition(ctx context.Context, reg *domain.Registration, newStatus domain.RegistrationStatus) (*domain.Registration, error) {
	if !reg.Status.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, reg.Status, newStatus)
	}
	updated := *reg
	updated.Status = newStatus
	updated.UpdatedAt = time.Now()
	if err := s.registrationRepo.Update(ctx, &updated); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("update registration: %w", err)
	}
	return &updated, nil
}

func (s *registrationService) UpdateParticipantInfo(ctx context.Context, principal *domain.Principal, orgID int, id int64, name, email, phone, notes *string) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.registrationRepo.GetByID(ctx, id, orgID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	if err := s.access.CheckUpdateRegistration(principal, reg); err != nil {
		return nil, err
	}
	if email != nil {
		addr := strings.TrimSpace(strings.ToLower(*email))
		if !domain.ValidEmail(addr) {
			return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
		}
		email = &addr
	}

	applied, err := s.applyParticipantInfo(ctx, reg, name, email, phone, notes)
	if err == nil {
		return applied, nil
	}
	if !errors.Is(err, domain.ErrConflict) {
		return nil, err
	}

	reg, rerr := s.registrationRepo.GetByID(ctx, id, orgID)
	if rerr != nil {
		return nil, fmt.Errorf("reload registration after conflict: %w", rerr)
	}
	return s.applyParticipantInfo(ctx, reg, name, email, phone, notes)
}

func (s *registrationService) applyParticipantInfo(ctx context.Context, reg *domain.Registration, name, email, phone, notes *string) (*domain.Registration, error) {
	updated := *reg
	if name != nil {
		updated.ParticipantName = strings.TrimSpace(*name)
	}
	if email != nil {
		updated.ParticipantEmail = *email
	}
	if phone != nil {
		updated.ParticipantPhone = strings.TrimSpace(*phone)
	}
	if notes != nil {
		updated.Notes = *notes
	}
	updated.UpdatedAt = time.Now()
	if err := s.registrationRepo.Update(ctx, &updated); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("update registration: %w", err)
	}
	return &updated, nil
}

func (s *registrationService) CreateDraftFromCancelledOrder(ctx context.Context, principal *domain.Principal, orgID int, orderID int64) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	order, err := s.orderRepo.GetByID(ctx, orderID, orgID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := s.access.RequireOrgAdmin(principal, order.OrganizationID); err != nil {
		return nil, err
	}
	if order.Status != domain.OrderCancelled {
		return nil, fmt.Errorf("%w: order %d is not cancelled", domain.ErrInvalidInput, orderID)
	}

	reg, err := s.registrationRepo.GetByID(ctx, order.RegistrationID, orgID)
	if err != nil {
		return nil, fmt.Errorf("get registration: %w", err)
	}

	// Re-open the cancelled registration as a draft. The cancelled order
	// itself stays untouched; a fresh draft order is created instead.
	if reg.Status == domain.StatusCancelled {
		reopened := *reg
		reopened.Status = domain.StatusDraft
		reopened.UpdatedAt = time.Now()
		if err := s.registrationRepo.Update(ctx, &reopened); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return nil, domain.ErrConflict
			}
			return nil, fmt.Errorf("reopen registration: %w", err)
		}
		reg = &reopened
	}

	if existing, err := s.orderRepo.GetOpenByRegistrationID(ctx, reg.ID); err == nil {
		return existing, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get open order: %w", err)
	}

	fresh, err := s.openDraftOrder(ctx, reg)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.AppendLog(ctx, fresh.ID, fmt.Sprintf("draft created from cancelled order %d", orderID)); err != nil {
		s.logger.WarnContext(ctx, "append order log failed", "order_id", fresh.ID, "err", err)
	}
	return fresh, nil
}

func (s *registrationService) ListRegistrationsForEvent(ctx context.Context, principal *domain.Principal, orgID int, eventID int64, params domain.PaginationParams) ([]*domain.Registration, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.access.RequireOrgAdmin(principal, orgID); err != nil {
		return nil, 0, err
	}
	if _, err := s.eventRepo.GetByID(ctx, eventID, orgID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, domain.ErrNotFound
		}
		return nil, 0, fmt.Errorf("get event: %w", err)
	}
	regs, total, err := s.registrationRepo.ListByEventID(ctx, eventID, orgID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list registrations: %w", err)
	}
	if regs == nil {
		regs = []*domain.Registration{}
	}
	return regs, total, nil
}
