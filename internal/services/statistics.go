package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventuras/internal/domain"
)

type statisticsService struct {
	eventRepo        domain.EventRepository
	registrationRepo domain.RegistrationRepository
	access           domain.AccessControlService
	contextTimeout   time.Duration
}

// NewStatisticsService creates the registration statistics service.
func NewStatisticsService(
	eventRepo domain.EventRepository,
	registrationRepo domain.RegistrationRepository,
	access domain.AccessControlService,
	timeout time.Duration,
) domain.StatisticsService {
	return &statisticsService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		access:           access,
		contextTimeout:   timeout,
	}
}

func (s *statisticsService) GetRegistrationStatistics(ctx context.Context, principal *domain.Principal, orgID int, eventID int64) (*domain.RegistrationStatistics, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.access.RequireOrgAdmin(principal, orgID); err != nil {
		return nil, err
	}
	if _, err := s.eventRepo.GetByID(ctx, eventID, orgID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	byStatus, byType, err := s.registrationRepo.CountByEventID(ctx, eventID, orgID)
	if err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}

	// Every bucket is reported, zeros included.
	stats := &domain.RegistrationStatistics{
		ByStatus: make(map[domain.RegistrationStatus]int, len(domain.AllStatuses)),
		ByType:   make(map[domain.RegistrationType]int, len(domain.AllTypes)),
	}
	for _, st := range domain.AllStatuses {
		stats.ByStatus[st] = byStatus[st]
	}
	for _, t := range domain.AllTypes {
		stats.ByType[t] = byType[t]
	}
	return stats, nil
}
