package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventuras/internal/domain"
)

func TestGetRegistrationStatistics(t *testing.T) {
	ctx := context.Background()
	eventRepo := newFakeEventRepo()
	event := &domain.EventInfo{OrganizationID: 1, Title: "Go Conference", Code: "goconf", Published: true}
	require.NoError(t, eventRepo.Create(ctx, event))

	regRepo := newFakeRegistrationRepo()
	seed := []struct {
		user   string
		status domain.RegistrationStatus
		typ    domain.RegistrationType
	}{
		{"u1", domain.StatusDraft, domain.TypeParticipant},
		{"u2", domain.StatusDraft, domain.TypeStudent},
		{"u3", domain.StatusVerified, domain.TypeParticipant},
		{"u4", domain.StatusCancelled, domain.TypeParticipant},
	}
	for _, s := range seed {
		reg := &domain.Registration{EventID: event.ID, UserID: s.user, OrganizationID: 1, Status: domain.StatusDraft, Type: s.typ}
		require.NoError(t, regRepo.Create(ctx, reg))
		regRepo.byID[reg.ID].Status = s.status
	}

	svc := NewStatisticsService(eventRepo, regRepo, NewAccessControlService(), 2*time.Second)

	stats, err := svc.GetRegistrationStatistics(ctx, adminPrincipal(), 1, event.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.ByStatus[domain.StatusDraft])
	assert.Equal(t, 1, stats.ByStatus[domain.StatusVerified])
	assert.Equal(t, 1, stats.ByStatus[domain.StatusCancelled])

	// Every bucket is present, zeros included.
	assert.Len(t, stats.ByStatus, len(domain.AllStatuses))
	assert.Len(t, stats.ByType, len(domain.AllTypes))
	assert.Equal(t, 0, stats.ByStatus[domain.StatusFinished])
	assert.Equal(t, 3, stats.ByType[domain.TypeParticipant])
	assert.Equal(t, 1, stats.ByType[domain.TypeStudent])
	assert.Equal(t, 0, stats.ByType[domain.TypeArtist])
}

func TestGetRegistrationStatistics_RequiresAdmin(t *testing.T) {
	eventRepo := newFakeEventRepo()
	event := &domain.EventInfo{OrganizationID: 1, Title: "Go Conference", Code: "goconf"}
	require.NoError(t, eventRepo.Create(context.Background(), event))

	svc := NewStatisticsService(eventRepo, newFakeRegistrationRepo(), NewAccessControlService(), 2*time.Second)

	_, err := svc.GetRegistrationStatistics(context.Background(), userPrincipal("u1"), 1, event.ID)
	assert.ErrorIs(t, err, domain.ErrNotAccessible)
}

func TestGetRegistrationStatistics_UnknownEvent(t *testing.T) {
	svc := NewStatisticsService(newFakeEventRepo(), newFakeRegistrationRepo(), NewAccessControlService(), 2*time.Second)

	_, err := svc.GetRegistrationStatistics(context.Background(), adminPrincipal(), 1, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
