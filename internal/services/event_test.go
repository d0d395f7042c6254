package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventuras/internal/domain"
)

func newEventFixture() (domain.EventService, *fakeEventRepo, *fakeProductRepo) {
	events := newFakeEventRepo()
	products := newFakeProductRepo()
	svc := NewEventService(events, products, NewAccessControlService(), time.Second)
	return svc, events, products
}

func TestCreateEvent(t *testing.T) {
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)
	before := start.Add(-time.Hour)

	tests := []struct {
		name      string
		event     domain.EventInfo
		principal *domain.Principal
		wantErr   error
	}{
		{
			name:      "admin creates event",
			event:     domain.EventInfo{OrganizationID: 1, Title: "  Go Conference  ", Code: " GoConf ", StartDate: &start, EndDate: &end},
			principal: adminPrincipal(),
		},
		{
			name:      "title required",
			event:     domain.EventInfo{OrganizationID: 1, Title: "   ", Code: "goconf"},
			principal: adminPrincipal(),
			wantErr:   domain.ErrInvalidInput,
		},
		{
			name:      "code required",
			event:     domain.EventInfo{OrganizationID: 1, Title: "Go Conference"},
			principal: adminPrincipal(),
			wantErr:   domain.ErrInvalidInput,
		},
		{
			name:      "end before start",
			event:     domain.EventInfo{OrganizationID: 1, Title: "Go Conference", Code: "goconf", StartDate: &start, EndDate: &before},
			principal: adminPrincipal(),
			wantErr:   domain.ErrInvalidInput,
		},
		{
			name:      "non-admin denied",
			event:     domain.EventInfo{OrganizationID: 1, Title: "Go Conference", Code: "goconf"},
			principal: userPrincipal("u1"),
			wantErr:   domain.ErrNotAccessible,
		},
		{
			name:      "admin of another org denied",
			event:     domain.EventInfo{OrganizationID: 2, Title: "Go Conference", Code: "goconf"},
			principal: adminPrincipal(),
			wantErr:   domain.ErrNotAccessible,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, events, _ := newEventFixture()

			err := svc.CreateEvent(context.Background(), tt.principal, &tt.event)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			stored := events.byID[tt.event.ID]
			require.NotNil(t, stored)
			assert.Equal(t, "Go Conference", stored.Title)
			assert.Equal(t, "goconf", stored.Code, "code is lowercased")
		})
	}
}

func TestAddProduct(t *testing.T) {
	svc, events, products := newEventFixture()
	ctx := context.Background()

	event := &domain.EventInfo{OrganizationID: 1, Title: "Go Conference", Code: "goconf"}
	require.NoError(t, events.Create(ctx, event))

	product := &domain.Product{EventID: event.ID, Name: " Conference ticket ", Price: 100, VatPercent: 25, MinimumQuantity: 1}
	require.NoError(t, svc.AddProduct(ctx, adminPrincipal(), 1, product))
	assert.Equal(t, "Conference ticket", product.Name)

	listed, err := products.ListByEventID(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	t.Run("negative price", func(t *testing.T) {
		bad := &domain.Product{EventID: event.ID, Name: "Dinner", Price: -1}
		assert.ErrorIs(t, svc.AddProduct(ctx, adminPrincipal(), 1, bad), domain.ErrInvalidInput)
	})

	t.Run("unknown event", func(t *testing.T) {
		bad := &domain.Product{EventID: 999, Name: "Dinner", Price: 50}
		assert.ErrorIs(t, svc.AddProduct(ctx, adminPrincipal(), 1, bad), domain.ErrNotFound)
	})

	t.Run("non-admin denied", func(t *testing.T) {
		bad := &domain.Product{EventID: event.ID, Name: "Dinner", Price: 50}
		assert.ErrorIs(t, svc.AddProduct(ctx, userPrincipal("u1"), 1, bad), domain.ErrNotAccessible)
	})
}

func TestGetEventByID_ReturnsProducts(t *testing.T) {
	svc, events, products := newEventFixture()
	ctx := context.Background()

	event := &domain.EventInfo{OrganizationID: 1, Title: "Go Conference", Code: "goconf"}
	require.NoError(t, events.Create(ctx, event))
	require.NoError(t, products.Create(ctx, &domain.Product{EventID: event.ID, Name: "Ticket", Price: 100}))

	got, prods, err := svc.GetEventByID(ctx, 1, event.ID)
	require.NoError(t, err)
	assert.Equal(t, event.ID, got.ID)
	require.Len(t, prods, 1)

	_, _, err = svc.GetEventByID(ctx, 2, event.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "other tenant cannot see the event")
}
