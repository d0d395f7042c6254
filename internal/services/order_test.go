package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventuras/internal/domain"
)

type orderFixture struct {
	regRepo   *fakeRegistrationRepo
	products  *fakeProductRepo
	orderRepo *fakeOrderRepo
	service   domain.OrderService
	reg       *domain.Registration
	ticket    *domain.Product // mandatory, min 1, price 100
	dinner    *domain.Product // optional, price 50, variant 21 "Large" price 75
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	ticket := &domain.Product{ID: 1, EventID: 10, Name: "Conference ticket", Price: 100, VatPercent: 25, MinimumQuantity: 1}
	dinner := &domain.Product{ID: 2, EventID: 10, Name: "Dinner", Price: 50, VatPercent: 15, Variants: []*domain.ProductVariant{
		{ID: 21, ProductID: 2, Name: "Large", Price: 75, VatPercent: 15},
		{ID: 22, ProductID: 2, Name: "Retired", Price: 60, VatPercent: 15, Archived: true},
	}}
	products := newFakeProductRepo(ticket, dinner)

	regRepo := newFakeRegistrationRepo()
	reg := &domain.Registration{EventID: 10, UserID: "u1", OrganizationID: 1, Status: domain.StatusDraft, Type: domain.TypeParticipant}
	require.NoError(t, regRepo.Create(context.Background(), reg))

	orderRepo := newFakeOrderRepo()
	svc := NewOrderService(regRepo, products, orderRepo, NewAccessControlService(), testLogger(), 2*time.Second)
	return &orderFixture{
		regRepo:   regRepo,
		products:  products,
		orderRepo: orderRepo,
		service:   svc,
		reg:       reg,
		ticket:    ticket,
		dinner:    dinner,
	}
}

func (f *orderFixture) reconcile(t *testing.T, principal *domain.Principal, selections ...domain.ProductSelection) *domain.Order {
	t.Helper()
	order, err := f.service.ReconcileProducts(context.Background(), principal, 1, f.reg.ID, selections)
	require.NoError(t, err)
	return order
}

func TestReconcileProducts_DesiredQuantityAboveMinimum(t *testing.T) {
	f := newOrderFixture(t)

	order := f.reconcile(t, userPrincipal("u1"), domain.ProductSelection{ProductID: 1, Quantity: 2})

	require.Len(t, order.Lines, 1)
	line := mustLine(order, 1)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, 100.0, line.Price)
	assert.Equal(t, 200.0, order.Total())
}

func TestReconcileProducts_InjectsAbsentMandatoryProduct(t *testing.T) {
	f := newOrderFixture(t)

	order := f.reconcile(t, userPrincipal("u1"), domain.ProductSelection{ProductID: 2, Quantity: 1})

	require.Len(t, order.Lines, 2)
	assert.Equal(t, 1, mustLine(order, 1).Quantity)
	assert.Equal(t, 1, mustLine(order, 2).Quantity)
}

func TestReconcileProducts_ClampsMandatoryBelowMinimum(t *testing.T) {
	f := newOrderFixture(t)

	// An explicit zero for a mandatory product is clamped up, never errored.
	order := f.reconcile(t, userPrincipal("u1"), domain.ProductSelection{ProductID: 1, Quantity: 0})

	require.Len(t, order.Lines, 1)
	assert.Equal(t, 1, mustLine(order, 1).Quantity)
}

func TestReconcileProducts_ZeroRemovesOptionalLine(t *testing.T) {
	f := newOrderFixture(t)

	order := f.reconcile(t, userPrincipal("u1"), domain.ProductSelection{ProductID: 2, Quantity: 3})
	require.NotNil(t, mustLine(order, 2))

	order = f.reconcile(t, userPrincipal("u1"), domain.ProductSelection{ProductID: 2, Quantity: 0})
	require.Len(t, order.Lines, 1)
	assert.Equal(t, int64(1), order.Lines[0].ProductID)
}

func TestReconcileProducts_UnmentionedLinesStayUntouched(t *testing.T) {
	f := newOrderFixture(t)

	f.reconcile(t, userPrincipal("u1"), domain.ProductSelection{ProductID: 2, Quantity: 2})

	// Empty selection still injects the mandatory ticket but must not touch
	// the dinner line.
	order := f.reconcile(t, userPrincipal("u1"))
	require.Len(t, order.Lines, 2)
	assert.Equal(t, 2, mustLine(order, 2).Quantity)
}

func TestReconcileProducts_PreservesPriceSnapshot(t *testing.T) {
	f := newOrderFixture(t)

	f.reconcile(t, userPrincipal("u1"), domain.ProductSelection{ProductID: 2, Quantity: 1})

	// A later catalog price change must not leak into the existing line.
	f.dinner.Price = 80

	order := f.reconcile(t, userPrincipal("u1"), domain.ProductSelection{ProductID: 2, Quantity: 5})
	line := mustLine(order, 2)
	assert.Equal(t, 5, line.Quantity)
	assert.Equal(t, 50.0, line.Price)
}

func TestReconcileProducts_Idempotent(t *testing.T) {
	f := newOrderFixture(t)
	selections := []domain.ProductSelection{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}

	first := f.reconcile(t, userPrincipal("u1"), selections...)
	second := f.reconcile(t, userPrincipal("u1"), selections...)

	require.Len(t, second.Lines, len(first.Lines))
	for _, l := range first.Lines {
		again := mustLine(second, l.ProductID)
		assert.Equal(t, l.Quantity, again.Quantity)
		assert.Equal(t, l.Price, again.Price)
	}
	assert.Equal(t, first.ID, second.ID)
}

func TestReconcileProducts_VariantSnapshotsVariantPrice(t *testing.T) {
	f := newOrderFixture(t)
	variantID := int64(21)

	order := f.reconcile(t, userPrincipal("u1"), domain.ProductSelection{ProductID: 2, VariantID: &variantID, Quantity: 1})

	line := mustLine(order, 2)
	require.NotNil(t, line.VariantID)
	assert.Equal(t, variantID, *line.VariantID)
	assert.Equal(t, 75.0, line.Price)
	assert.Equal(t, "Dinner (Large)", line.ProductName)
}

func TestReconcileProducts_InvalidSelections(t *testing.T) {
	unknownVariant := int64(99)
	archivedVariant := int64(22)
	tests := []struct {
		name       string
		selections []domain.ProductSelection
	}{
		{"negative quantity", []domain.ProductSelection{{ProductID: 1, Quantity: -1}}},
		{"unknown product", []domain.ProductSelection{{ProductID: 99, Quantity: 1}}},
		{"duplicate product", []domain.ProductSelection{{ProductID: 2, Quantity: 1}, {ProductID: 2, Quantity: 2}}},
		{"unknown variant", []domain.ProductSelection{{ProductID: 2, VariantID: &unknownVariant, Quantity: 1}}},
		{"archived variant", []domain.ProductSelection{{ProductID: 2, VariantID: &archivedVariant, Quantity: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture(t)
			_, err := f.service.ReconcileProducts(context.Background(), userPrincipal("u1"), 1, f.reg.ID, tt.selections)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestReconcileProducts_RejectsArchivedProduct(t *testing.T) {
	f := newOrderFixture(t)
	f.dinner.Archived = true

	_, err := f.service.ReconcileProducts(context.Background(), userPrincipal("u1"), 1, f.reg.ID, []domain.ProductSelection{
		{ProductID: 2, Quantity: 1},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReconcileProducts_RetriesOnceOnConflict(t *testing.T) {
	f := newOrderFixture(t)
	f.reconcile(t, userPrincipal("u1"), domain.ProductSelection{ProductID: 1, Quantity: 1})

	f.orderRepo.failReplaces = 1
	order := f.reconcile(t, userPrincipal("u1"), domain.ProductSelection{ProductID: 1, Quantity: 3})
	assert.Equal(t, 3, mustLine(order, 1).Quantity)
}

func TestReconcileProducts_SurfacesSecondConflict(t *testing.T) {
	f := newOrderFixture(t)
	f.reconcile(t, userPrincipal("u1"), domain.ProductSelection{ProductID: 1, Quantity: 1})

	f.orderRepo.failReplaces = 2
	_, err := f.service.ReconcileProducts(context.Background(), userPrincipal("u1"), 1, f.reg.ID, []domain.ProductSelection{
		{ProductID: 1, Quantity: 3},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestReconcileProducts_StrangerDenied(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.service.ReconcileProducts(context.Background(), userPrincipal("stranger"), 1, f.reg.ID, nil)
	assert.ErrorIs(t, err, domain.ErrNotAccessible)
}

func TestReconcileProducts_DeniedCallLeavesNoOrderBehind(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	_, err := f.service.ReconcileProducts(ctx, userPrincipal("stranger"), 1, f.reg.ID, nil)
	require.ErrorIs(t, err, domain.ErrNotAccessible)

	_, err = f.orderRepo.GetOpenByRegistrationID(ctx, f.reg.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "denied reconcile must not persist a draft order")
}

func TestReconcileProducts_OwnerDeniedAfterVerification(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	f.regRepo.byID[f.reg.ID].Status = domain.StatusVerified

	_, err := f.service.ReconcileProducts(ctx, userPrincipal("u1"), 1, f.reg.ID, []domain.ProductSelection{
		{ProductID: 1, Quantity: 1},
	})
	require.ErrorIs(t, err, domain.ErrNotAccessible)

	_, err = f.orderRepo.GetOpenByRegistrationID(ctx, f.reg.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "denied reconcile must not persist a draft order")
}

func TestGetOrderByID_Access(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order := f.reconcile(t, userPrincipal("u1"), domain.ProductSelection{ProductID: 1, Quantity: 1})

	got, err := f.service.GetOrderByID(ctx, userPrincipal("u1"), 1, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = f.service.GetOrderByID(ctx, userPrincipal("stranger"), 1, order.ID)
	assert.ErrorIs(t, err, domain.ErrNotAccessible)

	_, err = f.service.GetOrderByID(ctx, adminPrincipal(), 2, order.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
