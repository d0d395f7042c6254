package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventuras/internal/delivery/http/helpers"
	"eventuras/internal/domain"
)

// fakeOrderService implements domain.OrderService for handler tests.
type fakeOrderService struct {
	order          *domain.Order
	err            error
	lastSelections []domain.ProductSelection
}

func (f *fakeOrderService) ReconcileProducts(ctx context.Context, principal *domain.Principal, orgID int, registrationID int64, selections []domain.ProductSelection) (*domain.Order, error) {
	f.lastSelections = selections
	if f.err != nil {
		return nil, f.err
	}
	return f.order, nil
}

func (f *fakeOrderService) GetOrderByID(ctx context.Context, principal *domain.Principal, orgID int, id int64) (*domain.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.order, nil
}

func TestOrderController_ReconcileProducts(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		fakeErr      error
		wantStatus   int
		wantBodyCode string
	}{
		{
			name:       "success",
			body:       `{"lines":[{"productId":1,"quantity":2},{"productId":2,"variantId":21,"quantity":1}]}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "empty selection is a no-op",
			body:       `{"lines":[]}`,
			wantStatus: http.StatusOK,
		},
		{
			name:         "negative quantity",
			body:         `{"lines":[{"productId":1,"quantity":-1}]}`,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "duplicate product",
			body:         `{"lines":[{"productId":1,"quantity":1},{"productId":1,"quantity":2}]}`,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "unknown product",
			body:         `{"lines":[{"productId":99,"quantity":1}]}`,
			fakeErr:      domain.ErrInvalidInput,
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "stranger denied",
			body:         `{"lines":[{"productId":1,"quantity":1}]}`,
			fakeErr:      domain.ErrNotAccessible,
			wantStatus:   http.StatusForbidden,
			wantBodyCode: helpers.ErrCodeForbidden,
		},
		{
			name:         "lost race twice",
			body:         `{"lines":[{"productId":1,"quantity":1}]}`,
			fakeErr:      domain.ErrConflict,
			wantStatus:   http.StatusConflict,
			wantBodyCode: helpers.ErrCodeConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeOrderService{
				order: &domain.Order{ID: 3, RegistrationID: 5, Status: domain.OrderDraft},
				err:   tt.fakeErr,
			}
			ctrl := NewOrderController(testControllerLogger(), fake)

			req := scopedRequest(http.MethodPost, "http://test/v3/registrations/5/products", tt.body)
			req.SetPathValue("id", "5")
			rr := httptest.NewRecorder()

			ctrl.ReconcileProducts(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			envelope := decodeEnvelope(t, rr)
			if tt.wantBodyCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			} else {
				require.Nil(t, envelope.Error)
			}
		})
	}
}

func TestOrderController_ReconcileProducts_PassesVariant(t *testing.T) {
	fake := &fakeOrderService{order: &domain.Order{ID: 3, Status: domain.OrderDraft}}
	ctrl := NewOrderController(testControllerLogger(), fake)

	req := scopedRequest(http.MethodPost, "http://test/v3/registrations/5/products",
		`{"lines":[{"productId":2,"variantId":21,"quantity":1}]}`)
	req.SetPathValue("id", "5")
	rr := httptest.NewRecorder()

	ctrl.ReconcileProducts(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, fake.lastSelections, 1)
	require.NotNil(t, fake.lastSelections[0].VariantID)
	assert.Equal(t, int64(21), *fake.lastSelections[0].VariantID)
}

func TestOrderController_GetOrderByID_NotFound(t *testing.T) {
	ctrl := NewOrderController(testControllerLogger(), &fakeOrderService{err: domain.ErrNotFound})

	req := scopedRequest(http.MethodGet, "http://test/v3/orders/9", "")
	req.SetPathValue("id", "9")
	rr := httptest.NewRecorder()

	ctrl.GetOrderByID(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	envelope := decodeEnvelope(t, rr)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, helpers.ErrCodeNotFound, envelope.Error.Code)
}
