package controllers

import (
	"log/slog"
	"net/http"

	"eventuras/internal/delivery/http/helpers"
	"eventuras/internal/domain"
)

type OrderController struct {
	Logger  *slog.Logger
	Service domain.OrderService
}

func NewOrderController(logger *slog.Logger, svc domain.OrderService) *OrderController {
	return &OrderController{
		Logger:  logger,
		Service: svc,
	}
}

// ProductSelectionRequest is one desired product/variant quantity.
type ProductSelectionRequest struct {
	ProductID int64  `json:"productId"`
	VariantID *int64 `json:"variantId,omitempty"`
	Quantity  int    `json:"quantity"`
}

// ReconcileProductsRequest is the request body for POST /v3/registrations/{id}/products.
// Products not mentioned in lines keep their current order lines.
type ReconcileProductsRequest struct {
	Lines []ProductSelectionRequest `json:"lines"`
}

// Validate implements helpers.Validator. Quantity semantics (zero removes,
// mandatory minimums clamp) belong to the service; only structural rules live
// here.
func (req ReconcileProductsRequest) Validate() []string {
	var errs []string
	seen := make(map[int64]bool, len(req.Lines))
	for _, p := range req.Lines {
		if p.ProductID < 1 {
			errs = append(errs, "productId is required on every selection")
			continue
		}
		if p.Quantity < 0 {
			errs = append(errs, "quantity must not be negative")
		}
		if seen[p.ProductID] {
			errs = append(errs, "duplicate selection for the same product")
		}
		seen[p.ProductID] = true
	}
	return errs
}

// ReconcileProductsSuccessResponse is the success envelope for POST /v3/registrations/{id}/products (200).
type ReconcileProductsSuccessResponse struct {
	Data  *domain.Order     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ReconcileProducts godoc
// @Summary Reconcile a registration's products
// @Description Applies the desired product quantities onto the registration's open draft order, creating one if needed. Mandatory products are clamped up to their minimum, a zero quantity removes an optional line, and unmentioned products are left untouched. Idempotent.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Eventuras-Org-Id header int true "Organization ID"
// @Param id path int true "Registration ID"
// @Param body body ReconcileProductsRequest true "Desired product quantities"
// @Success 200 {object} controllers.ReconcileProductsSuccessResponse "data contains the reconciled order"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /v3/registrations/{id}/products [post]
func (c *OrderController) ReconcileProducts(w http.ResponseWriter, r *http.Request) {
	registrationID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req ReconcileProductsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	principal, orgID, ok := requestScope(w, r)
	if !ok {
		return
	}
	selections := make([]domain.ProductSelection, 0, len(req.Lines))
	for _, p := range req.Lines {
		selections = append(selections, domain.ProductSelection{
			ProductID: p.ProductID,
			VariantID: p.VariantID,
			Quantity:  p.Quantity,
		})
	}
	order, err := c.Service.ReconcileProducts(r.Context(), principal, orgID, registrationID, selections)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, order)
}

// GetOrderSuccessResponse is the success envelope for GET /v3/orders/{id} (200).
type GetOrderSuccessResponse struct {
	Data  *domain.Order     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetOrderByID godoc
// @Summary Get an order by ID
// @Description Returns one order with its lines. Owners see orders of their own registrations; organization admins see any in their organization.
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param Eventuras-Org-Id header int true "Organization ID"
// @Param id path int true "Order ID"
// @Success 200 {object} controllers.GetOrderSuccessResponse "data contains the order"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /v3/orders/{id} [get]
func (c *OrderController) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	principal, orgID, ok := requestScope(w, r)
	if !ok {
		return
	}
	order, err := c.Service.GetOrderByID(r.Context(), principal, orgID, id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, order)
}
