package controllers

import (
	"log/slog"
	"net/http"

	"eventuras/internal/delivery/http/helpers"
	"eventuras/internal/domain"
)

type InvoiceController struct {
	Logger  *slog.Logger
	Service domain.InvoicingService
}

func NewInvoiceController(logger *slog.Logger, svc domain.InvoicingService) *InvoiceController {
	return &InvoiceController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateInvoiceRequest is the request body for POST /v3/invoices.
type CreateInvoiceRequest struct {
	OrderIDs          []int64 `json:"orderIds"`
	ExternalInvoiceID string  `json:"externalInvoiceId"`
	Note              string  `json:"note"`
}

// Validate implements helpers.Validator.
func (c CreateInvoiceRequest) Validate() []string {
	var errs []string
	if len(c.OrderIDs) == 0 {
		errs = append(errs, "orderIds must not be empty")
	}
	seen := make(map[int64]bool, len(c.OrderIDs))
	for _, id := range c.OrderIDs {
		if id < 1 {
			errs = append(errs, "orderIds must contain positive ids")
			break
		}
		if seen[id] {
			errs = append(errs, "orderIds must not contain duplicates")
			break
		}
		seen[id] = true
	}
	return errs
}

// CreateInvoiceSuccessResponse is the success envelope for POST /v3/invoices (200).
type CreateInvoiceSuccessResponse struct {
	Data  *domain.Invoice   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CreateInvoice godoc
// @Summary Create an invoice covering one or more orders
// @Description Aggregates the orders' lines into a single invoice and marks the orders invoiced, all in one transaction. An order already attached to an unpaid invoice fails the whole request. Requires an organization admin.
// @Tags invoices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Eventuras-Org-Id header int true "Organization ID"
// @Param invoice body CreateInvoiceRequest true "Orders to invoice"
// @Success 200 {object} controllers.CreateInvoiceSuccessResponse "data contains the created invoice"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or invoicing_conflict"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /v3/invoices [post]
func (c *InvoiceController) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req CreateInvoiceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	principal, orgID, ok := requestScope(w, r)
	if !ok {
		return
	}
	inv, err := c.Service.CreateInvoice(r.Context(), principal, orgID, req.OrderIDs, domain.InvoiceInfo{
		ExternalInvoiceID: req.ExternalInvoiceID,
		Note:              req.Note,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, inv)
}

// GetInvoiceSuccessResponse is the success envelope for GET /v3/invoices/{id} (200).
type GetInvoiceSuccessResponse struct {
	Data  *domain.Invoice   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetInvoiceByID godoc
// @Summary Get an invoice by ID
// @Description Returns the invoice with its aggregated lines and covered order ids. Requires an organization admin.
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param Eventuras-Org-Id header int true "Organization ID"
// @Param id path int true "Invoice ID"
// @Success 200 {object} controllers.GetInvoiceSuccessResponse "data contains the invoice"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /v3/invoices/{id} [get]
func (c *InvoiceController) GetInvoiceByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	principal, orgID, ok := requestScope(w, r)
	if !ok {
		return
	}
	inv, err := c.Service.GetInvoiceByID(r.Context(), principal, orgID, id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, inv)
}

// MarkPaidSuccessResponse is the success envelope for POST /v3/invoices/{id}/paid (200).
type MarkPaidSuccessResponse struct {
	Data  *domain.Invoice   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// MarkInvoicePaid godoc
// @Summary Mark an invoice as paid
// @Description Marks the invoice paid, which frees its orders for future invoicing. Requires an organization admin.
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param Eventuras-Org-Id header int true "Organization ID"
// @Param id path int true "Invoice ID"
// @Success 200 {object} controllers.MarkPaidSuccessResponse "data contains the updated invoice"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /v3/invoices/{id}/paid [post]
func (c *InvoiceController) MarkInvoicePaid(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	principal, orgID, ok := requestScope(w, r)
	if !ok {
		return
	}
	inv, err := c.Service.MarkInvoicePaid(r.Context(), principal, orgID, id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, inv)
}
