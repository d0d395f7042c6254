package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"eventuras/internal/delivery/http/helpers"
	"eventuras/internal/domain"
)

type EventController struct {
	Logger     *slog.Logger
	Service    domain.EventService
	Statistics domain.StatisticsService
}

func NewEventController(logger *slog.Logger, svc domain.EventService, stats domain.StatisticsService) *EventController {
	return &EventController{
		Logger:     logger,
		Service:    svc,
		Statistics: stats,
	}
}

// CreateEventRequest is the request body for POST /v3/events.
type CreateEventRequest struct {
	Title       string     `json:"title"`
	Code        string     `json:"code"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Published   bool       `json:"published"`
	OnDemand    bool       `json:"onDemand"`
}

// Validate implements helpers.Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if c.Title == "" {
		errs = append(errs, "title is required")
	}
	if c.Code == "" {
		errs = append(errs, "code is required")
	}
	if c.StartDate != nil && c.EndDate != nil && c.EndDate.Before(*c.StartDate) {
		errs = append(errs, "endDate must not be before startDate")
	}
	return errs
}

// CreateEventSuccessResponse is the success envelope for POST /v3/events (201).
type CreateEventSuccessResponse struct {
	Data  *domain.EventInfo `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an event in the caller's organization. Requires an organization admin. The event code must be unique within the organization.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Eventuras-Org-Id header int true "Organization ID"
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.CreateEventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or org_not_specified"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (duplicate code)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /v3/events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	principal, orgID, ok := requestScope(w, r)
	if !ok {
		return
	}
	event := &domain.EventInfo{
		OrganizationID: orgID,
		Title:          req.Title,
		Code:           req.Code,
		Description:    req.Description,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Published:      req.Published,
		OnDemand:       req.OnDemand,
	}
	if err := c.Service.CreateEvent(r.Context(), principal, event); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetEventByIDResponse is the response body for GET /v3/events/{eventID}.
type GetEventByIDResponse struct {
	Event    *domain.EventInfo `json:"event"`
	Products []*domain.Product `json:"products"`
}

// GetEventByIDSuccessResponse is the success envelope for GET /v3/events/{eventID} (200).
type GetEventByIDSuccessResponse struct {
	Data  GetEventByIDResponse `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// GetEventByID godoc
// @Summary Get an event by ID
// @Description Returns the event and its non-archived products with variants. Events outside the caller's organization behave as missing.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param Eventuras-Org-Id header int true "Organization ID"
// @Param eventID path int true "Event ID"
// @Success 200 {object} controllers.GetEventByIDSuccessResponse "data contains event and products"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /v3/events/{eventID} [get]
func (c *EventController) GetEventByID(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	_, orgID, ok := requestScope(w, r)
	if !ok {
		return
	}
	event, products, err := c.Service.GetEventByID(r.Context(), orgID, eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if products == nil {
		products = []*domain.Product{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, GetEventByIDResponse{Event: event, Products: products})
}

// ListEventsSuccessResponse is the success envelope for GET /v3/events (200).
type ListEventsSuccessResponse struct {
	Data  helpers.Page      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListEvents godoc
// @Summary List events
// @Description Returns a paginated list of the organization's events, newest first.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param Eventuras-Org-Id header int true "Organization ID"
// @Param page query int false "Page number (1-based, default 1)"
// @Param count query int false "Page size (0-250, default 100)"
// @Success 200 {object} controllers.ListEventsSuccessResponse "data contains the page of events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /v3/events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := requestScope(w, r)
	if !ok {
		return
	}
	params := helpers.ParsePagination(r)
	events, total, err := c.Service.ListEvents(r.Context(), orgID, params)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if events == nil {
		events = []*domain.EventInfo{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.NewPage(params, total, events))
}

// AddProductRequest is the request body for POST /v3/events/{eventID}/products.
type AddProductRequest struct {
	Name            string                   `json:"name"`
	Price           float64                  `json:"price"`
	VatPercent      int                      `json:"vatPercent"`
	MinimumQuantity int                      `json:"minimumQuantity"`
	EnableQuantity  bool                     `json:"enableQuantity"`
	Visible         bool                     `json:"visible"`
	Variants        []AddProductVariantInput `json:"variants,omitempty"`
}

// AddProductVariantInput is one variant of a new product.
type AddProductVariantInput struct {
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	VatPercent int     `json:"vatPercent"`
}

// Validate implements helpers.Validator.
func (p AddProductRequest) Validate() []string {
	var errs []string
	if p.Name == "" {
		errs = append(errs, "name is required")
	}
	if p.Price < 0 {
		errs = append(errs, "price must not be negative")
	}
	if p.VatPercent < 0 || p.VatPercent > 100 {
		errs = append(errs, "vatPercent must be between 0 and 100")
	}
	if p.MinimumQuantity < 0 {
		errs = append(errs, "minimumQuantity must not be negative")
	}
	for _, v := range p.Variants {
		if v.Name == "" {
			errs = append(errs, "variant name is required")
		}
		if v.Price < 0 {
			errs = append(errs, "variant price must not be negative")
		}
	}
	return errs
}

// AddProductSuccessResponse is the success envelope for POST /v3/events/{eventID}/products (201).
type AddProductSuccessResponse struct {
	Data  *domain.Product   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// AddProduct godoc
// @Summary Add a product to an event
// @Description Creates a purchasable product (optionally with variants) on the event. A minimum quantity above zero makes the product mandatory on every order. Requires an organization admin.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Eventuras-Org-Id header int true "Organization ID"
// @Param eventID path int true "Event ID"
// @Param product body AddProductRequest true "Product data"
// @Success 201 {object} controllers.AddProductSuccessResponse "data contains the created product"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /v3/events/{eventID}/products [post]
func (c *EventController) AddProduct(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	var req AddProductRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	principal, orgID, ok := requestScope(w, r)
	if !ok {
		return
	}
	product := &domain.Product{
		EventID:         eventID,
		Name:            req.Name,
		Price:           req.Price,
		VatPercent:      req.VatPercent,
		MinimumQuantity: req.MinimumQuantity,
		EnableQuantity:  req.EnableQuantity,
		Visible:         req.Visible,
	}
	for _, v := range req.Variants {
		product.Variants = append(product.Variants, &domain.ProductVariant{
			Name:       v.Name,
			Price:      v.Price,
			VatPercent: v.VatPercent,
		})
	}
	if err := c.Service.AddProduct(r.Context(), principal, orgID, product); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, product)
}

// StatisticsSuccessResponse is the success envelope for GET /v3/events/{eventID}/statistics (200).
type StatisticsSuccessResponse struct {
	Data  *domain.RegistrationStatistics `json:"data"`
	Error *helpers.APIError              `json:"error"`
}

// GetRegistrationStatistics godoc
// @Summary Get registration statistics for an event
// @Description Returns registration counts grouped by status and by type. Every bucket is present, including zero counts. Requires an organization admin.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param Eventuras-Org-Id header int true "Organization ID"
// @Param eventID path int true "Event ID"
// @Success 200 {object} controllers.StatisticsSuccessResponse "data contains the grouped counts"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /v3/events/{eventID}/statistics [get]
func (c *EventController) GetRegistrationStatistics(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	principal, orgID, ok := requestScope(w, r)
	if !ok {
		return
	}
	stats, err := c.Statistics.GetRegistrationStatistics(r.Context(), principal, orgID, eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}
