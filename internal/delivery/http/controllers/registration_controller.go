package controllers

import (
	"log/slog"
	"net/http"

	"eventuras/internal/delivery/http/helpers"
	"eventuras/internal/domain"
)

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateRegistrationRequest is the request body for POST /v3/registrations.
// UserID is optional and defaults to the authenticated user; naming another
// user requires an organization admin.
type CreateRegistrationRequest struct {
	UserID  string `json:"userId"`
	EventID int64  `json:"eventId"`
	Type    string `json:"type"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Notes   string `json:"notes"`
}

// Validate implements helpers.Validator.
func (c CreateRegistrationRequest) Validate() []string {
	var errs []string
	if c.EventID < 1 {
		errs = append(errs, "eventId is required")
	}
	if c.Type != "" && !domain.RegistrationType(c.Type).Valid() {
		errs = append(errs, "type must be one of participant, student, staff, lecturer, artist")
	}
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	if c.Email == "" {
		errs = append(errs, "email is required")
	} else if !domain.ValidEmail(c.Email) {
		errs = append(errs, "email must be a valid email address")
	}
	return errs
}

// CreateRegistrationSuccessResponse is the success envelope for POST /v3/registrations (201).
type CreateRegistrationSuccessResponse struct {
	Data  *domain.Registration `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// CreateRegistration godoc
// @Summary Register for an event
// @Description Registers a user for a published event and opens a draft order with mandatory products pre-attached. Type defaults to participant when omitted; userId defaults to the authenticated user, and naming another user requires an organization admin.
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Eventuras-Org-Id header int true "Organization ID"
// @Param registration body CreateRegistrationRequest true "Registration data"
// @Success 201 {object} controllers.CreateRegistrationSuccessResponse "data contains the created registration"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or org_not_specified"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: duplicate"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /v3/registrations [post]
func (c *RegistrationController) CreateRegistration(w http.ResponseWriter, r *http.Request) {
	var req CreateRegistrationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	principal, orgID, ok := requestScope(w, r)
	if !ok {
		return
	}
	typ := domain.RegistrationType(req.Type)
	if req.Type == "" {
		typ = domain.TypeParticipant
	}
	reg, err := c.Service.CreateRegistration(r.Context(), principal, orgID, req.UserID, req.EventID, typ, domain.ParticipantInfo{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Notes: req.Notes,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, reg)
}

// GetRegistrationSuccessResponse is the success envelope for GET /v3/registrations/{id} (200).
type GetRegistrationSuccessResponse struct {
	Data  *domain.Registration `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// GetRegistrationByID godoc
// @Summary Get a registration by ID
// @Description Returns one registration. Owners see their own; organization admins see any in their organization.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param Eventuras-Org-Id header int true "Organization ID"
// @Param id path int true "Registration ID"
// @Success 200 {object} controllers.GetRegistrationSuccessResponse "data contains the registration"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /v3/registrations/{id} [get]
func (c *RegistrationController) GetRegistrationByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	principal, orgID, ok := requestScope(w, r)
	if !ok {
		return
	}
	reg, err := c.Service.GetRegistrationByID(r.Context(), principal, orgID, id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}

// UpdateRegistrationRequest is the request body for PUT /v3/registrations/{id}.
// All fields are optional; omitted fields are unchanged. A status value
// applies one edge of the status graph after any participant field updates.
type UpdateRegistrationRequest struct {
	Status *string `json:"status,omitempty"`
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

// Validate implements helpers.Validator.
func (u UpdateRegistrationRequest) Validate() []string {
	var errs []string
	if u.Status == nil && u.Name == nil && u.Email == nil && u.Phone == nil && u.Notes == nil {
		errs = append(errs, "at least one field must be provided")
	}
	if u.Status != nil && !domain.RegistrationStatus(*u.Status).Valid() {
		errs = append(errs, "status must be a known registration status")
	}
	if u.Email != nil && !domain.ValidEmail(*u.Email) {
		errs = append(errs, "email must be a valid email address")
	}
	return errs
}

// UpdateRegistrationSuccessResponse is the success envelope for PUT /v3/registrations/{id} (200).
type UpdateRegistrationSuccessResponse struct {
	Data  *domain.Registration `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// UpdateRegistration godoc
// @Summary Update a registration
// @Description Updates participant contact fields and/or applies one edge of the status graph. Admin-only status targets (verified, attended, notAttended, finished, waitingList) require an organization admin; the owning user may cancel their own draft and edit contact fields while the registration is draft or on the waiting list.
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Eventuras-Org-Id header int true "Organization ID"
// @Param id path int true "Registration ID"
// @Param body body UpdateRegistrationRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.UpdateRegistrationSuccessResponse "data contains the updated registration"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: invalid_transition or conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /v3/registrations/{id} [put]
func (c *RegistrationController) UpdateRegistration(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req UpdateRegistrationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	principal, orgID, ok := requestScope(w, r)
	if !ok {
		return
	}

	var reg *domain.Registration
	var err error
	if req.Name != nil || req.Email != nil || req.Phone != nil || req.Notes != nil {
		reg, err = c.Service.UpdateParticipantInfo(r.Context(), principal, orgID, id, req.Name, req.Email, req.Phone, req.Notes)
		if err != nil {
			helpers.WriteServiceError(w, r, c.Logger, err)
			return
		}
	}
	if req.Status != nil {
		reg, err = c.Service.UpdateRegistrationStatus(r.Context(), principal, orgID, id, domain.RegistrationStatus(*req.Status))
		if err != nil {
			helpers.WriteServiceError(w, r, c.Logger, err)
			return
		}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}

// ListRegistrationsSuccessResponse is the success envelope for GET /v3/events/{eventID}/registrations (200).
type ListRegistrationsSuccessResponse struct {
	Data  helpers.Page      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListRegistrationsForEvent godoc
// @Summary List registrations for an event
// @Description Returns a paginated list of the event's registrations. Requires an organization admin.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param Eventuras-Org-Id header int true "Organization ID"
// @Param eventID path int true "Event ID"
// @Param page query int false "Page number (1-based, default 1)"
// @Param count query int false "Page size (0-250, default 100)"
// @Success 200 {object} controllers.ListRegistrationsSuccessResponse "data contains the page of registrations"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /v3/events/{eventID}/registrations [get]
func (c *RegistrationController) ListRegistrationsForEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	principal, orgID, ok := requestScope(w, r)
	if !ok {
		return
	}
	params := helpers.ParsePagination(r)
	regs, total, err := c.Service.ListRegistrationsForEvent(r.Context(), principal, orgID, eventID, params)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if regs == nil {
		regs = []*domain.Registration{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.NewPage(params, total, regs))
}

// DraftFromCancelledSuccessResponse is the success envelope for POST /v3/orders/{id}/draft-registration (201).
type DraftFromCancelledSuccessResponse struct {
	Data  *domain.Order     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CreateDraftFromCancelledOrder godoc
// @Summary Reopen a cancelled registration from one of its orders
// @Description Admin recovery path: given a cancelled order of a cancelled registration, flips the registration back to draft and opens a fresh draft order. The cancelled order is not resurrected.
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param Eventuras-Org-Id header int true "Organization ID"
// @Param id path int true "Order ID"
// @Success 201 {object} controllers.DraftFromCancelledSuccessResponse "data contains the new draft order"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /v3/orders/{id}/draft-registration [post]
func (c *RegistrationController) CreateDraftFromCancelledOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	principal, orgID, ok := requestScope(w, r)
	if !ok {
		return
	}
	order, err := c.Service.CreateDraftFromCancelledOrder(r.Context(), principal, orgID, id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, order)
}
