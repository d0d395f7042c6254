package domain

import (
	"context"
	"time"
)

// RegistrationStatus is the lifecycle state of a registration.
// Transitions follow an explicit directed graph; see CanTransitionTo.
type RegistrationStatus string

const (
	StatusDraft       RegistrationStatus = "draft"
	StatusVerified    RegistrationStatus = "verified"
	StatusCancelled   RegistrationStatus = "cancelled"
	StatusWaitingList RegistrationStatus = "waitingList"
	StatusAttended    RegistrationStatus = "attended"
	StatusNotAttended RegistrationStatus = "notAttended"
	StatusFinished    RegistrationStatus = "finished"
)

// AllStatuses lists every registration status. Statistics buckets must cover
// all of them, including empty ones.
var AllStatuses = []RegistrationStatus{
	StatusDraft,
	StatusVerified,
	StatusCancelled,
	StatusWaitingList,
	StatusAttended,
	StatusNotAttended,
	StatusFinished,
}

// allowedTransitions is the explicit transition table. Anything not listed
// here is rejected, regardless of the caller's role.
var allowedTransitions = map[RegistrationStatus][]RegistrationStatus{
	StatusDraft:       {StatusVerified, StatusCancelled},
	StatusVerified:    {StatusAttended, StatusNotAttended, StatusCancelled, StatusWaitingList},
	StatusWaitingList: {StatusVerified},
	StatusAttended:    {StatusFinished},
	StatusNotAttended: {StatusFinished},
}

// CanTransitionTo reports whether moving from s to next is a legal edge in
// the status graph.
func (s RegistrationStatus) CanTransitionTo(next RegistrationStatus) bool {
	for _, t := range allowedTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Valid reports whether s is a known status value.
func (s RegistrationStatus) Valid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// adminOnlyTargets are statuses only an organization admin may move a
// registration into. The owning user may self-cancel a draft.
var adminOnlyTargets = map[RegistrationStatus]bool{
	StatusVerified:    true,
	StatusAttended:    true,
	StatusNotAttended: true,
	StatusFinished:    true,
	StatusWaitingList: true,
}

// RequiresAdmin reports whether transitioning into s requires an admin actor.
func (s RegistrationStatus) RequiresAdmin() bool {
	return adminOnlyTargets[s]
}

// RegistrationType classifies the participant.
type RegistrationType string

const (
	TypeParticipant RegistrationType = "participant"
	TypeStudent     RegistrationType = "student"
	TypeStaff       RegistrationType = "staff"
	TypeLecturer    RegistrationType = "lecturer"
	TypeArtist      RegistrationType = "artist"
)

// AllTypes lists every registration type.
var AllTypes = []RegistrationType{
	TypeParticipant,
	TypeStudent,
	TypeStaff,
	TypeLecturer,
	TypeArtist,
}

// Valid reports whether t is a known type value.
func (t RegistrationType) Valid() bool {
	for _, v := range AllTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Registration is a user's record of intent/attendance for one event.
// At most one non-cancelled registration may exist per (user, event) pair.
// Version backs optimistic concurrency on updates.
// swagger:model Registration
type Registration struct {
	ID               int64              `json:"id"`
	EventID          int64              `json:"event_id"`
	UserID           string             `json:"user_id"`
	OrganizationID   int                `json:"organization_id"`
	Status           RegistrationStatus `json:"status"`
	Type             RegistrationType   `json:"type"`
	ParticipantName  string             `json:"participant_name"`
	ParticipantEmail string             `json:"participant_email"`
	ParticipantPhone string             `json:"participant_phone"`
	Notes            string             `json:"notes"`
	Version          int                `json:"-"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// ParticipantInfo carries the contact fields supplied at registration time.
type ParticipantInfo struct {
	Name  string
	Email string
	Phone string
	Notes string
}

// RegistrationStatistics holds per-event counts grouped by status and type.
// Every bucket is present even when zero.
// swagger:model RegistrationStatistics
type RegistrationStatistics struct {
	ByStatus map[RegistrationStatus]int `json:"byStatus"`
	ByType   map[RegistrationType]int   `json:"byType"`
}

// RegistrationRepository defines storage operations for registrations.
type RegistrationRepository interface {
	// Create inserts the registration. Returns ErrDuplicateRegistration when
	// a non-cancelled registration already exists for (event, user).
	Create(ctx context.Context, reg *Registration) error
	GetByID(ctx context.Context, id int64, orgID int) (*Registration, error)
	// GetActiveByEventAndUser returns the non-cancelled registration for the
	// pair, or ErrNotFound.
	GetActiveByEventAndUser(ctx context.Context, eventID int64, userID string) (*Registration, error)
	// Update persists status and participant fields with a version check.
	// Returns ErrConflict when the stored version differs.
	Update(ctx context.Context, reg *Registration) error
	ListByEventID(ctx context.Context, eventID int64, orgID int, params PaginationParams) ([]*Registration, int, error)
	// CountByEventID returns counts grouped by status and by type. Buckets
	// with no rows are absent from the maps.
	CountByEventID(ctx context.Context, eventID int64, orgID int) (map[RegistrationStatus]int, map[RegistrationType]int, error)
}

// RegistrationService defines registration lifecycle operations.
type RegistrationService interface {
	// CreateRegistration registers a user for a published event and opens an
	// initial draft order with mandatory products pre-attached. An empty
	// userID registers the principal; naming another user requires an
	// organization admin.
	CreateRegistration(ctx context.Context, principal *Principal, orgID int, userID string, eventID int64, typ RegistrationType, info ParticipantInfo) (*Registration, error)
	GetRegistrationByID(ctx context.Context, principal *Principal, orgID int, id int64) (*Registration, error)
	// UpdateRegistrationStatus applies one edge of the status graph.
	UpdateRegistrationStatus(ctx context.Context, principal *Principal, orgID int, id int64, newStatus RegistrationStatus) (*Registration, error)
	// UpdateParticipantInfo updates contact fields. Nil fields are unchanged.
	// Owners may edit while the registration is Draft or WaitingList; later
	// edits require an organization admin.
	UpdateParticipantInfo(ctx context.Context, principal *Principal, orgID int, id int64, name, email, phone, notes *string) (*Registration, error)
	// CreateDraftFromCancelledOrder is the admin recovery path after a user
	// cancels: it flips a cancelled registration back to draft and opens a
	// fresh draft order. The cancelled order is not resurrected.
	CreateDraftFromCancelledOrder(ctx context.Context, principal *Principal, orgID int, orderID int64) (*Order, error)
	ListRegistrationsForEvent(ctx context.Context, principal *Principal, orgID int, eventID int64, params PaginationParams) ([]*Registration, int, error)
}

// StatisticsService computes read-only aggregations over registrations.
type StatisticsService interface {
	GetRegistrationStatistics(ctx context.Context, principal *Principal, orgID int, eventID int64) (*RegistrationStatistics, error)
}
