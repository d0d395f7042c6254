package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventuras/internal/domain"
)

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{
		DB: db,
	}
}

const registrationColumns = `id, event_id, user_id, organization_id, status, type, participant_name, participant_email, participant_phone, notes, version, created_at, updated_at`

func scanRegistration(row interface{ Scan(...any) error }) (*domain.Registration, error) {
	reg := &domain.Registration{}
	err := row.Scan(
		&reg.ID, &reg.EventID, &reg.UserID, &reg.OrganizationID, &reg.Status, &reg.Type,
		&reg.ParticipantName, &reg.ParticipantEmail, &reg.ParticipantPhone, &reg.Notes,
		&reg.Version, &reg.CreatedAt, &reg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// Create inserts the registration. A partial unique index on
// (event_id, user_id) WHERE status <> 'cancelled' enforces the one active
// registration per user and event, closing the check-then-insert race.
func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	query := `
		INSERT INTO registrations (event_id, user_id, organization_id, status, type, participant_name, participant_email, participant_phone, notes, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1, $10, $11)
		RETURNING id, version
	`
	err := r.DB.QueryRowContext(ctx, query,
		reg.EventID, reg.UserID, reg.OrganizationID, reg.Status, reg.Type,
		reg.ParticipantName, reg.ParticipantEmail, reg.ParticipantPhone, reg.Notes,
		reg.CreatedAt, reg.UpdatedAt,
	).Scan(&reg.ID, &reg.Version)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrDuplicateRegistration
		}
		return err
	}
	return nil
}

func (r *registrationRepository) GetByID(ctx context.Context, id int64, orgID int) (*domain.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE id = $1 AND organization_id = $2
	`
	reg, err := scanRegistration(r.DB.QueryRowContext(ctx, query, id, orgID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) GetActiveByEventAndUser(ctx context.Context, eventID int64, userID string) (*domain.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE event_id = $1 AND user_id = $2 AND status <> 'cancelled'
	`
	reg, err := scanRegistration(r.DB.QueryRowContext(ctx, query, eventID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

// Update writes the registration guarded by its version. Zero rows affected
// means another writer got there first.
func (r *registrationRepository) Update(ctx context.Context, reg *domain.Registration) error {
	query := `
		UPDATE registrations
		SET status = $1, type = $2, participant_name = $3, participant_email = $4,
			participant_phone = $5, notes = $6, version = version + 1, updated_at = $7
		WHERE id = $8 AND organization_id = $9 AND version = $10
	`
	result, err := r.DB.ExecContext(ctx, query,
		reg.Status, reg.Type, reg.ParticipantName, reg.ParticipantEmail,
		reg.ParticipantPhone, reg.Notes, reg.UpdatedAt,
		reg.ID, reg.OrganizationID, reg.Version,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrConflict
	}
	reg.Version++
	return nil
}

func (r *registrationRepository) ListByEventID(ctx context.Context, eventID int64, orgID int, params domain.PaginationParams) ([]*domain.Registration, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registrations WHERE event_id = $1 AND organization_id = $2`,
		eventID, orgID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE event_id = $1 AND organization_id = $2
		ORDER BY id
		LIMIT $3 OFFSET $4
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID, orgID, params.Count, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	regs := make([]*domain.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, 0, err
		}
		regs = append(regs, reg)
	}
	return regs, total, rows.Err()
}

func (r *registrationRepository) CountByEventID(ctx context.Context, eventID int64, orgID int) (map[domain.RegistrationStatus]int, map[domain.RegistrationType]int, error) {
	query := `
		SELECT status, type, COUNT(*)
		FROM registrations
		WHERE event_id = $1 AND organization_id = $2
		GROUP BY status, type
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID, orgID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	byStatus := make(map[domain.RegistrationStatus]int)
	byType := make(map[domain.RegistrationType]int)
	for rows.Next() {
		var status domain.RegistrationStatus
		var typ domain.RegistrationType
		var count int
		if err := rows.Scan(&status, &typ, &count); err != nil {
			return nil, nil, err
		}
		byStatus[status] += count
		byType[typ] += count
	}
	return byStatus, byType, rows.Err()
}
