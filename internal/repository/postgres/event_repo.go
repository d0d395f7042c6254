package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventuras/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

const eventColumns = `id, organization_id, title, code, description, start_date, end_date, published, on_demand, archived, created_at, updated_at`

func (r *eventRepository) Create(ctx context.Context, e *domain.EventInfo) error {
	query := `
		INSERT INTO events (organization_id, title, code, description, start_date, end_date, published, on_demand, archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.OrganizationID, e.Title, e.Code, e.Description, e.StartDate, e.EndDate,
		e.Published, e.OnDemand, e.Archived, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func scanEvent(row interface{ Scan(...any) error }) (*domain.EventInfo, error) {
	e := &domain.EventInfo{}
	var startNull, endNull sql.NullTime
	err := row.Scan(
		&e.ID, &e.OrganizationID, &e.Title, &e.Code, &e.Description,
		&startNull, &endNull, &e.Published, &e.OnDemand, &e.Archived,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if startNull.Valid {
		e.StartDate = &startNull.Time
	}
	if endNull.Valid {
		e.EndDate = &endNull.Time
	}
	return e, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int64, orgID int) (*domain.EventInfo, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1 AND organization_id = $2
	`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id, orgID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetByCode(ctx context.Context, code string, orgID int) (*domain.EventInfo, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE code = $1 AND organization_id = $2
	`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, code, orgID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListByOrganization(ctx context.Context, orgID int, params domain.PaginationParams) ([]*domain.EventInfo, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE organization_id = $1`, orgID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE organization_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, orgID, params.Count, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events := make([]*domain.EventInfo, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	return events, total, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, e *domain.EventInfo) error {
	query := `
		UPDATE events
		SET title = $1, code = $2, description = $3, start_date = $4, end_date = $5,
			published = $6, on_demand = $7, archived = $8, updated_at = NOW()
		WHERE id = $9 AND organization_id = $10
	`
	result, err := r.DB.ExecContext(ctx, query,
		e.Title, e.Code, e.Description, e.StartDate, e.EndDate,
		e.Published, e.OnDemand, e.Archived, e.ID, e.OrganizationID,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
