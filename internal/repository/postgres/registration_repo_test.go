package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"eventuras/internal/domain"
)

func TestRegistrationRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		reg     *domain.Registration
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			reg: &domain.Registration{
				EventID:          1,
				UserID:           "user-1",
				OrganizationID:   1,
				Status:           domain.StatusDraft,
				Type:             domain.TypeParticipant,
				ParticipantName:  "Ada",
				ParticipantEmail: "ada@example.com",
				CreatedAt:        now,
				UpdatedAt:        now,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO registrations`).
					WithArgs(int64(1), "user-1", 1, domain.StatusDraft, domain.TypeParticipant, "Ada", "ada@example.com", "", "", now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id", "version"}).AddRow(int64(7), 1))
			},
		},
		{
			name: "duplicate active registration",
			reg: &domain.Registration{
				EventID:        1,
				UserID:         "user-1",
				OrganizationID: 1,
				Status:         domain.StatusDraft,
				Type:           domain.TypeParticipant,
				CreatedAt:      now,
				UpdatedAt:      now,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO registrations`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: domain.ErrDuplicateRegistration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewRegistrationRepository(db)
			err = repo.Create(ctx, tt.reg)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, int64(7), tt.reg.ID)
			require.Equal(t, 1, tt.reg.Version)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRegistrationRepository_Update(t *testing.T) {
	ctx := context.Background()
	reg := &domain.Registration{
		ID:             7,
		EventID:        1,
		OrganizationID: 1,
		Status:         domain.StatusVerified,
		Type:           domain.TypeParticipant,
		Version:        3,
		UpdatedAt:      time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE registrations`).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "version conflict",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE registrations`).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: domain.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewRegistrationRepository(db)
			copied := *reg
			err = repo.Update(ctx, &copied)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, 4, copied.Version)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRegistrationRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, event_id, user_id, organization_id`).
		WithArgs(int64(99), 1).
		WillReturnError(sql.ErrNoRows)

	repo := NewRegistrationRepository(db)
	_, err = repo.GetByID(context.Background(), 99, 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistrationRepository_CountByEventID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT status, type, COUNT\(\*\)`).
		WithArgs(int64(1), 1).
		WillReturnRows(sqlmock.NewRows([]string{"status", "type", "count"}).
			AddRow("draft", "participant", 2).
			AddRow("draft", "student", 1).
			AddRow("verified", "participant", 3))

	repo := NewRegistrationRepository(db)
	byStatus, byType, err := repo.CountByEventID(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Equal(t, 3, byStatus[domain.StatusDraft])
	require.Equal(t, 3, byStatus[domain.StatusVerified])
	require.Equal(t, 5, byType[domain.TypeParticipant])
	require.Equal(t, 1, byType[domain.TypeStudent])
	require.NoError(t, mock.ExpectationsWereMet())
}
