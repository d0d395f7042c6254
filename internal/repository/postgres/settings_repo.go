package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventuras/internal/domain"
)

// defaultOrganizationID holds system-wide default settings rows that apply
// when an organization has no row of its own for a channel kind.
const defaultOrganizationID = 0

type channelSettingsRepository struct {
	DB *sql.DB
}

func NewChannelSettingsRepository(db *sql.DB) domain.ChannelSettingsRepository {
	return &channelSettingsRepository{
		DB: db,
	}
}

// GetByOrgAndKind resolves settings in two explicit steps: the organization's
// own row, else the system default row.
func (r *channelSettingsRepository) GetByOrgAndKind(ctx context.Context, orgID int, kind domain.ChannelKind) (*domain.ChannelSettings, error) {
	s, err := r.getRow(ctx, orgID, kind)
	if errors.Is(err, domain.ErrNotFound) && orgID != defaultOrganizationID {
		return r.getRow(ctx, defaultOrganizationID, kind)
	}
	return s, err
}

func (r *channelSettingsRepository) getRow(ctx context.Context, orgID int, kind domain.ChannelKind) (*domain.ChannelSettings, error) {
	query := `
		SELECT organization_id, kind, enabled,
			host, port, username, password,
			api_key, from_address, from_name,
			region, access_key_id, secret_access_key,
			account_sid, auth_token, from_number
		FROM notification_settings
		WHERE organization_id = $1 AND kind = $2
	`
	s := &domain.ChannelSettings{}
	var host, username, password sql.NullString
	var port sql.NullInt64
	var apiKey, fromAddress, fromName sql.NullString
	var region, accessKeyID, secretAccessKey sql.NullString
	var accountSID, authToken, fromNumber sql.NullString
	err := r.DB.QueryRowContext(ctx, query, orgID, kind).Scan(
		&s.OrganizationID, &s.Kind, &s.Enabled,
		&host, &port, &username, &password,
		&apiKey, &fromAddress, &fromName,
		&region, &accessKeyID, &secretAccessKey,
		&accountSID, &authToken, &fromNumber,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	s.Host = host.String
	s.Port = int(port.Int64)
	s.Username = username.String
	s.Password = password.String
	s.APIKey = apiKey.String
	s.FromAddress = fromAddress.String
	s.FromName = fromName.String
	s.Region = region.String
	s.AccessKeyID = accessKeyID.String
	s.SecretAccessKey = secretAccessKey.String
	s.AccountSID = accountSID.String
	s.AuthToken = authToken.String
	s.FromNumber = fromNumber.String
	return s, nil
}
