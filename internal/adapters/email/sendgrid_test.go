package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventuras/internal/domain"
)

func TestSendGridSender_Send(t *testing.T) {
	var gotAuth string
	var gotPayload sendgridPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/mail/send", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	sender, err := newSendGridSender(server.Client(), server.URL, &domain.ChannelSettings{
		OrganizationID: 1,
		Kind:           domain.ChannelSendGrid,
		APIKey:         "sg-key",
		FromAddress:    "noreply@example.com",
		FromName:       "Events",
	})
	require.NoError(t, err)

	err = sender.Send(context.Background(), &domain.EmailMessage{
		To:      "ada@example.com",
		Subject: "Registration received",
		Text:    "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer sg-key", gotAuth)
	assert.Equal(t, "noreply@example.com", gotPayload.From.Email)
	require.Len(t, gotPayload.Personalizations, 1)
	assert.Equal(t, "ada@example.com", gotPayload.Personalizations[0].To[0].Email)
	require.Len(t, gotPayload.Content, 1)
	assert.Equal(t, "text/plain", gotPayload.Content[0].Type)
}

func TestSendGridSender_SurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":[{"message":"bad key"}]}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	sender, err := newSendGridSender(server.Client(), server.URL, &domain.ChannelSettings{APIKey: "bad"})
	require.NoError(t, err)

	err = sender.Send(context.Background(), &domain.EmailMessage{To: "ada@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestSendGridSender_RequiresAPIKey(t *testing.T) {
	_, err := NewSendGridSender(&domain.ChannelSettings{OrganizationID: 1})
	assert.Error(t, err)
}
