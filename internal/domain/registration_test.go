package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistrationStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to RegistrationStatus
		want     bool
	}{
		{StatusDraft, StatusVerified, true},
		{StatusDraft, StatusCancelled, true},
		{StatusDraft, StatusAttended, false},
		{StatusVerified, StatusAttended, true},
		{StatusVerified, StatusNotAttended, true},
		{StatusVerified, StatusCancelled, true},
		{StatusVerified, StatusWaitingList, true},
		{StatusWaitingList, StatusVerified, true},
		{StatusWaitingList, StatusCancelled, false},
		{StatusAttended, StatusFinished, true},
		{StatusNotAttended, StatusFinished, true},
		{StatusFinished, StatusDraft, false},
		{StatusCancelled, StatusDraft, false},
		{StatusCancelled, StatusVerified, false},
		{StatusAttended, StatusVerified, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestRegistrationStatus_RequiresAdmin(t *testing.T) {
	assert.True(t, StatusVerified.RequiresAdmin())
	assert.True(t, StatusAttended.RequiresAdmin())
	assert.True(t, StatusNotAttended.RequiresAdmin())
	assert.True(t, StatusFinished.RequiresAdmin())
	assert.True(t, StatusWaitingList.RequiresAdmin())
	assert.False(t, StatusCancelled.RequiresAdmin())
	assert.False(t, StatusDraft.RequiresAdmin())
}

func TestPrincipal_IsAdminOf(t *testing.T) {
	orgAdmin := &Principal{UserID: "u1", Roles: []string{RoleOrgAdmin}, AdminOrgs: []int{1, 3}}
	sysAdmin := &Principal{UserID: "u2", Roles: []string{RoleSystemAdmin}}
	user := &Principal{UserID: "u3"}

	assert.True(t, orgAdmin.IsAdminOf(1))
	assert.True(t, orgAdmin.IsAdminOf(3))
	assert.False(t, orgAdmin.IsAdminOf(2))
	assert.True(t, sysAdmin.IsAdminOf(42))
	assert.False(t, user.IsAdminOf(1))

	var nilPrincipal *Principal
	assert.False(t, nilPrincipal.IsAdminOf(1))
}

func TestOrder_Line(t *testing.T) {
	v1 := int64(10)
	v2 := int64(11)
	order := &Order{Lines: []*OrderLine{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, VariantID: &v1, Quantity: 1},
	}}

	assert.NotNil(t, order.Line(1, nil))
	assert.Nil(t, order.Line(1, &v1))
	assert.NotNil(t, order.Line(2, &v1))
	assert.Nil(t, order.Line(2, &v2))
	assert.Nil(t, order.Line(2, nil))
	assert.Nil(t, order.Line(3, nil))
}
