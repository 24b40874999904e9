package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oilbook/internal/core/id"
)

func TestJWT_RoundTrip(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))
	user := NewUser(id.New(), "staff@station.test", "Somchai", "hash", RoleStaff)

	token, expiresAt, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	uc, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), uc.UserID)
	assert.Equal(t, user.OfficeID.String(), uc.OfficeID)
	assert.Equal(t, "STAFF", uc.Role)
	assert.Contains(t, uc.Capabilities, CapLedgerWrite)
	assert.NotContains(t, uc.Capabilities, CapMasterData)
}

func TestJWT_RejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService(DefaultJWTConfig("secret-a"))
	validator := NewJWTService(DefaultJWTConfig("secret-b"))

	token, _, err := issuer.GenerateAccessToken(NewUser(id.New(), "a@b.co", "", "h", RoleStaff))
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWT_RejectsGarbage(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))
	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestCapabilitiesFor(t *testing.T) {
	staff := CapabilitiesFor(RoleStaff)
	admin := CapabilitiesFor(RoleAdmin)
	super := CapabilitiesFor(RoleSuperAdmin)

	assert.Contains(t, staff, CapReportsView)
	assert.NotContains(t, staff, CapAdjustmentsWrite)

	for _, c := range staff {
		assert.Contains(t, admin, c, "admin includes all staff capabilities")
	}
	for _, c := range admin {
		assert.Contains(t, super, c, "superadmin includes all admin capabilities")
	}
	assert.Contains(t, super, CapOfficesManage)
	assert.NotContains(t, admin, CapOfficesManage)

	assert.Empty(t, CapabilitiesFor(Role("GHOST")))
}
