package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolboard/internal/models"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := Sign("user-1", "jti-1", models.RoleSuperadmin)
	require.NoError(t, err)

	claims, err := Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "jti-1", claims.JWTID)
	assert.Equal(t, models.RoleSuperadmin, claims.Role)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	token, err := Sign("user-1", "jti-1", models.RoleUser)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "secret-b")
	_, err = Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	_, err := Verify("not-a-token")
	assert.Error(t, err)
}

func TestRoleCapability(t *testing.T) {
	assert.True(t, models.RoleSuperadmin.CanAdminister())
	assert.False(t, models.RoleUser.CanAdminister())
	assert.False(t, models.Role("Superadmin").CanAdminister(), "role compare is exact")
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NoError(t, CheckPassword(hash, "hunter2"))
	assert.Error(t, CheckPassword(hash, "hunter3"))
}

func TestClaimsContext(t *testing.T) {
	ctx := WithClaims(context.Background(), Claims{Subject: "user-1", Role: models.RoleUser})
	assert.Equal(t, "user-1", Subject(ctx))
	assert.Equal(t, models.RoleUser, FromContext(ctx).Role)

	assert.Equal(t, "", Subject(context.Background()))
}
