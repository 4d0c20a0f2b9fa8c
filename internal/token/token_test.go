package token_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dogukancykrn/ziyaretci-takip-api/internal/domain"
	"github.com/dogukancykrn/ziyaretci-takip-api/internal/token"
)

func testAdmin() domain.Admin {
	return domain.Admin{
		ID:        uuid.New(),
		FirstName: "Doğukan",
		LastName:  "Çaylak",
		Email:     "dogukan@example.com",
		Role:      "admin",
	}
}

func TestManager_IssueAndVerify(t *testing.T) {
	mgr := token.NewManager("test-secret", time.Hour)
	admin := testAdmin()

	signed, err := mgr.Issue(admin)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := mgr.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, admin.ID.String(), claims.Subject)
	assert.Equal(t, admin.Email, claims.Email)
	assert.Equal(t, "Doğukan Çaylak", claims.FullName)
	assert.Equal(t, "admin", claims.Role)
}

func TestManager_Verify_Expired(t *testing.T) {
	// A negative TTL mints a token that is already expired.
	mgr := token.NewManager("test-secret", -time.Minute)

	signed, err := mgr.Issue(testAdmin())
	require.NoError(t, err)

	_, err = mgr.Verify(signed)
	assert.Error(t, err)
}

func TestManager_Verify_WrongSecret(t *testing.T) {
	issuer := token.NewManager("secret-a", time.Hour)
	verifier := token.NewManager("secret-b", time.Hour)

	signed, err := issuer.Issue(testAdmin())
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	assert.Error(t, err)
}

func TestManager_Verify_Malformed(t *testing.T) {
	mgr := token.NewManager("test-secret", time.Hour)

	for _, bad := range []string{"", "not.a.token", "aaaa"} {
		_, err := mgr.Verify(bad)
		assert.Error(t, err, "token %q should be rejected", bad)
	}
}
