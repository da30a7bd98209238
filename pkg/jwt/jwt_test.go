package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	m := NewManager("test-secret")
	clubID := uint(3)

	token, err := m.Generate(42, "manager", &clubID)
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "manager", claims.Role)
	require.NotNil(t, claims.ManagedClubID)
	assert.Equal(t, clubID, *claims.ManagedClubID)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a").Generate(1, "member", nil)
	require.NoError(t, err)

	_, err = NewManager("secret-b").Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := NewManager("secret").Parse("not.a.token")
	assert.Error(t, err)
}
