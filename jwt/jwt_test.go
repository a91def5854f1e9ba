package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Valid key", func(t *testing.T) {
		j, err := New("test-signing-key")
		require.NoError(t, err)
		assert.NotNil(t, j)
	})

	t.Run("Empty key rejected", func(t *testing.T) {
		_, err := New("")
		require.Error(t, err)
	})
}

func TestSignAndParseSession(t *testing.T) {
	j, err := New("test-signing-key")
	require.NoError(t, err)

	session := &Session{
		UserID:  "user-123",
		TokenID: "token-456",
		Expires: time.Now().Add(time.Hour).Unix(),
	}

	tokenString, err := j.SignSession(session)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	parsed, err := j.ParseSession(tokenString)
	require.NoError(t, err)
	assert.Equal(t, session.UserID, parsed.UserID)
	assert.Equal(t, session.TokenID, parsed.TokenID)
	assert.Equal(t, session.Expires, parsed.Expires)
}

func TestParseSession_Invalid(t *testing.T) {
	j, err := New("test-signing-key")
	require.NoError(t, err)

	t.Run("Empty token", func(t *testing.T) {
		_, err := j.ParseSession("")
		require.Error(t, err)
	})

	t.Run("Garbage token", func(t *testing.T) {
		_, err := j.ParseSession("not.a.jwt")
		require.Error(t, err)
	})

	t.Run("Wrong key", func(t *testing.T) {
		other, err := New("different-key")
		require.NoError(t, err)

		tokenString, err := other.SignSession(&Session{
			UserID:  "user-123",
			TokenID: "token-456",
			Expires: time.Now().Add(time.Hour).Unix(),
		})
		require.NoError(t, err)

		_, err = j.ParseSession(tokenString)
		require.Error(t, err)
	})

	t.Run("Expired token rejected by parser", func(t *testing.T) {
		tokenString, err := j.SignSession(&Session{
			UserID:  "user-123",
			TokenID: "token-456",
			Expires: time.Now().Add(-time.Hour).Unix(),
		})
		require.NoError(t, err)

		_, err = j.ParseSession(tokenString)
		require.Error(t, err)
	})
}
