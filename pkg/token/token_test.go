package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVerify(t *testing.T) {
	tok, err := Issue("s3cret", "alice", time.Hour)
	require.NoError(t, err)

	profile, err := Verify("s3cret", tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile)
}

func TestIssue_NoExpiry(t *testing.T) {
	tok, err := issueAt("s3cret", "bob", 0, time.Now().Add(-365*24*time.Hour))
	require.NoError(t, err)

	profile, err := Verify("s3cret", tok)
	require.NoError(t, err)
	assert.Equal(t, "bob", profile)
}

func TestIssue_Validation(t *testing.T) {
	_, err := Issue("", "alice", time.Hour)
	assert.Error(t, err)
	_, err = Issue("s3cret", "", time.Hour)
	assert.Error(t, err)
}

func TestVerify_Rejects(t *testing.T) {
	good, err := Issue("s3cret", "alice", time.Hour)
	require.NoError(t, err)
	expired, err := issueAt("s3cret", "alice", time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
		token  string
	}{
		{"wrong secret", "other", good},
		{"expired", "s3cret", expired},
		{"garbage", "s3cret", "not.a.jwt"},
		{"plain token", "s3cret", "s3cret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Verify(tt.secret, tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
