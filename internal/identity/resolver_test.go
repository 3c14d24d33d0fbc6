package identity_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/concilio-labs/concilio/internal/domain"
	"github.com/concilio-labs/concilio/internal/identity"
)

func TestThreadKeyDistinctAcrossPersonas(t *testing.T) {
	const session = domain.SessionID("s-1")

	seen := map[domain.ThreadKey]domain.Persona{}
	for _, p := range domain.Personas() {
		key, err := identity.ThreadKey(p, session)
		require.NoError(t, err)

		prev, dup := seen[key]
		require.False(t, dup, "thread key %q shared by %s and %s", key, prev, p)
		seen[key] = p
	}
}

func TestThreadKeyDistinctAcrossSessions(t *testing.T) {
	k1, err := identity.ThreadKey(domain.PersonaAdvocate, "s-1")
	require.NoError(t, err)
	k2, err := identity.ThreadKey(domain.PersonaAdvocate, "s-2")
	require.NoError(t, err)

	assert.NotEqual(t, k1, k2)
}

func TestThreadKeyDeterministic(t *testing.T) {
	k1, err := identity.ThreadKey(domain.PersonaArbiter, "s-9")
	require.NoError(t, err)
	k2, err := identity.ThreadKey(domain.PersonaArbiter, "s-9")
	require.NoError(t, err)

	assert.Equal(t, k1, k2)
}

func TestThreadKeyMissingSession(t *testing.T) {
	_, err := identity.ThreadKey(domain.PersonaAdvocate, "")

	var missing *domain.MissingIdentityError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "sessionId", missing.Field)
}

func TestFactKeyFormat(t *testing.T) {
	key, err := identity.FactKey("u1", domain.SideUser)
	require.NoError(t, err)
	assert.Equal(t, "u1_user", key)

	key, err = identity.FactKey("u1", domain.SideWife)
	require.NoError(t, err)
	assert.Equal(t, "u1_wife", key)
}

func TestFactKeyMissingUser(t *testing.T) {
	_, err := identity.FactKey("", domain.SideUser)

	var missing *domain.MissingIdentityError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "userId", missing.Field)
}
