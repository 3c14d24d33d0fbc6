package modes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/concilio-labs/concilio/internal/app/modes"
	"github.com/concilio-labs/concilio/internal/domain"
)

func TestStartsSelecting(t *testing.T) {
	m := modes.NewMachine()
	assert.Equal(t, modes.StateSelecting, m.State())

	_, ok := m.Persona()
	assert.False(t, ok)
}

func TestSelectThenSwitch(t *testing.T) {
	m := modes.NewMachine()

	require.NoError(t, m.Select(domain.PersonaAdvocate))
	assert.Equal(t, modes.StateChatting, m.State())

	p, ok := m.Persona()
	require.True(t, ok)
	assert.Equal(t, domain.PersonaAdvocate, p)

	require.NoError(t, m.Switch())
	assert.Equal(t, modes.StateSelecting, m.State())

	require.NoError(t, m.Select(domain.PersonaArbiter))
	p, ok = m.Persona()
	require.True(t, ok)
	assert.Equal(t, domain.PersonaArbiter, p)
}

func TestSelectWhileChattingFails(t *testing.T) {
	m := modes.NewMachine()
	require.NoError(t, m.Select(domain.PersonaAdvocate))

	assert.Error(t, m.Select(domain.PersonaArbiter))
}

func TestSwitchWhileSelectingFails(t *testing.T) {
	m := modes.NewMachine()
	assert.Error(t, m.Switch())
}

func TestExitIsTerminal(t *testing.T) {
	m := modes.NewMachine()
	require.NoError(t, m.Select(domain.PersonaOpposingRolePlay))

	m.Exit()
	assert.Equal(t, modes.StateExited, m.State())

	assert.Error(t, m.Select(domain.PersonaAdvocate))
	assert.Error(t, m.Switch())

	m.Exit() // exiting again stays exited
	assert.Equal(t, modes.StateExited, m.State())
}
