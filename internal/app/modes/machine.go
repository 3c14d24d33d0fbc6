// Package modes implements the interactive surface's persona selection
// state machine. It only decides which persona the next turn targets; the
// data-model invariants hold regardless of UI state.
package modes

import (
	"fmt"

	"github.com/concilio-labs/concilio/internal/domain"
)

type State int

const (
	StateSelecting State = iota
	StateChatting
	StateExited
)

func (s State) String() string {
	switch s {
	case StateSelecting:
		return "selecting"
	case StateChatting:
		return "chatting"
	case StateExited:
		return "exited"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Machine starts in Selecting. Exited is terminal.
type Machine struct {
	state   State
	persona domain.Persona
}

func NewMachine() *Machine {
	return &Machine{state: StateSelecting}
}

func (m *Machine) State() State { return m.state }

// Persona returns the active persona while Chatting.
func (m *Machine) Persona() (domain.Persona, bool) {
	if m.state != StateChatting {
		return "", false
	}
	return m.persona, true
}

// Select moves Selecting -> Chatting(p).
func (m *Machine) Select(p domain.Persona) error {
	switch m.state {
	case StateSelecting:
		m.state = StateChatting
		m.persona = p
		return nil
	case StateChatting:
		return fmt.Errorf("already chatting with %s; switch first", m.persona)
	default:
		return fmt.Errorf("cannot select a persona after exit")
	}
}

// Switch moves Chatting -> Selecting.
func (m *Machine) Switch() error {
	switch m.state {
	case StateChatting:
		m.state = StateSelecting
		m.persona = ""
		return nil
	case StateSelecting:
		return fmt.Errorf("no active persona to switch from")
	default:
		return fmt.Errorf("cannot switch after exit")
	}
}

// Exit is allowed from Selecting and Chatting and is terminal.
func (m *Machine) Exit() {
	m.state = StateExited
	m.persona = ""
}
