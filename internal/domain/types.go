package domain

import "time"

type UserID string
type SessionID string
type MessageID string

// ThreadKey identifies one isolated conversation history. It is derived from
// (persona, session) and is never shared between two personas.
type ThreadKey string

// Persona is one of the three fixed counseling roles. The set is closed;
// persona-specific behavior must switch exhaustively over these values.
type Persona string

const (
	PersonaAdvocate         Persona = "advocate"          // argues the user's side
	PersonaOpposingRolePlay Persona = "opposing_roleplay" // role-plays the other party
	PersonaArbiter          Persona = "arbiter"           // neutral, reads both accounts
)

// Personas lists the fixed variants in stable order.
func Personas() []Persona {
	return []Persona{PersonaAdvocate, PersonaOpposingRolePlay, PersonaArbiter}
}

// ParsePersona maps a wire identifier to a Persona.
func ParsePersona(s string) (Persona, error) {
	switch Persona(s) {
	case PersonaAdvocate:
		return PersonaAdvocate, nil
	case PersonaOpposingRolePlay:
		return PersonaOpposingRolePlay, nil
	case PersonaArbiter:
		return PersonaArbiter, nil
	default:
		return "", &UnknownPersonaError{Persona: s}
	}
}

// StorySide names the subject of a story record: the user's own side or the
// role-played wife's side. Sides mirror the two non-arbiter personas'
// subjects, not the personas themselves.
type StorySide string

const (
	SideUser StorySide = "user"
	SideWife StorySide = "wife"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// ThreadMessage is one entry in a thread's append-only history.
type ThreadMessage struct {
	ID        MessageID
	ThreadKey ThreadKey
	Author    Role
	Text      string
	CreatedAt time.Time
}

// InstructionMessage is one element of the ordered sequence handed to the
// reasoning engine for a turn.
type InstructionMessage struct {
	Role Role
	Text string
}
