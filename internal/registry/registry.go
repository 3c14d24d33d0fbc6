// Package registry holds the static table mapping each persona to its
// instruction template, authorized tool set, and story-side access policy.
// It is built once at process start and passed explicitly; no other
// component hardcodes persona behavior.
package registry

import (
	"github.com/concilio-labs/concilio/internal/domain"
)

// Tool names as the reasoning engine sees them.
const (
	ToolRecordOwnGrievance    = "record_own_grievance"
	ToolRecordOpposingAccount = "record_opposing_account"
	ToolFetchBothAccounts     = "fetch_both_accounts"
)

// Definition is everything the orchestrator needs to frame a turn for one
// persona.
type Definition struct {
	Persona             domain.Persona
	Description         string
	InstructionTemplate string
	ToolNames           []string

	// Story-side access policy. Authorization is structural: a persona is
	// only ever wired the tools these sides permit, so there is no per-call
	// check to bypass. Kept explicit here so a future per-call check is a
	// one-line addition.
	WritableSides []domain.StorySide
	ReadableSides []domain.StorySide
}

// Registry is the immutable persona table.
type Registry struct {
	defs map[domain.Persona]Definition
}

// New builds the registry for the three fixed personas.
func New() *Registry {
	defs := map[domain.Persona]Definition{
		domain.PersonaAdvocate: {
			Persona:             domain.PersonaAdvocate,
			Description:         "Argues your side of the dispute and records your grievance.",
			InstructionTemplate: advocateTemplate,
			ToolNames:           []string{ToolRecordOwnGrievance},
			WritableSides:       []domain.StorySide{domain.SideUser},
		},
		domain.PersonaOpposingRolePlay: {
			Persona:             domain.PersonaOpposingRolePlay,
			Description:         "Role-plays the other party so you can hear their side, and records it.",
			InstructionTemplate: opposingTemplate,
			ToolNames:           []string{ToolRecordOpposingAccount},
			WritableSides:       []domain.StorySide{domain.SideWife},
		},
		domain.PersonaArbiter: {
			Persona:             domain.PersonaArbiter,
			Description:         "Reads both recorded accounts and weighs them neutrally.",
			InstructionTemplate: arbiterTemplate,
			ToolNames:           []string{ToolFetchBothAccounts},
			ReadableSides:       []domain.StorySide{domain.SideUser, domain.SideWife},
		},
	}

	return &Registry{defs: defs}
}

// Resolve returns the definition for a persona, or UnknownPersonaError.
func (r *Registry) Resolve(p domain.Persona) (Definition, error) {
	def, ok := r.defs[p]
	if !ok {
		return Definition{}, &domain.UnknownPersonaError{Persona: string(p)}
	}
	return def, nil
}

// List returns all definitions in stable order: advocate, opposing
// role-play, arbiter. This is the discovery operation's backing data.
func (r *Registry) List() []Definition {
	out := make([]Definition, 0, len(r.defs))
	for _, p := range domain.Personas() {
		out = append(out, r.defs[p])
	}
	return out
}
