package orchestrator

import (
	"fmt"

	"github.com/concilio-labs/concilio/internal/domain"
	"github.com/concilio-labs/concilio/internal/registry"
)

// Compose builds the ordered message sequence for one turn: the persona's
// static template plus a dynamic trailer naming the active identities,
// followed by the full prior history of the thread in chronological order,
// unmodified, and finally the new user message.
//
// The composer never truncates or summarizes: continuity and compaction
// belong to the reasoning engine's own checkpointing.
func Compose(
	def registry.Definition,
	history []*domain.ThreadMessage,
	userID domain.UserID,
	sessionID domain.SessionID,
	userMessage string,
) []domain.InstructionMessage {

	system := def.InstructionTemplate + fmt.Sprintf(
		"\nActive persona: %s\nUser id: %s\nSession id: %s\n",
		def.Persona, userID, sessionID,
	)

	out := make([]domain.InstructionMessage, 0, len(history)+2)
	out = append(out, domain.InstructionMessage{Role: "system", Text: system})

	for _, m := range history {
		out = append(out, domain.InstructionMessage{Role: m.Author, Text: m.Text})
	}

	out = append(out, domain.InstructionMessage{Role: domain.RoleUser, Text: userMessage})
	return out
}
