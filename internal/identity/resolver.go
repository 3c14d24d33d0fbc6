// Package identity derives the two kinds of keys this system lives on: the
// thread key scoping a persona's private dialogue history, and the fact key
// addressing a story record in the fact store. Both derivations are pure.
package identity

import (
	"fmt"

	"github.com/concilio-labs/concilio/internal/domain"
)

// ThreadKey derives the conversation-thread key for (persona, session).
// Structured concatenation is enough: the persona set is finite and neither
// part may contain "::" by construction (persona ids are fixed, session ids
// are generated). Two personas in one session never collide, and the same
// pair always resolves to the same key.
func ThreadKey(persona domain.Persona, sessionID domain.SessionID) (domain.ThreadKey, error) {
	if sessionID == "" {
		return "", &domain.MissingIdentityError{Field: "sessionId"}
	}
	return domain.ThreadKey(fmt.Sprintf("%s::%s", persona, sessionID)), nil
}

// FactKey derives the fact-store key for (user, side).
func FactKey(userID domain.UserID, side domain.StorySide) (string, error) {
	if userID == "" {
		return "", &domain.MissingIdentityError{Field: "userId"}
	}
	return fmt.Sprintf("%s_%s", userID, side), nil
}
