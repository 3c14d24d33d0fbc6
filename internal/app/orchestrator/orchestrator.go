// Package orchestrator is the top-level entry point of a turn: it resolves
// identities, frames the persona's instruction, hands the turn to the
// external reasoning engine, and persists the exchange in the thread's
// private history. It never touches the fact store itself; only the tools
// the engine chooses to invoke do.
package orchestrator

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/concilio-labs/concilio/internal/app/tools"
	"github.com/concilio-labs/concilio/internal/domain"
	"github.com/concilio-labs/concilio/internal/identity"
	"github.com/concilio-labs/concilio/internal/observability"
	"github.com/concilio-labs/concilio/internal/registry"
)

type Orchestrator struct {
	registry *registry.Registry
	threads  domain.ThreadStore
	engine   domain.Engine
	toolbox  *tools.Toolbox
	now      func() time.Time
}

func New(
	reg *registry.Registry,
	threads domain.ThreadStore,
	engine domain.Engine,
	toolbox *tools.Toolbox,
) *Orchestrator {
	return &Orchestrator{
		registry: reg,
		threads:  threads,
		engine:   engine,
		toolbox:  toolbox,
		now:      time.Now,
	}
}

// PersonaInfo is the discovery view of one persona.
type PersonaInfo struct {
	ID          domain.Persona
	Description string
}

// Personas lists the three personas with human-readable descriptions.
func (o *Orchestrator) Personas() []PersonaInfo {
	defs := o.registry.List()
	out := make([]PersonaInfo, 0, len(defs))
	for _, def := range defs {
		out = append(out, PersonaInfo{ID: def.Persona, Description: def.Description})
	}
	return out
}

// Invoke runs one turn for (persona, user, session). Failures propagate
// unchanged: UnknownPersonaError and MissingIdentityError before anything
// runs, StoreFault/EngineFault from the delegated turn. Tool mutations
// already committed stay committed if the turn is abandoned.
func (o *Orchestrator) Invoke(
	ctx context.Context,
	persona domain.Persona,
	userID domain.UserID,
	sessionID domain.SessionID,
	message string,
) (string, error) {

	def, err := o.registry.Resolve(persona)
	if err != nil {
		return "", err
	}

	if userID == "" {
		return "", &domain.MissingIdentityError{Field: "userId"}
	}
	threadKey, err := identity.ThreadKey(persona, sessionID)
	if err != nil {
		return "", err
	}

	log := observability.LoggerFromContext(ctx).With(
		"persona", persona,
		"user_id", userID,
		"session_id", sessionID,
		"thread_key", threadKey,
	)
	log.Info("turn started")
	start := o.now()

	history, err := o.threads.History(ctx, threadKey)
	if err != nil {
		log.Error("failed to load thread history", "error", err)
		return "", err
	}

	instructions := Compose(def, history, userID, sessionID, message)

	selected, err := o.toolbox.Select(def.ToolNames)
	if err != nil {
		log.Error("toolbox mismatch", "error", err)
		return "", err
	}
	bound := tools.Bind(tools.ToolContext{UserID: userID, SessionID: sessionID}, selected)

	out, err := o.engine.Run(ctx, domain.EngineInput{
		Instructions: instructions,
		Tools:        bound,
		ThreadKey:    threadKey,
	})
	if err != nil {
		log.Error("engine failed", "error", err)
		return "", err
	}

	now := o.now()
	userMsg := &domain.ThreadMessage{
		ID:        domain.MessageID(uuid.NewString()),
		ThreadKey: threadKey,
		Author:    domain.RoleUser,
		Text:      message,
		CreatedAt: now,
	}
	if err := o.threads.AppendMessage(ctx, userMsg); err != nil {
		log.Error("failed to append user message", "error", err)
		return "", err
	}

	agentMsg := &domain.ThreadMessage{
		ID:        domain.MessageID(uuid.NewString()),
		ThreadKey: threadKey,
		Author:    domain.RoleAgent,
		Text:      out.FinalText,
		CreatedAt: o.now(),
	}
	if err := o.threads.AppendMessage(ctx, agentMsg); err != nil {
		log.Error("failed to append agent message", "error", err)
		return "", err
	}

	log.Info("turn completed",
		"tool_calls", len(out.ToolCallsExecuted),
		"elapsed_ms", o.now().Sub(start).Milliseconds())

	return out.FinalText, nil
}
