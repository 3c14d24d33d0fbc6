package domain

import "context"

// FactStore is the durable namespaced key/value record store. It is the only
// mutable resource shared across personas and sessions, and it is reached
// exclusively through tool contracts, never directly.
//
// Implementations must be safe under concurrent callers on different keys.
// No cross-key transactional guarantee is required: every operation in this
// system writes at most one key, and the arbiter's two reads are independent.
type FactStore interface {
	Put(ctx context.Context, namespace, key string, rec StoryRecord) error
	Get(ctx context.Context, namespace, key string) (StoryRecord, bool, error)
}

// ThreadStore persists the append-only dialogue history of one thread.
type ThreadStore interface {
	AppendMessage(ctx context.Context, msg *ThreadMessage) error
	History(ctx context.Context, key ThreadKey) ([]*ThreadMessage, error)
}

// BoundTool is a tool already bound to a resolved identity; the engine
// invokes it by name with the model-supplied input.
type BoundTool interface {
	Name() string
	Description() string
	InputSchema() map[string]any
	Invoke(ctx context.Context, input map[string]any) (map[string]any, error)
}

// ToolCall records one tool invocation executed during an engine run.
type ToolCall struct {
	Tool    string
	Outcome string // "ok" or the error text
}

// EngineInput is everything this system supplies to the external reasoning
// engine for one turn.
type EngineInput struct {
	Instructions []InstructionMessage
	Tools        []BoundTool
	ThreadKey    ThreadKey
}

// EngineOutput is what comes back: only the final text plus an audit trail
// of the tool calls the engine chose to execute.
type EngineOutput struct {
	FinalText         string
	ToolCallsExecuted []ToolCall
}

// Engine is the external reasoning/tool-calling loop. It owns dialogue
// planning and continuity; this system only frames the turn.
type Engine interface {
	Run(ctx context.Context, in EngineInput) (EngineOutput, error)
}
