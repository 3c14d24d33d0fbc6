package tools

import (
	"context"

	"github.com/concilio-labs/concilio/internal/domain"
)

// ToolContext brings the resolved identity of the call to the tool.
type ToolContext struct {
	UserID    domain.UserID
	SessionID domain.SessionID
}

// Tool represents an operation a persona's reasoning turn can invoke. Tools
// are the only sanctioned path to the fact store; a persona is only ever
// wired the tools the registry authorizes for it.
// input/output is a generic map to match the engine's function-call shape.
type Tool interface {
	Name() string
	Description() string
	InputSchema() map[string]any
	Call(ctx context.Context, tctx ToolContext, input map[string]any) (map[string]any, error)
}

// boundTool freezes a tool to one resolved identity so the engine can invoke
// it without seeing identities at all.
type boundTool struct {
	tool Tool
	tctx ToolContext
}

func (b *boundTool) Name() string                { return b.tool.Name() }
func (b *boundTool) Description() string         { return b.tool.Description() }
func (b *boundTool) InputSchema() map[string]any { return b.tool.InputSchema() }

func (b *boundTool) Invoke(ctx context.Context, input map[string]any) (map[string]any, error) {
	return b.tool.Call(ctx, b.tctx, input)
}

// Bind attaches a resolved identity to each tool, producing the toolset
// handed to the reasoning engine for one turn.
func Bind(tctx ToolContext, ts []Tool) []domain.BoundTool {
	out := make([]domain.BoundTool, 0, len(ts))
	for _, t := range ts {
		out = append(out, &boundTool{tool: t, tctx: tctx})
	}
	return out
}

// --- shared input helpers --- //

func getString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func contentSchema(description string) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"content": map[string]any{
				"type":        "string",
				"description": description,
			},
		},
		"required": []string{"content"},
	}
}

func emptySchema() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
}
