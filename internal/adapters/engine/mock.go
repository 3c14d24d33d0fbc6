package engine

import (
	"context"
	"fmt"

	"github.com/concilio-labs/concilio/internal/domain"
)

// Mock is a deterministic reasoning engine for local mode and tests. By
// default it reflects the user's message back; a ToolPlan makes it execute
// one tool call per run, the way a real engine would.
type Mock struct {
	// ToolPlan, when set, decides whether to invoke a tool this turn and
	// with what input. Return ok=false to answer without tools.
	ToolPlan func(in domain.EngineInput) (toolName string, input map[string]any, ok bool)
}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Run(ctx context.Context, in domain.EngineInput) (domain.EngineOutput, error) {
	var lastUser string
	for _, msg := range in.Instructions {
		if msg.Role == domain.RoleUser {
			lastUser = msg.Text
		}
	}

	if m.ToolPlan != nil {
		if name, input, ok := m.ToolPlan(in); ok {
			tool := findTool(in.Tools, name)
			if tool == nil {
				return domain.EngineOutput{}, fmt.Errorf("mock engine: tool %q not in toolset", name)
			}

			out, err := tool.Invoke(ctx, input)
			if err != nil {
				// Tool-execution errors surface to the caller, never a
				// degraded neutral answer.
				return domain.EngineOutput{}, err
			}

			return domain.EngineOutput{
				FinalText:         toolReply(out),
				ToolCallsExecuted: []domain.ToolCall{{Tool: name, Outcome: "ok"}},
			}, nil
		}
	}

	return domain.EngineOutput{
		FinalText: fmt.Sprintf("I hear you. You said %q. Tell me more about how that sits with you.", lastUser),
	}, nil
}

func findTool(ts []domain.BoundTool, name string) domain.BoundTool {
	for _, t := range ts {
		if t.Name() == name {
			return t
		}
	}
	return nil
}

func toolReply(out map[string]any) string {
	if combined, ok := out["combined"].(string); ok {
		return combined
	}
	if confirmation, ok := out["confirmation"].(string); ok {
		return confirmation
	}
	return "Done."
}
