// Package engine holds the adapters that satisfy the external reasoning
// engine boundary: a Gemini-backed implementation with function calling, and
// a deterministic mock.
package engine

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"github.com/concilio-labs/concilio/internal/domain"
	"github.com/concilio-labs/concilio/internal/observability"
)

// maxToolRounds bounds the generate/tool-call loop of one turn.
const maxToolRounds = 8

type GenaiEngine struct {
	client    *genai.Client
	modelName string
}

// NewGenaiEngine creates a reasoning engine backed by Vertex AI (Gemini).
// Uses environment variables for project and region to simplify.
func NewGenaiEngine(ctx context.Context) (*GenaiEngine, error) {
	projectID := os.Getenv("CONCILIO_GCP_PROJECT")
	location := os.Getenv("CONCILIO_GCP_LOCATION")
	if projectID == "" || location == "" {
		return nil, fmt.Errorf("CONCILIO_GCP_PROJECT and CONCILIO_GCP_LOCATION must be set")
	}

	modelName := os.Getenv("CONCILIO_MODEL_NAME")
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Vertex AI client: %w", err)
	}

	return &GenaiEngine{
		client:    client,
		modelName: modelName,
	}, nil
}

// Run implements domain.Engine: it drives the generate/function-call loop
// until the model produces a final text, executing the persona's bound tools
// on the way. Engine failures come back as EngineFault; tool failures come
// back unwrapped so the caller sees the original taxonomy.
func (e *GenaiEngine) Run(ctx context.Context, in domain.EngineInput) (domain.EngineOutput, error) {
	log := observability.LoggerFromContext(ctx).With("thread_key", in.ThreadKey)

	system, contents := splitInstructions(in.Instructions)

	temp := float32(0.7)
	topP := float32(0.9)
	outputTokens := int32(8192)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       &temp,
		TopP:              &topP,
		MaxOutputTokens:   outputTokens,
	}
	if len(in.Tools) > 0 {
		cfg.Tools = []*genai.Tool{{FunctionDeclarations: declarations(in.Tools)}}
	}

	var executed []domain.ToolCall

	for round := 0; round < maxToolRounds; round++ {
		res, err := e.client.Models.GenerateContent(ctx, e.modelName, contents, cfg)
		if err != nil {
			return domain.EngineOutput{}, &domain.EngineFault{ThreadKey: in.ThreadKey, Err: err}
		}

		calls := res.FunctionCalls()
		if len(calls) == 0 {
			text := res.Text()
			if text == "" {
				return domain.EngineOutput{}, &domain.EngineFault{
					ThreadKey: in.ThreadKey,
					Err:       fmt.Errorf("model returned empty text"),
				}
			}
			return domain.EngineOutput{FinalText: text, ToolCallsExecuted: executed}, nil
		}

		if len(res.Candidates) > 0 && res.Candidates[0].Content != nil {
			contents = append(contents, res.Candidates[0].Content)
		}

		for _, call := range calls {
			tool := findTool(in.Tools, call.Name)
			if tool == nil {
				return domain.EngineOutput{}, &domain.EngineFault{
					ThreadKey: in.ThreadKey,
					Err:       fmt.Errorf("model requested unknown tool %q", call.Name),
				}
			}

			log.Info("executing tool call", "tool", call.Name)
			out, err := tool.Invoke(ctx, call.Args)
			if err != nil {
				return domain.EngineOutput{}, err
			}

			executed = append(executed, domain.ToolCall{Tool: call.Name, Outcome: "ok"})
			contents = append(contents, genai.NewContentFromParts(
				[]*genai.Part{genai.NewPartFromFunctionResponse(call.Name, out)},
				genai.RoleUser,
			))
		}
	}

	return domain.EngineOutput{}, &domain.EngineFault{
		ThreadKey: in.ThreadKey,
		Err:       fmt.Errorf("no final answer after %d tool rounds", maxToolRounds),
	}
}

// splitInstructions separates the leading system message from the dialogue.
func splitInstructions(msgs []domain.InstructionMessage) (string, []*genai.Content) {
	var system string
	var contents []*genai.Content

	for _, m := range msgs {
		switch m.Role {
		case "system":
			system = m.Text
		case domain.RoleAgent:
			contents = append(contents, genai.NewContentFromText(m.Text, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Text, genai.RoleUser))
		}
	}
	return system, contents
}

func declarations(ts []domain.BoundTool) []*genai.FunctionDeclaration {
	out := make([]*genai.FunctionDeclaration, 0, len(ts))
	for _, t := range ts {
		out = append(out, &genai.FunctionDeclaration{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  toSchema(t.InputSchema()),
		})
	}
	return out
}

// toSchema converts the tools' plain JSON-schema maps into genai schemas.
// Only the object-of-strings shape the story tools use is supported.
func toSchema(m map[string]any) *genai.Schema {
	schema := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: map[string]*genai.Schema{},
	}

	if props, ok := m["properties"].(map[string]any); ok {
		for name, raw := range props {
			prop, _ := raw.(map[string]any)
			desc, _ := prop["description"].(string)
			schema.Properties[name] = &genai.Schema{
				Type:        genai.TypeString,
				Description: desc,
			}
		}
	}
	if required, ok := m["required"].([]string); ok {
		schema.Required = required
	}
	return schema
}
