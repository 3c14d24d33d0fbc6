package tools

import (
	"context"
	"fmt"

	"github.com/concilio-labs/concilio/internal/domain"
	"github.com/concilio-labs/concilio/internal/identity"
	"github.com/concilio-labs/concilio/internal/observability"
	"github.com/concilio-labs/concilio/internal/registry"
)

// RecordStoryTool persists one side's account under "{userId}_{side}".
// The advocate's variant writes the user side, the opposing role-play's
// variant writes the wife side; neither can reach the other key because the
// side is fixed at construction.
type RecordStoryTool struct {
	store domain.FactStore
	side  domain.StorySide
	name  string
	desc  string
}

// NewRecordOwnGrievance builds the advocate's write tool.
func NewRecordOwnGrievance(store domain.FactStore) *RecordStoryTool {
	return &RecordStoryTool{
		store: store,
		side:  domain.SideUser,
		name:  registry.ToolRecordOwnGrievance,
		desc:  "Record the user's own account of the dispute so the arbiter can read it later.",
	}
}

// NewRecordOpposingAccount builds the opposing role-play's write tool.
func NewRecordOpposingAccount(store domain.FactStore) *RecordStoryTool {
	return &RecordStoryTool{
		store: store,
		side:  domain.SideWife,
		name:  registry.ToolRecordOpposingAccount,
		desc:  "Record the role-played account of the other party so the arbiter can read it later.",
	}
}

func (t *RecordStoryTool) Name() string        { return t.name }
func (t *RecordStoryTool) Description() string { return t.desc }

func (t *RecordStoryTool) InputSchema() map[string]any {
	return contentSchema("A faithful summary of the account, in the user's language.")
}

// Call expects an input with this shape:
//
//	{"content": "She overspent on furniture..."}
//
// UserID comes in ToolContext. A missing identity fails before the store is
// touched.
func (t *RecordStoryTool) Call(
	ctx context.Context,
	tctx ToolContext,
	input map[string]any,
) (map[string]any, error) {

	key, err := identity.FactKey(tctx.UserID, t.side)
	if err != nil {
		return nil, err
	}

	log := observability.LoggerFromContext(ctx).With(
		"tool", t.name,
		"namespace", domain.NamespaceStories,
		"key", key,
	)

	content := getString(input, "content")
	if content == "" {
		log.Warn("tool call rejected", "outcome", "empty content")
		return nil, fmt.Errorf("%s: content is required", t.name)
	}

	rec := domain.StoryRecord{Content: content}
	if err := t.store.Put(ctx, domain.NamespaceStories, key, rec); err != nil {
		log.Error("tool call failed", "outcome", "store fault", "error", err)
		return nil, &domain.StoreFault{Namespace: domain.NamespaceStories, Key: key, Err: err}
	}

	log.Info("tool call completed", "outcome", "ok")

	return map[string]any{
		"status":       "ok",
		"confirmation": "The account has been recorded for the arbiter.",
	}, nil
}

// FetchBothAccountsTool is the arbiter's combined read: both sides in one
// operation, each independently tolerant of being absent.
type FetchBothAccountsTool struct {
	store domain.FactStore
}

func NewFetchBothAccounts(store domain.FactStore) *FetchBothAccountsTool {
	return &FetchBothAccountsTool{store: store}
}

func (t *FetchBothAccountsTool) Name() string { return registry.ToolFetchBothAccounts }

func (t *FetchBothAccountsTool) Description() string {
	return "Fetch both recorded accounts of the dispute: the user's side and the role-played other side."
}

func (t *FetchBothAccountsTool) InputSchema() map[string]any { return emptySchema() }

func (t *FetchBothAccountsTool) Call(
	ctx context.Context,
	tctx ToolContext,
	_ map[string]any,
) (map[string]any, error) {

	userSide, err := t.readSide(ctx, tctx.UserID, domain.SideUser)
	if err != nil {
		return nil, err
	}
	wifeSide, err := t.readSide(ctx, tctx.UserID, domain.SideWife)
	if err != nil {
		return nil, err
	}

	// Stable order: user side first, wife side second.
	combined := fmt.Sprintf("User's side: %s\nOther side: %s", userSide, wifeSide)

	return map[string]any{
		"user_side": userSide,
		"wife_side": wifeSide,
		"combined":  combined,
	}, nil
}

func (t *FetchBothAccountsTool) readSide(
	ctx context.Context,
	userID domain.UserID,
	side domain.StorySide,
) (string, error) {

	key, err := identity.FactKey(userID, side)
	if err != nil {
		return "", err
	}

	log := observability.LoggerFromContext(ctx).With(
		"tool", registry.ToolFetchBothAccounts,
		"namespace", domain.NamespaceStories,
		"key", key,
	)

	rec, ok, err := t.store.Get(ctx, domain.NamespaceStories, key)
	if err != nil {
		log.Error("tool call failed", "outcome", "store fault", "error", err)
		return "", &domain.StoreFault{Namespace: domain.NamespaceStories, Key: key, Err: err}
	}
	if !ok {
		log.Info("tool call completed", "outcome", "absent")
		return domain.NotYetProvided, nil
	}

	log.Info("tool call completed", "outcome", "ok")
	return rec.Content, nil
}

// Toolbox holds the full tool set, indexed for selection by the registry's
// authorized tool names.
type Toolbox struct {
	byName map[string]Tool
}

// NewToolbox builds the three story tools around one fact store.
func NewToolbox(store domain.FactStore) *Toolbox {
	ts := []Tool{
		NewRecordOwnGrievance(store),
		NewRecordOpposingAccount(store),
		NewFetchBothAccounts(store),
	}

	byName := make(map[string]Tool, len(ts))
	for _, t := range ts {
		byName[t.Name()] = t
	}
	return &Toolbox{byName: byName}
}

// Select returns the tools for the given names, in the given order. Unknown
// names indicate a registry/toolbox mismatch and fail loudly.
func (b *Toolbox) Select(names []string) ([]Tool, error) {
	out := make([]Tool, 0, len(names))
	for _, name := range names {
		t, ok := b.byName[name]
		if !ok {
			return nil, fmt.Errorf("toolbox: no tool named %q", name)
		}
		out = append(out, t)
	}
	return out, nil
}
