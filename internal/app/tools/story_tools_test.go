package tools_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/concilio-labs/concilio/internal/adapters/storage/memory"
	"github.com/concilio-labs/concilio/internal/app/tools"
	"github.com/concilio-labs/concilio/internal/domain"
	"github.com/concilio-labs/concilio/internal/registry"
)

// recordingStore wraps a real store and keeps an audit trail of mutations,
// so tests can verify which tool wrote which key.
type recordingStore struct {
	domain.FactStore
	puts []string // "namespace/key"
}

func (r *recordingStore) Put(ctx context.Context, namespace, key string, rec domain.StoryRecord) error {
	r.puts = append(r.puts, namespace+"/"+key)
	return r.FactStore.Put(ctx, namespace, key, rec)
}

func newRecordingStore() *recordingStore {
	return &recordingStore{FactStore: memory.NewFactStore()}
}

func tctx(userID string) tools.ToolContext {
	return tools.ToolContext{UserID: domain.UserID(userID), SessionID: "s-1"}
}

func TestRecordOwnGrievanceWritesUserKeyOnly(t *testing.T) {
	store := newRecordingStore()
	tool := tools.NewRecordOwnGrievance(store)

	out, err := tool.Call(context.Background(), tctx("u1"), map[string]any{
		"content": "She overspent on furniture",
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", out["status"])

	assert.Equal(t, []string{"stories/u1_user"}, store.puts)
}

func TestRecordOpposingAccountWritesWifeKeyOnly(t *testing.T) {
	store := newRecordingStore()
	tool := tools.NewRecordOpposingAccount(store)

	_, err := tool.Call(context.Background(), tctx("u1"), map[string]any{
		"content": "I bought only what the house needed",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"stories/u1_wife"}, store.puts)
}

func TestRecordStoryMissingIdentityBeforeStore(t *testing.T) {
	store := newRecordingStore()
	tool := tools.NewRecordOwnGrievance(store)

	_, err := tool.Call(context.Background(), tools.ToolContext{}, map[string]any{
		"content": "anything",
	})

	var missing *domain.MissingIdentityError
	require.True(t, errors.As(err, &missing))
	assert.Empty(t, store.puts, "store must not be touched when identity is missing")
}

func TestRecordStoryRejectsEmptyContent(t *testing.T) {
	store := newRecordingStore()
	tool := tools.NewRecordOwnGrievance(store)

	_, err := tool.Call(context.Background(), tctx("u1"), map[string]any{})
	require.Error(t, err)
	assert.Empty(t, store.puts)
}

func TestFetchBothAccountsBeforeAnyWrite(t *testing.T) {
	store := memory.NewFactStore()
	tool := tools.NewFetchBothAccounts(store)

	out, err := tool.Call(context.Background(), tctx("u1"), nil)
	require.NoError(t, err)

	assert.Equal(t, domain.NotYetProvided, out["user_side"])
	assert.Equal(t, domain.NotYetProvided, out["wife_side"])
}

func TestFetchBothAccountsAfterBothWrites(t *testing.T) {
	store := memory.NewFactStore()
	ctx := context.Background()

	_, err := tools.NewRecordOwnGrievance(store).Call(ctx, tctx("u1"), map[string]any{
		"content": "She overspent on furniture",
	})
	require.NoError(t, err)

	_, err = tools.NewRecordOpposingAccount(store).Call(ctx, tctx("u1"), map[string]any{
		"content": "I bought only what the house needed",
	})
	require.NoError(t, err)

	out, err := tools.NewFetchBothAccounts(store).Call(ctx, tctx("u1"), nil)
	require.NoError(t, err)

	assert.Equal(t, "She overspent on furniture", out["user_side"])
	assert.Equal(t, "I bought only what the house needed", out["wife_side"])
	assert.Equal(t,
		"User's side: She overspent on furniture\nOther side: I bought only what the house needed",
		out["combined"])
}

func TestRecordStoryIdempotentOverwrite(t *testing.T) {
	store := memory.NewFactStore()
	ctx := context.Background()
	tool := tools.NewRecordOwnGrievance(store)

	in := map[string]any{"content": "same account"}
	_, err := tool.Call(ctx, tctx("u1"), in)
	require.NoError(t, err)
	_, err = tool.Call(ctx, tctx("u1"), in)
	require.NoError(t, err)

	rec, ok, err := store.Get(ctx, domain.NamespaceStories, "u1_user")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "same account", rec.Content)
}

func TestToolboxSelect(t *testing.T) {
	box := tools.NewToolbox(memory.NewFactStore())

	ts, err := box.Select([]string{registry.ToolFetchBothAccounts})
	require.NoError(t, err)
	require.Len(t, ts, 1)
	assert.Equal(t, registry.ToolFetchBothAccounts, ts[0].Name())

	_, err = box.Select([]string{"no_such_tool"})
	require.Error(t, err)
}
