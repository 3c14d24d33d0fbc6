package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/concilio-labs/concilio/internal/domain"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "concilio.db")
	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

func TestPutGetRoundTrip(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "stories", "u1_user")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put(ctx, "stories", "u1_user", domain.StoryRecord{Content: "hers"}))

	rec, ok, err := store.Get(ctx, "stories", "u1_user")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hers", rec.Content)
}

func TestPutIsLastWriteWins(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "stories", "u1_wife", domain.StoryRecord{Content: "v1"}))
	require.NoError(t, store.Put(ctx, "stories", "u1_wife", domain.StoryRecord{Content: "v2"}))

	rec, ok, err := store.Get(ctx, "stories", "u1_wife")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v2", rec.Content)
}

func TestDurableAcrossReopen(t *testing.T) {
	store, path := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "stories", "u1_user", domain.StoryRecord{Content: "kept"}))
	require.NoError(t, store.AppendMessage(ctx, &domain.ThreadMessage{
		ID:        "m-1",
		ThreadKey: "advocate::s-1",
		Author:    domain.RoleUser,
		Text:      "hello",
		CreatedAt: time.Now(),
	}))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	rec, ok, err := reopened.Get(ctx, "stories", "u1_user")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "kept", rec.Content)

	history, err := reopened.History(ctx, "advocate::s-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "hello", history[0].Text)
}

func TestHistoryOrderAndIsolation(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	texts := []string{"first", "second", "third"}
	for i, text := range texts {
		require.NoError(t, store.AppendMessage(ctx, &domain.ThreadMessage{
			ID:        domain.MessageID(text),
			ThreadKey: "arbiter::s-1",
			Author:    domain.RoleUser,
			Text:      text,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Millisecond),
		}))
	}

	history, err := store.History(ctx, "arbiter::s-1")
	require.NoError(t, err)
	require.Len(t, history, 3)
	for i, msg := range history {
		assert.Equal(t, texts[i], msg.Text)
	}

	other, err := store.History(ctx, "advocate::s-1")
	require.NoError(t, err)
	assert.Empty(t, other)
}
