package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/concilio-labs/concilio/internal/adapters/storage/memory"
	"github.com/concilio-labs/concilio/internal/domain"
)

func TestFactStorePutGet(t *testing.T) {
	store := memory.NewFactStore()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "stories", "u1_user")
	require.NoError(t, err)
	assert.False(t, ok)

	err = store.Put(ctx, "stories", "u1_user", domain.StoryRecord{Content: "first"})
	require.NoError(t, err)

	rec, ok, err := store.Get(ctx, "stories", "u1_user")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "first", rec.Content)
}

func TestFactStoreLastWriteWins(t *testing.T) {
	store := memory.NewFactStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "stories", "u1_user", domain.StoryRecord{Content: "old"}))
	require.NoError(t, store.Put(ctx, "stories", "u1_user", domain.StoryRecord{Content: "new"}))

	rec, ok, err := store.Get(ctx, "stories", "u1_user")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", rec.Content)
}

func TestFactStoreConcurrentDistinctKeys(t *testing.T) {
	store := memory.NewFactStore()
	ctx := context.Background()

	const writers = 16
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("u%d_user", i)
			_ = store.Put(ctx, "stories", key, domain.StoryRecord{Content: key})
		}(i)
	}
	wg.Wait()

	for i := 0; i < writers; i++ {
		key := fmt.Sprintf("u%d_user", i)
		rec, ok, err := store.Get(ctx, "stories", key)
		require.NoError(t, err)
		require.True(t, ok, "missing %s", key)
		assert.Equal(t, key, rec.Content)
	}
}

func TestThreadStoreAppendAndHistoryOrder(t *testing.T) {
	store := memory.NewThreadStore()
	ctx := context.Background()
	key := domain.ThreadKey("advocate::s-1")

	for i := 0; i < 3; i++ {
		err := store.AppendMessage(ctx, &domain.ThreadMessage{
			ID:        domain.MessageID(fmt.Sprintf("m-%d", i)),
			ThreadKey: key,
			Author:    domain.RoleUser,
			Text:      fmt.Sprintf("msg %d", i),
			CreatedAt: time.Now(),
		})
		require.NoError(t, err)
	}

	history, err := store.History(ctx, key)
	require.NoError(t, err)
	require.Len(t, history, 3)
	for i, msg := range history {
		assert.Equal(t, fmt.Sprintf("msg %d", i), msg.Text)
	}
}

func TestThreadStoreIsolatesThreads(t *testing.T) {
	store := memory.NewThreadStore()
	ctx := context.Background()

	err := store.AppendMessage(ctx, &domain.ThreadMessage{
		ID: "m-1", ThreadKey: "advocate::s-1", Author: domain.RoleUser, Text: "hi",
	})
	require.NoError(t, err)

	other, err := store.History(ctx, "arbiter::s-1")
	require.NoError(t, err)
	assert.Empty(t, other)
}
