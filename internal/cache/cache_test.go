package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFetchesOnceThenServesCached(t *testing.T) {
	store := NewStore(nil)
	var calls int

	fetch := func(context.Context) (any, error) {
		calls++
		return "value", nil
	}

	first, err := store.Get(context.Background(), "key", []Tag{TagItems}, fetch)
	require.NoError(t, err)
	assert.Equal(t, "value", first)

	second, err := store.Get(context.Background(), "key", []Tag{TagItems}, fetch)
	require.NoError(t, err)
	assert.Equal(t, "value", second)
	assert.Equal(t, 1, calls)
}

func TestFailedFetchCachesNothing(t *testing.T) {
	store := NewStore(nil)
	var calls int

	_, err := store.Get(context.Background(), "key", []Tag{TagItems}, func(context.Context) (any, error) {
		calls++
		return nil, errors.New("backend down")
	})
	require.Error(t, err)

	value, err := store.Get(context.Background(), "key", []Tag{TagItems}, func(context.Context) (any, error) {
		calls++
		return "recovered", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "recovered", value)
	assert.Equal(t, 2, calls, "a failure must not satisfy later reads")
}

func TestInvalidateTriggersRefetchOfMatchingTagsOnly(t *testing.T) {
	store := NewStore(nil)
	var itemCalls, receiptCalls int

	itemFetch := func(context.Context) (any, error) {
		itemCalls++
		return itemCalls, nil
	}
	receiptFetch := func(context.Context) (any, error) {
		receiptCalls++
		return receiptCalls, nil
	}

	_, err := store.Get(context.Background(), "items", []Tag{TagItems}, itemFetch)
	require.NoError(t, err)
	_, err = store.Get(context.Background(), "receipts", []Tag{TagReceipts}, receiptFetch)
	require.NoError(t, err)

	store.Invalidate(TagItems)

	_, err = store.Get(context.Background(), "items", []Tag{TagItems}, itemFetch)
	require.NoError(t, err)
	_, err = store.Get(context.Background(), "receipts", []Tag{TagReceipts}, receiptFetch)
	require.NoError(t, err)

	assert.Equal(t, 2, itemCalls)
	assert.Equal(t, 1, receiptCalls)
}

func TestConcurrentGetsShareOneFetch(t *testing.T) {
	store := NewStore(nil)
	var calls atomic.Int32
	release := make(chan struct{})

	fetch := func(context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "shared", nil
	}

	const readers = 8
	results := make([]any, readers)
	errs := make([]error, readers)
	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = store.Get(context.Background(), "key", []Tag{TagItems}, fetch)
		}(i)
	}

	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load(), "concurrent reads must share one fetch")
	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, "shared", results[i])
	}
}

func TestWaiterHonorsContextCancellation(t *testing.T) {
	store := NewStore(nil)
	started := make(chan struct{})
	release := make(chan struct{})
	defer close(release)

	go func() {
		_, _ = store.Get(context.Background(), "key", nil, func(context.Context) (any, error) {
			close(started)
			<-release
			return "late", nil
		})
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := store.Get(ctx, "key", nil, func(context.Context) (any, error) {
		return "second", nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSubscribersReceiveInvalidatedTags(t *testing.T) {
	store := NewStore(nil)
	var got [][]Tag
	cancel := store.Subscribe(func(tags []Tag) { got = append(got, tags) })

	store.Invalidate(TagDashboard, TagReceipts)
	require.Len(t, got, 1)
	assert.Equal(t, []Tag{TagDashboard, TagReceipts}, got[0])

	cancel()
	store.Invalidate(TagItems)
	assert.Len(t, got, 1)
}

func TestClearDropsEverything(t *testing.T) {
	store := NewStore(nil)
	_, err := store.Get(context.Background(), "key", []Tag{TagCurrentUser}, func(context.Context) (any, error) {
		return "cached", nil
	})
	require.NoError(t, err)

	store.Clear()
	_, ok := store.Peek("key")
	assert.False(t, ok)
}

func TestFetchTyped(t *testing.T) {
	store := NewStore(nil)
	value, err := Fetch(context.Background(), store, "key", []Tag{TagItems}, func(context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, value)
}
