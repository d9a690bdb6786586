package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	s := &Session{ID: "abc"}
	require.NoError(t, store.Create(ctx, s))
	assert.Equal(t, int64(1), s.Version)

	assert.ErrorIs(t, store.Create(ctx, &Session{ID: "abc"}), ErrAlreadyExists)

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	got.History = append(got.History, "hello")
	require.NoError(t, store.Update(ctx, got))
	assert.Equal(t, int64(2), got.Version)

	again, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, again.History)

	require.NoError(t, store.Delete(ctx, "abc"))
	missing, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryStore_VersionConflict(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Create(ctx, &Session{ID: "abc"}))

	first, _ := store.Get(ctx, "abc")
	second, _ := store.Get(ctx, "abc")

	first.History = []string{"one"}
	require.NoError(t, store.Update(ctx, first))

	second.History = []string{"two"}
	assert.ErrorIs(t, store.Update(ctx, second), ErrVersionConflict)
}

func TestMemoryStore_UpdateMissing(t *testing.T) {
	store := NewMemoryStore()
	err := store.Update(context.Background(), &Session{ID: "ghost", Version: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Create(ctx, &Session{ID: "abc", History: []string{"a"}}))

	got, _ := store.Get(ctx, "abc")
	got.History[0] = "mutated"

	again, _ := store.Get(ctx, "abc")
	assert.Equal(t, []string{"a"}, again.History)
}

func TestAppendMessage(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, AppendMessage([]string{"a"}, "b", 0))
	assert.Equal(t, []string{"b", "c"}, AppendMessage([]string{"a", "b"}, "c", 2))
	assert.Equal(t, []string{"x"}, AppendMessage(nil, "x", 5))
}
