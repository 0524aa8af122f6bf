package main

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "scores.json"))
}

func TestFileStoreLoadMissingFile(t *testing.T) {
	store := newTestFileStore(t)

	scores, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, scores)
	assert.Empty(t, scores)
}

func TestFileStoreSubmitScore(t *testing.T) {
	ctx := context.Background()
	store := newTestFileStore(t)

	for _, s := range []float64{50, 90, 70} {
		saved, err := store.SubmitScore(ctx, s)
		require.NoError(t, err)
		assert.Equal(t, s, saved)
	}

	scores, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []float64{90, 70, 50}, scores)

	raw, err := os.ReadFile(store.path)
	require.NoError(t, err)
	assert.JSONEq(t, `[90,70,50]`, string(raw))
}

func TestFileStoreKeepsTopTen(t *testing.T) {
	ctx := context.Background()
	store := newTestFileStore(t)

	for s := 1; s <= 11; s++ {
		_, err := store.SubmitScore(ctx, float64(s))
		require.NoError(t, err)
	}

	scores, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []float64{11, 10, 9, 8, 7, 6, 5, 4, 3, 2}, scores)
}

func TestFileStoreCorruptFile(t *testing.T) {
	ctx := context.Background()
	store := newTestFileStore(t)
	require.NoError(t, os.WriteFile(store.path, []byte("{not json"), 0o644))

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, ErrStorageRead)

	_, err = store.SubmitScore(ctx, 10)
	assert.ErrorIs(t, err, ErrStorageRead)

	raw, err := os.ReadFile(store.path)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(raw))
}

func TestFileStoreEmptyFileIsCorrupt(t *testing.T) {
	store := newTestFileStore(t)
	require.NoError(t, os.WriteFile(store.path, []byte{}, 0o644))

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, ErrStorageRead)
}

func TestFileStorePing(t *testing.T) {
	store := newTestFileStore(t)
	assert.NoError(t, store.Ping(context.Background()))

	missing := NewFileStore(filepath.Join(t.TempDir(), "gone", "scores.json"))
	assert.Error(t, missing.Ping(context.Background()))
}

func TestFileStoreNullFile(t *testing.T) {
	store := newTestFileStore(t)
	require.NoError(t, os.WriteFile(store.path, []byte("null"), 0o644))

	scores, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []float64{}, scores)
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	store := newTestFileStore(t)

	_, err := store.SubmitScore(context.Background(), 1)
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Dir(store.path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "scores.json", entries[0].Name())
}

func TestFileStoreConcurrentSubmits(t *testing.T) {
	ctx := context.Background()
	store := newTestFileStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			_, err := store.SubmitScore(ctx, float64(score))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	scores, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []float64{49, 48, 47, 46, 45, 44, 43, 42, 41, 40}, scores)
}
