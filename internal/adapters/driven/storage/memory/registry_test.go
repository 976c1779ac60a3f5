package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/split-engine/internal/core/domain"
)

func testDocument(content string) *domain.Document {
	hash := domain.ContentHash([]byte(content))
	return &domain.Document{
		ID:           domain.DocumentID(hash),
		OriginalName: "notes.txt",
		Extension:    ".txt",
		ContentHash:  hash,
		Text:         content,
		LengthChars:  len(content),
		IngestedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	require.NotNil(t, r)
	for _, s := range r.shards {
		assert.NotNil(t, s)
	}

	n, err := r.Len(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRegistry_PutAndGet(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()
	doc := testDocument("hello")

	stored, err := r.Put(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, *doc, *stored)

	got, err := r.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Text)
	assert.Equal(t, "notes.txt", got.OriginalName)
}

func TestRegistry_Put_FirstWriterWins(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	first := testDocument("same bytes")
	second := testDocument("same bytes")
	second.OriginalName = "renamed.txt"

	_, err := r.Put(ctx, first)
	require.NoError(t, err)

	stored, err := r.Put(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", stored.OriginalName)

	n, err := r.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRegistry_Put_CopiesDocument(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()
	doc := testDocument("copy")

	_, err := r.Put(ctx, doc)
	require.NoError(t, err)
	doc.Text = "mutated"

	got, err := r.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "copy", got.Text)
}

func TestRegistry_Get_NotFound(t *testing.T) {
	r := NewRegistry()

	_, err := r.Get(context.Background(), "0123456789abcdef")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)

	_, err = r.Get(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestRegistry_ShardFor(t *testing.T) {
	r := NewRegistry()

	assert.Same(t, r.shards[0], r.shardFor("0abc"))
	assert.Same(t, r.shards[10], r.shardFor("a123"))
	assert.Same(t, r.shards[15], r.shardFor("F000"))
	assert.Same(t, r.shards[0], r.shardFor(""))
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			doc := testDocument(fmt.Sprintf("document %d", i%25))
			stored, err := r.Put(ctx, doc)
			assert.NoError(t, err)

			got, err := r.Get(ctx, stored.ID)
			assert.NoError(t, err)
			assert.Equal(t, stored.Text, got.Text)
		}(i)
	}
	wg.Wait()

	n, err := r.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25, n)
}
