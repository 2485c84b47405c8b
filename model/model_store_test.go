package model

import (
	"context"
	"testing"

	"github.com/canopyml/canopy/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreDeduplicatesEqualModels(t *testing.T) {
	ds := testDataset(t, dataset.Config{Regularization: 0.01})
	store := NewMemoryStore()
	ctx := context.Background()

	first := mustLeaf(t, ds, 0, 1)
	require.NoError(t, store.Add(ctx, first))

	// an independently built but equal model resolves to the
	// stored instance
	duplicate := mustLeaf(t, ds, 0, 1)
	found, err := store.Lookup(ctx, duplicate)
	require.NoError(t, err)
	assert.Same(t, Model(first), found)

	// adding the duplicate does not shadow the original
	require.NoError(t, store.Add(ctx, duplicate))
	found, err = store.Lookup(ctx, duplicate)
	require.NoError(t, err)
	assert.Same(t, Model(first), found)

	require.NoError(t, store.Close(ctx))
}

func TestMemoryStoreLookupMiss(t *testing.T) {
	ds := testDataset(t, dataset.Config{})
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, mustLeaf(t, ds, 0, 1)))

	found, err := store.Lookup(ctx, mustLeaf(t, ds, 2))
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestMemoryStoreDistinguishesTreesByPartitionOrder(t *testing.T) {
	ds := testDataset(t, dataset.Config{})
	store := NewMemoryStore()
	ctx := context.Background()

	forward, err := NewSplit(0, mustLeaf(t, ds, 0), mustLeaf(t, ds, 1), ds)
	require.NoError(t, err)
	backward, err := NewSplit(0, mustLeaf(t, ds, 1), mustLeaf(t, ds, 0), ds)
	require.NoError(t, err)
	require.NoError(t, store.Add(ctx, forward))

	found, err := store.Lookup(ctx, backward)
	require.NoError(t, err)
	assert.Nil(t, found)
}
