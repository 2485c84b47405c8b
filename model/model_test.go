package model

import (
	"testing"

	"github.com/canopyml/canopy/bitmask"
	"github.com/canopyml/canopy/dataset"
	"github.com/canopyml/canopy/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDataset builds a 10-row binarized dataset over four original
// features. Binary column 0 tests original feature 3, so tests can
// tell canonical and original indices apart.
func testDataset(t *testing.T, config dataset.Config) *dataset.Dataset {
	t.Helper()
	features := []feature.Feature{
		feature.NewRationalFeature("age"),
		feature.NewCategoricalFeature("color", []string{"red", "green", "blue"}),
		feature.NewRationalFeature("height"),
		feature.NewRationalFeature("income"),
	}
	ds := dataset.New(config, features, 10)
	mustColumn(t, ds, 3, 100.0, bitmask.FromRows(2, 4, 6, 8)) // 0: income >= 100
	mustColumn(t, ds, 0, 30.0, bitmask.FromRows(3, 4, 5, 6, 7, 8, 9)) // 1: age >= 30
	mustColumn(t, ds, 0, 50.0, bitmask.FromRows(5, 6, 7, 8, 9))       // 2: age >= 50
	mustColumn(t, ds, 0, 70.0, bitmask.FromRows(8, 9))                // 3: age >= 70
	mustColumn(t, ds, 1, "red", bitmask.FromRows(0, 3))               // 4: color is red
	mustColumn(t, ds, 1, "green", bitmask.FromRows(1, 4))             // 5: color is green
	ds.AddTarget(bitmask.FromRows(2))    // class 0
	ds.AddTarget(bitmask.FromRows(0, 1)) // class 1
	return ds
}

func mustColumn(t *testing.T, ds *dataset.Dataset, featureIndex int, reference interface{}, mask *bitmask.Bitmask) int {
	t.Helper()
	index, err := ds.AddColumn(featureIndex, reference, mask)
	require.NoError(t, err)
	return index
}

func mustLeaf(t *testing.T, ds *dataset.Dataset, rows ...uint32) *Leaf {
	t.Helper()
	l, err := NewLeaf(bitmask.FromRows(rows...), ds)
	require.NoError(t, err)
	return l
}

func TestNewLeafComputesStatistics(t *testing.T) {
	ds := testDataset(t, dataset.Config{Regularization: 0.01})

	l := mustLeaf(t, ds, 0, 1, 2)
	assert.True(t, l.Terminal())
	assert.Equal(t, 1, l.Target())
	assert.InDelta(t, 0.1, l.Loss(), 1e-12)
	assert.Equal(t, 0.01, l.Complexity())
	assert.True(t, l.CaptureSet().Equal(bitmask.FromRows(0, 1, 2)))
}

func TestNewLeafRejectsEmptyCapture(t *testing.T) {
	ds := testDataset(t, dataset.Config{})

	_, err := NewLeaf(bitmask.New(), ds)
	assert.Equal(t, dataset.ErrNoStatistics, err)
}

func TestNewSplitResolvesOriginalFeature(t *testing.T) {
	ds := testDataset(t, dataset.Config{Regularization: 0.01})
	negative := mustLeaf(t, ds, 2)
	positive := mustLeaf(t, ds, 0, 1)

	s, err := NewSplit(0, negative, positive, ds)
	require.NoError(t, err)
	assert.False(t, s.Terminal())
	assert.Equal(t, 0, s.BinaryFeature())
	assert.Equal(t, 3, s.Feature())
	assert.Same(t, Model(negative), s.Negative())
	assert.Same(t, Model(positive), s.Positive())
}

func TestNewSplitRejectsBadInput(t *testing.T) {
	ds := testDataset(t, dataset.Config{})
	l := mustLeaf(t, ds, 0)

	_, err := NewSplit(99, l, l, ds)
	assert.Error(t, err)
	_, err = NewSplit(0, nil, l, ds)
	assert.Error(t, err)
	_, err = NewSplit(0, l, nil, ds)
	assert.Error(t, err)
}

func TestLossAndComplexityAreLeafSums(t *testing.T) {
	ds := testDataset(t, dataset.Config{Regularization: 0.01})
	a := mustLeaf(t, ds, 0, 1, 2)
	b := mustLeaf(t, ds, 3, 4)
	c := mustLeaf(t, ds, 5, 6, 7, 8, 9)

	inner, err := NewSplit(2, b, c, ds)
	require.NoError(t, err)
	root, err := NewSplit(1, a, inner, ds)
	require.NoError(t, err)

	assert.InDelta(t, a.Loss()+b.Loss()+c.Loss(), root.Loss(), 1e-12)
	assert.InDelta(t, 3*0.01, root.Complexity(), 1e-12)

	var partitionLoss, partitionComplexity float64
	for _, capture := range root.Partitions() {
		l, err := NewLeaf(capture, ds)
		require.NoError(t, err)
		partitionLoss += l.Loss()
		partitionComplexity += l.Complexity()
	}
	assert.InDelta(t, root.Loss(), partitionLoss, 1e-12)
	assert.InDelta(t, root.Complexity(), partitionComplexity, 1e-12)
}

func TestPartitionsFollowTraversalOrder(t *testing.T) {
	ds := testDataset(t, dataset.Config{})
	a := mustLeaf(t, ds, 0)
	b := mustLeaf(t, ds, 1)
	c := mustLeaf(t, ds, 2)

	inner, err := NewSplit(2, b, c, ds)
	require.NoError(t, err)
	root, err := NewSplit(1, a, inner, ds)
	require.NoError(t, err)

	parts := root.Partitions()
	require.Len(t, parts, 3)
	assert.True(t, parts[0].Equal(bitmask.FromRows(0)))
	assert.True(t, parts[1].Equal(bitmask.FromRows(1)))
	assert.True(t, parts[2].Equal(bitmask.FromRows(2)))
}

func TestLeavesWithIdenticalCapturesAreEqual(t *testing.T) {
	ds := testDataset(t, dataset.Config{})
	a := mustLeaf(t, ds, 0, 1, 2)
	b := mustLeaf(t, ds, 0, 1, 2)
	c := mustLeaf(t, ds, 0, 1)

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}

func TestEqualityIgnoresSplitFeature(t *testing.T) {
	ds := testDataset(t, dataset.Config{})
	t1, err := NewSplit(0, mustLeaf(t, ds, 0), mustLeaf(t, ds, 1), ds)
	require.NoError(t, err)
	t2, err := NewSplit(4, mustLeaf(t, ds, 0), mustLeaf(t, ds, 1), ds)
	require.NoError(t, err)

	// different split features, same leaf partition in the same order
	assert.True(t, t1.Equal(t2))
	assert.Equal(t, t1.Hash(), t2.Hash())
}

func TestEqualityIsTraversalOrderSensitive(t *testing.T) {
	ds := testDataset(t, dataset.Config{})
	t1, err := NewSplit(0, mustLeaf(t, ds, 0), mustLeaf(t, ds, 1), ds)
	require.NoError(t, err)
	t2, err := NewSplit(4, mustLeaf(t, ds, 1), mustLeaf(t, ds, 0), ds)
	require.NoError(t, err)

	// same two leaf sets, swapped traversal order: NOT equal
	assert.False(t, t1.Equal(t2))
	assert.False(t, t2.Equal(t1))
}

func TestEqualityHandlesDifferentLeafCounts(t *testing.T) {
	ds := testDataset(t, dataset.Config{})
	single := mustLeaf(t, ds, 0, 1)
	pair, err := NewSplit(0, mustLeaf(t, ds, 0), mustLeaf(t, ds, 1), ds)
	require.NoError(t, err)

	assert.False(t, single.Equal(pair))
	assert.False(t, pair.Equal(single))
}

func TestPredictWalksTheTree(t *testing.T) {
	ds := testDataset(t, dataset.Config{})
	negative := mustLeaf(t, ds, 2)    // predicts class 0
	positive := mustLeaf(t, ds, 0, 1) // predicts class 1
	s, err := NewSplit(0, negative, positive, ds)
	require.NoError(t, err)

	withFeature := bitmask.FromRows(0)
	withoutFeature := bitmask.New()
	assert.Equal(t, 1, s.Predict(withFeature))
	assert.Equal(t, 0, s.Predict(withoutFeature))
}

func TestIdentifyAndTranslatorsAreOneTimeMetadata(t *testing.T) {
	ds := testDataset(t, dataset.Config{})
	l := mustLeaf(t, ds, 0)
	s, err := NewSplit(0, mustLeaf(t, ds, 0), mustLeaf(t, ds, 1), ds)
	require.NoError(t, err)

	assert.False(t, l.Identified())
	l.Identify(bitmask.FromRows(7))
	assert.True(t, l.Identified())

	assert.Empty(t, s.SelfTranslation())
	s.TranslateSelf(Translation{1, 2, 3})
	assert.Equal(t, Translation{1, 2, 3}, s.SelfTranslation())
	s.TranslateNegatives(Translation{4})
	s.TranslatePositives(Translation{5})
	assert.False(t, s.Identified())
	s.Identify(bitmask.FromRows(0))
	assert.True(t, s.Identified())
}
