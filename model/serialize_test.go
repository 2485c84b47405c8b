package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/canopyml/canopy/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeLeafCompact(t *testing.T) {
	ds := testDataset(t, dataset.Config{Regularization: 0.01})
	l := mustLeaf(t, ds, 0, 1, 2)

	out, err := l.Serialize(ds, 0)
	require.NoError(t, err)
	assert.Equal(t, `{"prediction":1,"loss":0.1,"complexity":0.01}`, out)
}

func TestSerializeSplitDocument(t *testing.T) {
	ds := testDataset(t, dataset.Config{Regularization: 0.01})
	negative := mustLeaf(t, ds, 2)    // predicts class 0
	positive := mustLeaf(t, ds, 0, 1) // predicts class 1
	s, err := NewSplit(0, negative, positive, ds)
	require.NoError(t, err)

	out, err := s.Serialize(ds, 0)
	require.NoError(t, err)

	doc := map[string]interface{}{}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, float64(0), doc["feature"])
	assert.Equal(t, float64(3), doc["orig_feature"])
	falseDoc, ok := doc["false"].(map[string]interface{})
	require.True(t, ok)
	trueDoc, ok := doc["true"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(0), falseDoc["prediction"])
	assert.Equal(t, float64(1), trueDoc["prediction"])
}

func TestSerializeIndented(t *testing.T) {
	ds := testDataset(t, dataset.Config{Regularization: 0.01})
	l := mustLeaf(t, ds, 0, 1, 2)

	out, err := l.Serialize(ds, 4)
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "\n    \"loss\""))
}

func TestSerializeNonBinaryCollapsesDocument(t *testing.T) {
	ds := testDataset(t, dataset.Config{Regularization: 0.01, NonBinary: true})
	inner, err := NewSplit(2, mustLeaf(t, ds, 3, 4), mustLeaf(t, ds, 5, 6, 7, 8, 9), ds)
	require.NoError(t, err)
	root, err := NewSplit(1, mustLeaf(t, ds, 0, 1, 2), inner, ds)
	require.NoError(t, err)

	out, err := root.Serialize(ds, 0)
	require.NoError(t, err)

	doc := map[string]interface{}{}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	children, ok := doc["children"].([]interface{})
	require.True(t, ok)
	// both splits test the age feature, so the tree collapses into
	// one node with three interval-guarded children
	assert.Len(t, children, 3)
	_, hasFalse := doc["false"]
	assert.False(t, hasFalse)
}

func TestDocumentRoundTripsThroughJSON(t *testing.T) {
	ds := testDataset(t, dataset.Config{Regularization: 0.01})
	s, err := NewSplit(0, mustLeaf(t, ds, 2), mustLeaf(t, ds, 0, 1), ds)
	require.NoError(t, err)

	doc, err := s.Document(ds)
	require.NoError(t, err)
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	decoded := &Node{}
	require.NoError(t, json.Unmarshal(data, decoded))
	redata, err := json.Marshal(decoded)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(redata))
}
