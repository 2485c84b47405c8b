package yaml

import (
	"testing"

	"github.com/canopyml/canopy/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFeaturesParsesAllKinds(t *testing.T) {
	md := []byte(`
features:
  age: integral
  weight: rational
  color:
    - red
    - green
    - blue
`)
	features, err := ReadFeatures(md)
	require.NoError(t, err)
	require.Len(t, features, 3)

	// declaration order is preserved, features are addressed by index
	assert.Equal(t, "age", features[0].Name())
	assert.Equal(t, feature.Integral, features[0].Kind())
	assert.Equal(t, "weight", features[1].Name())
	assert.Equal(t, feature.Rational, features[1].Kind())
	assert.Equal(t, "color", features[2].Name())
	assert.Equal(t, feature.Categorical, features[2].Kind())

	categorical, ok := features[2].(*feature.CategoricalFeature)
	require.True(t, ok)
	assert.Equal(t, []string{"red", "green", "blue"}, categorical.AvailableValues())
}

func TestReadFeaturesRejectsUnknownKind(t *testing.T) {
	_, err := ReadFeatures([]byte("features:\n  age: continuous\n"))
	assert.Error(t, err)
}

func TestReadFeaturesRejectsMissingMetadata(t *testing.T) {
	_, err := ReadFeatures([]byte("other: 1\n"))
	assert.Error(t, err)
}

func TestReadFeaturesFromMissingFile(t *testing.T) {
	_, err := ReadFeaturesFromFile("does/not/exist.yml")
	assert.Error(t, err)
}
