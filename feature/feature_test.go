package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindNumeric(t *testing.T) {
	assert.True(t, Integral.Numeric())
	assert.True(t, Rational.Numeric())
	assert.False(t, Categorical.Numeric())
}

func TestNumericFeatureValid(t *testing.T) {
	age := NewIntegralFeature("age")
	assert.Equal(t, "age", age.Name())
	assert.Equal(t, Integral, age.Kind())

	ok, err := age.Valid(42.0)
	assert.True(t, ok)
	assert.NoError(t, err)

	ok, err = age.Valid(42.5)
	assert.False(t, ok)
	assert.Error(t, err)

	ok, err = age.Valid("42")
	assert.False(t, ok)
	assert.Error(t, err)

	ok, err = age.Valid(nil)
	assert.True(t, ok)
	assert.NoError(t, err)

	weight := NewRationalFeature("weight")
	assert.Equal(t, Rational, weight.Kind())
	ok, err = weight.Valid(42.5)
	assert.True(t, ok)
	assert.NoError(t, err)
}

func TestCategoricalFeatureValid(t *testing.T) {
	color := NewCategoricalFeature("color", []string{"red", "green"})
	assert.Equal(t, "color", color.Name())
	assert.Equal(t, Categorical, color.Kind())
	assert.Equal(t, []string{"red", "green"}, color.AvailableValues())

	ok, err := color.Valid("red")
	assert.True(t, ok)
	assert.NoError(t, err)

	ok, err = color.Valid("yellow")
	assert.False(t, ok)
	assert.Error(t, err)

	ok, err = color.Valid(3.0)
	assert.False(t, ok)
	assert.Error(t, err)
}
