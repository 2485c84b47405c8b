/*
Package feature describes the original dataset features a decision
tree splits on: their names and their value domains. The domain kind
decides how the N-ary summarization of a tree renders split guards:
numeric domains produce half-open intervals, categorical domains
produce membership tests.
*/
package feature

import (
	"fmt"
	"math"
)

/*
Kind identifies the value domain of a feature.
*/
type Kind string

const (
	// Integral is the domain of whole numbers.
	Integral = Kind("integral")
	// Rational is the domain of real numbers.
	Rational = Kind("rational")
	// Categorical is a finite domain of named values.
	Categorical = Kind("categorical")
)

/*
Numeric returns true for the ordered numeric kinds, on which split
references are thresholds rather than category values.
*/
func (k Kind) Numeric() bool {
	return k == Integral || k == Rational
}

/*
Feature represents a property that can be observed on a dataset row.

Its Name method returns the name of the feature.

Its Kind method returns the value domain of the feature.

Its Valid method takes a candidate value and returns a boolean
indicating whether the value belongs to the feature domain.
*/
type Feature interface {
	Name() string
	Kind() Kind
	Valid(interface{}) (bool, error)
}

/*
NumericFeature represents a property with an ordered numeric domain,
either integral or rational.
*/
type NumericFeature struct {
	name string
	kind Kind
}

/*
CategoricalFeature represents a property that can only take a value
among a finite set of named values.
*/
type CategoricalFeature struct {
	name            string
	availableValues []string
}

/*
NewIntegralFeature takes a name string and returns a numeric feature
over the whole numbers with the given name.
*/
func NewIntegralFeature(name string) *NumericFeature {
	return &NumericFeature{name, Integral}
}

/*
NewRationalFeature takes a name string and returns a numeric feature
over the real numbers with the given name.
*/
func NewRationalFeature(name string) *NumericFeature {
	return &NumericFeature{name, Rational}
}

/*
NewCategoricalFeature takes a name string and a slice of available
value strings and returns a categorical feature with the given name
and available values.
*/
func NewCategoricalFeature(name string, availableValues []string) *CategoricalFeature {
	return &CategoricalFeature{name, availableValues}
}

/*
Name returns a string with the name of the feature
*/
func (nf *NumericFeature) Name() string {
	return nf.name
}

/*
Kind returns Integral or Rational depending on how the feature was
declared.
*/
func (nf *NumericFeature) Kind() Kind {
	return nf.kind
}

/*
Valid receives an interface value and returns a boolean and an error.
It returns true and nil when the value is a float64 belonging to the
feature domain; integral features additionally require the value to be
a whole number. Otherwise it returns false and an error describing the
reason.
*/
func (nf *NumericFeature) Valid(value interface{}) (bool, error) {
	if value == nil {
		return true, nil
	}
	fv, ok := value.(float64)
	if !ok {
		return false, fmt.Errorf("%s feature %s expects float64 value, got %T value", nf.kind, nf.name, value)
	}
	if nf.kind == Integral && fv != math.Trunc(fv) {
		return false, fmt.Errorf("integral feature %s got fractional value %v", nf.name, fv)
	}
	return true, nil
}

func (nf *NumericFeature) String() string {
	return nf.name
}

/*
Name returns a string with the name of the feature
*/
func (cf *CategoricalFeature) Name() string {
	return cf.name
}

/*
Kind returns Categorical.
*/
func (cf *CategoricalFeature) Kind() Kind {
	return Categorical
}

/*
Valid receives an interface value and returns a boolean and an error.
When the value parameter is included in the available values of the
feature, the method returns true and nil. Otherwise it returns false
and an error describing the reason.
*/
func (cf *CategoricalFeature) Valid(value interface{}) (bool, error) {
	if value == nil {
		return true, nil
	}
	vs, ok := value.(string)
	if !ok {
		return false, fmt.Errorf("categorical feature %s expects string value, got %T value", cf.name, value)
	}
	for _, av := range cf.availableValues {
		if av == vs {
			return true, nil
		}
	}
	return false, fmt.Errorf("categorical feature %s got unknown value %s", cf.name, vs)
}

/*
AvailableValues returns a string slice with the values available for
the feature
*/
func (cf *CategoricalFeature) AvailableValues() []string {
	return cf.availableValues
}

func (cf *CategoricalFeature) String() string {
	return cf.name
}
