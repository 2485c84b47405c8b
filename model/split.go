package model

import (
	"fmt"

	"github.com/canopyml/canopy/bitmask"
	"github.com/canopyml/canopy/dataset"
)

/*
Split is an internal model: a binary split on one binarized feature,
owning a negative child for the rows on which the feature condition
does not hold and a positive child for the rows on which it does. It
stores no loss or complexity of its own; both are always the sums over
its children.
*/
type Split struct {
	binaryFeature int
	feature       int
	negative      Model
	positive      Model

	identifier         *bitmask.Bitmask
	selfTranslator     Translation
	negativeTranslator Translation
	positiveTranslator Translation
}

/*
NewSplit takes a binary feature index, the negative and positive child
models and a dataset, resolves the original feature behind the binary
one and returns the split. The constructor does not check that the
children's captured rows are disjoint and complete; that invariant
belongs to the caller, and canonicalization silently depends on it.
*/
func NewSplit(binaryFeature int, negative, positive Model, ds *dataset.Dataset) (*Split, error) {
	if negative == nil || positive == nil {
		return nil, fmt.Errorf("building split on binary feature %d: both children are required", binaryFeature)
	}
	feature, err := ds.OriginalFeature(binaryFeature)
	if err != nil {
		return nil, fmt.Errorf("building split: %v", err)
	}
	return &Split{
		binaryFeature: binaryFeature,
		feature:       feature,
		negative:      negative,
		positive:      positive,
	}, nil
}

/*
RestoreSplit rebuilds a finalized split from its stored parts, without
consulting a dataset. It is meant for codecs reading models back from
a store; the caller vouches for the values.
*/
func RestoreSplit(binaryFeature, feature int, negative, positive Model) *Split {
	return &Split{
		binaryFeature: binaryFeature,
		feature:       feature,
		negative:      negative,
		positive:      positive,
	}
}

/*
Terminal returns false.
*/
func (s *Split) Terminal() bool {
	return false
}

/*
BinaryFeature returns the canonical binary-feature index the split
tests.
*/
func (s *Split) BinaryFeature() int {
	return s.binaryFeature
}

/*
Feature returns the original dataset feature the binary feature was
derived from.
*/
func (s *Split) Feature() int {
	return s.feature
}

/*
Negative returns the child model for rows on which the split condition
does not hold.
*/
func (s *Split) Negative() Model {
	return s.negative
}

/*
Positive returns the child model for rows on which the split condition
holds.
*/
func (s *Split) Positive() Model {
	return s.positive
}

/*
Loss returns the sum of the losses of the leaves under the split.
*/
func (s *Split) Loss() float64 {
	return s.negative.Loss() + s.positive.Loss()
}

/*
Complexity returns the sum of the complexities of the leaves under the
split.
*/
func (s *Split) Complexity() float64 {
	return s.negative.Complexity() + s.positive.Complexity()
}

/*
Partitions returns the capture sets of the leaves under the split in
negative-then-positive depth-first order.
*/
func (s *Split) Partitions() []*bitmask.Bitmask {
	return s.appendPartitions(nil)
}

func (s *Split) appendPartitions(parts []*bitmask.Bitmask) []*bitmask.Bitmask {
	parts = s.negative.appendPartitions(parts)
	return s.positive.appendPartitions(parts)
}

/*
Hash returns the canonical hash of the model. Models inducing the same
partition sequence hash identically.
*/
func (s *Split) Hash() uint64 {
	return hashModel(s)
}

/*
Equal returns true if the other model induces the same partition
sequence, in traversal order.
*/
func (s *Split) Equal(other Model) bool {
	return equalModels(s, other)
}

/*
Predict tests the sample's bit for the split's binary feature and
delegates to the positive child when set, the negative child
otherwise.
*/
func (s *Split) Predict(sample *bitmask.Bitmask) int {
	if sample.Test(uint32(s.binaryFeature)) {
		return s.positive.Predict(sample)
	}
	return s.negative.Predict(sample)
}

/*
Identify assigns the search system's identifier to the split. Only the
presence of an identifier carries meaning.
*/
func (s *Split) Identify(identifier *bitmask.Bitmask) {
	s.identifier = identifier
}

/*
Identified returns true once an identifier has been assigned.
*/
func (s *Split) Identified() bool {
	return s.identifier != nil
}

/*
TranslateSelf assigns the split's own translation table.
*/
func (s *Split) TranslateSelf(translation Translation) {
	s.selfTranslator = translation
}

/*
SelfTranslation returns the split's own translation table; empty means
no translation is needed.
*/
func (s *Split) SelfTranslation() Translation {
	return s.selfTranslator
}

/*
TranslateNegatives assigns the translation table to apply to the
negative child's document when the split is projected.
*/
func (s *Split) TranslateNegatives(translation Translation) {
	s.negativeTranslator = translation
}

/*
TranslatePositives assigns the translation table to apply to the
positive child's document when the split is projected.
*/
func (s *Split) TranslatePositives(translation Translation) {
	s.positiveTranslator = translation
}

/*
Document returns the document form of the split: the binary and
original feature indices, the feature's domain kind and reference
value, and the documents of both children, each translated through its
assigned translator table if one was set.
*/
func (s *Split) Document(ds *dataset.Dataset) (*Node, error) {
	kind, err := ds.Kind(s.feature)
	if err != nil {
		return nil, fmt.Errorf("projecting split: %v", err)
	}
	reference, err := ds.Reference(s.binaryFeature)
	if err != nil {
		return nil, fmt.Errorf("projecting split: %v", err)
	}
	falseDoc, err := s.negative.Document(ds)
	if err != nil {
		return nil, err
	}
	trueDoc, err := s.positive.Document(ds)
	if err != nil {
		return nil, err
	}
	if len(s.negativeTranslator) > 0 {
		falseDoc, err = Translate(falseDoc, s.negative.SelfTranslation(), s.negativeTranslator, ds.FeatureCount())
		if err != nil {
			return nil, err
		}
	}
	if len(s.positiveTranslator) > 0 {
		trueDoc, err = Translate(trueDoc, s.positive.SelfTranslation(), s.positiveTranslator, ds.FeatureCount())
		if err != nil {
			return nil, err
		}
	}
	return &Node{
		Feature:     s.binaryFeature,
		OrigFeature: s.feature,
		Kind:        kind,
		Reference:   reference,
		False:       falseDoc,
		True:        trueDoc,
	}, nil
}

/*
Serialize renders the split document as JSON text, compact at indent 0
and indented by the given number of spaces otherwise. When the dataset
configuration asks for non-binary output the document is collapsed
into N-ary form first.
*/
func (s *Split) Serialize(ds *dataset.Dataset, indent int) (string, error) {
	return serializeModel(s, ds, indent)
}
