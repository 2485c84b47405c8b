package model

import (
	"github.com/canopyml/canopy/bitmask"
	"github.com/canopyml/canopy/dataset"
)

/*
Leaf is a terminal model: it predicts a single target class for every
row in its capture set. Its loss is the summary-statistics loss of
that prediction and its complexity is the dataset's regularization
constant at construction time.
*/
type Leaf struct {
	target     int
	loss       float64
	complexity float64
	captureSet *bitmask.Bitmask

	identifier     *bitmask.Bitmask
	selfTranslator Translation
}

/*
NewLeaf takes a non-empty capture set and a dataset and returns a leaf
predicting the optimal target class for the captured rows. It returns
dataset.ErrNoStatistics if the capture set is empty; callers are
expected to reject empty row sets before constructing leaves.
*/
func NewLeaf(captureSet *bitmask.Bitmask, ds *dataset.Dataset) (*Leaf, error) {
	stats, err := ds.SummaryStatistics(captureSet)
	if err != nil {
		return nil, err
	}
	return &Leaf{
		target:     stats.Optimal,
		loss:       stats.MaxLoss,
		complexity: ds.Config().Regularization,
		captureSet: captureSet,
	}, nil
}

/*
RestoreLeaf rebuilds a finalized leaf from its stored parts, without
consulting a dataset. It is meant for codecs reading models back from
a store; the caller vouches for the values.
*/
func RestoreLeaf(target int, loss, complexity float64, captureSet *bitmask.Bitmask) *Leaf {
	return &Leaf{target: target, loss: loss, complexity: complexity, captureSet: captureSet}
}

/*
Terminal returns true.
*/
func (l *Leaf) Terminal() bool {
	return true
}

/*
Target returns the class index the leaf predicts.
*/
func (l *Leaf) Target() int {
	return l.target
}

/*
CaptureSet returns the set of dataset rows reaching the leaf. The set
may be shared with other models and with caches; it must not be
mutated.
*/
func (l *Leaf) CaptureSet() *bitmask.Bitmask {
	return l.captureSet
}

/*
Loss returns the loss of predicting the leaf's target class over its
capture set.
*/
func (l *Leaf) Loss() float64 {
	return l.loss
}

/*
Complexity returns the regularization charge of the leaf.
*/
func (l *Leaf) Complexity() float64 {
	return l.complexity
}

/*
Partitions returns the leaf's capture set as a single-element
partition sequence.
*/
func (l *Leaf) Partitions() []*bitmask.Bitmask {
	return l.appendPartitions(nil)
}

func (l *Leaf) appendPartitions(parts []*bitmask.Bitmask) []*bitmask.Bitmask {
	return append(parts, l.captureSet)
}

/*
Hash returns the canonical hash of the model. Models inducing the same
partition sequence hash identically.
*/
func (l *Leaf) Hash() uint64 {
	return hashModel(l)
}

/*
Equal returns true if the other model induces the same partition
sequence, in traversal order.
*/
func (l *Leaf) Equal(other Model) bool {
	return equalModels(l, other)
}

/*
Predict returns the leaf's target class for any sample.
*/
func (l *Leaf) Predict(sample *bitmask.Bitmask) int {
	return l.target
}

/*
Identify assigns the search system's identifier to the leaf. Only the
presence of an identifier carries meaning.
*/
func (l *Leaf) Identify(identifier *bitmask.Bitmask) {
	l.identifier = identifier
}

/*
Identified returns true once an identifier has been assigned.
*/
func (l *Leaf) Identified() bool {
	return l.identifier != nil
}

/*
TranslateSelf assigns the leaf's own translation table.
*/
func (l *Leaf) TranslateSelf(translation Translation) {
	l.selfTranslator = translation
}

/*
SelfTranslation returns the leaf's own translation table; empty means
no translation is needed.
*/
func (l *Leaf) SelfTranslation() Translation {
	return l.selfTranslator
}

/*
Document returns the document form of the leaf.
*/
func (l *Leaf) Document(ds *dataset.Dataset) (*Node, error) {
	return &Node{Prediction: l.target, Loss: l.loss, Complexity: l.complexity}, nil
}

/*
Serialize renders the leaf document as JSON text, compact at indent 0
and indented by the given number of spaces otherwise.
*/
func (l *Leaf) Serialize(ds *dataset.Dataset, indent int) (string, error) {
	return serializeModel(l, ds, indent)
}
