/*
Package model provides the in-memory decision-tree models an optimal
tree search builds, compares and emits. A model is a binary tree of
terminal leaves and binary splits over the binarized features of a
dataset. Models are immutable values once constructed, which makes
every read operation safe to run concurrently and lets distinct trees
share subtrees freely.

The identity of a model is the partition of dataset rows its leaves
induce: two trees assembled along different search paths that capture
the same rows in the same leaves are the same model. Hash and Equal
implement that identity so search procedures can use models as keys in
a dedup cache (see Store).

For output, a model projects into a generic document tree (Node) that
can be collapsed into N-ary form (Summarize) and mapped back to the
caller's feature numbering (Translate) before being rendered as JSON.
*/
package model

import (
	"github.com/canopyml/canopy/bitmask"
	"github.com/canopyml/canopy/dataset"
)

/*
Translation is an ordered table mapping the position of a canonical
binary-feature index to an alternate index in another numbering. An
empty Translation means no translation is needed.
*/
type Translation []int

/*
Model is a node of a decision tree: either a terminal Leaf or a binary
Split owning two child models. Models are immutable after
construction, except for the one-time assignment of the identifier and
translator metadata, which the owning search procedure performs before
any concurrent reads begin.

Its Terminal method tells leaves apart from splits.

Its Loss and Complexity methods return the sums of the respective
values over all leaves under the model, recomputed on each call.

Its Partitions method returns the capture sets of the leaves under the
model in negative-then-positive depth-first order. That order is part
of the model identity Hash and Equal implement.

Its Predict method walks the tree testing the given sample's binary
feature bits and returns the target class of the leaf reached.

Its Identify and Identified methods assign and test the optional
identifier the search system uses to tag model instances; only the
presence of an identifier carries meaning.

Its TranslateSelf and SelfTranslation methods assign and return the
model's own translation table, used as the main lookup table when a
parent translates this model's document.

Its Document method projects the model into its document form,
applying any child translators assigned to it. Serialize renders that
document (N-ary collapsed if the dataset asks for it) as JSON text,
compact at indent 0.
*/
type Model interface {
	Terminal() bool
	Loss() float64
	Complexity() float64
	Partitions() []*bitmask.Bitmask
	Hash() uint64
	Equal(Model) bool
	Predict(sample *bitmask.Bitmask) int
	Identify(*bitmask.Bitmask)
	Identified() bool
	TranslateSelf(Translation)
	SelfTranslation() Translation
	Document(*dataset.Dataset) (*Node, error)
	Serialize(ds *dataset.Dataset, indent int) (string, error)

	appendPartitions([]*bitmask.Bitmask) []*bitmask.Bitmask
}

// hashCombineMix is the odd constant of the hash-combine idiom used to
// fold partial hashes into a running seed.
const hashCombineMix = 0x9e3779b9

func hashModel(m Model) uint64 {
	parts := m.Partitions()
	seed := uint64(len(parts))
	for _, p := range parts {
		seed ^= p.Hash() + hashCombineMix + (seed << 6) + (seed >> 2)
	}
	return seed
}

// equalModels compares two models by their induced partitions, in
// traversal order. The hash comparison is a cheap pre-check; a length
// mismatch between the partition sequences is an ordinary "not equal".
func equalModels(m, other Model) bool {
	if other == nil {
		return false
	}
	if m.Hash() != other.Hash() {
		return false
	}
	parts := m.Partitions()
	otherParts := other.Partitions()
	if len(parts) != len(otherParts) {
		return false
	}
	for i := range parts {
		if !parts[i].Equal(otherParts[i]) {
			return false
		}
	}
	return true
}
