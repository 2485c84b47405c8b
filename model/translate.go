package model

import "fmt"

/*
TranslationError represents an error translating a document through a
translation table.
*/
type TranslationError string

/*
ErrTranslationLookup is the error returned when a canonical index that
must be present in the main translation table is not found there, or
when its position falls outside the alternate table. Translation must
only be invoked on documents whose indices the tables cover.
*/
const ErrTranslationLookup = TranslationError("translation table has no entry for a required canonical index")

func (te TranslationError) Error() string {
	return string(te)
}

/*
Translate maps the feature indices of a document back to an alternate
numbering, undoing any reordering and sign-flipping introduced by an
upstream preprocessing stage, and returns the result as a new
document; the input is never modified.

At a leaf the prediction, offset by featureCount into canonical index
space, is located by value in main; its position indexes alternate and
the entry found there, offset back, replaces the prediction. At a
split the feature index is located in main directly or, failing that,
by its negation, which flips the meaning of the split direction; a
negative alternate entry flips it again. The feature index becomes the
absolute alternate entry, both branches are translated with the same
tables, and a pending flip swaps the false and true subtrees.

A lookup that cannot be satisfied returns ErrTranslationLookup.
Summarized documents cannot be translated; translation happens before
summarization.
*/
func Translate(n *Node, main, alternate Translation, featureCount int) (*Node, error) {
	if n == nil {
		return nil, nil
	}
	if n.Summarized() {
		return nil, fmt.Errorf("translating document: cannot translate an n-ary document")
	}
	if n.IsLeaf() {
		canonical := n.Prediction + featureCount
		position := indexOf(main, canonical)
		if position < 0 || position >= len(alternate) {
			return nil, ErrTranslationLookup
		}
		out := *n
		out.Prediction = alternate[position] - featureCount
		return &out, nil
	}
	flip := false
	position := indexOf(main, n.Feature)
	if position < 0 {
		position = indexOf(main, -n.Feature)
		if position < 0 {
			return nil, ErrTranslationLookup
		}
		flip = !flip
	}
	if position >= len(alternate) {
		return nil, ErrTranslationLookup
	}
	alternateIndex := alternate[position]
	if alternateIndex < 0 {
		flip = !flip
		alternateIndex = -alternateIndex
	}
	falseDoc, err := Translate(n.False, main, alternate, featureCount)
	if err != nil {
		return nil, err
	}
	trueDoc, err := Translate(n.True, main, alternate, featureCount)
	if err != nil {
		return nil, err
	}
	out := &Node{
		Feature:     alternateIndex,
		OrigFeature: n.OrigFeature,
		Kind:        n.Kind,
		Reference:   n.Reference,
		False:       falseDoc,
		True:        trueDoc,
	}
	if flip {
		out.False, out.True = out.True, out.False
	}
	return out, nil
}

func indexOf(table Translation, value int) int {
	for i, entry := range table {
		if entry == value {
			return i
		}
	}
	return -1
}
