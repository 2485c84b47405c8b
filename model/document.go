package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/canopyml/canopy/dataset"
	"github.com/canopyml/canopy/feature"
)

/*
DefaultGuard is the catch-all guard of the false branch of a
categorical split in N-ary form.
*/
const DefaultGuard = "default"

/*
Node is the generic document form of a model, the shape trees take for
output. A leaf document carries a prediction, its loss and its
complexity. A binary split document carries the canonical and original
feature indices, the feature's domain kind and reference value, and a
false and a true subtree. After N-ary summarization a split document
instead carries a list of guarded children.
*/
type Node struct {
	// Leaf documents.
	Prediction int
	Loss       float64
	Complexity float64

	// Binary split documents.
	Feature     int
	OrigFeature int
	Kind        feature.Kind
	Reference   interface{}
	False       *Node
	True        *Node

	// N-ary split documents.
	Children []Child
}

/*
Child is one guarded branch of an N-ary split document. Its guard is
either an Interval for numeric features, or a category value or the
DefaultGuard sentinel for categorical ones.
*/
type Child struct {
	In   interface{} `json:"in"`
	Then *Node       `json:"then"`
}

/*
Interval is a half-open numeric range [Lower, Upper). A nil bound is
unbounded and serializes as null.
*/
type Interval struct {
	Lower *float64
	Upper *float64
}

/*
IsLeaf returns true for leaf documents.
*/
func (n *Node) IsLeaf() bool {
	return n.False == nil && n.True == nil && n.Children == nil
}

/*
Summarized returns true once the document has been collapsed into
N-ary form.
*/
func (n *Node) Summarized() bool {
	return n.Children != nil
}

type jsonLeafNode struct {
	Prediction int     `json:"prediction"`
	Loss       float64 `json:"loss"`
	Complexity float64 `json:"complexity"`
}

type jsonSplitNode struct {
	Feature     int          `json:"feature"`
	OrigFeature int          `json:"orig_feature"`
	Kind        feature.Kind `json:"type,omitempty"`
	Reference   interface{}  `json:"reference,omitempty"`
	False       *Node        `json:"false"`
	True        *Node        `json:"true"`
}

type jsonNaryNode struct {
	Feature  int     `json:"feature"`
	Children []Child `json:"children"`
}

/*
MarshalJSON renders the document in its output schema: leaves as
{"prediction", "loss", "complexity"}, binary splits as {"feature",
"orig_feature", "type", "reference", "false", "true"} and N-ary splits
as {"feature", "children"}.
*/
func (n *Node) MarshalJSON() ([]byte, error) {
	switch {
	case n.IsLeaf():
		return json.Marshal(jsonLeafNode{n.Prediction, n.Loss, n.Complexity})
	case n.Summarized():
		return json.Marshal(jsonNaryNode{n.Feature, n.Children})
	default:
		return json.Marshal(jsonSplitNode{n.Feature, n.OrigFeature, n.Kind, n.Reference, n.False, n.True})
	}
}

/*
UnmarshalJSON decodes a document from any of the three output schemas.
A node holding a prediction is a leaf; a node holding children is an
N-ary split; anything else holding a feature is a binary split.
*/
func (n *Node) UnmarshalJSON(data []byte) error {
	aux := struct {
		Prediction  *int         `json:"prediction"`
		Loss        float64      `json:"loss"`
		Complexity  float64      `json:"complexity"`
		Feature     *int         `json:"feature"`
		OrigFeature int          `json:"orig_feature"`
		Kind        feature.Kind `json:"type"`
		Reference   interface{}  `json:"reference"`
		False       *Node        `json:"false"`
		True        *Node        `json:"true"`
		Children    []Child      `json:"children"`
	}{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("decoding document node: %v", err)
	}
	switch {
	case aux.Prediction != nil:
		*n = Node{Prediction: *aux.Prediction, Loss: aux.Loss, Complexity: aux.Complexity}
	case aux.Children != nil:
		if aux.Feature == nil {
			return fmt.Errorf("decoding document node: n-ary node without feature")
		}
		*n = Node{Feature: *aux.Feature, Children: aux.Children}
	case aux.Feature != nil:
		if aux.False == nil || aux.True == nil {
			return fmt.Errorf("decoding document node: split on feature %d is missing a branch", *aux.Feature)
		}
		*n = Node{
			Feature:     *aux.Feature,
			OrigFeature: aux.OrigFeature,
			Kind:        aux.Kind,
			Reference:   aux.Reference,
			False:       aux.False,
			True:        aux.True,
		}
	default:
		return fmt.Errorf("decoding document node: neither a prediction nor a feature present")
	}
	return nil
}

/*
UnmarshalJSON decodes a guarded branch, reading its guard as an
Interval when it is a JSON array and as a plain value otherwise.
*/
func (c *Child) UnmarshalJSON(data []byte) error {
	aux := struct {
		In   json.RawMessage `json:"in"`
		Then *Node           `json:"then"`
	}{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("decoding document child: %v", err)
	}
	c.Then = aux.Then
	trimmed := strings.TrimSpace(string(aux.In))
	if strings.HasPrefix(trimmed, "[") {
		var iv Interval
		if err := json.Unmarshal(aux.In, &iv); err != nil {
			return err
		}
		c.In = iv
		return nil
	}
	var guard interface{}
	if err := json.Unmarshal(aux.In, &guard); err != nil {
		return fmt.Errorf("decoding document child guard: %v", err)
	}
	c.In = guard
	return nil
}

/*
MarshalJSON renders the interval as a two-element array with null
marking an unbounded end.
*/
func (iv Interval) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]*float64{iv.Lower, iv.Upper})
}

/*
UnmarshalJSON reads the interval back from its two-element array form.
*/
func (iv *Interval) UnmarshalJSON(data []byte) error {
	var bounds [2]*float64
	if err := json.Unmarshal(data, &bounds); err != nil {
		return fmt.Errorf("decoding interval guard: %v", err)
	}
	iv.Lower, iv.Upper = bounds[0], bounds[1]
	return nil
}

func serializeModel(m Model, ds *dataset.Dataset, indent int) (string, error) {
	doc, err := m.Document(ds)
	if err != nil {
		return "", err
	}
	if ds.Config().NonBinary {
		doc = Summarize(doc)
	}
	var data []byte
	if indent <= 0 {
		data, err = json.Marshal(doc)
	} else {
		data, err = json.MarshalIndent(doc, "", strings.Repeat(" ", indent))
	}
	if err != nil {
		return "", fmt.Errorf("serializing model document: %v", err)
	}
	return string(data), nil
}
