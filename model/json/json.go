/*
Package json provides encoding and decoding of finalized models as
JSON, for stores that persist models outside the process memory space.
Capture sets travel in the portable Roaring binary format, base64
encoded by the JSON layer.
*/
package json

import (
	"encoding/json"
	"fmt"

	"github.com/canopyml/canopy/bitmask"
	"github.com/canopyml/canopy/model"
)

/*
ModelEncodeDecoder is an interface for objects that allow encoding
models into slices of bytes and decoding them back to models.
*/
type ModelEncodeDecoder interface {

	//Encode receives a model.Model
	//and returns a slice of bytes with the model
	//encoded or an error if the encoding could not
	//be performed for some reason.
	Encode(model.Model) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a model.Model decoded from the
	//slice of bytes or an error if the decoding
	//could not be performed for some reason.
	Decode([]byte) (model.Model, error)
}

type modelEncodeDecoder struct{}

type jsonModel struct {
	Leaf  *jsonLeaf  `json:"leaf,omitempty"`
	Split *jsonSplit `json:"split,omitempty"`
}

type jsonLeaf struct {
	Target     int     `json:"target"`
	Loss       float64 `json:"loss"`
	Complexity float64 `json:"complexity"`
	Capture    []byte  `json:"capture"`
}

type jsonSplit struct {
	BinaryFeature int        `json:"binaryFeature"`
	Feature       int        `json:"feature"`
	False         *jsonModel `json:"false"`
	True          *jsonModel `json:"true"`
}

/*
NewModelEncodeDecoder returns a ModelEncodeDecoder that encodes models
as JSON documents.
*/
func NewModelEncodeDecoder() ModelEncodeDecoder {
	return &modelEncodeDecoder{}
}

func (med *modelEncodeDecoder) Encode(m model.Model) ([]byte, error) {
	jm, err := toJSONModel(m)
	if err != nil {
		return nil, err
	}
	return json.Marshal(jm)
}

func (med *modelEncodeDecoder) Decode(data []byte) (model.Model, error) {
	jm := &jsonModel{}
	err := json.Unmarshal(data, jm)
	if err != nil {
		return nil, fmt.Errorf("decoding model: %v", err)
	}
	return fromJSONModel(jm)
}

func toJSONModel(m model.Model) (*jsonModel, error) {
	switch node := m.(type) {
	case *model.Leaf:
		capture, err := node.CaptureSet().MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("encoding leaf capture set: %v", err)
		}
		return &jsonModel{Leaf: &jsonLeaf{
			Target:     node.Target(),
			Loss:       node.Loss(),
			Complexity: node.Complexity(),
			Capture:    capture,
		}}, nil
	case *model.Split:
		negative, err := toJSONModel(node.Negative())
		if err != nil {
			return nil, err
		}
		positive, err := toJSONModel(node.Positive())
		if err != nil {
			return nil, err
		}
		return &jsonModel{Split: &jsonSplit{
			BinaryFeature: node.BinaryFeature(),
			Feature:       node.Feature(),
			False:         negative,
			True:          positive,
		}}, nil
	}
	return nil, fmt.Errorf("encoding model: unknown model variant %T", m)
}

func fromJSONModel(jm *jsonModel) (model.Model, error) {
	switch {
	case jm.Leaf != nil:
		capture := bitmask.New()
		if err := capture.UnmarshalBinary(jm.Leaf.Capture); err != nil {
			return nil, fmt.Errorf("decoding leaf capture set: %v", err)
		}
		return model.RestoreLeaf(jm.Leaf.Target, jm.Leaf.Loss, jm.Leaf.Complexity, capture), nil
	case jm.Split != nil:
		negative, err := fromJSONModel(jm.Split.False)
		if err != nil {
			return nil, err
		}
		positive, err := fromJSONModel(jm.Split.True)
		if err != nil {
			return nil, err
		}
		return model.RestoreSplit(jm.Split.BinaryFeature, jm.Split.Feature, negative, positive), nil
	}
	return nil, fmt.Errorf("decoding model: neither leaf nor split present")
}
