package ast

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/teranos/tscr/errors"
)

// DecodeYAML reads a tree serialized as YAML.
func DecodeYAML(data []byte) (*Node, error) {
	var root Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to decode YAML tree"), errors.ErrInvalidTree)
	}
	return &root, nil
}

// EncodeYAML serializes a tree as YAML with two-space indentation.
func EncodeYAML(root *Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, errors.Wrap(err, "failed to encode YAML tree")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to flush YAML tree")
	}
	return buf.Bytes(), nil
}

// DecodeJSON reads a tree serialized as JSON.
func DecodeJSON(data []byte) (*Node, error) {
	var root Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to decode JSON tree"), errors.ErrInvalidTree)
	}
	return &root, nil
}
