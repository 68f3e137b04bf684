package cache

import (
	"github.com/sierrasoftworks/humane-errors-go"
	"github.com/vmihailenco/msgpack/v5"
)

// encodeAttributes serializes an attribute map into its stored msgpack form.
func encodeAttributes(attributes map[string]any) ([]byte, humane.Error) {
	if attributes == nil {
		attributes = map[string]any{}
	}

	data, err := msgpack.Marshal(attributes)
	if err != nil {
		return nil, humane.Wrap(err, "failed to encode record attributes", "only store msgpack-serializable attribute values")
	}
	return data, nil
}

func decodeAttributes(data []byte) (map[string]any, humane.Error) {
	var attributes map[string]any
	if err := msgpack.Unmarshal(data, &attributes); err != nil {
		return nil, humane.Wrap(err, "failed to decode record attributes")
	}

	if attributes == nil {
		return nil, humane.New("record attributes are empty")
	}
	return attributes, nil
}
