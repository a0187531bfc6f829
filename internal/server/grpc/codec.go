package grpc

import (
	"encoding/json"
	"fmt"
	"google.golang.org/grpc/encoding"
)

// codecName is the content subtype replicas speak: application/grpc+json.
const codecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec carries messages as JSON so updates keep the wire shape used by the journal and
// the change feed.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json codec marshal %T: %w", v, err)
	}
	return data, nil
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("json codec unmarshal %T: %w", v, err)
	}
	return nil
}

func (jsonCodec) Name() string {
	return codecName
}
