package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed reports an unparseable or schema-mismatched wire payload.
// Decoders wrap it with detail; transports match it with errors.Is.
var ErrMalformed = errors.New("protocol: malformed payload")

// splitTagged pulls the variant tag out of an externally tagged union value.
// Unit variants arrive either as a bare string or as a single-key object with
// a null payload; field variants as a single-key object. The returned payload
// is nil for the bare-string form.
func splitTagged(data []byte) (string, json.RawMessage, error) {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s, nil, nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if len(m) != 1 {
		return "", nil, fmt.Errorf("%w: want exactly one variant key, got %d", ErrMalformed, len(m))
	}
	for tag, payload := range m {
		return tag, payload, nil
	}
	return "", nil, ErrMalformed
}

// encodeTagged renders v as {tag: v}.
func encodeTagged(tag string, v any) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", tag, err)
	}
	return json.Marshal(map[string]json.RawMessage{tag: payload})
}

// decodeVariant unmarshals a field variant's payload. The bare-string form of
// a field variant has no payload to decode and is rejected.
func decodeVariant(tag string, payload json.RawMessage, v any) error {
	if payload == nil {
		return fmt.Errorf("%w: %s carries no payload", ErrMalformed, tag)
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformed, tag, err)
	}
	return nil
}
