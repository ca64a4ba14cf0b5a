package bridge

import (
	"bytes"
	"errors"
	"fmt"

	go_json "github.com/goccy/go-json"
)

var ErrMalformedCall = errors.New("malformed method call")

// Call is a method invocation as encoded by the JSON method codec.
type Call struct {
	Method string             `json:"method"`
	Args   go_json.RawMessage `json:"args,omitempty"`
}

func DecodeCall(data []byte) (Call, error) {
	var call Call
	if err := go_json.Unmarshal(data, &call); err != nil {
		return Call{}, fmt.Errorf("%w: %w", ErrMalformedCall, err)
	}
	if call.Method == "" {
		return Call{}, fmt.Errorf("%w: missing method", ErrMalformedCall)
	}
	return call, nil
}

func EncodeCall(call Call) ([]byte, error) {
	return go_json.Marshal(call)
}

// Encode returns the reply envelope: [value] on success, [code, message, details]
// on error and an empty body when the method is not implemented.
func (r Reply) Encode() ([]byte, error) {
	switch r.Outcome {
	case OutcomeSuccess:
		return go_json.Marshal([]any{r.Value})
	case OutcomeError:
		return go_json.Marshal([]any{r.Code, r.Message, r.Details})
	default:
		return nil, nil
	}
}

// DecodeReply parses an envelope produced by Encode. Values decode into generic
// JSON types.
func DecodeReply(data []byte) (Reply, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Reply{Outcome: OutcomeNotImplemented}, nil
	}

	var envelope []go_json.RawMessage
	if err := go_json.Unmarshal(data, &envelope); err != nil {
		return Reply{}, fmt.Errorf("decoding envelope: %w", err)
	}

	switch len(envelope) {
	case 1:
		var value any
		if err := go_json.Unmarshal(envelope[0], &value); err != nil {
			return Reply{}, fmt.Errorf("decoding result: %w", err)
		}
		return Reply{Outcome: OutcomeSuccess, Value: value}, nil
	case 3:
		reply := Reply{Outcome: OutcomeError}
		if err := go_json.Unmarshal(envelope[0], &reply.Code); err != nil {
			return Reply{}, fmt.Errorf("decoding error code: %w", err)
		}
		if err := go_json.Unmarshal(envelope[1], &reply.Message); err != nil {
			return Reply{}, fmt.Errorf("decoding error message: %w", err)
		}
		if err := go_json.Unmarshal(envelope[2], &reply.Details); err != nil {
			return Reply{}, fmt.Errorf("decoding error details: %w", err)
		}
		return reply, nil
	default:
		return Reply{}, fmt.Errorf("envelope has %d elements", len(envelope))
	}
}
