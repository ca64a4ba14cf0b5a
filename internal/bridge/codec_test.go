package bridge

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeCall(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "no args", input: `{"method":"getSleepData"}`, want: MethodGetSleepData},
		{name: "args ignored", input: `{"method":"getBodyData","args":{"days":7}}`, want: MethodGetBodyData},
		{name: "missing method", input: `{"args":null}`, wantErr: true},
		{name: "not json", input: `getSleepData`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			call, err := DecodeCall([]byte(tt.input))
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedCall) {
					t.Errorf("DecodeCall() error = %v, want ErrMalformedCall", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeCall() error = %v", err)
			}
			if call.Method != tt.want {
				t.Errorf("Method = %q, want %q", call.Method, tt.want)
			}
		})
	}
}

func TestReplyEncode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		reply Reply
		want  string
	}{
		{
			name:  "success",
			reply: Reply{Outcome: OutcomeSuccess, Value: []map[string]any{{"type": "weight", "value": "70.0", "timestamp": int64(1)}}},
			want:  `[[{"timestamp":1,"type":"weight","value":"70.0"}]]`,
		},
		{
			name:  "error",
			reply: Reply{Outcome: OutcomeError, Code: CodePermissionDenied, Message: MessagePermissionDenied},
			want:  `["PERMISSION_DENIED","Google Fit permission denied",null]`,
		},
		{
			name:  "not implemented",
			reply: Reply{Outcome: OutcomeNotImplemented},
			want:  ``,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.reply.Encode()
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Encode() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDecodeReply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Reply
		wantErr bool
	}{
		{name: "empty", input: "", want: Reply{Outcome: OutcomeNotImplemented}},
		{name: "success", input: `[[]]`, want: Reply{Outcome: OutcomeSuccess, Value: []any{}}},
		{
			name:  "error",
			input: `["BODY_READ_ERROR","Failed to read weight data: x",null]`,
			want:  Reply{Outcome: OutcomeError, Code: "BODY_READ_ERROR", Message: "Failed to read weight data: x"},
		},
		{name: "wrong arity", input: `["a","b"]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := DecodeReply([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeReply() error = %v, wantErr %t", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DecodeReply() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
