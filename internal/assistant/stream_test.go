package assistant

import (
	"encoding/json"
	"testing"

	"github.com/openai/openai-go"
)

func decodeEvent(t *testing.T, payload string) openai.AssistantStreamEventUnion {
	t.Helper()
	var event openai.AssistantStreamEventUnion
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	return event
}

func TestDeltaText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{
			name:    "single text part",
			payload: `{"event":"thread.message.delta","data":{"id":"msg_1","object":"thread.message.delta","delta":{"content":[{"index":0,"type":"text","text":{"value":"Plant beans"}}]}}}`,
			want:    "Plant beans",
		},
		{
			name:    "multiple parts concatenated in order",
			payload: `{"event":"thread.message.delta","data":{"id":"msg_1","object":"thread.message.delta","delta":{"content":[{"index":0,"type":"text","text":{"value":" in "}},{"index":1,"type":"text","text":{"value":"Mbale"}}]}}}`,
			want:    " in Mbale",
		},
		{
			name:    "run lifecycle event contributes nothing",
			payload: `{"event":"thread.run.completed","data":{"id":"run_1","object":"thread.run","status":"completed"}}`,
			want:    "",
		},
		{
			name:    "message created event contributes nothing",
			payload: `{"event":"thread.message.created","data":{"id":"msg_1","object":"thread.message"}}`,
			want:    "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := deltaText(decodeEvent(t, tt.payload))
			if got != tt.want {
				t.Fatalf("deltaText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDeltaText_FragmentedCitationSurvivesUntilStrip(t *testing.T) {
	t.Parallel()

	events := []string{
		`{"event":"thread.message.delta","data":{"id":"msg_1","object":"thread.message.delta","delta":{"content":[{"index":0,"type":"text","text":{"value":"Beans grow well【4:"}}]}}}`,
		`{"event":"thread.message.delta","data":{"id":"msg_1","object":"thread.message.delta","delta":{"content":[{"index":0,"type":"text","text":{"value":"2†guide.pdf】 in rich soil."}}]}}}`,
	}

	var reply string
	for _, payload := range events {
		reply += deltaText(decodeEvent(t, payload))
	}

	got := StripCitations(reply)
	want := "Beans grow well in rich soil."
	if got != want {
		t.Fatalf("StripCitations(%q) = %q, want %q", reply, got, want)
	}
}
