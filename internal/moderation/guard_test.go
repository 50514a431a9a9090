package moderation

import (
	"reflect"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "single sentence",
			in:   "How do I plant beans in Mbale?",
			want: []string{"How do I plant beans in Mbale?"},
		},
		{
			name: "multiple terminators",
			in:   "Beans grow fast. Do they need shade? Plant now!",
			want: []string{"Beans grow fast.", "Do they need shade?", "Plant now!"},
		},
		{
			name: "trailing fragment without terminator",
			in:   "First sentence. trailing words",
			want: []string{"First sentence.", "trailing words"},
		},
		{
			name: "whitespace only",
			in:   "   ",
			want: nil,
		},
		{
			name: "empty",
			in:   "",
			want: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := SplitSentences(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("SplitSentences(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}
