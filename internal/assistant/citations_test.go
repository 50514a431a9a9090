package assistant

import "testing"

func TestStripCitations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "no markers",
			in:   "Plant beans at the start of the rains.",
			want: "Plant beans at the start of the rains.",
		},
		{
			name: "single marker",
			in:   "Beans need well-drained soil【4:2†guide.pdf】.",
			want: "Beans need well-drained soil.",
		},
		{
			name: "multiple markers",
			in:   "Space rows 50cm apart【1:0†a.txt】 and weed early【12:3†b.txt】.",
			want: "Space rows 50cm apart and weed early.",
		},
		{
			name: "marker assembled across stream fragments",
			in:   "Mbale soils are volcanic" + "【8" + ":15†so" + "ils.md】" + " and fertile.",
			want: "Mbale soils are volcanic and fertile.",
		},
		{
			name: "adjacent markers",
			in:   "Use certified seed.【2:1†x】【2:2†y】",
			want: "Use certified seed.",
		},
		{
			name: "non-numeric marker left alone",
			in:   "Odd text 【a:b†c】 stays.",
			want: "Odd text 【a:b†c】 stays.",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := StripCitations(tt.in); got != tt.want {
				t.Fatalf("StripCitations(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
