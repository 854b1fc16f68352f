package rebus

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercases", in: "OSLO", want: "oslo"},
		{name: "keeps norwegian letters", in: "Øl og VELVÆRE på Måke", want: "øl og velvære på måke"},
		{name: "strips punctuation", in: "Pizza, øl!", want: "pizza øl"},
		{name: "folds accents", in: "café crème", want: "cafe creme"},
		{name: "collapses whitespace", in: "  pizza   øl \t bowling ", want: "pizza øl bowling"},
		{name: "keeps digits", in: "2026 er året", want: "2026 er året"},
		{name: "empty", in: "", want: ""},
		{name: "only punctuation", in: "?!...", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tt.in); got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Pizza, øl og konkurranse på Oslo bowling",
		"Fransk EVENTYRLIG michelin-opplevelse!",
		"  blandet   whitespace\tog tegn?! ",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "drops stopwords",
			in:   "Pizza øl og konkurranse på Oslo bowling",
			want: []string{"pizza", "øl", "konkurranse", "oslo", "bowling"},
		},
		{
			name: "empty input",
			in:   "",
			want: []string{},
		},
		{
			name: "only stopwords",
			in:   "og på med i",
			want: []string{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Tokenize(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
