package ideas

import (
	"strings"
	"testing"
)

func issuePaths(issues []Issue) []string {
	paths := make([]string, 0, len(issues))
	for _, i := range issues {
		paths = append(paths, i.Path)
	}
	return paths
}

func hasIssue(issues []Issue, path string) bool {
	for _, i := range issues {
		if i.Path == path {
			return true
		}
	}
	return false
}

func TestValidateCreate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		in        IdeaInput
		wantPaths []string
	}{
		{
			name:      "missing title",
			in:        IdeaInput{},
			wantPaths: []string{"title"},
		},
		{
			name:      "one rune title",
			in:        IdeaInput{Title: "Å"},
			wantPaths: []string{"title"},
		},
		{
			name: "two rune title passes",
			in:   IdeaInput{Title: "Åå"},
		},
		{
			name:      "unknown type",
			in:        IdeaInput{Title: "Juleverksted", Type: "Noe annet"},
			wantPaths: []string{"type"},
		},
		{
			name: "known type",
			in:   IdeaInput{Title: "Juleverksted", Type: "Inspirasjon"},
		},
		{
			name:      "rating out of range",
			in:        IdeaInput{Title: "Juleverksted", StrategicFit: 6},
			wantPaths: []string{"strategicFit"},
		},
		{
			name: "rating in range",
			in:   IdeaInput{Title: "Juleverksted", StrategicFit: 5, Feasibility: 1},
		},
		{
			name:      "bad image url",
			in:        IdeaInput{Title: "Juleverksted", ImageURLs: []string{"ftp://nope"}},
			wantPaths: []string{"imageUrls.0"},
		},
		{
			name: "good image url",
			in:   IdeaInput{Title: "Juleverksted", ImageURLs: []string{"https://example.com/a.jpg"}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			issues := tt.in.Validate(false)
			if len(tt.wantPaths) == 0 {
				if len(issues) != 0 {
					t.Fatalf("unexpected issues: %v", issuePaths(issues))
				}
				return
			}
			for _, p := range tt.wantPaths {
				if !hasIssue(issues, p) {
					t.Fatalf("missing issue for %q, got %v", p, issuePaths(issues))
				}
			}
		})
	}
}

func TestValidatePartial(t *testing.T) {
	t.Parallel()

	// Edits may omit the title entirely...
	in := IdeaInput{Description: "bare en oppdatering"}
	if issues := in.Validate(true); len(issues) != 0 {
		t.Fatalf("partial update without title should pass, got %v", issuePaths(issues))
	}

	// ...but a present title still has to be long enough.
	in = IdeaInput{Title: "X"}
	if issues := in.Validate(true); !hasIssue(issues, "title") {
		t.Fatalf("short title should fail on partial too, got %v", issuePaths(issues))
	}
}

func TestCleanTrimsAndNormalizes(t *testing.T) {
	t.Parallel()

	in := IdeaInput{
		Title:     "  Juleverksted  ",
		Submitter: "\tTorkel ",
		Stage:     " skalering ",
	}
	in.Clean()

	if in.Title != "Juleverksted" {
		t.Fatalf("Title = %q", in.Title)
	}
	if in.Submitter != "Torkel" {
		t.Fatalf("Submitter = %q", in.Submitter)
	}
	if in.Stage != "Skalering" {
		t.Fatalf("Stage = %q", in.Stage)
	}
}

func TestNormalizeStage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Idégenerering", "Idégenerering"},
		{"idegenerering", "Idégenerering"},
		{"IDEGENERERING", "Idégenerering"},
		{"ideutforsking", "Idéutforsking"},
		{"problem/losning", "Problem/Løsning"},
		{"Problem/Løsning", "Problem/Løsning"},
		{"problem løsning", "Problem/Løsning"},
		{"produkt marked", "Produkt/Marked"},
		{"  skalering  ", "Skalering"},
		{"arkivert", StageArchived},
		{"noe helt annet", ""},
	}
	for _, tt := range tests {
		if got := NormalizeStage(tt.in); got != tt.want {
			t.Fatalf("NormalizeStage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Issues: []Issue{
		{Path: "title", Message: "Tittel er påkrevd"},
		{Path: "type", Message: "Ugyldig type"},
	}}
	msg := err.Error()
	if !strings.Contains(msg, "title") || !strings.Contains(msg, "type") {
		t.Fatalf("Error() = %q", msg)
	}
}
