package ideas

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Idea types and pipeline stages are closed enumerations in the record store;
// anything else is rejected at the boundary.
var ideaTypes = []string{
	"Inspirasjon",
	"Ide klar for vurdering til innovasjonsporteføljen",
}

const StageArchived = "Arkivert"

var canonicalStages = []string{
	"Idégenerering",
	"Idéutforsking",
	"Problem/Løsning",
	"Produkt/Marked",
	"Skalering",
	StageArchived,
}

// Opaque column ids of the idea table, mapped to human names in one place.
const (
	fieldTitle             = "fldKXo4ub5pqqTjG9"
	fieldDescription       = "fld0mPPNrE5pRxENI"
	fieldType              = "fldhBleuXFNt9bWLP"
	fieldStage             = "fldTOdb9VgP0MdtNN"
	fieldImage             = "fldz4NQq8uolOnbRY"
	fieldSubmitter         = "fldfG5fBJ8E9iNVa1"
	fieldDateSubmitted     = "fld9Hi3Emxlhoi9GE"
	fieldTargetAudience    = "fldPchK9TQYU6Ohtb"
	fieldNeedsProblem      = "fldzjuFp9VpT7OYEG"
	fieldValueProposition  = "fldxJ85CvJoyjdZEL"
	fieldStrategicFit      = "fldkbyMg9d5ujd0h3"
	fieldConsumerNeed      = "fldNNHrSoKmEc1mh2"
	fieldBusinessPotential = "fldLQPswmcUbOLqdm"
	fieldFeasibility       = "fldiapbgGw4wyY2B6"
	fieldLaunchTime        = "fldGfvOxKOKvRt4XO"
)

// ImageAttachment is an inline base64 upload from the submission form.
type ImageAttachment struct {
	Filename string `json:"filename"`
	Data     string `json:"data"`
}

// IdeaInput is the closed request shape for idea create and update. Unknown
// body fields are dropped by JSON binding instead of being passed through.
type IdeaInput struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Type             string   `json:"type"`
	Stage            string   `json:"stage"`
	Submitter        string   `json:"submitter"`
	TargetAudience   string   `json:"targetAudience"`
	NeedsProblem     string   `json:"needsProblem"`
	ValueProposition string   `json:"valueProposition"`
	ImageURLs        []string `json:"imageUrls"`

	// Ratings are 1-5; zero means not provided.
	StrategicFit      int `json:"strategicFit"`
	ConsumerNeed      int `json:"consumerNeed"`
	BusinessPotential int `json:"businessPotential"`
	Feasibility       int `json:"feasibility"`
	LaunchTime        int `json:"launchTime"`

	ImageBase64   string            `json:"imageBase64"`
	ImageFilename string            `json:"imageFilename"`
	ImagesBase64  []ImageAttachment `json:"imagesBase64"`
}

// Issue is one field-level validation failure.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "ugyldig data"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, i := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", i.Path, i.Message))
	}
	return strings.Join(parts, "; ")
}

// Clean trims free-text fields and normalizes the stage name. Empty strings
// behave as absent, matching how the forms submit.
func (in *IdeaInput) Clean() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Type = strings.TrimSpace(in.Type)
	in.Submitter = strings.TrimSpace(in.Submitter)
	in.TargetAudience = strings.TrimSpace(in.TargetAudience)
	in.NeedsProblem = strings.TrimSpace(in.NeedsProblem)
	in.ValueProposition = strings.TrimSpace(in.ValueProposition)
	in.Stage = NormalizeStage(in.Stage)
}

// Validate checks the input against the fixed schema. With partial=true every
// field is optional (edits patch only what they carry).
func (in *IdeaInput) Validate(partial bool) []Issue {
	var issues []Issue

	if !partial && in.Title == "" {
		issues = append(issues, Issue{Path: "title", Message: "Tittel er påkrevd"})
	}
	if in.Title != "" && utf8.RuneCountInString(in.Title) < 2 {
		issues = append(issues, Issue{Path: "title", Message: "Tittel må være minst 2 tegn"})
	}

	if in.Type != "" && !contains(ideaTypes, in.Type) {
		issues = append(issues, Issue{Path: "type", Message: "Ugyldig type"})
	}
	if in.Stage != "" && !contains(canonicalStages, in.Stage) {
		issues = append(issues, Issue{Path: "stage", Message: "Ugyldig fase"})
	}

	for name, v := range map[string]int{
		"strategicFit":      in.StrategicFit,
		"consumerNeed":      in.ConsumerNeed,
		"businessPotential": in.BusinessPotential,
		"feasibility":       in.Feasibility,
		"launchTime":        in.LaunchTime,
	} {
		if v != 0 && (v < 1 || v > 5) {
			issues = append(issues, Issue{Path: name, Message: "Vurdering må være mellom 1 og 5"})
		}
	}

	for i, raw := range in.ImageURLs {
		if !validURL(raw) {
			issues = append(issues, Issue{Path: fmt.Sprintf("imageUrls.%d", i), Message: "Ugyldig URL"})
		}
	}

	return issues
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

var stageFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// stage spellings seen in the wild, after folding, mapped to canon.
var stageAliases = map[string]string{
	"idegenerering": "Idégenerering",
	"ide gen":       "Idégenerering",
	"idegen":        "Idégenerering",

	"ideutforsking": "Idéutforsking",
	"utforsking":    "Idéutforsking",

	"problem/losning":  "Problem/Løsning",
	"problem losning":  "Problem/Løsning",
	"problem/løsning":  "Problem/Løsning",
	"problem løsning":  "Problem/Løsning",
	"problemlosning":   "Problem/Løsning",
	"problemløsning":   "Problem/Løsning",
	"problemloesning":  "Problem/Løsning",

	"produkt/marked": "Produkt/Marked",
	"produkt marked": "Produkt/Marked",

	"skalering": "Skalering",
	"arkivert":  StageArchived,
}

// NormalizeStage maps diacritic-free and case-varied spellings of each
// canonical stage to that canonical string. Unrecognized input yields ""
// so the field is dropped rather than rejected.
func NormalizeStage(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if contains(canonicalStages, trimmed) {
		return trimmed
	}

	folded, _, err := transform.String(stageFold, trimmed)
	if err != nil {
		return ""
	}
	folded = strings.ToLower(strings.Join(strings.Fields(folded), " "))
	return stageAliases[folded]
}
