package analyze

import (
	"context"
	"errors"
	"strings"

	"github.com/torkelwestby/christmas-rebus/internal/platform/envutil"
	"github.com/torkelwestby/christmas-rebus/internal/platform/logger"
	"github.com/torkelwestby/christmas-rebus/internal/platform/openai"
)

// Input is what the submission form sends for AI-assisted field generation:
// an image (hosted URL or inline data URL), a free-text comment, or both.
type Input struct {
	ImageURL     string `json:"imageUrl"`
	ImageDataURL string `json:"imageDataUrl"`
	Comment      string `json:"comment"`
}

// Analysis is the suggested idea fields returned to the form.
type Analysis struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	TargetAudience   string `json:"targetAudience"`
	NeedsProblem     string `json:"needsProblem"`
	ValueProposition string `json:"valueProposition"`
}

var (
	ErrNothingToAnalyze = errors.New("legg ved beskrivelse eller bilde")
	ErrIncomplete       = errors.New("ufullstendig AI-respons")
)

const systemPrompt = `Du er innovasjonsrådgiver for et internt idéprogram.
Du får enten tekst, bilde, eller begge. Gi en kort, konkret og forretningsrelevant vurdering.

Retningslinjer:
- Tittel: maks 8 ord
- Beskrivelse: 2–3 setninger
- Målgruppe: 1–2 setninger
- Behov/Problem: 1–2 setninger
- Verdiforslag: 1–2 setninger`

var analysisSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title":            map[string]any{"type": "string"},
		"description":      map[string]any{"type": "string"},
		"targetAudience":   map[string]any{"type": "string"},
		"needsProblem":     map[string]any{"type": "string"},
		"valueProposition": map[string]any{"type": "string"},
	},
	"required":             []string{"title", "description", "targetAudience", "needsProblem", "valueProposition"},
	"additionalProperties": false,
}

// Service turns a comment and/or image into suggested idea fields via the
// text-generation collaborator's structured output.
type Service struct {
	log     *logger.Logger
	gen     openai.Client
	Enabled bool
}

func NewService(log *logger.Logger, gen openai.Client) *Service {
	return &Service{
		log:     log.With("service", "AnalyzeService"),
		gen:     gen,
		Enabled: envutil.Bool("AI_ANALYZE_ENABLED", true),
	}
}

func (s *Service) Analyze(ctx context.Context, in Input) (Analysis, error) {
	comment := strings.TrimSpace(in.Comment)
	imageSource := strings.TrimSpace(in.ImageDataURL)
	if imageSource == "" {
		imageSource = strings.TrimSpace(in.ImageURL)
	}
	if comment == "" && imageSource == "" {
		return Analysis{}, ErrNothingToAnalyze
	}

	userText := "Analyser innholdet og foreslå felter."
	if comment != "" {
		userText += "\n\nBeskrivelse fra bruker: " + comment
	}

	var images []openai.ImageInput
	if imageSource != "" {
		images = []openai.ImageInput{{ImageURL: imageSource, Detail: "low"}}
	}

	obj, err := s.gen.GenerateJSONWithImages(ctx, systemPrompt, userText, images, "idea_analysis", analysisSchema)
	if err != nil {
		return Analysis{}, err
	}

	analysis := Analysis{
		Title:            strField(obj, "title"),
		Description:      strField(obj, "description"),
		TargetAudience:   strField(obj, "targetAudience"),
		NeedsProblem:     strField(obj, "needsProblem"),
		ValueProposition: strField(obj, "valueProposition"),
	}
	if analysis.Title == "" || analysis.Description == "" {
		return Analysis{}, ErrIncomplete
	}
	return analysis, nil
}

func strField(obj map[string]any, key string) string {
	if v, ok := obj[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
