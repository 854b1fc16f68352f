package rebus

import (
	"context"
	"fmt"
	"strings"

	"github.com/torkelwestby/christmas-rebus/internal/platform/logger"
)

// SuccessMessage is returned verbatim when a puzzle is fully solved.
const SuccessMessage = "🎉 Gratulerer! Du har låst opp denne opplevelsen for 2026!"

// fallbackMessage covers generation failures; the player always gets an answer.
const fallbackMessage = "Hmm, ikke helt riktig ennå. Se nøye på alle bildene og prøv igjen!"

// TextGenerator produces the hint prose. The OpenAI platform client satisfies
// this; tests substitute their own.
type TextGenerator interface {
	GenerateText(ctx context.Context, system string, user string) (string, error)
}

// Composer turns an Evaluation into a user-facing message. Everything except
// the generated prose is deterministic.
type Composer struct {
	log *logger.Logger
	gen TextGenerator
}

func NewComposer(log *logger.Logger, gen TextGenerator) *Composer {
	return &Composer{log: log.With("service", "FeedbackComposer"), gen: gen}
}

// ProgressPhrase renders the found/total counts as plain language. Only
// numbers, never answer words.
func ProgressPhrase(found, total int) string {
	switch {
	case found == 0:
		return "Ingen deler funnet ennå"
	case found == total-1:
		return "Kun én del mangler"
	default:
		return fmt.Sprintf("Funnet %d av %d deler", found, total)
	}
}

// BuildHintPrompt assembles the system prompt for the generator. It may quote
// words the player already wrote (matched keywords, near misses, strays) but
// describes missing parts only by category and hint phrasing.
func BuildHintPrompt(p Puzzle, eval Evaluation) string {
	var b strings.Builder

	b.WriteString("Du gir korte, vennlige hint til en rebus.\n\n")
	b.WriteString("DU HAR FULL KUNNSKAP OM FASIT, MEN DU MÅ FØLGE DISSE REGLENE:\n")
	b.WriteString("- Aldri skriv eller bruk fasitord som brukeren ikke selv har skrevet.\n")
	b.WriteString("- Aldri nevn konkrete steder, navn eller objekter direkte.\n")
	b.WriteString("- Bruk kun assosiative, menneskelige beskrivelser.\n")
	b.WriteString("- Maks 2–3 setninger.\n")
	b.WriteString("- Maks én emoji.\n\n")
	b.WriteString("DU KAN:\n")
	b.WriteString("- Bekrefte fremgang.\n")
	b.WriteString("- Hinte til hva slags TYPE ting som mangler (sted, aktivitet, stemning).\n")
	b.WriteString("- Kommentere ord brukeren selv har skrevet.\n\n")

	b.WriteString("KONTEKST:\n")
	b.WriteString("Rebusen viser: " + p.Description + "\n")
	b.WriteString("Fremgang: " + ProgressPhrase(eval.Found, eval.Total) + "\n")

	if len(eval.Matched) > 0 {
		words := make([]string, 0, len(eval.Matched))
		for _, m := range eval.Matched {
			words = append(words, m.Keyword)
		}
		b.WriteString("Brukeren har allerede funnet: " + strings.Join(words, ", ") + "\n")
	}
	if len(eval.NearMiss) > 0 {
		words := make([]string, 0, len(eval.NearMiss))
		for _, nm := range eval.NearMiss {
			words = append(words, nm.Token)
		}
		b.WriteString("Nesten riktige ord (varmt, men ikke helt): " + strings.Join(words, ", ") + "\n")
	}
	if len(eval.Stray) > 0 {
		b.WriteString("Ord som ikke hører hjemme i løsningen: " + strings.Join(eval.Stray, ", ") + "\n")
	}

	b.WriteString("\nMangler disse typene deler:\n")
	for _, part := range eval.Missing {
		b.WriteString(fmt.Sprintf("- %s: %s\n", part.Tag, part.Hint))
	}

	b.WriteString("\nGi nå en kort, vennlig feedback som hjelper brukeren videre uten å røpe noe.")
	return b.String()
}

// Compose returns the message for one guess. Solved puzzles short-circuit to
// the fixed congratulations; generation failures fall back to a canned
// encouragement instead of erroring.
func (c *Composer) Compose(ctx context.Context, p Puzzle, eval Evaluation, guessText string) string {
	if eval.Solved {
		return SuccessMessage
	}
	if c.gen == nil {
		return fallbackMessage
	}

	prompt := BuildHintPrompt(p, eval)
	text, err := c.gen.GenerateText(ctx, prompt, guessText)
	if err != nil {
		c.log.Warn("hint generation failed, using fallback", "rebus_id", p.ID, "error", err)
		return fallbackMessage
	}
	if strings.TrimSpace(text) == "" {
		return fallbackMessage
	}
	return strings.TrimSpace(text)
}
