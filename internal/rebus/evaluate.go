package rebus

import "strings"

// MatchedPart records which literal keyword satisfied a part.
type MatchedPart struct {
	Part    Part
	Keyword string
}

// NearMissPart records the guess token that was close but not accepted.
type NearMissPart struct {
	Part  Part
	Token string
}

// Evaluation classifies every part of a puzzle against one guess. Matched,
// NearMiss and Missing always partition the puzzle's parts exactly.
type Evaluation struct {
	Matched  []MatchedPart
	NearMiss []NearMissPart
	Missing  []Part
	Stray    []string
	Solved   bool
	Found    int
	Total    int
}

// Evaluate tokenizes the guess and classifies each part in catalog order.
// Keyword matching is exact-token equality after normalization; substring
// matching produced too many false positives and is deliberately not used.
// A near-miss still counts as unsolved.
func Evaluate(p Puzzle, guessText string) Evaluation {
	tokens := Tokenize(guessText)
	tokenSet := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		tokenSet[t] = true
	}

	eval := Evaluation{Total: len(p.Parts)}
	matchedKeywords := make(map[string]bool)

	for _, part := range p.Parts {
		if kw, ok := matchKeyword(part.Keywords, tokenSet); ok {
			eval.Matched = append(eval.Matched, MatchedPart{Part: part, Keyword: kw})
			matchedKeywords[kw] = true
			continue
		}
		if tok, ok := matchKeyword(part.NearMisses, tokenSet); ok {
			eval.NearMiss = append(eval.NearMiss, NearMissPart{Part: part, Token: tok})
			continue
		}
		eval.Missing = append(eval.Missing, part)
	}

	eval.Found = len(eval.Matched)
	eval.Solved = len(eval.Missing) == 0 && eval.Total > 0
	eval.Stray = strayTokens(p, tokens, matchedKeywords)
	return eval
}

func matchKeyword(words []string, tokenSet map[string]bool) (string, bool) {
	for _, w := range words {
		if n := Normalize(w); n != "" && tokenSet[n] {
			return n, true
		}
	}
	return "", false
}

// strayTokens returns the guess tokens that neither matched a keyword nor
// appear anywhere in the canonical answer sentence. They feed light-hearted
// callouts in the feedback and never reveal missing parts.
func strayTokens(p Puzzle, tokens []string, matchedKeywords map[string]bool) []string {
	answerWords := make(map[string]bool)
	for _, w := range strings.Fields(Normalize(p.FullAnswer)) {
		answerWords[w] = true
	}

	var stray []string
	seen := make(map[string]bool)
	for _, t := range tokens {
		if matchedKeywords[t] || answerWords[t] || seen[t] {
			continue
		}
		seen[t] = true
		stray = append(stray, t)
	}
	return stray
}
