package scala

import (
	"strings"
	"unicode"

	"github.com/cwbudde/algo-tuner/tuning/scale"
)

// ParseSteps parses a user-entered step list. Tokens are separated by
// whitespace, newlines or ';' and each is a cents value or a ratio, as in a
// step line. Unlike ParseString, a bad token rejects the whole input with a
// *StepError. The result is normalised and must hold at least two steps.
func ParseSteps(text string) ([]float64, error) {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return r == ';' || unicode.IsSpace(r)
	})

	steps := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		cents, err := ParseStep(tok)
		if err != nil {
			return nil, err
		}
		steps = append(steps, cents)
	}

	steps = scale.Normalize(steps)
	if len(steps) < 2 {
		return nil, ErrTooFewSteps
	}
	return steps, nil
}
