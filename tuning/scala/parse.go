package scala

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"

	"github.com/cwbudde/algo-tuner/dsp/core"
	"github.com/cwbudde/algo-tuner/tuning/scale"
)

// MaxFileSize bounds the input accepted by Parse.
const MaxFileSize = 1 << 20

// Option configures parsing.
type Option func(*config)

type config struct {
	fallback encoding.Encoding
}

// WithFallbackEncoding selects the code page used for input that is neither
// UTF-8 nor UTF-16, e.g. charmap.Macintosh for files saved on classic Mac OS.
func WithFallbackEncoding(enc encoding.Encoding) Option {
	return func(c *config) {
		if enc != nil {
			c.fallback = enc
		}
	}
}

// Parse reads one .scl file from r.
func Parse(r io.Reader, opts ...Option) (*scale.Definition, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("scala: read: %w", err)
	}
	if len(data) > MaxFileSize {
		return nil, ErrTooLarge
	}

	return ParseBytes(data, opts...)
}

// ParseBytes parses raw file contents.
func ParseBytes(data []byte, opts ...Option) (*scale.Definition, error) {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	text, err := Decode(data, cfg.fallback)
	if err != nil {
		return nil, err
	}

	return ParseString(text)
}

// ParseString parses already decoded text. Malformed step lines are
// skipped; only a missing description or a missing or invalid count fail.
func ParseString(text string) (*scale.Definition, error) {
	lines := lines{rows: strings.Split(normalizeNewlines(text), "\n")}

	desc, ok := lines.next()
	if !ok {
		return nil, ErrMissingDescription
	}
	desc = strings.TrimPrefix(desc, "\uFEFF")

	countLine, ok := lines.next()
	if !ok {
		return nil, ErrMissingCount
	}
	count, err := parseCount(countLine)
	if err != nil {
		return nil, err
	}

	// count comes from the file; only the remaining lines can hold steps.
	steps := make([]float64, 0, min(count, len(lines.rows)-lines.pos))
	for range count {
		line, ok := lines.next()
		if !ok {
			break
		}

		fields := strings.Fields(stripComment(line))
		if len(fields) == 0 {
			continue
		}
		cents, err := ParseStep(fields[0])
		if err != nil {
			continue
		}
		steps = append(steps, cents)
	}

	return scale.NewDefinition(desc, steps), nil
}

// ParseStep converts one step token to cents. Tokens containing '/' are
// ratios a/b with a, b > 0; other tokens are cents, optionally suffixed with
// 'c', with ',' accepted as decimal separator.
func ParseStep(token string) (float64, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, &StepError{Token: token, Reason: "empty"}
	}

	if num, den, isRatio := strings.Cut(token, "/"); isRatio {
		a, errA := parseNumber(num)
		b, errB := parseNumber(den)
		if errA != nil || errB != nil {
			return 0, &StepError{Token: token, Reason: "ratio terms must be numbers"}
		}
		if a <= 0 || b <= 0 {
			return 0, &StepError{Token: token, Reason: "ratio terms must be positive"}
		}
		cents := core.RatioToCents(a / b)
		if !core.IsFinite(cents) {
			return 0, &StepError{Token: token, Reason: "ratio out of range"}
		}
		return cents, nil
	}

	body := strings.TrimSuffix(token, "c")
	if body == token {
		body = strings.TrimSuffix(token, "C")
	}
	cents, err := parseNumber(body)
	if err != nil {
		return 0, &StepError{Token: token, Reason: "not a cents value or ratio"}
	}
	return cents, nil
}

func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrRange
	}
	return v, nil
}

func parseCount(line string) (int, error) {
	fields := strings.Fields(stripComment(line))
	if len(fields) == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCount, line)
	}

	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCount, fields[0])
	}
	return n, nil
}

func stripComment(line string) string {
	if i := strings.IndexAny(line, "!;"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

// lines yields trimmed lines that are neither blank nor '!' comments.
type lines struct {
	rows []string
	pos  int
}

func (l *lines) next() (string, bool) {
	for l.pos < len(l.rows) {
		row := strings.TrimSpace(l.rows[l.pos])
		l.pos++
		if row == "" || strings.HasPrefix(row, "!") {
			continue
		}
		return row, true
	}
	return "", false
}
