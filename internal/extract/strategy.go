package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Strategy is one matcher in an extractor's ordered fallback list. It reports
// whether it found a value.
type Strategy[T any] func(text string) (T, bool)

// firstMatch runs strategies in order and returns the first hit.
func firstMatch[T any](text string, strategies []Strategy[T]) (T, bool) {
	for _, s := range strategies {
		if v, ok := s(text); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// captureFirst returns a strategy yielding the trimmed first group of re.
func captureFirst(re *regexp.Regexp) Strategy[string] {
	return func(text string) (string, bool) {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return "", false
		}
		v := strings.TrimSpace(m[1])
		return v, v != ""
	}
}

// parseAmount reads a currency figure such as "1,25,000.50".
func parseAmount(s string) (float64, bool) {
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func orNotFound(v string, ok bool) string {
	if !ok {
		return notFound
	}
	return v
}
