package rates

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"gstrecon/internal/domain"
	"gstrecon/internal/port"
)

//go:embed keywords.yaml
var defaultKeywords []byte

// KeywordFile is the YAML layout of the keyword alias file.
type KeywordFile struct {
	HSN      map[string]float64 `yaml:"hsn"`
	Keywords []KeywordEntry     `yaml:"keywords"`
}

// KeywordEntry maps a set of item words to one rate.
type KeywordEntry struct {
	Name    string   `yaml:"name"`
	Rate    float64  `yaml:"rate"`
	Aliases []string `yaml:"aliases"`
}

// LoadKeywords reads a keyword file. An empty path yields the built-in set.
func LoadKeywords(path string) (*KeywordFile, error) {
	data := defaultKeywords
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("rates.LoadKeywords: %w", err)
		}
		data = b
	}
	var kf KeywordFile
	if err := yaml.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("rates.LoadKeywords: parsing yaml: %w", err)
	}
	for i := range kf.Keywords {
		for j, a := range kf.Keywords[i].Aliases {
			kf.Keywords[i].Aliases[j] = strings.ToLower(strings.TrimSpace(a))
		}
	}
	return &kf, nil
}

type hsnRate struct {
	rate        float64
	description string
}

// TableLookup answers rate lookups from memory: the HSN master loaded from
// Postgres, then the keyword file. The HSN master can be swapped at runtime
// while lookups are in flight.
type TableLookup struct {
	mu       sync.RWMutex
	byCode   map[string][]hsnRate
	codes    []string
	keywords *KeywordFile
}

// NewTableLookup builds a TableLookup. keywords may be nil.
func NewTableLookup(entries []port.HSNEntry, keywords *KeywordFile) *TableLookup {
	if keywords == nil {
		keywords = &KeywordFile{}
	}
	t := &TableLookup{keywords: keywords}
	t.ReplaceHSN(entries)
	return t
}

// ReplaceHSN swaps in a freshly loaded HSN master.
func (t *TableLookup) ReplaceHSN(entries []port.HSNEntry) {
	m := make(map[string][]hsnRate, len(entries))
	for idx := range entries {
		e := &entries[idx]
		m[e.Code] = append(m[e.Code], hsnRate{rate: e.GSTRate, description: strings.ToLower(e.Description)})
	}
	codes := make([]string, 0, len(m))
	for c := range m {
		codes = append(codes, c)
	}
	sort.Strings(codes)

	t.mu.Lock()
	t.byCode = m
	t.codes = codes
	t.mu.Unlock()
}

// Size returns the number of distinct HSN codes loaded.
func (t *TableLookup) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.byCode)
}

// Lookup implements port.RateLookup.
func (t *TableLookup) Lookup(_ context.Context, keyword string) (string, error) {
	keyword = strings.TrimSpace(keyword)
	if r, _, ok := t.byHSN(keyword); ok {
		return FormatRaw(r), nil
	}
	if r, _, ok := t.byAlias(strings.ToLower(keyword)); ok {
		return FormatRaw(r), nil
	}
	if r, ok := t.byDescription(strings.ToLower(keyword)); ok {
		return FormatRaw(r), nil
	}
	return "", domain.ErrRateNotFound
}

// Resolve answers a direct rate query by HSN code, then by any alias found
// in free text.
func (t *TableLookup) Resolve(hsn, text string) domain.RateResolution {
	hsn = strings.TrimSpace(hsn)
	if r, code, ok := t.byHSN(hsn); ok {
		return domain.RateResolution{Rate: &r, Source: "hsn", Matched: code, Notes: "Matched by HSN"}
	}
	if r, entry, ok := t.byAlias(strings.ToLower(text)); ok {
		return domain.RateResolution{
			Rate:    &r,
			Source:  "keyword",
			Matched: entry.matched,
			Notes:   fmt.Sprintf("Matched keyword for %q", entry.name),
		}
	}
	return domain.RateResolution{Source: "none", Notes: "No match"}
}

// byHSN checks the exact code, then 6 and 4 digit prefixes, first in the
// master and then in the keyword file's code list.
func (t *TableLookup) byHSN(code string) (float64, string, bool) {
	if code == "" {
		return 0, "", false
	}
	candidates := []string{code}
	for _, prefixLen := range []int{6, 4} {
		if len(code) > prefixLen {
			candidates = append(candidates, code[:prefixLen])
		}
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, c := range candidates {
		if rates, ok := t.byCode[c]; ok && len(rates) > 0 {
			return rates[0].rate, c, true
		}
	}
	for _, c := range candidates {
		if r, ok := t.keywords.HSN[c]; ok {
			return r, c, true
		}
	}
	return 0, "", false
}

type aliasMatch struct {
	name    string
	matched string
}

func (t *TableLookup) byAlias(hay string) (float64, aliasMatch, bool) {
	if hay == "" {
		return 0, aliasMatch{}, false
	}
	for _, e := range t.keywords.Keywords {
		for _, a := range e.Aliases {
			if a != "" && strings.Contains(hay, a) {
				return e.Rate, aliasMatch{name: e.Name, matched: a}, true
			}
		}
	}
	return 0, aliasMatch{}, false
}

// byDescription finds the first master entry whose description mentions word.
func (t *TableLookup) byDescription(word string) (float64, bool) {
	if len(word) < 3 || word == generalKeyword {
		return 0, false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, c := range t.codes {
		for _, r := range t.byCode[c] {
			if strings.Contains(r.description, word) {
				return r.rate, true
			}
		}
	}
	return 0, false
}

// FormatRaw renders a rate the way lookups report it, e.g. "18%".
func FormatRaw(r float64) string {
	return fmt.Sprintf("%g%%", r)
}
