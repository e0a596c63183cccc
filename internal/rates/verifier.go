// Package rates resolves the authoritative GST rate for an invoice and
// provides the lookups that back it.
package rates

import (
	"context"
	"errors"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"gstrecon/internal/domain"
	"gstrecon/internal/port"
)

const generalKeyword = "general"

// VerifierConfig tunes the verifier. Zero values fall back to the 18% slab
// and a five second lookup timeout.
type VerifierConfig struct {
	DefaultRate float64
	Timeout     time.Duration
}

// Verifier asks a RateLookup for the official rate and degrades to the
// default rate whenever the lookup fails, times out or returns nonsense.
type Verifier struct {
	lookup port.RateLookup
	cfg    VerifierConfig
}

// NewVerifier creates a Verifier over lookup.
func NewVerifier(lookup port.RateLookup, cfg VerifierConfig) *Verifier {
	if cfg.DefaultRate <= 0 {
		cfg.DefaultRate = domain.DefaultGSTRate
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &Verifier{lookup: lookup, cfg: cfg}
}

// Keyword picks the lookup key for an invoice: the HSN code when one was
// found, else the first word of the product, else "general".
func Keyword(hsn, product string) string {
	if hsn != "" && hsn != domain.NotFound {
		return hsn
	}
	if product != "" && product != domain.NotFound {
		if words := strings.Fields(product); len(words) > 0 {
			return strings.ToLower(words[0])
		}
	}
	return generalKeyword
}

type lookupResult struct {
	raw string
	err error
}

// Verify resolves the rate for keyword. It never returns an error: any
// failure yields the default rate with source "default".
func (v *Verifier) Verify(ctx context.Context, keyword string) domain.VerifiedRate {
	fallback := domain.VerifiedRate{Rate: v.cfg.DefaultRate, Source: domain.RateSourceDefault}
	if v.lookup == nil {
		return fallback
	}

	ctx, cancel := context.WithTimeout(ctx, v.cfg.Timeout)
	defer cancel()

	// the lookup may ignore ctx; the select below still bounds the wait
	done := make(chan lookupResult, 1)
	go func() {
		raw, err := v.lookup.Lookup(ctx, keyword)
		done <- lookupResult{raw: raw, err: err}
	}()

	var res lookupResult
	select {
	case res = <-done:
	case <-ctx.Done():
		log.Printf("rates.Verifier: lookup for %q timed out after %s, using default %.2f%%", keyword, v.cfg.Timeout, v.cfg.DefaultRate)
		return fallback
	}

	if res.err != nil {
		if !errors.Is(res.err, domain.ErrRateNotFound) {
			log.Printf("rates.Verifier: lookup for %q failed: %v", keyword, res.err)
		}
		return fallback
	}

	rate, ok := ParseRate(res.raw)
	if !ok {
		log.Printf("rates.Verifier: unusable rate %q for %q, using default", res.raw, keyword)
		return fallback
	}
	return domain.VerifiedRate{Rate: rate, Source: domain.RateSourceLookup}
}

// ParseRate reads a rate such as "18%", " 12 " or "5". A value that is not a
// finite positive number is rejected.
func ParseRate(raw string) (float64, bool) {
	s := strings.TrimSpace(strings.Replace(raw, "%", "", 1))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}
