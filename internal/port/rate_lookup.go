package port

import "context"

// RateLookup resolves the authoritative GST rate for a keyword (an HSN code
// or a product word). The raw value is returned as found, e.g. "18%" or
// "12"; callers parse and validate it.
type RateLookup interface {
	Lookup(ctx context.Context, keyword string) (string, error)
}
