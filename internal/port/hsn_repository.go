package port

import "context"

// HSNEntry is one row of the HSN/SAC rate master.
type HSNEntry struct {
	Code          string  `db:"code"`
	Description   string  `db:"description"`
	GSTRate       float64 `db:"gst_rate"`
	ConditionDesc string  `db:"condition_desc"`
}

// HSNRepository loads the rate master that backs local rate lookups.
type HSNRepository interface {
	LoadAll(ctx context.Context) ([]HSNEntry, error)
}
