package ports

import "context"

// Ledger records permanent links in an external relational store.
// Insert is best-effort bookkeeping - a failed insert never unwinds
// a successful upload.
type Ledger interface {
	Insert(ctx context.Context, link string) error
}
