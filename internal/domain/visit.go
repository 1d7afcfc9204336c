package domain

import (
	"time"
)

// Visit is one ledger entry per (visitor key, calendar day). The storage
// layer enforces uniqueness on the pair; concurrent first visits race on the
// insert and exactly one wins.
type Visit struct {
	ID         int64     `json:"id" db:"id"`
	VisitorKey string    `json:"visitor_key" db:"visitor_key"`
	Day        time.Time `json:"day" db:"day"`
	Count      int       `json:"count" db:"count"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// UnknownVisitor is the sentinel key used when no client address can be
// derived from the request.
const UnknownVisitor = "unknown"

// Midnight truncates t to the start of its calendar day in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
