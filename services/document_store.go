package services

import (
	"context"
	"errors"
)

// Store-level sentinels. Services translate these into the client-facing
// error taxonomy; they never leak to controllers directly.
var (
	// ErrItemNotFound is returned by FindByID when no document has the id.
	ErrItemNotFound = errors.New("item not found")
	// ErrGuardFailed is returned by UpdateFields when the update's Guard
	// condition did not hold at write time.
	ErrGuardFailed = errors.New("guard condition failed")
)

// Filter selects documents by field equality and list membership.
type Filter struct {
	Equals   map[string]string // field == value
	Contains map[string]string // value is an element of the list field
}

// Query is a filtered, sorted, paginated read over a table.
type Query struct {
	Filter   Filter
	SortDesc string // sort by this field, newest first; empty keeps store order
	Skip     int
	Limit    int // 0 means no limit
}

// PullMatch removes list elements whose named sub-field equals Value.
// Used for snapshot lists keyed by user id.
type PullMatch struct {
	Field string
	Value string
}

// Guard makes an Update conditional: the guarded list must not already
// contain NotContains and, when MaxLen is positive, must currently hold
// fewer than MaxLen elements. The check and the write are applied
// atomically by the backend, which is what closes the join/capacity race.
type Guard struct {
	Field       string
	NotContains string
	MaxLen      int
}

// Update describes a field-level mutation. Set overwrites fields, Push
// appends to list fields, Pull removes targeted elements (a string removes
// the equal element, a PullMatch removes by sub-field). All parts are
// applied in a single store write.
type Update struct {
	Set   map[string]interface{}
	Push  map[string]interface{}
	Pull  map[string]interface{}
	Guard *Guard
}

// DocumentStore is the storage port every service depends on. Documents are
// loosely typed records addressed by table and id. The production backend is
// DynamoDB; an in-memory backend serves tests and local development.
type DocumentStore interface {
	FindByID(ctx context.Context, table, id string, out interface{}) error
	// FindMany unmarshals the page into out (a pointer to a slice) and
	// returns the total number of documents matching the filter before
	// skip/limit were applied.
	FindMany(ctx context.Context, table string, q Query, out interface{}) (int, error)
	Insert(ctx context.Context, table, id string, doc interface{}) error
	UpdateFields(ctx context.Context, table, id string, u Update) error
	Delete(ctx context.Context, table, id string) error
}
