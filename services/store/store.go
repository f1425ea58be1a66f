package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the requested record does not exist in the
// given collection.
var ErrNotFound = errors.New("record not found")

// Record is any persisted entity with a string identity.
type Record interface {
	RecordID() string
	SetRecordID(id string)
}

/*
 * Store is the keyed-record persistence contract the coordination core
 * consumes. Records live in named collections, field updates are per-record
 * atomic, and the array operations never duplicate (union) and remove every
 * occurrence (remove), mirroring hosted document store semantics.
 */
type Store interface {
	// Get loads the record with the given id into out (a model pointer).
	Get(ctx context.Context, collection, id string, out any) error
	// Set writes the full record, creating or replacing it.
	Set(ctx context.Context, collection, id string, record Record) error
	// Update patches the named fields (snake_case column keys) of one record.
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	// Add inserts a new record, generating its id, and returns the id.
	Add(ctx context.Context, collection string, record Record) (string, error)
	// ArrayUnion appends value to the named JSON array field if absent.
	ArrayUnion(ctx context.Context, collection, id, field, value string) error
	// ArrayRemove deletes every occurrence of value from the array field.
	ArrayRemove(ctx context.Context, collection, id, field, value string) error
	// Delete removes the record; deleting a missing record is not an error.
	Delete(ctx context.Context, collection, id string) error
	// Query loads all records matching the field-equality filters into out
	// (a pointer to a model slice).
	Query(ctx context.Context, collection string, filters map[string]any, out any) error
}
