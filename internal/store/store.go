// Package store keeps each entity collection as one JSON document under a
// fixed key. Every operation reads or writes the whole collection; there is no
// query support beyond whole-collection reads.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"travel-agency/internal/idgen"
)

// Collection keys
const (
	KeyPackages = "packages"
	KeyUsers    = "users"
	KeyLeads    = "leads"
	KeyBookings = "bookings"
	KeyInvoices = "invoices"
	KeySettings = "companySettings"
)

// Blobs is a key-value backend holding one document per key
type Blobs interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, data []byte) error
	// Modify hands the current document to fn and stores what fn returns,
	// atomically with respect to every other Modify on the same key, across
	// processes sharing the backend. A nil result leaves the key untouched.
	Modify(ctx context.Context, key string, fn func(data []byte, found bool) ([]byte, error)) error
}

// Record is implemented by every stored entity
type Record[T any] interface {
	RecordID() string
	WithRecordID(id string) T
}

// Collection is an ordered list of records stored under one key.
// Writes go through Blobs.Modify, so concurrent writers on a shared backend
// never drop each other's changes.
type Collection[T Record[T]] struct {
	blobs  Blobs
	key    string
	seed   []T
	ids    *idgen.Generator
	prefix string
}

func NewCollection[T Record[T]](blobs Blobs, key string, seed []T, ids *idgen.Generator, idPrefix string) *Collection[T] {
	return &Collection[T]{
		blobs:  blobs,
		key:    key,
		seed:   seed,
		ids:    ids,
		prefix: idPrefix,
	}
}

// Key returns the storage key of the collection
func (c *Collection[T]) Key() string {
	return c.key
}

// GetAll returns every record. A missing key is seeded with the fixture list.
func (c *Collection[T]) GetAll(ctx context.Context) ([]T, error) {
	data, ok, err := c.blobs.Load(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", c.key, err)
	}

	if !ok {
		err := c.blobs.Modify(ctx, c.key, func(current []byte, found bool) ([]byte, error) {
			if found {
				// seeded by another writer
				data = current
				return nil, nil
			}
			seed, err := json.Marshal(c.seedItems())
			if err != nil {
				return nil, fmt.Errorf("failed to encode %s seed: %w", c.key, err)
			}
			data = seed
			return seed, nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to seed %s: %w", c.key, err)
		}
	}

	return c.decode(data, true)
}

// Get returns the record with the given id
func (c *Collection[T]) Get(ctx context.Context, id string) (T, bool, error) {
	var zero T
	items, err := c.GetAll(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, item := range items {
		if item.RecordID() == id {
			return item, true, nil
		}
	}
	return zero, false, nil
}

// Find returns the first record matching pred
func (c *Collection[T]) Find(ctx context.Context, pred func(T) bool) (T, bool, error) {
	var zero T
	items, err := c.GetAll(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, item := range items {
		if pred(item) {
			return item, true, nil
		}
	}
	return zero, false, nil
}

// Add stores a copy of rec under a fresh id and returns the stored copy
func (c *Collection[T]) Add(ctx context.Context, rec T) (T, error) {
	var zero T
	rec = rec.WithRecordID(c.ids.NextString(c.prefix))
	err := c.mutate(ctx, func(items []T) ([]T, bool, error) {
		return append(items, rec), true, nil
	})
	if err != nil {
		return zero, err
	}
	return rec, nil
}

// Update replaces the record carrying rec's id. It is a no-op when no record
// matches; matched reports whether a replacement happened.
func (c *Collection[T]) Update(ctx context.Context, rec T) (bool, error) {
	matched := false
	err := c.mutate(ctx, func(items []T) ([]T, bool, error) {
		matched = false
		for i := range items {
			if items[i].RecordID() == rec.RecordID() {
				items[i] = rec
				matched = true
			}
		}
		return items, matched, nil
	})
	if err != nil {
		return false, err
	}
	return matched, nil
}

// Modify applies fn to the record with the given id and stores the result in
// one atomic step. The id is kept whatever fn returns. An error from fn
// aborts the write and is returned unwrapped.
func (c *Collection[T]) Modify(ctx context.Context, id string, fn func(T) (T, error)) (T, bool, error) {
	var (
		zero    T
		updated T
		matched bool
	)
	err := c.mutate(ctx, func(items []T) ([]T, bool, error) {
		matched = false
		for i := range items {
			if items[i].RecordID() != id {
				continue
			}
			rec, err := fn(items[i])
			if err != nil {
				return nil, false, err
			}
			items[i] = rec.WithRecordID(id)
			updated = items[i]
			matched = true
			break
		}
		return items, matched, nil
	})
	if err != nil {
		return zero, false, err
	}
	if !matched {
		return zero, false, nil
	}
	return updated, true, nil
}

// Delete removes the record with the given id. Missing ids are ignored.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	return c.mutate(ctx, func(items []T) ([]T, bool, error) {
		kept := make([]T, 0, len(items))
		for _, item := range items {
			if item.RecordID() != id {
				kept = append(kept, item)
			}
		}
		return kept, len(kept) != len(items), nil
	})
}

// mutate runs fn over the stored list inside Blobs.Modify. fn reports whether
// it changed anything; unchanged lists are not written.
func (c *Collection[T]) mutate(ctx context.Context, fn func(items []T) ([]T, bool, error)) error {
	var fnErr error
	err := c.blobs.Modify(ctx, c.key, func(data []byte, found bool) ([]byte, error) {
		items, err := c.decode(data, found)
		if err != nil {
			return nil, err
		}

		items, changed, err := fn(items)
		if err != nil {
			fnErr = err
			return nil, err
		}
		if !changed {
			return nil, nil
		}

		out, err := json.Marshal(items)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", c.key, err)
		}
		return out, nil
	})
	if err == nil {
		return nil
	}
	if fnErr != nil && errors.Is(err, fnErr) {
		return fnErr
	}
	return fmt.Errorf("failed to save %s: %w", c.key, err)
}

// decode parses a stored list, falling back to the seed when the key is absent
func (c *Collection[T]) decode(data []byte, found bool) ([]T, error) {
	if !found {
		return c.seedItems(), nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", c.key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *Collection[T]) seedItems() []T {
	return append([]T{}, c.seed...)
}
