package certificates

import (
	"context"
	"slices"

	"github.com/d4rken/cwa-app-android/internal/platform/stream"
	"github.com/d4rken/cwa-app-android/pkg/domain"
	"github.com/d4rken/cwa-app-android/pkg/platform/sentinel"
)

// Repository is the read side the engine borrows snapshots from.
type Repository interface {
	Snapshot(ctx context.Context) (Set, error)
	Subscribe(ctx context.Context) <-chan Set
}

// InMemoryRepository holds the wallet's certificates and publishes each change.
type InMemoryRepository struct {
	value *stream.Value[Set]
}

func NewInMemoryRepository(initial ...Certificate) *InMemoryRepository {
	return &InMemoryRepository{value: stream.NewValue(NewSet(initial...))}
}

func (r *InMemoryRepository) Snapshot(ctx context.Context) (Set, error) {
	if err := ctx.Err(); err != nil {
		return Set{}, err
	}
	return r.value.Get(), nil
}

func (r *InMemoryRepository) Subscribe(ctx context.Context) <-chan Set {
	return r.value.Subscribe(ctx)
}

// Put inserts or replaces certificates by ID.
func (r *InMemoryRepository) Put(certs ...Certificate) {
	r.value.Update(func(cur Set) Set {
		next := cur.All()
		for _, c := range certs {
			i := slices.IndexFunc(next, func(e Certificate) bool { return e.ID == c.ID })
			if i >= 0 {
				next[i] = c
				continue
			}
			next = append(next, c)
		}
		return NewSet(next...)
	})
}

// Remove deletes one certificate.
func (r *InMemoryRepository) Remove(id domain.CertificateID) error {
	var found bool
	r.value.Update(func(cur Set) Set {
		next := slices.DeleteFunc(cur.All(), func(c Certificate) bool {
			if c.ID == id {
				found = true
				return true
			}
			return false
		})
		if !found {
			return cur
		}
		return NewSet(next...)
	})
	if !found {
		return sentinel.ErrNotFound
	}
	return nil
}

// RemovePerson deletes every certificate held by id.
func (r *InMemoryRepository) RemovePerson(id domain.PersonID) {
	r.value.Update(func(cur Set) Set {
		return NewSet(slices.DeleteFunc(cur.All(), func(c Certificate) bool { return c.Person == id })...)
	})
}
