package certificates

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d4rken/cwa-app-android/pkg/domain"
	"github.com/d4rken/cwa-app-android/pkg/platform/sentinel"
)

var issued = time.Date(2022, 1, 10, 0, 0, 0, 0, time.UTC)

func cert(id, person string, typ domain.CertificateType) Certificate {
	return Certificate{
		ID:       domain.CertificateID(id),
		Person:   domain.PersonID(person),
		Type:     typ,
		IssuedAt: issued,
		Payload:  json.RawMessage(`{"v":[{"dn":2,"sd":2}]}`),
	}
}

func TestSet_ForPersonAndPersons(t *testing.T) {
	s := NewSet(
		cert("c3", "bob", domain.CertificateTypeTest),
		cert("c1", "alice", domain.CertificateTypeVaccination),
		cert("c2", "alice", domain.CertificateTypeRecovery),
	)

	assert.Equal(t, []domain.PersonID{"alice", "bob"}, s.Persons())
	assert.Equal(t, 2, s.ForPerson("alice").Len())
	assert.Equal(t, 0, s.ForPerson("carol").Len())

	vacc := s.ForPerson("alice").OfTypes([]domain.CertificateType{domain.CertificateTypeVaccination})
	require.Len(t, vacc, 1)
	assert.Equal(t, domain.CertificateID("c1"), vacc[0].ID)
}

func TestSet_FingerprintIgnoresOrderButTracksContent(t *testing.T) {
	a := cert("c1", "alice", domain.CertificateTypeVaccination)
	b := cert("c2", "alice", domain.CertificateTypeTest)

	assert.Equal(t, NewSet(a, b).Fingerprint(), NewSet(b, a).Fingerprint())

	changed := b
	changed.Payload = json.RawMessage(`{"t":[{"tr":"260415000"}]}`)
	assert.NotEqual(t, NewSet(a, b).Fingerprint(), NewSet(a, changed).Fingerprint())
}

func TestSet_FingerprintSeparatesFields(t *testing.T) {
	left := cert("ab", "c", domain.CertificateTypeVaccination)
	right := cert("a", "bc", domain.CertificateTypeVaccination)

	assert.NotEqual(t, NewSet(left).Fingerprint(), NewSet(right).Fingerprint())
}

func TestSet_IsImmutable(t *testing.T) {
	src := []Certificate{cert("c1", "alice", domain.CertificateTypeVaccination)}
	s := NewSet(src...)
	src[0].Person = "mallory"

	all := s.All()
	all[0].Person = "eve"
	assert.Equal(t, domain.PersonID("alice"), s.All()[0].Person)
}

func TestInMemoryRepository(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := NewInMemoryRepository(cert("c1", "alice", domain.CertificateTypeVaccination))
	sub := repo.Subscribe(ctx)
	first := <-sub
	assert.Equal(t, 1, first.Len())

	repo.Put(cert("c2", "bob", domain.CertificateTypeTest))
	select {
	case next := <-sub:
		assert.Equal(t, 2, next.Len())
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot after Put")
	}

	require.NoError(t, repo.Remove("c2"))
	assert.ErrorIs(t, repo.Remove("c2"), sentinel.ErrNotFound)

	repo.RemovePerson("alice")
	snap, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Len())
}
