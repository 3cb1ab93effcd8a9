// Package certificates holds the certificate snapshot the wallet engine evaluates.
// Certificates arrive already decoded and verified; this package only groups them.
package certificates

import (
	"encoding/binary"
	"encoding/json"
	"slices"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/d4rken/cwa-app-android/pkg/domain"
)

// Certificate is one decoded health certificate held on the device.
type Certificate struct {
	ID        domain.CertificateID   `json:"id"`
	Person    domain.PersonID        `json:"person"`
	Type      domain.CertificateType `json:"type"`
	IssuedAt  time.Time              `json:"issued_at"`
	ExpiresAt time.Time              `json:"expires_at"`
	// Payload is the decoded certificate body the logic expressions read from.
	Payload json.RawMessage `json:"payload"`
}

// Set is an immutable snapshot of certificates ordered by ID.
type Set struct {
	certs []Certificate
}

// NewSet copies certs into a snapshot.
func NewSet(certs ...Certificate) Set {
	cp := slices.Clone(certs)
	slices.SortFunc(cp, func(a, b Certificate) int {
		return strings.Compare(string(a.ID), string(b.ID))
	})
	return Set{certs: cp}
}

// All returns a copy of every certificate in the snapshot.
func (s Set) All() []Certificate {
	return slices.Clone(s.certs)
}

func (s Set) Len() int {
	return len(s.certs)
}

// ForPerson narrows the snapshot to one person's certificates.
func (s Set) ForPerson(id domain.PersonID) Set {
	var out []Certificate
	for _, c := range s.certs {
		if c.Person == id {
			out = append(out, c)
		}
	}
	return Set{certs: out}
}

// OfTypes keeps certificates whose type is listed. An empty list keeps all.
func (s Set) OfTypes(types []domain.CertificateType) []Certificate {
	if len(types) == 0 {
		return s.All()
	}
	var out []Certificate
	for _, c := range s.certs {
		if slices.Contains(types, c.Type) {
			out = append(out, c)
		}
	}
	return out
}

// Persons lists the distinct holders in ascending order.
func (s Set) Persons() []domain.PersonID {
	seen := make(map[domain.PersonID]struct{}, len(s.certs))
	var out []domain.PersonID
	for _, c := range s.certs {
		if _, ok := seen[c.Person]; ok {
			continue
		}
		seen[c.Person] = struct{}{}
		out = append(out, c.Person)
	}
	slices.Sort(out)
	return out
}

// Fingerprint is a content hash of the snapshot. Equal sets hash equally
// regardless of insertion order.
func (s Set) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, c := range s.certs {
		HashField(d, []byte(c.ID))
		HashField(d, []byte(c.Person))
		HashField(d, []byte(c.Type))
		binary.LittleEndian.PutUint64(buf[:], uint64(c.IssuedAt.UnixNano()))
		_, _ = d.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], uint64(c.ExpiresAt.UnixNano()))
		_, _ = d.Write(buf[:])
		HashField(d, c.Payload)
	}
	return d.Sum64()
}

// HashField writes b length-prefixed so adjacent fields cannot run together.
func HashField(d *xxhash.Digest, b []byte) {
	var n [binary.MaxVarintLen64]byte
	_, _ = d.Write(n[:binary.PutUvarint(n[:], uint64(len(b)))])
	_, _ = d.Write(b)
}
