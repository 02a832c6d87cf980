// Package idx generates ULIDs: request ids and archive object names, where
// lexical order should follow creation time. Entity keys are UUIDs.
package idx

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ID is a Crockford base32 ULID string. New produces upper case; Parse
// keeps the case it was given.
type ID string

// ErrInvalid is returned by Parse for malformed input.
var ErrInvalid = errors.New("idx: invalid ulid")

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// New returns an ID stamped with the current UTC time.
func New() ID { return NewAt(time.Now()) }

// NewAt returns an ID stamped with t. IDs from the same millisecond still
// sort in creation order.
func NewAt(t time.Time) ID {
	mu.Lock()
	defer mu.Unlock()
	return ID(ulid.MustNew(ulid.Timestamp(t.UTC()), entropy).String())
}

// Parse validates s as a ULID.
func Parse(s string) (ID, error) {
	if _, err := ulid.ParseStrict(strings.TrimSpace(s)); err != nil {
		return "", ErrInvalid
	}
	return ID(strings.TrimSpace(s)), nil
}

func (id ID) String() string { return string(id) }

// Lower is the form used in object keys.
func (id ID) Lower() string { return strings.ToLower(string(id)) }

// Time returns the embedded timestamp, or the zero time for a malformed id.
func (id ID) Time() time.Time {
	u, err := ulid.ParseStrict(string(id))
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time()).UTC()
}
