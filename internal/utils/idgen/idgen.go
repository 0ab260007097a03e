package idgen

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyOnce sync.Once
	entropy     *ulid.LockedMonotonicReader
)

// newEntropy returns the shared entropy source. The locked reader serializes
// monotonic reads, since ids are generated from concurrent request handlers.
func newEntropy() *ulid.LockedMonotonicReader {
	entropyOnce.Do(func() {
		source := rand.NewSource(time.Now().UnixNano())
		entropy = &ulid.LockedMonotonicReader{
			MonotonicReader: ulid.Monotonic(rand.New(source), 0),
		}
	})
	return entropy
}

// New returns a prefixed lowercase ULID, e.g. "msg_01hv...".
func New(prefix string) string {
	id := ulid.MustNew(ulid.Timestamp(time.Now()), newEntropy())
	return prefix + "_" + strings.ToLower(id.String())
}

// NewMessageID returns an identifier for an outbound chat message.
func NewMessageID() string {
	return New("msg")
}
