package ids

import (
	mathrand "math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0)
)

// New returns a lexicographically sortable identifier used for ledger
// entries, payment references and helpdesk tickets.
func New() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// Short returns the tail of a fresh identifier. Ticket ids append it to
// a second-resolution timestamp so two tickets filed within the same
// second stay distinct.
func Short() string {
	id := New()
	return strings.ToLower(id[len(id)-6:])
}
