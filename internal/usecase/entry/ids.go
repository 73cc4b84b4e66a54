package entry

import (
	"sync"
	"time"

	"github.com/ranjan-27/SmartLog/internal/domain"
)

// IDGenerator allocates identifiers for newly created transactions
type IDGenerator interface {
	NextID() domain.TransactionID
}

// ClockIDGenerator derives IDs from the wall clock in milliseconds.
// IDs are strictly increasing even when several are requested within the same millisecond.
type ClockIDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewClockIDGenerator creates a new ClockIDGenerator instance
func NewClockIDGenerator() *ClockIDGenerator {
	return &ClockIDGenerator{now: time.Now}
}

// NextID returns the next identifier
func (g *ClockIDGenerator) NextID() domain.TransactionID {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id

	return domain.TransactionID(id)
}

var defaultIDs = NewClockIDGenerator()
