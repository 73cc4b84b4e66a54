package entry

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/ranjan-27/SmartLog/internal/domain"
)

// MockStore is a create-only transaction store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Create(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockUpdaterStore can update by full record
type MockUpdaterStore struct {
	MockStore
}

func (m *MockUpdaterStore) Update(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockIDUpdaterStore can update by ID
type MockIDUpdaterStore struct {
	MockStore
}

func (m *MockIDUpdaterStore) UpdateByID(ctx context.Context, id domain.TransactionID, tx *domain.Transaction) error {
	args := m.Called(ctx, id, tx)
	return args.Error(0)
}

// MockModifierStore rewrites its collection through Modify.
// Current is what the callback sees; Written holds what it returned.
type MockModifierStore struct {
	MockStore
	Current []*domain.Transaction
	Written []*domain.Transaction
}

func (m *MockModifierStore) Modify(ctx context.Context, fn domain.ModifyFunc) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}

	next, err := fn(m.Current)
	if err != nil {
		return err
	}
	m.Written = next
	return nil
}

// MockFullStore offers every capability
type MockFullStore struct {
	MockStore
}

func (m *MockFullStore) Update(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockFullStore) UpdateByID(ctx context.Context, id domain.TransactionID, tx *domain.Transaction) error {
	args := m.Called(ctx, id, tx)
	return args.Error(0)
}

func (m *MockFullStore) Modify(ctx context.Context, fn domain.ModifyFunc) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

// MockNotifier records toasts
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Success(message string) {
	m.Called(message)
}

func (m *MockNotifier) Error(message string) {
	m.Called(message)
}

// fakeScheduler holds callbacks until Fire is called
type fakeScheduler struct {
	mu      sync.Mutex
	pending []*fakeTimer
}

type fakeTimer struct {
	delay   time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &fakeTimer{delay: d, f: f}
	s.pending = append(s.pending, t)
	return t
}

// Fire runs every timer that has not been stopped or fired yet
func (s *fakeScheduler) Fire() {
	s.mu.Lock()
	due := make([]*fakeTimer, 0, len(s.pending))
	for _, t := range s.pending {
		if !t.stopped && !t.fired {
			t.fired = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

// FireStale runs every callback ever scheduled, including stopped ones,
// the way a timer that already started firing would
func (s *fakeScheduler) FireStale() {
	s.mu.Lock()
	all := append([]*fakeTimer(nil), s.pending...)
	s.mu.Unlock()

	for _, t := range all {
		t.f()
	}
}

func (s *fakeScheduler) Scheduled() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

type fixedIDs struct {
	next domain.TransactionID
}

func (g *fixedIDs) NextID() domain.TransactionID {
	id := g.next
	g.next++
	return id
}
