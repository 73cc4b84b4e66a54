package entry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ranjan-27/SmartLog/internal/domain"
	"github.com/ranjan-27/SmartLog/internal/money"
)

// DefaultCloseDelay is how long the form stays mounted after it is hidden
const DefaultCloseDelay = 250 * time.Millisecond

// Mode selects whether the form creates a new transaction or edits an existing one
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

var (
	ErrNoEditTarget = errors.New("edit mode requires an existing transaction")
	ErrUnknownMode  = errors.New("form mode must be create or edit")
	ErrUnknownField = errors.New("unknown draft field")
	ErrNoUpdatePath = errors.New("store offers no way to update an existing transaction")
	ErrDiscarded    = errors.New("entry form has been discarded")
)

// CommitError is returned when the store fails to save a valid draft
type CommitError struct {
	Strategy string
	Err      error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("failed to save transaction (%s): %v", e.Strategy, e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}

// State is a snapshot of everything a host needs to render the form
type State struct {
	Visible         bool
	Mode            Mode
	EditMode        bool
	EditingID       domain.TransactionID
	Draft           domain.Draft
	Errors          domain.ValidationErrors
	Submitting      bool
	Suggestions     []string
	ShowSuggestions bool
	CurrencySymbol  string
	Title           string
	SubmitLabel     string
}

// Option configures a Controller
type Option func(*Controller)

// WithNotifier sets the sink that receives save outcomes
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithCurrency sets the provider used to derive the amount's currency symbol
func WithCurrency(p money.CurrencyProvider) Option {
	return func(c *Controller) { c.currency = p }
}

// WithScheduler replaces the timer source used for the delayed close
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.scheduler = s }
}

// WithIDGenerator replaces the generator used for new transaction IDs
func WithIDGenerator(g IDGenerator) Option {
	return func(c *Controller) { c.ids = g }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithClock replaces the source of "today"
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithCloseDelay sets how long teardown waits after the form is hidden
func WithCloseDelay(d time.Duration) Option {
	return func(c *Controller) { c.closeDelay = d }
}

// WithDuplicateOnEdit lets an edit fall back to creating a record when the
// store cannot update. The original record is left untouched, so this
// produces a duplicate.
func WithDuplicateOnEdit(allow bool) Option {
	return func(c *Controller) { c.allowDuplicateOnEdit = allow }
}

// OnDismiss registers the callback run when the form is fully torn down
func OnDismiss(f func()) Option {
	return func(c *Controller) { c.onDismiss = f }
}

// OnClearEditTarget registers the callback that clears the host's edit target on teardown
func OnClearEditTarget(f func()) Option {
	return func(c *Controller) { c.onClearEditTarget = f }
}

// Controller owns the draft behind the add/edit transaction form.
// It validates the draft, commits it through the best store operation
// available, and drives the form's visibility.
type Controller struct {
	mu sync.Mutex

	plan                 commitPlan
	allowDuplicateOnEdit bool
	notifier             Notifier
	currency             money.CurrencyProvider
	scheduler            Scheduler
	ids                  IDGenerator
	logger               *zap.Logger
	now                  func() time.Time
	closeDelay           time.Duration
	onDismiss            func()
	onClearEditTarget    func()

	mode            Mode
	editing         *domain.Transaction
	draft           domain.Draft
	errors          domain.ValidationErrors
	submitting      bool
	suggestions     []string
	showSuggestions bool
	visible         bool

	openSeq    uint64
	closing    bool
	closeGen   uint64
	closeTimer Timer
	discarded  bool
}

// NewController creates a new Controller instance committing to store
func NewController(store domain.TransactionRepository, opts ...Option) *Controller {
	c := &Controller{
		notifier:   nopNotifier{},
		scheduler:  timeScheduler{},
		ids:        defaultIDs,
		logger:     zap.NewNop(),
		now:        time.Now,
		closeDelay: DefaultCloseDelay,
		mode:       ModeCreate,
		errors:     domain.ValidationErrors{},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.plan = newCommitPlan(store, c.allowDuplicateOnEdit)
	c.draft = domain.NewDraft(c.now())

	return c
}

// Open shows the form. In edit mode the draft is seeded from existing,
// otherwise it is reset to defaults. Validation errors are always cleared.
func (c *Controller) Open(mode Mode, existing *domain.Transaction) error {
	switch mode {
	case ModeCreate:
	case ModeEdit:
		if existing == nil {
			return ErrNoEditTarget
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.discarded {
		return ErrDiscarded
	}

	today := c.now()
	if mode == ModeEdit {
		c.editing = existing.Clone()
		c.draft = domain.DraftFrom(existing, today)
	} else {
		c.editing = nil
		c.draft = domain.NewDraft(today)
	}

	c.openSeq++
	c.mode = mode
	c.errors = domain.ValidationErrors{}
	c.suggestions = nil
	c.showSuggestions = false
	c.visible = true
	c.cancelPendingCloseLocked()

	c.logger.Debug("entry form opened", zap.String("mode", string(mode)))

	return nil
}

// UpdateField stores raw into the named field and clears that field's error.
// Dates arrive as YYYY-MM-DD and are stored as DD/MM/YYYY; category edits
// refresh the suggestion list.
func (c *Controller) UpdateField(field domain.Field, raw string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch field {
	case domain.FieldAmount:
		c.draft.Amount = raw
	case domain.FieldCategory:
		c.draft.Category = raw
		c.suggestions = domain.SuggestCategories(raw)
		c.showSuggestions = len(c.suggestions) > 0
	case domain.FieldType:
		typ, err := domain.ParseTransactionType(raw)
		if err != nil {
			return err
		}
		c.draft.Type = typ
	case domain.FieldDate:
		c.draft.Date, _ = domain.NormalizeInputDate(raw)
	case domain.FieldNote:
		c.draft.Note = domain.TruncateNote(raw)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	delete(c.errors, field)
	return nil
}

// SelectSuggestion sets the category to value and closes the suggestion list
func (c *Controller) SelectSuggestion(value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.draft.Category = value
	c.suggestions = nil
	c.showSuggestions = false
	delete(c.errors, domain.FieldCategory)
}

// FocusCategory re-shows any pending suggestions
func (c *Controller) FocusCategory() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.showSuggestions = len(c.suggestions) > 0
}

// BlurCategory hides the suggestion list
func (c *Controller) BlurCategory() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.showSuggestions = false
}

// Validate checks the draft, records the result as the form's errors and returns it
func (c *Controller) Validate() (bool, domain.ValidationErrors) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errors = c.draft.Validate()
	return c.errors.Valid(), c.errors.Clone()
}

// Submit validates the draft and commits it.
// Logic:
//  1. Validate; an invalid draft returns its ValidationErrors and touches nothing else
//  2. Mark submitting and build the payload (decimal amount, date defaulting to today)
//  3. Edit: use the preferred update strategy, keeping the original ID
//     Create: allocate a fresh ID and create
//  4. Success: notify, reset the draft, begin closing
//     Failure: notify, keep the draft for a retry
//  5. Clear submitting and validation errors either way
//
// If the form is reopened while the store call is in flight, the new draft
// is left alone and the form stays open; only the notification is sent.
func (c *Controller) Submit(ctx context.Context) (*domain.Transaction, error) {
	c.mu.Lock()
	if c.discarded {
		c.mu.Unlock()
		return nil, ErrDiscarded
	}

	c.errors = c.draft.Validate()
	if !c.errors.Valid() {
		errs := c.errors.Clone()
		c.mu.Unlock()
		return nil, errs
	}

	c.submitting = true
	seq := c.openSeq
	draft := c.draft
	editing := c.editing.Clone()
	edit := c.isEditLocked()
	today := c.now()
	c.mu.Unlock()

	var (
		tx  *domain.Transaction
		msg string
		err error
	)
	if edit {
		tx, err = c.commitEdit(ctx, draft, editing.ID, today)
		msg = MsgTransactionUpdated
	} else {
		tx, err = c.commitCreate(ctx, draft, today)
		msg = MsgTransactionAdded
	}

	c.mu.Lock()
	c.submitting = false
	reopened := c.openSeq != seq
	if !reopened {
		c.errors = domain.ValidationErrors{}
		if err == nil {
			c.draft = domain.NewDraft(c.now())
		}
	}
	c.mu.Unlock()

	if err != nil {
		c.logger.Error("failed to save transaction", zap.Bool("edit", edit), zap.Error(err))
		c.notifier.Error(MsgSaveFailed)
		return nil, err
	}

	c.notifier.Success(msg)
	if !reopened {
		c.Close()
	}

	return tx, nil
}

func (c *Controller) commitCreate(ctx context.Context, draft domain.Draft, today time.Time) (*domain.Transaction, error) {
	tx, err := draft.ToTransaction(c.ids.NextID(), today)
	if err != nil {
		return nil, err
	}

	if err := c.plan.create.commit(ctx, tx.Clone()); err != nil {
		return nil, &CommitError{Strategy: c.plan.create.name, Err: err}
	}

	c.logger.Info("transaction added", zap.Int64("transaction_id", int64(tx.ID)))
	return tx, nil
}

func (c *Controller) commitEdit(ctx context.Context, draft domain.Draft, id domain.TransactionID, today time.Time) (*domain.Transaction, error) {
	tx, err := draft.ToTransaction(id, today)
	if err != nil {
		return nil, err
	}

	strategy, ok := c.plan.forEdit()
	if !ok {
		return nil, &CommitError{Strategy: "none", Err: ErrNoUpdatePath}
	}

	if strategy.degraded {
		c.logger.Warn("store cannot update transactions, saving edit as a new record",
			zap.Int64("transaction_id", int64(id)))
	}

	if err := strategy.commit(ctx, tx.Clone()); err != nil {
		return nil, &CommitError{Strategy: strategy.name, Err: err}
	}

	c.logger.Info("transaction updated",
		zap.Int64("transaction_id", int64(id)),
		zap.String("strategy", strategy.name))
	return tx, nil
}

// Close hides the form now and tears it down after the close delay.
// Calls made while a close is pending, or after teardown, do nothing.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closing || c.discarded {
		c.mu.Unlock()
		return
	}
	c.visible = false
	c.closing = true
	c.closeGen++
	gen := c.closeGen
	delay := c.closeDelay
	c.mu.Unlock()

	c.logger.Debug("entry form closing", zap.Duration("delay", delay))
	timer := c.scheduler.AfterFunc(delay, func() { c.finishClose(gen) })

	c.mu.Lock()
	if c.closing && gen == c.closeGen {
		c.closeTimer = timer
	}
	c.mu.Unlock()
}

// finishClose is the second phase of Close
func (c *Controller) finishClose(gen uint64) {
	c.mu.Lock()
	if c.discarded || !c.closing || gen != c.closeGen {
		c.mu.Unlock()
		return
	}

	c.closeTimer = nil
	c.mode = ModeCreate
	c.editing = nil
	c.draft = domain.NewDraft(c.now())
	c.errors = domain.ValidationErrors{}
	c.suggestions = nil
	c.showSuggestions = false
	dismiss, clearTarget := c.onDismiss, c.onClearEditTarget
	c.mu.Unlock()

	if dismiss != nil {
		dismiss()
	}
	if clearTarget != nil {
		clearTarget()
	}
}

// Discard tears the controller down; a pending close becomes a no-op
func (c *Controller) Discard() {
	c.mu.Lock()
	c.discarded = true
	c.visible = false
	timer := c.closeTimer
	c.closeTimer = nil
	c.mu.Unlock()

	if timer != nil {
		timer.Stop()
	}
}

// State returns a snapshot of the form for rendering
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	edit := c.isEditLocked()
	s := State{
		Visible:         c.visible,
		Mode:            c.mode,
		EditMode:        edit,
		Draft:           c.draft,
		Errors:          c.errors.Clone(),
		Submitting:      c.submitting,
		Suggestions:     append([]string(nil), c.suggestions...),
		ShowSuggestions: c.showSuggestions,
		CurrencySymbol:  money.SymbolFor(c.currency),
		Title:           "Add Transaction",
		SubmitLabel:     "Add Transaction",
	}
	if c.editing != nil {
		s.EditingID = c.editing.ID
	}

	switch {
	case edit && c.submitting:
		s.Title, s.SubmitLabel = "Edit Transaction", "Saving..."
	case edit:
		s.Title, s.SubmitLabel = "Edit Transaction", "Save Changes"
	case c.submitting:
		s.SubmitLabel = "Adding..."
	}

	return s
}

// EditStrategy names the store operation an edit would use, or "" if none
func (c *Controller) EditStrategy() string {
	s, _ := c.plan.forEdit()
	return s.name
}

func (c *Controller) isEditLocked() bool {
	return c.mode == ModeEdit && c.editing != nil && c.editing.ID != 0
}

func (c *Controller) cancelPendingCloseLocked() {
	if c.closeTimer != nil {
		c.closeTimer.Stop()
		c.closeTimer = nil
	}
	c.closing = false
	c.closeGen++
}
