package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "Income"
	TransactionTypeExpense TransactionType = "Expense"
)

const (
	// MaxNoteLength is the maximum number of characters kept in a note
	MaxNoteLength = 60
	// AmountScale is the number of decimal places an amount may carry
	AmountScale = 2
)

var (
	ErrInvalidAmount = errors.New("amount must be a positive number with at most two decimal places")
	ErrUnknownType   = errors.New("transaction type must be Income or Expense")
)

// ParseTransactionType converts a raw value into a TransactionType
func ParseTransactionType(raw string) (TransactionType, error) {
	switch TransactionType(raw) {
	case TransactionTypeIncome, TransactionTypeExpense:
		return TransactionType(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, raw)
}

// TransactionID identifies a committed transaction. Zero means unassigned.
type TransactionID int64

// Transaction represents a committed transaction owned by the store
type Transaction struct {
	ID       TransactionID
	Amount   decimal.Decimal
	Category string
	Type     TransactionType
	Date     time.Time // day precision
	Note     string
}

// Clone returns a copy that shares no state with t
func (t *Transaction) Clone() *Transaction {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// Field names a draft field
type Field string

const (
	FieldAmount   Field = "amount"
	FieldCategory Field = "category"
	FieldType     Field = "type"
	FieldDate     Field = "date"
	FieldNote     Field = "note"
)

// ParseField converts a raw field name into a Field
func ParseField(raw string) (Field, bool) {
	switch f := Field(raw); f {
	case FieldAmount, FieldCategory, FieldType, FieldDate, FieldNote:
		return f, true
	}
	return "", false
}

// Validation messages surfaced next to the offending field
const (
	MsgInvalidAmount    = "Please enter a valid amount"
	MsgCategoryRequired = "Category is required"
	MsgInvalidDate      = "Please enter a valid date"
)

// ValidationErrors maps a field to the message describing why it is invalid.
// It is returned as data, but implements error so callers can errors.As it.
type ValidationErrors map[Field]string

// Valid reports whether no field failed validation
func (v ValidationErrors) Valid() bool {
	return len(v) == 0
}

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, string(f))
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[Field(f)])
	}
	return "invalid transaction: " + strings.Join(parts, "; ")
}

// Clone returns a copy of the error map
func (v ValidationErrors) Clone() ValidationErrors {
	out := make(ValidationErrors, len(v))
	for k, msg := range v {
		out[k] = msg
	}
	return out
}

// Draft represents the in-progress transaction edited in the entry form.
// Amount holds the raw text typed by the user and Date the DD/MM/YYYY display value.
type Draft struct {
	Amount   string
	Category string
	Type     TransactionType
	Date     string
	Note     string
}

// NewDraft returns a draft with defaults: Expense, dated today
func NewDraft(today time.Time) Draft {
	return Draft{
		Type: TransactionTypeExpense,
		Date: FormatDisplayDate(today),
	}
}

// DraftFrom seeds a draft from a committed transaction, falling back to the
// defaults for any field the transaction does not carry
func DraftFrom(tx *Transaction, today time.Time) Draft {
	d := NewDraft(today)
	if tx == nil {
		return d
	}

	d.Amount = tx.Amount.String()
	d.Category = tx.Category
	if tx.Type != "" {
		d.Type = tx.Type
	}
	if !tx.Date.IsZero() {
		d.Date = FormatDisplayDate(tx.Date)
	}
	d.Note = tx.Note
	return d
}

// Validate checks the draft and reports every violation at once.
// Rules:
//   - Amount must parse as a number strictly greater than zero with at most two decimals
//   - Category is required for expenses only
//   - Date, when present, must be a calendar date in DD/MM/YYYY form
func (d Draft) Validate() ValidationErrors {
	errs := ValidationErrors{}

	if _, err := ParseAmount(d.Amount); err != nil {
		errs[FieldAmount] = MsgInvalidAmount
	}

	if d.Type == TransactionTypeExpense && strings.TrimSpace(d.Category) == "" {
		errs[FieldCategory] = MsgCategoryRequired
	}

	if d.Date != "" {
		if _, err := ParseDisplayDate(d.Date); err != nil {
			errs[FieldDate] = MsgInvalidDate
		}
	}

	return errs
}

// ToTransaction builds the committed payload from a validated draft.
// An empty date defaults to today.
func (d Draft) ToTransaction(id TransactionID, today time.Time) (*Transaction, error) {
	amount, err := ParseAmount(d.Amount)
	if err != nil {
		return nil, err
	}

	date := truncateToDay(today)
	if d.Date != "" {
		date, err = ParseDisplayDate(d.Date)
		if err != nil {
			return nil, err
		}
	}

	return &Transaction{
		ID:       id,
		Amount:   amount,
		Category: d.Category,
		Type:     d.Type,
		Date:     date,
		Note:     d.Note,
	}, nil
}

// ParseAmount parses user input into a strictly positive decimal amount
// with no more than AmountScale decimal places. Trailing zeros are allowed.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, ErrInvalidAmount
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidAmount
	}

	if !amount.Equal(amount.Truncate(AmountScale)) {
		return decimal.Zero, ErrInvalidAmount
	}

	return amount, nil
}

// TruncateNote caps a note at MaxNoteLength characters
func TruncateNote(note string) string {
	if utf8.RuneCountInString(note) <= MaxNoteLength {
		return note
	}
	return string([]rune(note)[:MaxNoteLength])
}
