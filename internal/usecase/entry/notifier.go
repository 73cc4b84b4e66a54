package entry

// Messages delivered to the notification sink after a submit
const (
	MsgTransactionAdded   = "Transaction added"
	MsgTransactionUpdated = "Transaction updated"
	MsgSaveFailed         = "Could not save transaction. Try again."
)

// Notifier reports the outcome of a save to the user
type Notifier interface {
	Success(message string)
	Error(message string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}
