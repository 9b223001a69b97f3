package moneybook

import "errors"

// Domain errors. Every failing operation returns one of these, usually
// wrapped with context via fmt.Errorf("...: %w", ...). Callers test with
// errors.Is and render the message; none of them is fatal to the process.
var (
	// ErrNotFound reports a missing account, card, bond, goal, or
	// transaction index.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName reports an insertion that would reuse a name
	// already present in the registry.
	ErrDuplicateName = errors.New("name already exists")

	// ErrCapacityExceeded reports a full bond holding or recurring list.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrInsufficientFunds reports a debit the balance (or remaining
	// credit limit) cannot cover.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrLimitBelowSpend reports a card limit edit below the current
	// unpaid spend.
	ErrLimitBelowSpend = errors.New("limit below current spend")

	// ErrLastAccountProtected reports an attempt to delete the sole
	// remaining bank account.
	ErrLastAccountProtected = errors.New("cannot delete the last account")

	// ErrEmptyList reports a listing over zero entries.
	ErrEmptyList = errors.New("no entries to list")

	// ErrInvalidDate reports an unparseable or out-of-range date.
	ErrInvalidDate = errors.New("invalid date")

	// ErrImport reports a malformed row in a data file. Loading that
	// file stops; the rest of the profile is kept.
	ErrImport = errors.New("import failed")
)
