package miracle

import "errors"

// Validation errors returned by ledger transitions and the pie composer.
// Callers branch on them with errors.Is; the HTTP layer maps them to status
// codes and the CLI prints them as-is.
var (
	// ErrUnknownSymbol is returned when a symbol is not in the catalog.
	ErrUnknownSymbol = errors.New("unknown symbol")
	// ErrInvalidQuantity is returned when a trade quantity is zero or negative.
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrInvalidAmount is returned when a cash amount is out of bounds.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientFunds is returned when cash does not cover a buy,
	// a withdrawal or a pie deposit.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInsufficientHoldings is returned when a sell exceeds the position.
	ErrInsufficientHoldings = errors.New("insufficient holdings")
	// ErrInvalidWeightSum is returned when pie weights do not sum to 100.
	ErrInvalidWeightSum = errors.New("pie weights must sum to 100")
	// ErrPieNotFound is returned when a pie id is not in the ledger.
	ErrPieNotFound = errors.New("pie not found")
	// ErrNoSelection is returned when the composer advances with no symbol picked.
	ErrNoSelection = errors.New("no instrument selected")
	// ErrTooManySelections is returned when the composer selection exceeds MaxPieSlices.
	ErrTooManySelections = errors.New("too many instruments selected")
	// ErrInvalidStage is returned when a composer operation is not valid in
	// the current stage.
	ErrInvalidStage = errors.New("operation not allowed in this stage")
)
