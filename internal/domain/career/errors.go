package career

import crerr "github.com/cockroachdb/errors"

// Engine error taxonomy. Callers match with errors.Is from github.com/cockroachdb/errors.
var (
	ErrValidation           = crerr.New("validation failed")
	ErrInsufficientResource = crerr.New("insufficient resource")
	ErrCapReached           = crerr.New("cap reached")
	ErrNotFound             = crerr.New("not found")
	ErrConfiguration        = crerr.New("invalid configuration")
	ErrCorruptSave          = crerr.New("corrupt save")

	ErrInsufficientFunds = crerr.Mark(crerr.New("insufficient funds"), ErrInsufficientResource)
	ErrAlreadyOwned      = crerr.Mark(crerr.New("item already owned"), ErrCapReached)
)
