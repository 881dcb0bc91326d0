package entity

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")
	ErrInvalidPrice    = errors.New("price must be greater than or equal to 0")
	ErrInvalidAmount   = errors.New("amount must be greater than or equal to 0")

	// Catálogo de items
	ErrItemNotFound        = errors.New("item not found")
	ErrCatalogUnavailable  = errors.New("item catalog unavailable")
	ErrDescriptionRequired = errors.New("item description is required")

	// Pago
	ErrInsufficientPayment = errors.New("amount paid must be greater than or equal to total price")

	// Descuentos
	ErrInvalidCustomerID = errors.New("customer id must have exactly 6 digits")

	// Orden de llamadas (programming errors, no se reintentan)
	ErrPreconditionViolated = errors.New("precondition violated")
	ErrNoActiveSale         = fmt.Errorf("%w: no sale has been started", ErrPreconditionViolated)
	ErrSaleNotOpen          = fmt.Errorf("%w: sale is not accepting items", ErrPreconditionViolated)
	ErrSaleNotEnded         = fmt.Errorf("%w: sale has not been ended", ErrPreconditionViolated)
	ErrSaleNotPaid          = fmt.Errorf("%w: sale has not been paid", ErrPreconditionViolated)
	ErrSaleAlreadyPaid      = fmt.Errorf("%w: sale has already been paid", ErrPreconditionViolated)
	ErrNoDiscountRequest    = fmt.Errorf("%w: discount was not requested", ErrPreconditionViolated)
	ErrSaleHasNoItems       = fmt.Errorf("%w: sale must have at least one item", ErrPreconditionViolated)
	ErrStalePurchaseInfo    = fmt.Errorf("%w: purchase info does not match current running total", ErrPreconditionViolated)
	ErrTotalPriceMismatch   = fmt.Errorf("%w: total price does not match the amount due", ErrPreconditionViolated)

	// Sistemas externos
	ErrExternalSyncIncomplete = errors.New("external systems were not fully updated")
)

// OperationFailedError envuelve una falla de infraestructura en un error
// orientado al cajero, que sugiere reintentar la operación
type OperationFailedError struct {
	Message string
	Cause   error
}

// NewOperationFailedError crea el error con su causa original
func NewOperationFailedError(message string, cause error) *OperationFailedError {
	return &OperationFailedError{Message: message, Cause: cause}
}

func (e *OperationFailedError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *OperationFailedError) Unwrap() error {
	return e.Cause
}
