package domain

import "github.com/go-faster/errors"

var (
	ErrInvalidQuantity     = errors.New("quantity must be positive")
	ErrExpiredProduct      = errors.New("product is expired")
	ErrInsufficientStock   = errors.New("not enough stock")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrEmptyCart           = errors.New("cart is empty")
)

// ProductError ties a cart or checkout failure to the offending catalog
// entry. errors.Is still matches the wrapped sentinel.
type ProductError struct {
	Product ProductName
	Err     error
}

func (e *ProductError) Error() string {
	return string(e.Product) + ": " + e.Err.Error()
}

func (e *ProductError) Unwrap() error { return e.Err }

// FailedProduct extracts the product name from a failure, when it has one.
func FailedProduct(err error) (ProductName, bool) {
	var pe *ProductError
	if errors.As(err, &pe) {
		return pe.Product, true
	}
	return "", false
}
