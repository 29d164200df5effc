package e

import "fmt"

var (
	// 400 Bad Request
	ErrExpectedMultipart   = fmt.Errorf("expected multipart/form-data request")
	ErrMissingFields       = fmt.Errorf("name and price are required")
	ErrProductNameRequired = fmt.Errorf("product name is required")
	ErrInvalidProductID    = fmt.Errorf("invalid product id")
	ErrInvalidPrice        = fmt.Errorf("price must be a non-negative number")
	ErrPricePrecision      = fmt.Errorf("price must have at most 2 decimal places")
	ErrInvalidFileType     = fmt.Errorf("Invalid file type")
	ErrFileTooLarge        = fmt.Errorf("file is too large")

	// 404 Not Found
	// Текст зафиксирован контрактом API, не менять
	ErrProductNotFound = fmt.Errorf("Product not found")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
