package utils

const (
	// Trip code generation
	CodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	CodeLength  = 6

	// HTTP status messages
	ErrInvalidRequest   = "Invalid request"
	ErrTripNotFound     = "Trip not found"
	ErrExpenseNotFound  = "Expense not found"
	ErrFailedToStore    = "Failed to store data"
	ErrFailedToRetrieve = "Failed to retrieve data"

	// Minor units per major currency unit for display formatting
	MinorUnitsPerMajor = 100

	// Date layout for request payloads and FX queries
	DateLayout = "2006-01-02"
)
