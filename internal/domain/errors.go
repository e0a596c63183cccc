package domain

import "errors"

var (
	ErrNotFound               = errors.New("resource not found")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrForbidden              = errors.New("forbidden")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrDuplicateEmail         = errors.New("email already exists")
	ErrWeakPassword           = errors.New("password must be at least 6 characters and include one special symbol")
	ErrInvalidGSTIN           = errors.New("invalid GSTIN format")
	ErrValidation             = errors.New("validation failed")
	ErrInvalidTransactionType = errors.New("transaction type must be SALE or PURCHASE")
	ErrMissingOwner           = errors.New("owner user id is required")
	ErrNoInvoiceData          = errors.New("no invoice data received")
	ErrInvalidPeriod          = errors.New("invalid period; expected YYYY-MM")
	ErrUnsupportedFileType    = errors.New("unsupported file type")
	ErrFileTooLarge           = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed           = errors.New("file upload to storage failed")
	ErrInvoiceNotFound        = errors.New("invoice not found")
	ErrRateNotFound           = errors.New("no GST rate found for keyword")
)
