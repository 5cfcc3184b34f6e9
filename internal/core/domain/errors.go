package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidPassword   = errors.New("invalid password")
)

// Travel errors
var (
	ErrTravelNotFound    = errors.New("travel record not found")
	ErrInvalidDateRange  = errors.New("exit date must not be before entry date")
	ErrInvalidCountry    = errors.New("invalid country code")
	ErrInvalidPurpose    = errors.New("invalid travel purpose")
)

// Document errors
var (
	ErrDocumentNotFound    = errors.New("document not found")
	ErrInvalidDocumentType = errors.New("invalid document type")
	ErrShareNotFound       = errors.New("document share not found")
)

// Reference data errors
var (
	ErrCountryRuleNotFound = errors.New("country rule not found")
	ErrTaxStatusNotFound   = errors.New("tax status not found")
)
