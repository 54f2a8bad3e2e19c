package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidAccountCategory indicates that a GL account of the wrong category was bound to a slot.
var ErrInvalidAccountCategory = errors.New("invalid account category")

// ErrConfigurationMissing indicates that required accounting setup is absent.
var ErrConfigurationMissing = errors.New("accounting configuration missing")

// ErrInternal indicates an unexpected failure in an underlying component.
var ErrInternal = errors.New("internal error")

// ErrUnauthorized indicates that the caller could not be identified.
var ErrUnauthorized = errors.New("unauthorized")

// AppError wraps infrastructure failures with a status-like code.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NotFoundError names the missing resource and its identifier.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with identifier %s does not exist", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a NotFoundError for resource/id.
func NewNotFoundError(resource string, id any) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: fmt.Sprint(id)}
}

// InvalidAccountCategoryError is returned when a GL account's category is not in a slot's allowed set.
type InvalidAccountCategoryError struct {
	Parameter   string
	AccountID   int64
	AccountName string
	Actual      string
	Expected    []string
}

func (e *InvalidAccountCategoryError) Error() string {
	return fmt.Sprintf("%s: parameter %s references account %q (id %d) of category %s, expected %s",
		ErrInvalidAccountCategory, e.Parameter, e.AccountName, e.AccountID, e.Actual, strings.Join(e.Expected, " or "))
}

func (e *InvalidAccountCategoryError) Unwrap() error {
	return ErrInvalidAccountCategory
}

// DuplicateBindingError reports a uniqueness conflict on a product mapping row.
type DuplicateBindingError struct {
	ProductID   int64
	ProductType string
	Slot        string
	Constraint  string
}

func (e *DuplicateBindingError) Error() string {
	return fmt.Sprintf("%s: %s product %d already has a binding for slot %s (constraint %s)",
		ErrDuplicate, strings.ToLower(e.ProductType), e.ProductID, e.Slot, e.Constraint)
}

func (e *DuplicateBindingError) Unwrap() error {
	return ErrDuplicate
}

// ConfigurationMissingError is returned when a financial activity has no GL account configured.
type ConfigurationMissingError struct {
	Activity string
}

func (e *ConfigurationMissingError) Error() string {
	return fmt.Sprintf("%s: no GL account is mapped to financial activity %s", ErrConfigurationMissing, e.Activity)
}

func (e *ConfigurationMissingError) Unwrap() error {
	return ErrConfigurationMissing
}
