// Package errors defines the error type the services hand to the HTTP layer.
package errors

import (
	stderrors "errors"
	"fmt"
)

type Code string

const (
	CodeGatewayRejected Code = "GATEWAY_REJECTED"
	CodeStoreFailure    Code = "STORE_FAILURE"
	CodeInvalidRequest  Code = "INVALID_REQUEST"
	CodeRateLimited     Code = "RATE_LIMITED"
	CodeInternal        Code = "INTERNAL_ERROR"
)

// DomainError carries a stable code, a client-facing message and the cause.
type DomainError struct {
	Code    Code
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func New(code Code, message string, err error) *DomainError {
	return &DomainError{Code: code, Message: message, Err: err}
}

func GatewayRejected(message string, err error) *DomainError {
	return New(CodeGatewayRejected, message, err)
}

func StoreFailure(message string, err error) *DomainError {
	return New(CodeStoreFailure, message, err)
}

func InvalidRequest(message string) *DomainError {
	return New(CodeInvalidRequest, message, nil)
}

// As returns the first DomainError in err's chain.
func As(err error) (*DomainError, bool) {
	var domainErr *DomainError
	if stderrors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	domainErr, ok := As(err)
	return ok && domainErr.Code == code
}
