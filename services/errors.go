package services

import "net/http"

// ServiceError carries an HTTP status alongside a client-safe message.
// Controllers translate it directly into the response.
type ServiceError struct {
	StatusCode int
	Message    string
}

// ErrCartEmpty is returned by cart-dependent operations when the caller's
// cart has no lines. Callers that need to tell it apart from other client
// errors compare with errors.Is.
var ErrCartEmpty = newServiceError(http.StatusBadRequest, "cart is empty")

func (e *ServiceError) Error() string {
	return e.Message
}

func newServiceError(status int, message string) *ServiceError {
	return &ServiceError{StatusCode: status, Message: message}
}
