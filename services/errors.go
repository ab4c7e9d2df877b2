package services

// ErrorKind classifies business-rule failures so controllers can answer with
// a uniform envelope without inspecting messages.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindNotFound      ErrorKind = "not_found"
	KindAuthorization ErrorKind = "authorization"
	KindConflict      ErrorKind = "conflict"
)

// ServiceError is the only error type services surface for business-rule
// violations. Store faults are wrapped separately and never reach clients
// verbatim.
type ServiceError struct {
	Kind    ErrorKind
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func validationError(msg string) *ServiceError {
	return &ServiceError{Kind: KindValidation, Message: msg}
}

func notFoundError(msg string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: msg}
}

func authorizationError(msg string) *ServiceError {
	return &ServiceError{Kind: KindAuthorization, Message: msg}
}

func conflictError(msg string) *ServiceError {
	return &ServiceError{Kind: KindConflict, Message: msg}
}

// AsServiceError unwraps err to a *ServiceError if it is one.
func AsServiceError(err error) (*ServiceError, bool) {
	se, ok := err.(*ServiceError)
	return se, ok
}
