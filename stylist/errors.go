package stylist

import "fmt"

type DomainCode string

const (
	NoSuitableGarments DomainCode = "NO_SUITABLE_GARMENTS"
	ServiceFailure     DomainCode = "SERVICE_FAILURE"
	ParseFailure       DomainCode = "PARSE_FAILURE"
)

// DomainError terminates a recommendation. Raw is only set for
// ParseFailure and holds the model reply untouched. Message already carries
// the text of Err, which stays reachable through errors.As.
type DomainError struct {
	Code       DomainCode
	Message    string
	Suggestion string
	Raw        string
	Err        error
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error { return e.Err }

// ServiceError is a failed call to the generative text service. Message is
// whatever the upstream reported.
type ServiceError struct {
	Provider string
	Message  string
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s request failed: %s", e.Provider, e.Message)
}

func (e *ServiceError) Unwrap() error { return e.Err }

func NewServiceError(provider string, err error) *ServiceError {
	return &ServiceError{Provider: provider, Message: err.Error(), Err: err}
}

// ParseError means a reply could not be read as a recommendation object.
type ParseError struct {
	Reason string
	Raw    string
	Err    error
}

func (e *ParseError) Error() string {
	return "failed to interpret recommendation: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }
