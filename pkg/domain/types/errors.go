package types

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField indicates a required registration field was empty
	ErrMissingField = errors.New("missing required field")

	// ErrRepoNotRegistered indicates no secret is stored for the repository
	ErrRepoNotRegistered = errors.New("repository is not registered")

	// ErrInvalidSignature indicates the webhook signature did not verify
	ErrInvalidSignature = errors.New("invalid webhook signature")

	// ErrMalformedPayload indicates a webhook body that could not be parsed
	ErrMalformedPayload = errors.New("malformed webhook payload")
)

// RemoteError carries the status code and message of a failed call to an
// external system (GitHub or Jenkins) so handlers can propagate them.
type RemoteError struct {
	Service string
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Service, e.Status, e.Message)
}
