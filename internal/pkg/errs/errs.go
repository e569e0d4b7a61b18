package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors used as the unwrap targets for the typed errors below.
// Callers classify failures with errors.Is against these.
var (
	ErrObjectNotFound          = errors.New("object not found")
	ErrValueIsInvalid          = errors.New("value is invalid")
	ErrValueIsRequired         = errors.New("value is required")
	ErrTransitionNotAllowed    = errors.New("transition not allowed")
	ErrMissingRequiredField    = errors.New("missing required field")
	ErrRateNotFound            = errors.New("rate not found")
	ErrConcurrentModification  = errors.New("concurrent modification")
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")
)

// ObjectNotFoundError indicates that a referenced object does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates that a supplied value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsRequiredError indicates that a required value is absent.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// TransitionNotAllowedError indicates that a status change is not in the
// allowed set for the acting role and the parcel's current status.
type TransitionNotAllowedError struct {
	Role string
	From string
	To   string
}

func NewTransitionNotAllowedError(role, from, to string) *TransitionNotAllowedError {
	return &TransitionNotAllowedError{Role: role, From: from, To: to}
}

func (e *TransitionNotAllowedError) Error() string {
	return fmt.Sprintf("%s: role %s cannot move parcel from %s to %s",
		ErrTransitionNotAllowed, e.Role, e.From, e.To)
}

func (e *TransitionNotAllowedError) Unwrap() error {
	return ErrTransitionNotAllowed
}

// MissingRequiredFieldError indicates that a transition payload lacks side
// data the target status requires (a date or a comment).
type MissingRequiredFieldError struct {
	FieldName string
	Status    string
}

func NewMissingRequiredFieldError(fieldName, status string) *MissingRequiredFieldError {
	return &MissingRequiredFieldError{FieldName: fieldName, Status: status}
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("%s: status %s requires %s", ErrMissingRequiredField, e.Status, e.FieldName)
}

func (e *MissingRequiredFieldError) Unwrap() error {
	return ErrMissingRequiredField
}

// RateNotFoundError indicates that the directory has no rate entry for a
// city/courier pair. Tariff calculation must fail rather than default to
// zero fees.
type RateNotFoundError struct {
	CityID    string
	CourierID string
}

func NewRateNotFoundError(cityID, courierID string) *RateNotFoundError {
	return &RateNotFoundError{CityID: cityID, CourierID: courierID}
}

func (e *RateNotFoundError) Error() string {
	return fmt.Sprintf("%s: city %s, courier %s", ErrRateNotFound, e.CityID, e.CourierID)
}

func (e *RateNotFoundError) Unwrap() error {
	return ErrRateNotFound
}

// ConcurrentModificationError indicates a lost optimistic-concurrency race:
// the record changed between the snapshot read and the versioned write.
type ConcurrentModificationError struct {
	ParamName string
	ID        any
}

func NewConcurrentModificationError(paramName string, id any) *ConcurrentModificationError {
	return &ConcurrentModificationError{ParamName: paramName, ID: id}
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("%s: param is: %s, ID is: %s", ErrConcurrentModification, e.ParamName, e.ID)
}

func (e *ConcurrentModificationError) Unwrap() error {
	return ErrConcurrentModification
}

// CollaboratorUnavailableError indicates a timeout or transport failure on
// a persistence/directory call. Bulk items may retry it a fixed number of
// times; merges never do.
type CollaboratorUnavailableError struct {
	Operation string
	Cause     error
}

func NewCollaboratorUnavailableError(operation string, cause error) *CollaboratorUnavailableError {
	return &CollaboratorUnavailableError{Operation: operation, Cause: cause}
}

func (e *CollaboratorUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrCollaboratorUnavailable, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrCollaboratorUnavailable, e.Operation)
}

func (e *CollaboratorUnavailableError) Unwrap() error {
	return ErrCollaboratorUnavailable
}
