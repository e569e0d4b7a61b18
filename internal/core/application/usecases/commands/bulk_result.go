package commands

import (
	"errors"

	"colis/internal/core/domain/model/parcel"
	"colis/internal/pkg/errs"
)

// Stable per-item failure reasons reported by bulk operations. The
// presentation layer shows these verbatim, so they are contract, not
// free text.
const (
	ReasonNotFound                = "NotFound"
	ReasonTransitionNotAllowed    = "TransitionNotAllowed"
	ReasonMissingRequiredField    = "MissingRequiredField"
	ReasonRateNotFound            = "RateNotFound"
	ReasonConcurrentModification  = "ConcurrentModification"
	ReasonCollaboratorUnavailable = "CollaboratorUnavailable"
	ReasonTerminalStatus          = "TerminalStatus"
	ReasonInternal                = "Internal"
)

// BulkFailure records one item that failed inside a bulk operation.
type BulkFailure struct {
	Code   string
	Reason string
}

// BulkResult is the success/failure partition of a bulk operation. One bad
// tracking code among hundreds never aborts the rest; both sides of the
// partition are always reported so partial success stays visible.
type BulkResult struct {
	Succeeded []string
	Failed    []BulkFailure
}

// classifyReason maps an item error to its stable reason string.
func classifyReason(err error) string {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ReasonNotFound
	case errors.Is(err, errs.ErrTransitionNotAllowed):
		return ReasonTransitionNotAllowed
	case errors.Is(err, errs.ErrMissingRequiredField):
		return ReasonMissingRequiredField
	case errors.Is(err, errs.ErrRateNotFound):
		return ReasonRateNotFound
	case errors.Is(err, errs.ErrConcurrentModification):
		return ReasonConcurrentModification
	case errors.Is(err, errs.ErrCollaboratorUnavailable):
		return ReasonCollaboratorUnavailable
	case errors.Is(err, parcel.ErrParcelIsTerminal):
		return ReasonTerminalStatus
	default:
		return ReasonInternal
	}
}
