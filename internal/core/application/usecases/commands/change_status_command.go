package commands

import (
	"errors"
	"time"

	"colis/internal/core/domain/model/parcel"
	"colis/internal/pkg/guard"
)

var ErrChangeStatusCommandIsNotConstructed = errors.New(
	"ChangeStatusCommand must be created via NewChangeStatusCommand constructor",
)

// ChangeStatusCommand requests one status transition on one parcel, on
// behalf of an actor role, with the transition's side data (date for
// Scheduled/Postponed, comment/note where required).
type ChangeStatusCommand struct { //nolint:recvcheck //using for validation
	trackingCode string
	newStatus    parcel.Status
	role         parcel.Role
	date         *time.Time
	comment      string
	note         string

	guard guard.ConstructorGuard
}

// NewChangeStatusCommand creates a status-change command. Structural
// validation happens here (code present, status and role members of their
// enumerations); whether the transition is allowed and the payload is
// complete is the domain's decision at apply time.
func NewChangeStatusCommand(
	trackingCode string,
	newStatus parcel.Status,
	role parcel.Role,
	date *time.Time,
	comment string,
	note string,
) (ChangeStatusCommand, error) {
	if trackingCode == "" {
		return ChangeStatusCommand{}, ErrTrackingCodeIsRequired
	}
	if err := newStatus.Validate(); err != nil {
		return ChangeStatusCommand{}, err
	}
	if err := role.Validate(); err != nil {
		return ChangeStatusCommand{}, err
	}

	return ChangeStatusCommand{
		trackingCode: trackingCode,
		newStatus:    newStatus,
		role:         role,
		date:         date,
		comment:      comment,
		note:         note,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeStatusCommandIsNotConstructed)
}

// TrackingCode returns the parcel to transition.
func (c ChangeStatusCommand) TrackingCode() string { return c.trackingCode }

// NewStatus returns the requested target status.
func (c ChangeStatusCommand) NewStatus() parcel.Status { return c.newStatus }

// Role returns the acting role.
func (c ChangeStatusCommand) Role() parcel.Role { return c.role }

// Payload returns the transition side data.
func (c ChangeStatusCommand) Payload() parcel.TransitionPayload {
	return parcel.TransitionPayload{
		Date:    c.date,
		Comment: c.comment,
		Note:    c.note,
	}
}
