package commands

import (
	"errors"
	"time"

	"colis/internal/core/domain/model/parcel"
	"colis/internal/pkg/guard"
)

var (
	ErrUpdateStatusBulkCommandIsNotConstructed = errors.New(
		"UpdateStatusBulkCommand must be created via NewUpdateStatusBulkCommand constructor",
	)
	ErrNoTrackingCodes = errors.New("at least one tracking code is required")
)

// UpdateStatusBulkCommand requests the same status transition across many
// parcels. Items are independent: the batch never aborts because one item
// failed.
type UpdateStatusBulkCommand struct { //nolint:recvcheck //using for validation
	trackingCodes []string
	newStatus     parcel.Status
	role          parcel.Role
	date          *time.Time
	comment       string
	note          string

	guard guard.ConstructorGuard
}

// NewUpdateStatusBulkCommand creates a bulk status-change command.
func NewUpdateStatusBulkCommand(
	trackingCodes []string,
	newStatus parcel.Status,
	role parcel.Role,
	date *time.Time,
	comment string,
	note string,
) (UpdateStatusBulkCommand, error) {
	if len(trackingCodes) == 0 {
		return UpdateStatusBulkCommand{}, ErrNoTrackingCodes
	}
	if err := newStatus.Validate(); err != nil {
		return UpdateStatusBulkCommand{}, err
	}
	if err := role.Validate(); err != nil {
		return UpdateStatusBulkCommand{}, err
	}

	codes := make([]string, len(trackingCodes))
	copy(codes, trackingCodes)

	return UpdateStatusBulkCommand{
		trackingCodes: codes,
		newStatus:     newStatus,
		role:          role,
		date:          date,
		comment:       comment,
		note:          note,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateStatusBulkCommand) Validate() error {
	return c.guard.Validate(ErrUpdateStatusBulkCommandIsNotConstructed)
}

// TrackingCodes returns the parcels to transition.
func (c UpdateStatusBulkCommand) TrackingCodes() []string {
	codes := make([]string, len(c.trackingCodes))
	copy(codes, c.trackingCodes)
	return codes
}

// NewStatus returns the target status for every item.
func (c UpdateStatusBulkCommand) NewStatus() parcel.Status { return c.newStatus }

// Role returns the acting role.
func (c UpdateStatusBulkCommand) Role() parcel.Role { return c.role }

// Payload returns the transition side data shared by all items.
func (c UpdateStatusBulkCommand) Payload() parcel.TransitionPayload {
	return parcel.TransitionPayload{
		Date:    c.date,
		Comment: c.comment,
		Note:    c.note,
	}
}
