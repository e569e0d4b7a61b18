package commands

import (
	"errors"

	"colis/internal/core/domain/model/kernel"
	"colis/internal/pkg/guard"
)

var ErrAssignCourierBulkCommandIsNotConstructed = errors.New(
	"AssignCourierBulkCommand must be created via NewAssignCourierBulkCommand constructor",
)

// AssignCourierBulkCommand requests the (re)assignment of one courier to
// many parcels. Items are independent; terminal parcels fail individually.
type AssignCourierBulkCommand struct { //nolint:recvcheck //using for validation
	trackingCodes []string
	courierID     kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignCourierBulkCommand creates a bulk assignment command.
func NewAssignCourierBulkCommand(trackingCodes []string, courierID kernel.UUID) (AssignCourierBulkCommand, error) {
	if len(trackingCodes) == 0 {
		return AssignCourierBulkCommand{}, ErrNoTrackingCodes
	}
	if err := courierID.Validate(); err != nil {
		return AssignCourierBulkCommand{}, err
	}

	codes := make([]string, len(trackingCodes))
	copy(codes, trackingCodes)

	return AssignCourierBulkCommand{
		trackingCodes: codes,
		courierID:     courierID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignCourierBulkCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierBulkCommandIsNotConstructed)
}

// TrackingCodes returns the parcels to assign.
func (c AssignCourierBulkCommand) TrackingCodes() []string {
	codes := make([]string, len(c.trackingCodes))
	copy(codes, c.trackingCodes)
	return codes
}

// CourierID returns the courier to assign.
func (c AssignCourierBulkCommand) CourierID() kernel.UUID { return c.courierID }
