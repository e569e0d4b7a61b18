package commands

import (
	"errors"

	"colis/internal/core/domain/model/kernel"
	"colis/internal/core/domain/model/parcel"
	"colis/internal/pkg/guard"
)

var (
	ErrSetExtraFeeCommandIsNotConstructed = errors.New(
		"SetExtraFeeCommand must be created via NewSetExtraFeeCommand constructor",
	)
	ErrExtraFeeIsNegative = errors.New("extra fee must not be negative")
)

// SetExtraFeeCommand attaches an ad-hoc operator fee (tarif ajouter) to a
// parcel. The fee feeds additively into the parcel's total fee.
type SetExtraFeeCommand struct { //nolint:recvcheck //using for validation
	trackingCode string
	value        kernel.Money
	description  string

	guard guard.ConstructorGuard
}

// NewSetExtraFeeCommand creates an extra-fee command.
func NewSetExtraFeeCommand(trackingCode string, value kernel.Money, description string) (SetExtraFeeCommand, error) {
	if trackingCode == "" {
		return SetExtraFeeCommand{}, ErrTrackingCodeIsRequired
	}
	if value.IsNegative() {
		return SetExtraFeeCommand{}, ErrExtraFeeIsNegative
	}

	return SetExtraFeeCommand{
		trackingCode: trackingCode,
		value:        value,
		description:  description,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetExtraFeeCommand) Validate() error {
	return c.guard.Validate(ErrSetExtraFeeCommandIsNotConstructed)
}

// TrackingCode returns the parcel to attach the fee to.
func (c SetExtraFeeCommand) TrackingCode() string { return c.trackingCode }

// Fee returns the fee to attach.
func (c SetExtraFeeCommand) Fee() parcel.ExtraFee {
	return parcel.ExtraFee{Value: c.value, Description: c.description}
}
