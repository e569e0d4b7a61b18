package commands

import (
	"errors"

	"colis/internal/core/domain/model/kernel"
	"colis/internal/pkg/guard"
)

var (
	ErrCreateParcelCommandIsNotConstructed = errors.New(
		"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
	)
	ErrTrackingCodeIsRequired = errors.New("tracking code is required")
	ErrPriceIsNegative        = errors.New("price must not be negative")
)

// CreateParcelCommand represents the merchant-intake request to register a
// new parcel. The parcel enters the lifecycle in New status.
type CreateParcelCommand struct { //nolint:recvcheck //using for validation
	trackingCode  string
	merchantID    kernel.UUID
	cityID        kernel.UUID
	price         kernel.Money
	isFragile     bool
	isReplacement bool
	isOpenable    bool

	guard guard.ConstructorGuard
}

// NewCreateParcelCommand creates a command to register a parcel. Validates
// that the tracking code is present, the references are valid and the
// price is not negative.
func NewCreateParcelCommand(
	trackingCode string,
	merchantID kernel.UUID,
	cityID kernel.UUID,
	price kernel.Money,
	isFragile bool,
	isReplacement bool,
	isOpenable bool,
) (CreateParcelCommand, error) {
	cmd := CreateParcelCommand{
		isFragile:     isFragile,
		isReplacement: isReplacement,
		isOpenable:    isOpenable,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTrackingCode(trackingCode),
		cmd.setMerchantID(merchantID),
		cmd.setCityID(cityID),
		cmd.setPrice(price),
	); err != nil {
		return CreateParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

// TrackingCode returns the shipment identifier to register.
func (c CreateParcelCommand) TrackingCode() string { return c.trackingCode }

// MerchantID returns the originating merchant.
func (c CreateParcelCommand) MerchantID() kernel.UUID { return c.merchantID }

// CityID returns the destination city.
func (c CreateParcelCommand) CityID() kernel.UUID { return c.cityID }

// Price returns the amount owed by the end-customer.
func (c CreateParcelCommand) Price() kernel.Money { return c.price }

// IsFragile returns the fragility flag.
func (c CreateParcelCommand) IsFragile() bool { return c.isFragile }

// IsReplacement returns the replacement flag.
func (c CreateParcelCommand) IsReplacement() bool { return c.isReplacement }

// IsOpenable returns the openable flag.
func (c CreateParcelCommand) IsOpenable() bool { return c.isOpenable }

func (c *CreateParcelCommand) setTrackingCode(code string) error {
	if code == "" {
		return ErrTrackingCodeIsRequired
	}
	c.trackingCode = code
	return nil
}

func (c *CreateParcelCommand) setMerchantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.merchantID = id
	return nil
}

func (c *CreateParcelCommand) setCityID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.cityID = id
	return nil
}

func (c *CreateParcelCommand) setPrice(price kernel.Money) error {
	if price.IsNegative() {
		return ErrPriceIsNegative
	}
	c.price = price
	return nil
}
