package commands

import (
	"errors"
	"time"

	"colis/internal/core/domain/model/invoice"
	"colis/internal/core/domain/model/kernel"
	"colis/internal/core/domain/model/parcel"
	"colis/internal/pkg/guard"
)

var (
	ErrBuildInvoiceCommandIsNotConstructed = errors.New(
		"BuildInvoiceCommand must be created via NewBuildInvoiceCommand constructor",
	)
	ErrDateRangeIsInvalid = errors.New("date range is invalid: from must not be after to")
)

// defaultInvoiceStatuses are the statuses billed when the caller does not
// narrow the filter: the tariff-finalizing outcomes.
var defaultInvoiceStatuses = []parcel.Status{
	parcel.Delivered,
	parcel.Refused,
	parcel.Cancelled,
	parcel.Returned,
}

// BuildInvoiceCommand requests a new invoice from a snapshot of the parcels
// matching one owner (merchant or courier), a settlement date range and a
// status set.
type BuildInvoiceCommand struct { //nolint:recvcheck //using for validation
	kind     invoice.Kind
	ownerID  kernel.UUID
	from     time.Time
	to       time.Time
	statusIn []parcel.Status

	guard guard.ConstructorGuard
}

// NewBuildInvoiceCommand creates an invoice-build command. An empty
// statusIn selects the tariff-finalizing outcomes.
func NewBuildInvoiceCommand(
	kind invoice.Kind,
	ownerID kernel.UUID,
	from time.Time,
	to time.Time,
	statusIn []parcel.Status,
) (BuildInvoiceCommand, error) {
	if err := kind.Validate(); err != nil {
		return BuildInvoiceCommand{}, err
	}
	if err := ownerID.Validate(); err != nil {
		return BuildInvoiceCommand{}, err
	}
	if from.After(to) {
		return BuildInvoiceCommand{}, ErrDateRangeIsInvalid
	}
	for _, s := range statusIn {
		if err := s.Validate(); err != nil {
			return BuildInvoiceCommand{}, err
		}
	}

	if len(statusIn) == 0 {
		statusIn = defaultInvoiceStatuses
	}
	statuses := make([]parcel.Status, len(statusIn))
	copy(statuses, statusIn)

	return BuildInvoiceCommand{
		kind:     kind,
		ownerID:  ownerID,
		from:     from,
		to:       to,
		statusIn: statuses,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c BuildInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrBuildInvoiceCommandIsNotConstructed)
}

// Kind returns the settlement kind of the invoice to build.
func (c BuildInvoiceCommand) Kind() invoice.Kind { return c.kind }

// OwnerID returns the merchant or courier being settled.
func (c BuildInvoiceCommand) OwnerID() kernel.UUID { return c.ownerID }

// From returns the start of the settlement range.
func (c BuildInvoiceCommand) From() time.Time { return c.from }

// To returns the end of the settlement range.
func (c BuildInvoiceCommand) To() time.Time { return c.to }

// StatusIn returns the statuses selected for billing.
func (c BuildInvoiceCommand) StatusIn() []parcel.Status {
	statuses := make([]parcel.Status, len(c.statusIn))
	copy(statuses, c.statusIn)
	return statuses
}
