package parcel

import (
	"fmt"

	"colis/internal/pkg/errs"
)

// Status represents the lifecycle state of a parcel. The enumeration is
// closed: every status a parcel may carry is listed here, and transitions
// between them are governed by the role-keyed tables in transitions.go.
//
// The values fall into families:
//   - intake/line-haul: New .. OutForDelivery
//   - outcomes: Delivered, Refused, Cancelled
//   - scheduling: Scheduled, Postponed
//   - returns/replacement: Returned .. ReplacementCreated, Closed
//   - contact attempts ("non-response"): NoAnswer .. Relaunched
//   - incidents: Lost, Damaged
type Status int

const (
	// Unknown represents an invalid or undefined status. The zero value
	// helps catch uninitialized Status fields.
	Unknown Status = iota

	// New is the only initial status; parcels enter it at merchant intake.
	New
	AwaitingPickup
	PickedUp
	Shipped
	ReceivedAtHub
	OutForDelivery

	// Delivered is a terminal outcome: the customer accepted the parcel.
	Delivered
	// Refused records a customer refusal; the parcel continues into the
	// return flow.
	Refused
	// Cancelled is a terminal outcome: the shipment was called off.
	Cancelled

	// Scheduled and Postponed are the two date-bearing statuses. Exactly
	// one of scheduledDate/postponedDate is set while the parcel holds the
	// matching status.
	Scheduled
	Postponed

	Returned
	ReturnInTransit
	ReturnedToMerchant
	Replaced
	ReplacementCreated

	// Closed is the terminal administrative end of the return/replacement
	// and incident flows.
	Closed

	NoAnswer
	SecondNoAnswer
	ThirdNoAnswer
	PhoneOff
	Unreachable
	WrongNumber
	WrongAddress
	CustomerNotified
	AwaitingCustomerAction
	Relaunched

	Lost
	Damaged
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:                "Unknown",
		New:                    "New",
		AwaitingPickup:         "AwaitingPickup",
		PickedUp:               "PickedUp",
		Shipped:                "Shipped",
		ReceivedAtHub:          "ReceivedAtHub",
		OutForDelivery:         "OutForDelivery",
		Delivered:              "Delivered",
		Refused:                "Refused",
		Cancelled:              "Cancelled",
		Scheduled:              "Scheduled",
		Postponed:              "Postponed",
		Returned:               "Returned",
		ReturnInTransit:        "ReturnInTransit",
		ReturnedToMerchant:     "ReturnedToMerchant",
		Replaced:               "Replaced",
		ReplacementCreated:     "ReplacementCreated",
		Closed:                 "Closed",
		NoAnswer:               "NoAnswer",
		SecondNoAnswer:         "SecondNoAnswer",
		ThirdNoAnswer:          "ThirdNoAnswer",
		PhoneOff:               "PhoneOff",
		Unreachable:            "Unreachable",
		WrongNumber:            "WrongNumber",
		WrongAddress:           "WrongAddress",
		CustomerNotified:       "CustomerNotified",
		AwaitingCustomerAction: "AwaitingCustomerAction",
		Relaunched:             "Relaunched",
		Lost:                   "Lost",
		Damaged:                "Damaged",
	}
}

// ParseStatus resolves a status name as used on the wire ("Delivered",
// "Scheduled", ...) to its enum value. Unknown names fail.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status is a member of the enumeration.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status. It implements
// fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status admits no outgoing transitions in
// any role table. Terminal statuses are Delivered, Cancelled and Closed.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Closed
}

// IsRefusalClass reports whether the status bills the refusal fee instead
// of the delivery fee.
func (s Status) IsRefusalClass() bool {
	return s == Refused || s == Cancelled || s == Returned
}

// FinalizesTariff reports whether reaching this status fixes the parcel's
// delivery/refusal fees. Before that, both automatic fees stay at zero.
func (s Status) FinalizesTariff() bool {
	return s == Delivered || s.IsRefusalClass()
}

// RequiresDate reports whether the status carries a mandatory date in its
// transition payload.
func (s Status) RequiresDate() bool {
	return s == Scheduled || s == Postponed
}
