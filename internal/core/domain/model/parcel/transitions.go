package parcel

import (
	"fmt"

	"colis/internal/pkg/errs"
)

// Role identifies the actor requesting a status change. The two concrete
// roles carry different transition tables: the administrative back office
// drives the whole lifecycle, couriers only the delivery attempt and its
// outcomes.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCourier Role = "courier"
)

// Validate checks that the role is one of the known actor roles.
func (r Role) Validate() error {
	if r != RoleAdmin && r != RoleCourier {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid actor role", string(r)))
	}
	return nil
}

// adminTransitions is the allowed-transition table for the administrative
// actor. Terminal statuses (Delivered, Cancelled, Closed) have no entry:
// nothing leaves them.
var adminTransitions = map[Status][]Status{
	New:                    {AwaitingPickup, PickedUp, Scheduled, Cancelled},
	AwaitingPickup:         {PickedUp, Cancelled},
	PickedUp:               {Shipped, ReceivedAtHub, Cancelled},
	Shipped:                {ReceivedAtHub, Lost, Damaged},
	ReceivedAtHub:          {OutForDelivery, Scheduled, Cancelled},
	OutForDelivery:         {Delivered, Refused, Scheduled, Postponed, Returned, NoAnswer, PhoneOff, Unreachable, WrongNumber, WrongAddress},
	Scheduled:              {OutForDelivery, Postponed, Cancelled},
	Postponed:              {OutForDelivery, Scheduled, Cancelled},
	Refused:                {Returned, ReplacementCreated, AwaitingCustomerAction},
	Returned:               {ReturnInTransit, ReturnedToMerchant},
	ReturnInTransit:        {ReturnedToMerchant, Lost},
	ReturnedToMerchant:     {Closed, ReplacementCreated},
	Replaced:               {Closed},
	ReplacementCreated:     {Replaced, Cancelled},
	NoAnswer:               {SecondNoAnswer, CustomerNotified, OutForDelivery, Scheduled},
	SecondNoAnswer:         {ThirdNoAnswer, CustomerNotified, OutForDelivery},
	ThirdNoAnswer:          {Refused, CustomerNotified, Returned},
	PhoneOff:               {Relaunched, CustomerNotified, OutForDelivery},
	Unreachable:            {Relaunched, WrongNumber, Returned},
	WrongNumber:            {CustomerNotified, Relaunched},
	WrongAddress:           {Relaunched, OutForDelivery, Returned},
	CustomerNotified:       {AwaitingCustomerAction, OutForDelivery, Scheduled},
	AwaitingCustomerAction: {OutForDelivery, Scheduled, Refused, Cancelled},
	Relaunched:             {OutForDelivery, Scheduled},
	Lost:                   {Closed},
	Damaged:                {Returned, Closed},
}

// courierTransitions is the restricted table for the courier actor:
// delivery attempts, their outcomes and the contact-attempt sub-statuses.
// Everything else is back-office territory.
var courierTransitions = map[Status][]Status{
	OutForDelivery: {Delivered, Refused, Scheduled, Postponed, NoAnswer, PhoneOff, Unreachable, WrongNumber, WrongAddress},
	Scheduled:      {OutForDelivery, Postponed},
	Postponed:      {OutForDelivery},
	NoAnswer:       {SecondNoAnswer, OutForDelivery},
	SecondNoAnswer: {ThirdNoAnswer, OutForDelivery},
	ThirdNoAnswer:  {Refused},
	PhoneOff:       {OutForDelivery},
	Unreachable:    {WrongNumber},
	WrongAddress:   {OutForDelivery},
	Relaunched:     {OutForDelivery},
}

// commentRequired lists the statuses whose transitions must carry an
// operator comment. Outcomes and contact attempts need a trace for the
// merchant; plain line-haul moves do not.
var commentRequired = map[Status]bool{
	Refused:        true,
	Cancelled:      true,
	Returned:       true,
	NoAnswer:       true,
	SecondNoAnswer: true,
	ThirdNoAnswer:  true,
	PhoneOff:       true,
	Unreachable:    true,
	WrongNumber:    true,
	WrongAddress:   true,
	Lost:           true,
	Damaged:        true,
}

// RequiresComment reports whether a transition into this status must carry
// an operator comment.
func (s Status) RequiresComment() bool {
	return commentRequired[s]
}

func transitionTable(role Role) map[Status][]Status {
	if role == RoleCourier {
		return courierTransitions
	}
	return adminTransitions
}

// AllowedNext returns the statuses the given role may move a parcel to from
// the given status, in table order. Terminal statuses return an empty set.
// The presentation layer uses this to render only legal actions instead of
// hard-coding status lists.
func AllowedNext(role Role, from Status) []Status {
	next := transitionTable(role)[from]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether role may move a parcel from one status to
// another.
func CanTransition(role Role, from, to Status) bool {
	for _, s := range transitionTable(role)[from] {
		if s == to {
			return true
		}
	}
	return false
}
