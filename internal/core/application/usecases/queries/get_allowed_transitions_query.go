package queries

import (
	"errors"

	"colis/internal/core/domain/model/parcel"
	"colis/internal/pkg/errs"
	"colis/internal/pkg/guard"
)

var ErrGetAllowedTransitionsQueryIsNotConstructed = errors.New(
	"GetAllowedTransitionsQuery must be created via NewGetAllowedTransitionsQuery constructor",
)

// GetAllowedTransitionsQuery lists the statuses one role may move a parcel
// into from its current status. Back-office screens use it to render only
// the buttons the caller is actually allowed to press.
type GetAllowedTransitionsQuery struct {
	trackingCode string
	role         parcel.Role

	guard guard.ConstructorGuard
}

// NewGetAllowedTransitionsQuery creates the query for one parcel and role.
func NewGetAllowedTransitionsQuery(trackingCode string, role parcel.Role) (GetAllowedTransitionsQuery, error) {
	if trackingCode == "" {
		return GetAllowedTransitionsQuery{}, errs.NewValueIsRequiredError("trackingCode")
	}
	if err := role.Validate(); err != nil {
		return GetAllowedTransitionsQuery{}, err
	}

	return GetAllowedTransitionsQuery{
		trackingCode: trackingCode,
		role:         role,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAllowedTransitionsQuery) Validate() error {
	return q.guard.Validate(ErrGetAllowedTransitionsQueryIsNotConstructed)
}

func (q GetAllowedTransitionsQuery) TrackingCode() string { return q.trackingCode }

func (q GetAllowedTransitionsQuery) Role() parcel.Role { return q.role }

// GetAllowedTransitionsQueryResponse describes the reachable statuses and
// the input each one would require.
type GetAllowedTransitionsQueryResponse struct {
	CurrentStatus string
	Transitions   []AllowedTransition
}

// AllowedTransition is one reachable status with its input requirements.
type AllowedTransition struct {
	Status          string
	RequiresDate    bool
	RequiresComment bool
}
