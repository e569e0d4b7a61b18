package queries

import (
	"errors"
	"time"

	"colis/internal/pkg/errs"
	"colis/internal/pkg/guard"
)

var ErrGetParcelTimelineQueryIsNotConstructed = errors.New(
	"GetParcelTimelineQuery must be created via NewGetParcelTimelineQuery constructor",
)

// GetParcelTimelineQuery retrieves the full status history of a parcel in
// chronological order.
type GetParcelTimelineQuery struct {
	trackingCode string

	guard guard.ConstructorGuard
}

// NewGetParcelTimelineQuery creates a timeline query for one tracking code.
func NewGetParcelTimelineQuery(trackingCode string) (GetParcelTimelineQuery, error) {
	if trackingCode == "" {
		return GetParcelTimelineQuery{}, errs.NewValueIsRequiredError("trackingCode")
	}

	return GetParcelTimelineQuery{
		trackingCode: trackingCode,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetParcelTimelineQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelTimelineQueryIsNotConstructed)
}

func (q GetParcelTimelineQuery) TrackingCode() string { return q.trackingCode }

// TimelineEntry is one step of a parcel's lifecycle.
type TimelineEntry struct {
	Status string
	At     time.Time
}

// GetParcelTimelineQueryResponse is the ordered lifecycle of one parcel.
type GetParcelTimelineQueryResponse struct {
	TrackingCode string
	Entries      []TimelineEntry
}
