package ports

import (
	"context"
	"time"

	"colis/internal/core/domain/model/kernel"
	"colis/internal/core/domain/model/parcel"
)

// ParcelFilter selects the parcels feeding one invoice: one merchant or one
// courier, a settlement date range, and a status set. Exactly one of
// MerchantID/CourierID is expected to be set.
type ParcelFilter struct {
	MerchantID *kernel.UUID
	CourierID  *kernel.UUID
	From       time.Time
	To         time.Time
	StatusIn   []parcel.Status
}

// ParcelRepository defines the persistence contract for parcel aggregates.
type ParcelRepository interface {
	// Add persists a new parcel. The tracking code must not already exist.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel using optimistic
	// concurrency: the write compares against the version the aggregate
	// was loaded with and fails with ErrConcurrentModification when
	// another writer got there first.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// GetByTrackingCode retrieves one parcel by its tracking code.
	GetByTrackingCode(ctx context.Context, trackingCode string) (*parcel.Parcel, error)

	// GetByTrackingCodes retrieves the parcels for the given codes. Codes
	// with no parcel are simply absent from the result; callers decide
	// whether that is an error.
	GetByTrackingCodes(ctx context.Context, trackingCodes []string) ([]*parcel.Parcel, error)

	// FindForInvoice retrieves the non-archived parcels matching an
	// invoice filter, ordered by tracking code.
	FindForInvoice(ctx context.Context, filter ParcelFilter) ([]*parcel.Parcel, error)
}
