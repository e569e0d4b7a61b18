package queries

import (
	"errors"

	"colis/internal/core/domain/model/kernel"
	"colis/internal/pkg/errs"
	"colis/internal/pkg/guard"
)

var ErrGetTariffQueryIsNotConstructed = errors.New(
	"GetTariffQuery must be created via NewGetTariffQuery constructor",
)

// GetTariffQuery retrieves the fee breakdown of a single parcel.
//
// Example:
//
//	query, err := NewGetTariffQuery("COL-12345")
//	if err != nil {
//	    return err
//	}
//
//	tariff, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get tariff: %w", err)
//	}
//
//	fmt.Printf("total fee %s, merchant receives %s\n",
//	    tariff.TotalFee, tariff.PayableToMerchant)
type GetTariffQuery struct {
	trackingCode string

	guard guard.ConstructorGuard
}

// NewGetTariffQuery creates a tariff query for one tracking code.
func NewGetTariffQuery(trackingCode string) (GetTariffQuery, error) {
	if trackingCode == "" {
		return GetTariffQuery{}, errs.NewValueIsRequiredError("trackingCode")
	}

	return GetTariffQuery{
		trackingCode: trackingCode,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTariffQuery) Validate() error {
	return q.guard.Validate(ErrGetTariffQueryIsNotConstructed)
}

func (q GetTariffQuery) TrackingCode() string { return q.trackingCode }

// GetTariffQueryResponse is the fee breakdown of one parcel. Final reports
// whether the underlying status no longer changes the tariff.
type GetTariffQueryResponse struct {
	TrackingCode        string
	Status              string
	Price               kernel.Money
	DeliveryFee         kernel.Money
	RefusalFee          kernel.Money
	FragileSurcharge    kernel.Money
	ExtraFee            kernel.Money
	ExtraFeeDescription string
	TotalFee            kernel.Money
	PayableToMerchant   kernel.Money
	Final               bool
}
