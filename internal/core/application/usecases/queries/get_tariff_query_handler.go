package queries

import (
	"context"
	"database/sql"
	"errors"

	"colis/internal/core/domain/model/kernel"
	"colis/internal/core/domain/model/parcel"
	"colis/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetTariffQueryHandler reads the persisted fee breakdown of a parcel.
// It never recalculates: the breakdown shown is the one the lifecycle
// transitions wrote.
type GetTariffQueryHandler struct {
	db *gorm.DB
}

// NewGetTariffQueryHandler creates a handler backed by a GORM connection.
func NewGetTariffQueryHandler(db *gorm.DB) GetTariffQueryHandler {
	return GetTariffQueryHandler{db: db}
}

// Handle returns the tariff of the requested parcel.
func (h GetTariffQueryHandler) Handle(ctx context.Context, query GetTariffQuery) (GetTariffQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTariffQueryResponse{}, err
	}

	var (
		status                                           int
		price, deliveryFee, refusalFee, fragileSurcharge decimal.Decimal
		extraFee, totalFee, payableToMerchant            decimal.Decimal
		extraFeeDescription                              string
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			price,
			delivery_fee,
			refusal_fee,
			fragile_surcharge,
			extra_fee,
			extra_fee_description,
			total_fee,
			payable_to_merchant
		FROM parcels
		WHERE tracking_code = ? AND NOT archived
	`, query.TrackingCode()).Row()

	err := row.Scan(
		&status,
		&price,
		&deliveryFee,
		&refusalFee,
		&fragileSurcharge,
		&extraFee,
		&extraFeeDescription,
		&totalFee,
		&payableToMerchant,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetTariffQueryResponse{}, errs.NewObjectNotFoundError("trackingCode", query.TrackingCode())
	}
	if err != nil {
		return GetTariffQueryResponse{}, err
	}

	parcelStatus := parcel.Status(status)

	return GetTariffQueryResponse{
		TrackingCode:        query.TrackingCode(),
		Status:              parcelStatus.String(),
		Price:               kernel.NewMoney(price),
		DeliveryFee:         kernel.NewMoney(deliveryFee),
		RefusalFee:          kernel.NewMoney(refusalFee),
		FragileSurcharge:    kernel.NewMoney(fragileSurcharge),
		ExtraFee:            kernel.NewMoney(extraFee),
		ExtraFeeDescription: extraFeeDescription,
		TotalFee:            kernel.NewMoney(totalFee),
		PayableToMerchant:   kernel.NewMoney(payableToMerchant),
		Final:               parcelStatus.FinalizesTariff(),
	}, nil
}
