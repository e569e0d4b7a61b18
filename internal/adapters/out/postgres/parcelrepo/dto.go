// Package parcelrepo implements parcel persistence on PostgreSQL via GORM.
// It maps the parcel aggregate to a single row: the status history is kept
// as a JSONB document, money amounts as fixed-point decimals.
package parcelrepo

import (
	"encoding/json"
	"time"

	"colis/internal/core/domain/model/kernel"
	"colis/internal/core/domain/model/parcel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ParcelDTO is the database representation of a parcel aggregate. The
// version column backs optimistic concurrency: every update increments it
// and compares against the value the row was loaded with.
type ParcelDTO struct {
	TrackingCode string     `gorm:"primaryKey"`
	MerchantID   uuid.UUID  `gorm:"type:uuid;index"`
	CourierID    *uuid.UUID `gorm:"type:uuid;index"`
	CityID       uuid.UUID  `gorm:"type:uuid"`

	Price decimal.Decimal `gorm:"type:decimal(12,2)"`

	IsFragile     bool
	IsReplacement bool
	IsOpenable    bool

	Status        int `gorm:"index"`
	StatusHistory datatypes.JSON
	ScheduledDate *time.Time
	PostponedDate *time.Time
	Comment       string
	Note          string

	DeliveryFee         decimal.Decimal `gorm:"type:decimal(12,2)"`
	RefusalFee          decimal.Decimal `gorm:"type:decimal(12,2)"`
	FragileSurcharge    decimal.Decimal `gorm:"type:decimal(12,2)"`
	ExtraFee            decimal.Decimal `gorm:"type:decimal(12,2)"`
	ExtraFeeDescription string
	TotalFee            decimal.Decimal `gorm:"type:decimal(12,2)"`
	PayableToMerchant   decimal.Decimal `gorm:"type:decimal(12,2)"`

	Archived  bool `gorm:"index"`
	CreatedAt time.Time
	Version   int
}

// TableName overrides GORM's default naming to use "parcels".
func (ParcelDTO) TableName() string {
	return "parcels"
}

// fromDomain converts a parcel aggregate to its database representation.
func fromDomain(p *parcel.Parcel) (ParcelDTO, error) {
	var courierID *uuid.UUID
	if id := p.CourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	history, err := json.Marshal(p.History().Entries())
	if err != nil {
		return ParcelDTO{}, err
	}

	tariff := p.Tariff()

	return ParcelDTO{
		TrackingCode: p.TrackingCode(),
		MerchantID:   p.MerchantID().Bytes(),
		CourierID:    courierID,
		CityID:       p.CityID().Bytes(),

		Price: p.Price().Decimal(),

		IsFragile:     p.IsFragile(),
		IsReplacement: p.IsReplacement(),
		IsOpenable:    p.IsOpenable(),

		Status:        int(p.Status()),
		StatusHistory: datatypes.JSON(history),
		ScheduledDate: p.ScheduledDate(),
		PostponedDate: p.PostponedDate(),
		Comment:       p.Comment(),
		Note:          p.Note(),

		DeliveryFee:         tariff.DeliveryFee.Decimal(),
		RefusalFee:          tariff.RefusalFee.Decimal(),
		FragileSurcharge:    tariff.FragileSurcharge.Decimal(),
		ExtraFee:            p.ExtraFee().Value.Decimal(),
		ExtraFeeDescription: p.ExtraFee().Description,
		TotalFee:            tariff.TotalFee.Decimal(),
		PayableToMerchant:   tariff.PayableToMerchant.Decimal(),

		Archived:  p.IsArchived(),
		CreatedAt: p.CreatedAt(),
		Version:   p.Version(),
	}, nil
}

// toDomain converts a database row back into a parcel aggregate using
// RestoreParcel.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	merchantID, err := kernel.UUIDFromBytes(dto.MerchantID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}

		courierID = &cID
	}

	cityID, err := kernel.UUIDFromBytes(dto.CityID[:])
	if err != nil {
		return nil, err
	}

	var entries []parcel.HistoryEntry
	if len(dto.StatusHistory) > 0 {
		if err = json.Unmarshal(dto.StatusHistory, &entries); err != nil {
			return nil, err
		}
	}

	tariff := parcel.Tariff{
		DeliveryFee:       kernel.NewMoney(dto.DeliveryFee),
		RefusalFee:        kernel.NewMoney(dto.RefusalFee),
		FragileSurcharge:  kernel.NewMoney(dto.FragileSurcharge),
		ExtraFee:          kernel.NewMoney(dto.ExtraFee),
		TotalFee:          kernel.NewMoney(dto.TotalFee),
		PayableToMerchant: kernel.NewMoney(dto.PayableToMerchant),
	}

	extraFee := parcel.ExtraFee{
		Value:       kernel.NewMoney(dto.ExtraFee),
		Description: dto.ExtraFeeDescription,
	}

	return parcel.RestoreParcel(
		dto.TrackingCode,
		merchantID,
		courierID,
		cityID,
		kernel.NewMoney(dto.Price),
		dto.IsFragile,
		dto.IsReplacement,
		dto.IsOpenable,
		parcel.Status(dto.Status),
		parcel.RestoreHistory(entries),
		dto.ScheduledDate,
		dto.PostponedDate,
		dto.Comment,
		dto.Note,
		tariff,
		extraFee,
		dto.Archived,
		dto.Version,
	)
}
