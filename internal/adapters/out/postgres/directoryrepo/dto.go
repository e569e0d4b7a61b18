// Package directoryrepo reads the operations directory: rate entries and
// courier records. The directory is maintained by another system; this side
// only ever reads it.
package directoryrepo

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RateDTO is one rate entry. A row with a courier reference overrides the
// city-wide row (courier_id NULL) for that courier.
type RateDTO struct {
	CityID    uuid.UUID  `gorm:"type:uuid;index"`
	CourierID *uuid.UUID `gorm:"type:uuid;index"`

	DeliveryFee      decimal.Decimal `gorm:"type:decimal(12,2)"`
	RefusalFee       decimal.Decimal `gorm:"type:decimal(12,2)"`
	FragileSurcharge decimal.Decimal `gorm:"type:decimal(12,2)"`
	CourierRate      decimal.Decimal `gorm:"type:decimal(12,2)"`
}

// TableName overrides GORM's default naming to use "rates".
func (RateDTO) TableName() string {
	return "rates"
}

// CourierDTO is one courier record.
type CourierDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
}

// TableName overrides GORM's default naming to use "couriers".
func (CourierDTO) TableName() string {
	return "couriers"
}
