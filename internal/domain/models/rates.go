package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RateKind names one of the two rate configuration documents.
type RateKind string

const (
	// RateKindInternal is the owner's own cost basis.
	RateKindInternal RateKind = "internal"
	// RateKindCustomer is the customer-facing price list.
	RateKindCustomer RateKind = "customer"
)

// Valid reports whether the kind names a known rate configuration.
func (k RateKind) Valid() bool {
	return k == RateKindInternal || k == RateKindCustomer
}

// RateConfig is a flat record of default unit rates and prices. One document
// exists per kind; it is created zeroed on first read and replaced wholesale
// on save, never deleted.
type RateConfig struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Kind RateKind           `bson:"kind" json:"-"`

	// HourlyRate is the base charge for up to two hours of hall time.
	HourlyRate float64 `bson:"hourly_rate" json:"hourlyRate"`
	// ExtraHourRate is the per-hour charge beyond the two-hour baseline.
	ExtraHourRate       float64 `bson:"extra_hour_rate" json:"extraHourRate"`
	ServiceFeePerPerson float64 `bson:"service_fee_per_person" json:"serviceFeePerPerson"`
	// TaxRatePercent is a percentage in [0,100].
	TaxRatePercent float64 `bson:"tax_rate_percent" json:"taxRatePercent"`

	JuicePricePerPerson  float64 `bson:"juice_price_per_person" json:"juicePricePerPerson"`
	TeaPricePerPerson    float64 `bson:"tea_price_per_person" json:"teaPricePerPerson"`
	FireworkPricePerUnit float64 `bson:"firework_price_per_unit" json:"fireworkPricePerUnit"`
	CandlePrice          float64 `bson:"candle_price" json:"candlePrice"`
	FlowerPrice          float64 `bson:"flower_price" json:"flowerPrice"`
	WaterPricePerUnit    float64 `bson:"water_price_per_unit" json:"waterPricePerUnit"`
	DinnerPricePerPerson float64 `bson:"dinner_price_per_person" json:"dinnerPricePerPerson"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
