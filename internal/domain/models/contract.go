package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContractStatus tracks the lifecycle of a hall contract.
type ContractStatus string

const (
	StatusReservation ContractStatus = "reservation"
	StatusFinal       ContractStatus = "final"
	StatusCancelled   ContractStatus = "cancelled"
)

// Valid reports whether the status is one of the known lifecycle values.
func (s ContractStatus) Valid() bool {
	switch s {
	case StatusReservation, StatusFinal, StatusCancelled:
		return true
	}
	return false
}

// ExtraItem is an ad hoc line item added to both cost perspectives identically.
type ExtraItem struct {
	Title string  `bson:"title" json:"title" binding:"required"`
	Price float64 `bson:"price" json:"price" binding:"min=0"`
}

// CostBreakdown holds the derived cost fields for one pricing perspective.
// The same struct is used for the customer-facing and the internal view;
// only the rate configuration feeding the computation differs.
type CostBreakdown struct {
	EntryFee      float64 `bson:"entry_fee" json:"entryFee"`
	ServiceFee    float64 `bson:"service_fee" json:"serviceFee"`
	JuicePrice    float64 `bson:"juice_price" json:"juicePrice"`
	TeaPrice      float64 `bson:"tea_price" json:"teaPrice"`
	FireworkPrice float64 `bson:"firework_price" json:"fireworkPrice"`
	CandlePrice   float64 `bson:"candle_price" json:"candlePrice"`
	FlowerPrice   float64 `bson:"flower_price" json:"flowerPrice"`
	WaterPrice    float64 `bson:"water_price" json:"waterPrice"`
	DinnerPrice   float64 `bson:"dinner_price" json:"dinnerPrice"`
	Tax           float64 `bson:"tax" json:"tax"`
	TotalCost     float64 `bson:"total_cost" json:"totalCost"`
}

// Contract is the persisted hall contract: the raw inputs collected from the
// form plus the two engine-computed cost breakdowns.
type Contract struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`

	ContractOwner    string `bson:"contract_owner" json:"contractOwner"`
	GroomFirstName   string `bson:"groom_first_name" json:"groomFirstName"`
	GroomLastName    string `bson:"groom_last_name" json:"groomLastName"`
	GroomNationalID  string `bson:"groom_national_id" json:"groomNationalId"`
	SpouseFirstName  string `bson:"spouse_first_name" json:"spouseFirstName"`
	SpouseLastName   string `bson:"spouse_last_name" json:"spouseLastName"`
	SpouseNationalID string `bson:"spouse_national_id" json:"spouseNationalId"`
	Address          string `bson:"address" json:"address"`
	Phone            string `bson:"phone" json:"phone"`
	Email            string `bson:"email" json:"email"`

	// EventDate is a calendar-agnostic date string, e.g. "1403/02/10".
	EventDate string `bson:"event_date" json:"eventDate"`
	StartTime string `bson:"start_time" json:"startTime"`
	EndTime   string `bson:"end_time" json:"endTime"`

	InviteesCount     int `bson:"invitees_count" json:"inviteesCount"`
	ServiceStaffCount int `bson:"service_staff_count" json:"serviceStaffCount"`
	JuiceCount        int `bson:"juice_count" json:"juiceCount"`
	TeaCount          int `bson:"tea_count" json:"teaCount"`
	FireworkCount     int `bson:"firework_count" json:"fireworkCount"`
	WaterCount        int `bson:"water_count" json:"waterCount"`
	DinnerCount       int `bson:"dinner_count" json:"dinnerCount"`
	DinnerType        string `bson:"dinner_type" json:"dinnerType"`

	IncludeCandle   bool `bson:"include_candle" json:"includeCandle"`
	IncludeFlower   bool `bson:"include_flower" json:"includeFlower"`
	IncludeJuice    bool `bson:"include_juice" json:"includeJuice"`
	IncludeTea      bool `bson:"include_tea" json:"includeTea"`
	IncludeFirework bool `bson:"include_firework" json:"includeFirework"`
	IncludeWater    bool `bson:"include_water" json:"includeWater"`
	IncludeDinner   bool `bson:"include_dinner" json:"includeDinner"`

	Discount     float64     `bson:"discount" json:"discount"`
	ExtraDetails string      `bson:"extra_details" json:"extraDetails"`
	ExtraItems   []ExtraItem `bson:"extra_items" json:"extraItems"`

	CustomerCosts CostBreakdown `bson:"customer_costs" json:"customerCosts"`
	InternalCosts CostBreakdown `bson:"internal_costs" json:"internalCosts"`

	Status ContractStatus `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
