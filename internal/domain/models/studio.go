package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceItem is a single billed service on a studio contract.
type ServiceItem struct {
	Title string  `bson:"title" json:"title" binding:"required"`
	Price float64 `bson:"price" json:"price" binding:"min=0"`
}

// StudioContract is a photo-studio booking. Unlike hall contracts it has no
// rate-table pricing; the total is just the sum of its service items minus
// the discount.
type StudioContract struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`

	FullName  string `bson:"full_name" json:"fullName"`
	GroomName string `bson:"groom_name" json:"groomName"`
	BrideName string `bson:"bride_name" json:"brideName"`
	Phone     string `bson:"phone" json:"phone"`

	// Calendar-agnostic date strings, same convention as Contract.EventDate.
	WeddingDate    string `bson:"wedding_date" json:"weddingDate"`
	EngagementDate string `bson:"engagement_date" json:"engagementDate"`
	HennaDate      string `bson:"henna_date" json:"hennaDate"`
	InvoiceDate    string `bson:"invoice_date" json:"invoiceDate"`

	Services     []ServiceItem `bson:"services" json:"services"`
	Discount     float64       `bson:"discount" json:"discount"`
	TotalPrice   float64       `bson:"total_price" json:"totalPrice"`
	ExtraDetails string        `bson:"extra_details" json:"extraDetails"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
