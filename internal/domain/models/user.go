package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the coarse access level of a user account.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Page identifiers the permission gate recognizes. They mirror the
// back-office navigation.
const (
	PageMySettings       = "mySettings"
	PageCustomerSettings = "customerSettings"
	PageReporting        = "reporting"
	PageUserManagement   = "userManagement"
	PageCreateContract   = "createContract"
	PageStudioContract   = "studioContract"
	PageHallContracts    = "hallContracts"
	PageStudioContracts  = "studioContracts"
)

// AllPages is the full set of navigable page identifiers. An admin's
// allowedPages is always forced to this set; non-admin users get an
// explicit subset.
var AllPages = []string{
	PageMySettings,
	PageCustomerSettings,
	PageReporting,
	PageUserManagement,
	PageCreateContract,
	PageStudioContract,
	PageHallContracts,
	PageStudioContracts,
}

// KnownPage reports whether the identifier belongs to AllPages.
func KnownPage(page string) bool {
	for _, p := range AllPages {
		if p == page {
			return true
		}
	}
	return false
}

// User is a back-office account. Password holds a bcrypt hash and is never
// serialized to clients.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username     string             `bson:"username" json:"username"`
	Password     string             `bson:"password" json:"-"`
	Role         Role               `bson:"role" json:"role"`
	AllowedPages []string           `bson:"allowed_pages" json:"allowedPages"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}
