package models

import "time"

// ActivityEntry is one append-only audit record of a user action.
type ActivityEntry struct {
	ID       string    `bson:"_id" json:"id"`
	Username string    `bson:"username" json:"username"`
	Action   string    `bson:"action" json:"action"`
	Entity   string    `bson:"entity" json:"entity"`
	EntityID string    `bson:"entity_id" json:"entityId"`
	At       time.Time `bson:"at" json:"at"`
}
