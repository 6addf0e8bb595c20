package model

import "time"

// Redirect maps a short path to a target URL. Path is the unique key; a
// deactivated record keeps its path reserved but stops resolving.
type Redirect struct {
	Path      string    `json:"path" bson:"path"`
	TargetURL string    `json:"target_url" bson:"target_url"`
	OwnerID   string    `json:"owner_id" bson:"owner_id"`
	Active    bool      `json:"active" bson:"active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
