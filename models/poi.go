package models

// PoiStatus tells which container a poi lives in.
type PoiStatus string

const (
	// Marked pois sit in the shared unassigned pool.
	StatusMarked PoiStatus = "Marked"
	// Scheduled pois belong to exactly one plan day.
	StatusScheduled PoiStatus = "Scheduled"
	// Recommended pois are read-only suggestions; they are never mutated in
	// place, only cloned into a fresh Marked/Scheduled poi on adoption.
	StatusRecommended PoiStatus = "Recommended"
)

// Poi is a point of interest placed by a user on the shared map.
type Poi struct {
	PoiID        string    `json:"poiid" bson:"poiid"`
	WorkspaceID  string    `json:"workspaceid" bson:"workspaceid"`
	CreatedBy    string    `json:"created_by" bson:"created_by"`
	Latitude     float64   `json:"latitude" bson:"latitude"`
	Longitude    float64   `json:"longitude" bson:"longitude"`
	Address      string    `json:"address,omitempty" bson:"address,omitempty"`
	PlaceName    string    `json:"place_name" bson:"place_name"`
	CategoryName string    `json:"category_name,omitempty" bson:"category_name,omitempty"`
	Status       PoiStatus `json:"status" bson:"status"`
	PlanDayID    string    `json:"plandayid,omitempty" bson:"plandayid"`
	Sequence     int       `json:"sequence" bson:"sequence"`
	// IsPersisted is false while PoiID is a client-generated provisional id,
	// true once the server has echoed back the permanent record.
	IsPersisted bool `json:"is_persisted" bson:"-"`
}

// PoiDescriptor carries the descriptive payload of a poi before it has an
// identity, as reported by the map UI on a mark gesture.
type PoiDescriptor struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Address      string  `json:"address,omitempty"`
	PlaceName    string  `json:"place_name"`
	CategoryName string  `json:"category_name,omitempty"`
}
