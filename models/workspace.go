package models

import "time"

// Workspace is the scoping unit shared by everyone planning one trip.
type Workspace struct {
	WorkspaceID string    `json:"workspaceid" bson:"workspaceid"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	CreatedBy   string    `json:"created_by" bson:"created_by"`
	Members     []string  `json:"members" bson:"members"`
	StartDate   string    `json:"start_date,omitempty" bson:"start_date,omitempty"`
	EndDate     string    `json:"end_date,omitempty" bson:"end_date,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// PlanDay is one day container of a workspace itinerary.
type PlanDay struct {
	PlanDayID   string `json:"plandayid" bson:"plandayid"`
	WorkspaceID string `json:"workspaceid" bson:"workspaceid"`
	Title       string `json:"title" bson:"title"`
	Date        string `json:"date" bson:"date"`
	DayIndex    int    `json:"day_index" bson:"day_index"`
}
