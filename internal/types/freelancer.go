package types

import (
	"time"

	"github.com/google/uuid"
)

// PricingStyle constants for freelancer profiles
const (
	PricingHourly  = "hourly"
	PricingPerTask = "per_task"
)

// Weekdays in rendering order. Availability maps use these keys.
var Weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Availability describes when a freelancer can take on work.
// Days maps a weekday name to the time-of-day slots worked that day
// ("morning", "afternoon", "evening").
type Availability struct {
	Days        map[string][]string `json:"days,omitempty"`
	ShortNotice bool                `json:"short_notice,omitempty"`
	Flexible    bool                `json:"flexible,omitempty"`
}

// AvailableOn reports whether the freelancer works on the given weekday at
// all. A flexible freelancer is considered available every day.
func (a *Availability) AvailableOn(weekday string) bool {
	if a == nil || a.Flexible {
		return true
	}
	return len(a.Days[weekday]) > 0
}

// AvailableAt reports whether the freelancer works the given time-of-day slot
// on the given weekday.
func (a *Availability) AvailableAt(weekday, timeOfDay string) bool {
	if a == nil || a.Flexible {
		return true
	}
	for _, slot := range a.Days[weekday] {
		if slot == timeOfDay {
			return true
		}
	}
	return false
}

// FreelancerLocation is where a freelancer is based and how far they travel.
type FreelancerLocation struct {
	City           *string `json:"city,omitempty"`
	Postcode       *string `json:"postcode,omitempty"`
	TravelRadiusKm *int    `json:"travel_radius_km,omitempty"`
}

// FreelancerProfile is a provider record. The embedding is recomputed whenever
// any field feeding the composite text changes; it is nil until first computed.
type FreelancerProfile struct {
	ID           uuid.UUID           `json:"id"`
	Description  string              `json:"description"`
	Skills       []string            `json:"skills,omitempty"`
	ExampleTasks []string            `json:"example_tasks,omitempty"`
	Availability *Availability       `json:"availability,omitempty"`
	Location     *FreelancerLocation `json:"location,omitempty"`
	PricingStyle string              `json:"pricing_style,omitempty"`
	HourlyRate   *float64            `json:"hourly_rate,omitempty"`
	Embedding    []float64           `json:"-"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// HasEmbedding reports whether the profile's embedding has been computed.
func (f *FreelancerProfile) HasEmbedding() bool {
	return f != nil && len(f.Embedding) > 0
}

// FreelancerUpsertInput carries the writable profile fields. Any change to
// these invalidates the stored embedding until it is recomputed.
type FreelancerUpsertInput struct {
	Description  string
	Skills       []string
	ExampleTasks []string
	Availability *Availability
	Location     *FreelancerLocation
	PricingStyle string
	HourlyRate   *float64
}
