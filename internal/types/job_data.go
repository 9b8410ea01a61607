// Package types defines the domain records shared across the matcher:
// job requests, freelancer profiles, accumulated intake data and match results.
package types

import "strings"

// LocationData holds the location fields captured during intake.
// Every field is optional; a nil pointer means "not known yet".
type LocationData struct {
	City     *string `json:"city,omitempty"`
	Postcode *string `json:"postcode,omitempty"`
	Address  *string `json:"address,omitempty"`
}

// IsEmpty reports whether no location field is populated.
func (l *LocationData) IsEmpty() bool {
	if l == nil {
		return true
	}
	return !Populated(l.City) && !Populated(l.Postcode) && !Populated(l.Address)
}

// Clone returns a deep copy so merges never alias the source.
func (l *LocationData) Clone() *LocationData {
	if l == nil {
		return nil
	}
	return &LocationData{
		City:     cloneString(l.City),
		Postcode: cloneString(l.Postcode),
		Address:  cloneString(l.Address),
	}
}

// TimeWindowData holds the scheduling fields captured during intake.
type TimeWindowData struct {
	Date      *string `json:"date,omitempty"`      // ISO date, e.g. "2024-06-01"
	StartTime *string `json:"startTime,omitempty"` // "09:00"
	EndTime   *string `json:"endTime,omitempty"`
	TimeOfDay *string `json:"timeOfDay,omitempty"` // "morning", "afternoon", "evening"
	Flexible  *bool   `json:"flexible,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// IsEmpty reports whether no time window field is populated.
func (t *TimeWindowData) IsEmpty() bool {
	if t == nil {
		return true
	}
	return !Populated(t.Date) && !Populated(t.StartTime) && !Populated(t.EndTime) &&
		!Populated(t.TimeOfDay) && t.Flexible == nil && !Populated(t.Notes)
}

// Clone returns a deep copy so merges never alias the source.
func (t *TimeWindowData) Clone() *TimeWindowData {
	if t == nil {
		return nil
	}
	return &TimeWindowData{
		Date:      cloneString(t.Date),
		StartTime: cloneString(t.StartTime),
		EndTime:   cloneString(t.EndTime),
		TimeOfDay: cloneString(t.TimeOfDay),
		Flexible:  cloneBool(t.Flexible),
		Notes:     cloneString(t.Notes),
	}
}

// JobData is the accumulated, partially populated representation of a client's
// request, built up turn by turn during intake. Fields are pointers so that
// "not mentioned" (nil) is distinguishable from an explicit value.
type JobData struct {
	Description *string         `json:"description,omitempty"`
	Details     *string         `json:"details,omitempty"`
	Location    *LocationData   `json:"location,omitempty"`
	TimeWindow  *TimeWindowData `json:"timeWindow,omitempty"`
	Budget      *string         `json:"budget,omitempty"`
}

// Clone returns a deep copy of the job data.
func (d *JobData) Clone() *JobData {
	if d == nil {
		return nil
	}
	return &JobData{
		Description: cloneString(d.Description),
		Details:     cloneString(d.Details),
		Location:    d.Location.Clone(),
		TimeWindow:  d.TimeWindow.Clone(),
		Budget:      cloneString(d.Budget),
	}
}

// HasCore reports whether the request itself has been described yet.
func (d *JobData) HasCore() bool {
	if d == nil {
		return false
	}
	return Populated(d.Description) || Populated(d.Details)
}

// HasCity reports whether a city has been captured.
func (d *JobData) HasCity() bool {
	return d != nil && d.Location != nil && Populated(d.Location.City)
}

// HasDate reports whether a requested date has been captured.
func (d *JobData) HasDate() bool {
	return d != nil && d.TimeWindow != nil && Populated(d.TimeWindow.Date)
}

// Populated reports whether a string pointer carries a non-blank value.
func Populated(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
