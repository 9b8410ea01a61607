package types

import (
	"time"

	"github.com/google/uuid"
)

// JobRequest is a client's finalized job record. It is created with a nil
// embedding and updated exactly once with the computed vector; a backfill may
// later recompute it. Readers must treat a nil embedding as "not ready".
type JobRequest struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Location    *LocationData   `json:"location,omitempty"`
	TimeWindow  *TimeWindowData `json:"time_window,omitempty"`
	Budget      *string         `json:"budget,omitempty"`
	Embedding   []float64       `json:"-"` // large; never serialized to clients
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// HasEmbedding reports whether the job's embedding has been computed.
func (j *JobRequest) HasEmbedding() bool {
	return j != nil && len(j.Embedding) > 0
}

// JobRequestCreateInput is used when inserting a new job request.
// The embedding is always absent at insert time.
type JobRequestCreateInput struct {
	Description string
	Location    *LocationData
	TimeWindow  *TimeWindowData
	Budget      *string
}

// FromJobData converts confirmed intake data into a job create input.
func FromJobData(data *JobData) JobRequestCreateInput {
	in := JobRequestCreateInput{}
	if data == nil {
		return in
	}
	if Populated(data.Description) {
		in.Description = *data.Description
	}
	if Populated(data.Details) {
		if in.Description != "" {
			in.Description += " " + *data.Details
		} else {
			in.Description = *data.Details
		}
	}
	in.Location = data.Location.Clone()
	in.TimeWindow = data.TimeWindow.Clone()
	if Populated(data.Budget) {
		in.Budget = cloneString(data.Budget)
	}
	return in
}
