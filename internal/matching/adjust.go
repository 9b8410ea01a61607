package matching

import (
	"strings"
	"time"

	"github.com/jonathan/freelance-matcher/internal/types"
)

// Structured-compatibility penalties. Semantic similarity dominates the final
// score; these deltas only demote. The values keep a structural mismatch from
// outranking a compatible candidate of slightly lower similarity without
// letting logistics drown out semantics entirely.
const (
	// penaltyOtherCityWithRadius applies when the candidate is based in a
	// different city but declares a travel radius. Actual distance is not
	// verifiable without geocoding, so demote instead of excluding.
	penaltyOtherCityWithRadius = -0.15
	// penaltyDayUnavailable applies when the candidate has no slots on the
	// requested weekday.
	penaltyDayUnavailable = -0.20
	// penaltySlotUnavailable applies when the day is worked but the requested
	// time of day is not.
	penaltySlotUnavailable = -0.10
)

// Adjustment is the structured-compatibility outcome for one candidate.
// Excluded candidates are dropped from the ranking entirely.
type Adjustment struct {
	Delta    float64
	Excluded bool
	Reasons  []string
}

// StructuredAdjustment compares a job's structured attributes against a
// candidate's. Unknown attributes on either side never penalize: only a
// demonstrable mismatch does.
func StructuredAdjustment(job *types.JobRequest, f *types.FreelancerProfile) Adjustment {
	var adj Adjustment
	applyLocation(&adj, job, f)
	if adj.Excluded {
		return adj
	}
	applyAvailability(&adj, job, f)
	return adj
}

func applyLocation(adj *Adjustment, job *types.JobRequest, f *types.FreelancerProfile) {
	if job.Location == nil || f.Location == nil {
		return
	}
	jobCity := normalizeCity(job.Location.City)
	candidateCity := normalizeCity(f.Location.City)
	if jobCity == "" || candidateCity == "" || jobCity == candidateCity {
		return
	}

	if f.Location.TravelRadiusKm != nil && *f.Location.TravelRadiusKm > 0 {
		adj.Delta += penaltyOtherCityWithRadius
		adj.Reasons = append(adj.Reasons, "based in a different city")
		return
	}
	adj.Excluded = true
	adj.Reasons = append(adj.Reasons, "outside service area")
}

func applyAvailability(adj *Adjustment, job *types.JobRequest, f *types.FreelancerProfile) {
	if job.TimeWindow == nil || f.Availability == nil {
		return
	}
	weekday, ok := requestedWeekday(job.TimeWindow)
	if !ok {
		return
	}
	if !f.Availability.AvailableOn(weekday) {
		adj.Delta += penaltyDayUnavailable
		adj.Reasons = append(adj.Reasons, "not available on "+weekday)
		return
	}
	if types.Populated(job.TimeWindow.TimeOfDay) &&
		!f.Availability.AvailableAt(weekday, strings.ToLower(strings.TrimSpace(*job.TimeWindow.TimeOfDay))) {
		adj.Delta += penaltySlotUnavailable
		adj.Reasons = append(adj.Reasons, "requested time of day not worked")
	}
}

// requestedWeekday resolves the job's requested date to a weekday name.
func requestedWeekday(tw *types.TimeWindowData) (string, bool) {
	if !types.Populated(tw.Date) {
		return "", false
	}
	t, err := time.Parse("2006-01-02", strings.TrimSpace(*tw.Date))
	if err != nil {
		return "", false
	}
	return t.Weekday().String(), true
}

func normalizeCity(city *string) string {
	if city == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*city))
}
