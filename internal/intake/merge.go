package intake

import "github.com/jonathan/freelance-matcher/internal/types"

// MergeExtracted combines one turn's freshly extracted fields with the
// accumulated job data. A nil field in the extraction means "not mentioned
// this turn" and never erases a known value. Scalars present in the
// extraction overwrite outright: a restated field supersedes the prior value.
// The nested location and timeWindow groups merge key by key, so mentioning
// only a postcode later does not discard a previously captured address.
//
// Neither input is mutated; the result is a fresh deep copy.
func MergeExtracted(existing, extracted *types.JobData) *types.JobData {
	merged := existing.Clone()
	if merged == nil {
		merged = &types.JobData{}
	}
	if extracted == nil {
		return merged
	}

	if extracted.Description != nil {
		merged.Description = strPtr(*extracted.Description)
	}
	if extracted.Details != nil {
		merged.Details = strPtr(*extracted.Details)
	}
	if extracted.Budget != nil {
		merged.Budget = strPtr(*extracted.Budget)
	}
	if loc := mergeLocation(merged.Location, extracted.Location); !loc.IsEmpty() {
		merged.Location = loc
	}
	if tw := mergeTimeWindow(merged.TimeWindow, extracted.TimeWindow); !tw.IsEmpty() {
		merged.TimeWindow = tw
	}
	return merged
}

func mergeLocation(existing, extracted *types.LocationData) *types.LocationData {
	merged := existing.Clone()
	if extracted == nil {
		return merged
	}
	if merged == nil {
		merged = &types.LocationData{}
	}
	if extracted.City != nil {
		merged.City = strPtr(*extracted.City)
	}
	if extracted.Postcode != nil {
		merged.Postcode = strPtr(*extracted.Postcode)
	}
	if extracted.Address != nil {
		merged.Address = strPtr(*extracted.Address)
	}
	return merged
}

func mergeTimeWindow(existing, extracted *types.TimeWindowData) *types.TimeWindowData {
	merged := existing.Clone()
	if extracted == nil {
		return merged
	}
	if merged == nil {
		merged = &types.TimeWindowData{}
	}
	if extracted.Date != nil {
		merged.Date = strPtr(*extracted.Date)
	}
	if extracted.StartTime != nil {
		merged.StartTime = strPtr(*extracted.StartTime)
	}
	if extracted.EndTime != nil {
		merged.EndTime = strPtr(*extracted.EndTime)
	}
	if extracted.TimeOfDay != nil {
		merged.TimeOfDay = strPtr(*extracted.TimeOfDay)
	}
	if extracted.Flexible != nil {
		v := *extracted.Flexible
		merged.Flexible = &v
	}
	if extracted.Notes != nil {
		merged.Notes = strPtr(*extracted.Notes)
	}
	return merged
}

func strPtr(s string) *string {
	return &s
}
