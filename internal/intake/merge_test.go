package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/freelance-matcher/internal/types"
)

func TestMergeExtracted_NilNeverErases(t *testing.T) {
	existing := &types.JobData{
		Description: strP("fix leaking sink"),
		Location:    &types.LocationData{City: strP("Berlin")},
		Budget:      strP("100 EUR"),
	}
	extracted := &types.JobData{
		TimeWindow: &types.TimeWindowData{Date: strP("2026-09-14")},
	}

	merged := MergeExtracted(existing, extracted)
	require.NotNil(t, merged)
	assert.Equal(t, "fix leaking sink", *merged.Description)
	assert.Equal(t, "Berlin", *merged.Location.City)
	assert.Equal(t, "100 EUR", *merged.Budget)
	assert.Equal(t, "2026-09-14", *merged.TimeWindow.Date)
}

func TestMergeExtracted_ScalarOverwrites(t *testing.T) {
	existing := &types.JobData{Budget: strP("100 EUR")}
	extracted := &types.JobData{Budget: strP("150 EUR")}

	merged := MergeExtracted(existing, extracted)
	assert.Equal(t, "150 EUR", *merged.Budget)
}

func TestMergeExtracted_NestedGroupsMergeKeyByKey(t *testing.T) {
	// An address captured earlier survives a later turn that only mentions a
	// postcode.
	existing := &types.JobData{
		Description: strP("paint hallway"),
		Location:    &types.LocationData{Address: strP("Invalidenstr. 5")},
	}
	extracted := &types.JobData{
		Location: &types.LocationData{Postcode: strP("10115")},
	}

	merged := MergeExtracted(existing, extracted)
	require.NotNil(t, merged.Location)
	assert.Equal(t, "Invalidenstr. 5", *merged.Location.Address)
	assert.Equal(t, "10115", *merged.Location.Postcode)
	assert.Nil(t, merged.Location.City)
}

func TestMergeExtracted_TimeWindowMergesKeyByKey(t *testing.T) {
	existing := &types.JobData{
		TimeWindow: &types.TimeWindowData{Date: strP("2026-09-14")},
	}
	flexible := true
	extracted := &types.JobData{
		TimeWindow: &types.TimeWindowData{
			TimeOfDay: strP("morning"),
			Flexible:  &flexible,
		},
	}

	merged := MergeExtracted(existing, extracted)
	require.NotNil(t, merged.TimeWindow)
	assert.Equal(t, "2026-09-14", *merged.TimeWindow.Date)
	assert.Equal(t, "morning", *merged.TimeWindow.TimeOfDay)
	require.NotNil(t, merged.TimeWindow.Flexible)
	assert.True(t, *merged.TimeWindow.Flexible)
}

func TestMergeExtracted_EmptyNestedGroupNotAttached(t *testing.T) {
	merged := MergeExtracted(&types.JobData{}, &types.JobData{
		Location: &types.LocationData{},
	})
	assert.Nil(t, merged.Location)
}

func TestMergeExtracted_DoesNotMutateInputs(t *testing.T) {
	existing := &types.JobData{
		Description: strP("fix sink"),
		Location:    &types.LocationData{City: strP("Berlin")},
	}
	extracted := &types.JobData{
		Location: &types.LocationData{Postcode: strP("10115")},
	}

	merged := MergeExtracted(existing, extracted)
	*merged.Location.City = "Hamburg"
	merged.Location.Postcode = strP("20095")

	assert.Equal(t, "Berlin", *existing.Location.City)
	assert.Nil(t, existing.Location.Postcode)
	assert.Equal(t, "10115", *extracted.Location.Postcode)
	assert.Nil(t, extracted.Location.City)
}

func TestMergeExtracted_NilInputs(t *testing.T) {
	merged := MergeExtracted(nil, nil)
	require.NotNil(t, merged)
	assert.Nil(t, merged.Description)

	merged = MergeExtracted(nil, &types.JobData{Description: strP("x")})
	assert.Equal(t, "x", *merged.Description)
}
