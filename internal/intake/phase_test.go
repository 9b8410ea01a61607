package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/freelance-matcher/internal/types"
)

func strP(s string) *string { return &s }

func TestDetectPhase(t *testing.T) {
	tests := []struct {
		name string
		data *types.JobData
		want types.Phase
	}{
		{
			name: "empty data starts at understanding",
			data: &types.JobData{},
			want: types.PhaseUnderstanding,
		},
		{
			name: "nil data starts at understanding",
			data: nil,
			want: types.PhaseUnderstanding,
		},
		{
			name: "description alone moves to logistics",
			data: &types.JobData{Description: strP("fix leaking sink")},
			want: types.PhaseLogistics,
		},
		{
			name: "details alone also counts as core",
			data: &types.JobData{Details: strP("kitchen, under the counter")},
			want: types.PhaseLogistics,
		},
		{
			name: "city without date stays in logistics",
			data: &types.JobData{
				Description: strP("fix leaking sink"),
				Location:    &types.LocationData{City: strP("Berlin")},
			},
			want: types.PhaseLogistics,
		},
		{
			name: "date without city stays in logistics",
			data: &types.JobData{
				Description: strP("fix leaking sink"),
				TimeWindow:  &types.TimeWindowData{Date: strP("2026-09-14")},
			},
			want: types.PhaseLogistics,
		},
		{
			name: "description city and date reach confirmation",
			data: &types.JobData{
				Description: strP("fix leaking sink"),
				Location:    &types.LocationData{City: strP("Berlin")},
				TimeWindow:  &types.TimeWindowData{Date: strP("2026-09-14")},
			},
			want: types.PhaseConfirmation,
		},
		{
			name: "city and date without core fall back to understanding",
			data: &types.JobData{
				Location:   &types.LocationData{City: strP("Berlin")},
				TimeWindow: &types.TimeWindowData{Date: strP("2026-09-14")},
			},
			want: types.PhaseUnderstanding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectPhase(tt.data))
		})
	}
}

func TestDetectPhase_SingleTurnJumpSkipsLogistics(t *testing.T) {
	// One message carrying everything goes straight to confirmation;
	// logistics is never a mandatory stop.
	data := &types.JobData{
		Description: strP("move a sofa"),
		Location:    &types.LocationData{City: strP("Hamburg")},
		TimeWindow:  &types.TimeWindowData{Date: strP("2026-10-03")},
	}
	assert.Equal(t, types.PhaseConfirmation, DetectPhase(data))
}

func TestInstructionSet_KnownPhases(t *testing.T) {
	for _, phase := range []types.Phase{
		types.PhaseUnderstanding, types.PhaseLogistics, types.PhaseConfirmation,
	} {
		template, err := InstructionSet(phase)
		require.NoError(t, err, "phase %s", phase)
		assert.Contains(t, template, "{{.Known}}")
		assert.Contains(t, template, "{{.Message}}")
	}
}

func TestInstructionSet_CompleteHasNoInstructions(t *testing.T) {
	_, err := InstructionSet(types.PhaseComplete)
	assert.Error(t, err)
}
