package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromJobData_JoinsDescriptionAndDetails(t *testing.T) {
	data := &JobData{
		Description: strPtr("fix leaking sink"),
		Details:     strPtr("under the kitchen counter"),
		Location:    &LocationData{City: strPtr("Berlin")},
		Budget:      strPtr("100 EUR"),
	}

	in := FromJobData(data)
	assert.Equal(t, "fix leaking sink under the kitchen counter", in.Description)
	require.NotNil(t, in.Location)
	assert.Equal(t, "Berlin", *in.Location.City)
	require.NotNil(t, in.Budget)
	assert.Equal(t, "100 EUR", *in.Budget)

	// The input owns its copies
	*data.Location.City = "Hamburg"
	assert.Equal(t, "Berlin", *in.Location.City)
}

func TestFromJobData_DetailsOnly(t *testing.T) {
	in := FromJobData(&JobData{Details: strPtr("two rooms, white paint")})
	assert.Equal(t, "two rooms, white paint", in.Description)
}

func TestFromJobData_Nil(t *testing.T) {
	in := FromJobData(nil)
	assert.Equal(t, "", in.Description)
	assert.Nil(t, in.Location)
	assert.Nil(t, in.TimeWindow)
	assert.Nil(t, in.Budget)
}

func TestJobRequest_HasEmbedding(t *testing.T) {
	assert.False(t, (*JobRequest)(nil).HasEmbedding())
	assert.False(t, (&JobRequest{}).HasEmbedding())
	assert.True(t, (&JobRequest{Embedding: []float64{0.1}}).HasEmbedding())
}
