package composite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/freelance-matcher/internal/types"
)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *int { return &i }

func floatPtr(f float64) *float64 { return &f }

func TestBuildJobText_AllFields(t *testing.T) {
	job := &types.JobRequest{
		Description: "Fix leaking kitchen sink",
		TimeWindow: &types.TimeWindowData{
			Date:      strPtr("2026-09-14"),
			StartTime: strPtr("09:00"),
			EndTime:   strPtr("12:00"),
			TimeOfDay: strPtr("morning"),
			Flexible:  boolPtr(true),
			Notes:     strPtr("before the weekend"),
		},
		Location: &types.LocationData{
			City:     strPtr("Berlin"),
			Postcode: strPtr("10115"),
			Address:  strPtr("Invalidenstr. 5"),
		},
		Budget: strPtr("under 150 EUR"),
	}

	got := BuildJobText(job)
	want := "Fix leaking kitchen sink. " +
		"When: 2026-09-14, from 09:00, until 12:00, morning, flexible timing, before the weekend. " +
		"Location: 10115, Invalidenstr. 5. " +
		"Budget: under 150 EUR"
	assert.Equal(t, want, got)
}

func TestBuildJobText_OmitsEmptyClauses(t *testing.T) {
	job := &types.JobRequest{Description: "Assemble a wardrobe"}
	assert.Equal(t, "Assemble a wardrobe", BuildJobText(job))

	// A present but fully blank nested struct contributes nothing
	job.TimeWindow = &types.TimeWindowData{}
	job.Location = &types.LocationData{City: strPtr("Hamburg")} // city is structured-only
	assert.Equal(t, "Assemble a wardrobe", BuildJobText(job))
}

func TestBuildJobText_Deterministic(t *testing.T) {
	job := &types.JobRequest{
		Description: "Paint the hallway",
		TimeWindow:  &types.TimeWindowData{Date: strPtr("2026-10-01")},
		Budget:      strPtr("300 EUR"),
	}
	first := BuildJobText(job)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, BuildJobText(job))
	}
}

func TestBuildJobText_TrimsWhitespace(t *testing.T) {
	job := &types.JobRequest{
		Description: "  Mount a TV  ",
		Budget:      strPtr(" 80 EUR "),
	}
	assert.Equal(t, "Mount a TV. Budget: 80 EUR", BuildJobText(job))
}

func TestBuildJobText_Nil(t *testing.T) {
	assert.Equal(t, "", BuildJobText(nil))
	assert.Equal(t, "", BuildJobText(&types.JobRequest{}))
}

func TestBuildJobDataText_JoinsDescriptionAndDetails(t *testing.T) {
	data := &types.JobData{
		Description: strPtr("Garden cleanup"),
		Details:     strPtr("hedge trimming and leaf removal"),
		Budget:      strPtr("120 EUR"),
	}
	got := BuildJobDataText(data)
	assert.Equal(t, "Garden cleanup hedge trimming and leaf removal. Budget: 120 EUR", got)
}

func TestBuildJobDataText_Nil(t *testing.T) {
	assert.Equal(t, "", BuildJobDataText(nil))
}

func TestBuildFreelancerText_AllFields(t *testing.T) {
	f := &types.FreelancerProfile{
		Description:  "Experienced plumber for residential repairs",
		Skills:       []string{"plumbing", "pipe fitting"},
		ExampleTasks: []string{"fix leaking taps", "install dishwashers"},
		Availability: &types.Availability{
			Days: map[string][]string{
				"Monday":    {"morning", "afternoon"},
				"Wednesday": {"evening"},
			},
			ShortNotice: true,
		},
		Location: &types.FreelancerLocation{
			Postcode:       strPtr("10115"),
			TravelRadiusKm: intPtr(25),
		},
		PricingStyle: types.PricingHourly,
		HourlyRate:   floatPtr(45),
	}

	got := BuildFreelancerText(f)
	want := "Experienced plumber for residential repairs. " +
		"Skills: plumbing, pipe fitting. " +
		"Example tasks: fix leaking taps, install dishwashers. " +
		"Availability: Monday morning and afternoon, Wednesday evening. " +
		"Available on short notice. " +
		"Location: 10115, travels up to 25 km. " +
		"Pricing: €45 per hour"
	assert.Equal(t, want, got)
}

func TestBuildFreelancerText_AvailabilityOrderIsDeterministic(t *testing.T) {
	f := &types.FreelancerProfile{
		Description: "Handyman",
		Availability: &types.Availability{
			Days: map[string][]string{
				"Sunday":  {"morning"},
				"Tuesday": {"afternoon"},
				"Friday":  {"evening"},
			},
		},
	}
	got := BuildFreelancerText(f)
	assert.Contains(t, got, "Availability: Tuesday afternoon, Friday evening, Sunday morning")

	first := got
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, BuildFreelancerText(f))
	}
}

func TestBuildFreelancerText_FlexibleSchedule(t *testing.T) {
	f := &types.FreelancerProfile{
		Description:  "Cleaner",
		Availability: &types.Availability{Flexible: true},
	}
	assert.Equal(t, "Cleaner. Availability: flexible schedule", BuildFreelancerText(f))
}

func TestBuildFreelancerText_PerTaskPricing(t *testing.T) {
	f := &types.FreelancerProfile{
		Description:  "Mover",
		PricingStyle: types.PricingPerTask,
	}
	assert.True(t, strings.HasSuffix(BuildFreelancerText(f), "Pricing: per task"))
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "45", formatRate(45.0))
	assert.Equal(t, "42.50", formatRate(42.5))
}
