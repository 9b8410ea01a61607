// Package composite builds the canonical natural-language string that gets
// embedded for an entity. The builders are pure: identical input produces a
// byte-identical string, and any subset of optional fields may be absent.
package composite

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/freelance-matcher/internal/types"
)

// BuildJobText renders a job request into its composite text.
// Clause order: description, "When:", "Location:", "Budget:". A clause is
// emitted only when at least one of its sub-fields is populated.
func BuildJobText(job *types.JobRequest) string {
	if job == nil {
		return ""
	}
	var clauses []string
	if desc := strings.TrimSpace(job.Description); desc != "" {
		clauses = append(clauses, desc)
	}
	if c := whenClause(job.TimeWindow); c != "" {
		clauses = append(clauses, c)
	}
	if c := jobLocationClause(job.Location); c != "" {
		clauses = append(clauses, c)
	}
	if job.Budget != nil && strings.TrimSpace(*job.Budget) != "" {
		clauses = append(clauses, "Budget: "+strings.TrimSpace(*job.Budget))
	}
	return strings.Join(clauses, ". ")
}

// BuildJobDataText renders accumulated intake data the same way BuildJobText
// renders a stored job. Used to preview and embed a job at confirmation time.
func BuildJobDataText(data *types.JobData) string {
	if data == nil {
		return ""
	}
	var desc []string
	if types.Populated(data.Description) {
		desc = append(desc, strings.TrimSpace(*data.Description))
	}
	if types.Populated(data.Details) {
		desc = append(desc, strings.TrimSpace(*data.Details))
	}
	job := &types.JobRequest{
		Description: strings.Join(desc, " "),
		Location:    data.Location,
		TimeWindow:  data.TimeWindow,
		Budget:      data.Budget,
	}
	return BuildJobText(job)
}

// BuildFreelancerText renders a freelancer profile into its composite text.
// After the description come skills, example tasks, structured availability,
// the short-notice flag, location and a pricing phrase.
func BuildFreelancerText(f *types.FreelancerProfile) string {
	if f == nil {
		return ""
	}
	var clauses []string
	if desc := strings.TrimSpace(f.Description); desc != "" {
		clauses = append(clauses, desc)
	}
	if skills := joinNonBlank(f.Skills); skills != "" {
		clauses = append(clauses, "Skills: "+skills)
	}
	if tasks := joinNonBlank(f.ExampleTasks); tasks != "" {
		clauses = append(clauses, "Example tasks: "+tasks)
	}
	if c := availabilityClause(f.Availability); c != "" {
		clauses = append(clauses, c)
	}
	if f.Availability != nil && f.Availability.ShortNotice {
		clauses = append(clauses, "Available on short notice")
	}
	if c := freelancerLocationClause(f.Location); c != "" {
		clauses = append(clauses, c)
	}
	if c := pricingClause(f); c != "" {
		clauses = append(clauses, c)
	}
	return strings.Join(clauses, ". ")
}

// whenClause renders the populated time window fields, comma separated.
func whenClause(tw *types.TimeWindowData) string {
	if tw == nil {
		return ""
	}
	var parts []string
	if types.Populated(tw.Date) {
		parts = append(parts, strings.TrimSpace(*tw.Date))
	}
	if types.Populated(tw.StartTime) {
		parts = append(parts, "from "+strings.TrimSpace(*tw.StartTime))
	}
	if types.Populated(tw.EndTime) {
		parts = append(parts, "until "+strings.TrimSpace(*tw.EndTime))
	}
	if types.Populated(tw.TimeOfDay) {
		parts = append(parts, strings.TrimSpace(*tw.TimeOfDay))
	}
	if tw.Flexible != nil && *tw.Flexible {
		parts = append(parts, "flexible timing")
	}
	if types.Populated(tw.Notes) {
		parts = append(parts, strings.TrimSpace(*tw.Notes))
	}
	if len(parts) == 0 {
		return ""
	}
	return "When: " + strings.Join(parts, ", ")
}

func jobLocationClause(loc *types.LocationData) string {
	if loc == nil {
		return ""
	}
	var parts []string
	if types.Populated(loc.Postcode) {
		parts = append(parts, strings.TrimSpace(*loc.Postcode))
	}
	if types.Populated(loc.Address) {
		parts = append(parts, strings.TrimSpace(*loc.Address))
	}
	if len(parts) == 0 {
		return ""
	}
	return "Location: " + strings.Join(parts, ", ")
}

func freelancerLocationClause(loc *types.FreelancerLocation) string {
	if loc == nil {
		return ""
	}
	var parts []string
	if types.Populated(loc.Postcode) {
		parts = append(parts, strings.TrimSpace(*loc.Postcode))
	}
	if loc.TravelRadiusKm != nil && *loc.TravelRadiusKm > 0 {
		parts = append(parts, "travels up to "+strconv.Itoa(*loc.TravelRadiusKm)+" km")
	}
	if len(parts) == 0 {
		return ""
	}
	return "Location: " + strings.Join(parts, ", ")
}

// availabilityClause renders the day-to-slots map into a human readable
// phrase, e.g. "Availability: Monday morning and afternoon, Wednesday evening".
// Days render in weekday order so the output is deterministic.
func availabilityClause(a *types.Availability) string {
	if a == nil {
		return ""
	}
	var parts []string
	for _, day := range types.Weekdays {
		slots := a.Days[day]
		if len(slots) == 0 {
			continue
		}
		parts = append(parts, day+" "+joinSlots(slots))
	}
	if a.Flexible {
		parts = append(parts, "flexible schedule")
	}
	if len(parts) == 0 {
		return ""
	}
	return "Availability: " + strings.Join(parts, ", ")
}

func joinSlots(slots []string) string {
	switch len(slots) {
	case 1:
		return slots[0]
	case 2:
		return slots[0] + " and " + slots[1]
	default:
		return strings.Join(slots[:len(slots)-1], ", ") + " and " + slots[len(slots)-1]
	}
}

func pricingClause(f *types.FreelancerProfile) string {
	switch f.PricingStyle {
	case types.PricingHourly:
		if f.HourlyRate != nil && *f.HourlyRate > 0 {
			return "Pricing: " + fmt.Sprintf("€%s per hour", formatRate(*f.HourlyRate))
		}
		return "Pricing: per hour"
	case types.PricingPerTask:
		return "Pricing: per task"
	default:
		return ""
	}
}

// formatRate drops trailing zeros so 45.00 renders as "45" and 42.50 as "42.50".
func formatRate(rate float64) string {
	if rate == float64(int64(rate)) {
		return strconv.FormatInt(int64(rate), 10)
	}
	return strconv.FormatFloat(rate, 'f', 2, 64)
}

func joinNonBlank(items []string) string {
	var kept []string
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, ", ")
}
