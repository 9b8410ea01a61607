package intake

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/freelance-matcher/internal/llm"
	"github.com/jonathan/freelance-matcher/internal/prompts"
	"github.com/jonathan/freelance-matcher/internal/types"
)

// extractionSchema validates the model's extraction output before it is
// merged. Every field is nullable; unknown keys are tolerated and ignored by
// the unmarshal, but type violations (e.g. a number where a string belongs)
// are rejected so bad output cannot corrupt accumulated data.
const extractionSchema = `{
  "type": "object",
  "properties": {
    "description": {"type": ["string", "null"]},
    "details": {"type": ["string", "null"]},
    "budget": {"type": ["string", "null"]},
    "location": {
      "type": ["object", "null"],
      "properties": {
        "city": {"type": ["string", "null"]},
        "postcode": {"type": ["string", "null"]},
        "address": {"type": ["string", "null"]}
      }
    },
    "timeWindow": {
      "type": ["object", "null"],
      "properties": {
        "date": {"type": ["string", "null"]},
        "startTime": {"type": ["string", "null"]},
        "endTime": {"type": ["string", "null"]},
        "timeOfDay": {"type": ["string", "null"]},
        "flexible": {"type": ["boolean", "null"]},
        "notes": {"type": ["string", "null"]}
      }
    }
  }
}`

// ExtractFields asks the model for the structured fields mentioned in one
// user message. Fields the message does not mention come back nil. The raw
// model output is schema-validated before unmarshalling; a failure here is an
// upstream model error for this turn and leaves accumulated data untouched.
func ExtractFields(ctx context.Context, client llm.Client, known *types.JobData, message string) (*types.JobData, error) {
	template := prompts.MustGet("intake.json", "extract-job-fields")
	prompt := prompts.Format(template, map[string]string{
		"Known":   KnownSummary(known),
		"Message": message,
	})

	raw, err := client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}
	raw = llm.CleanJSONBlock(raw)

	if err := validateExtraction(raw); err != nil {
		return nil, fmt.Errorf("extraction output rejected: %w", err)
	}

	var extracted types.JobData
	if err := json.Unmarshal([]byte(raw), &extracted); err != nil {
		return nil, fmt.Errorf("failed to parse extraction output: %w (content: %s)", err, raw)
	}
	return &extracted, nil
}

func validateExtraction(raw string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(extractionSchema),
		gojsonschema.NewStringLoader(raw),
	)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if result.Valid() {
		return nil
	}
	var msgs []string
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		msgs = append(msgs, field+": "+desc.Description())
	}
	return fmt.Errorf("invalid extraction: %s", strings.Join(msgs, "; "))
}

// KnownSummary renders accumulated data as short "field: value" lines for
// inclusion in prompts. Empty data renders as "(nothing yet)".
func KnownSummary(data *types.JobData) string {
	if data == nil {
		return "(nothing yet)"
	}
	var lines []string
	add := func(label string, v *string) {
		if types.Populated(v) {
			lines = append(lines, label+": "+strings.TrimSpace(*v))
		}
	}
	add("job", data.Description)
	add("details", data.Details)
	if data.Location != nil {
		add("city", data.Location.City)
		add("postcode", data.Location.Postcode)
		add("address", data.Location.Address)
	}
	if data.TimeWindow != nil {
		add("date", data.TimeWindow.Date)
		add("start", data.TimeWindow.StartTime)
		add("end", data.TimeWindow.EndTime)
		add("time of day", data.TimeWindow.TimeOfDay)
		if data.TimeWindow.Flexible != nil && *data.TimeWindow.Flexible {
			lines = append(lines, "timing: flexible")
		}
		add("notes", data.TimeWindow.Notes)
	}
	add("budget", data.Budget)
	if len(lines) == 0 {
		return "(nothing yet)"
	}
	return strings.Join(lines, "\n")
}
