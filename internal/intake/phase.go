// Package intake implements the conversational job intake: phase detection,
// LLM field extraction and the monotonic merge of extracted fields.
package intake

import (
	"fmt"

	"github.com/jonathan/freelance-matcher/internal/prompts"
	"github.com/jonathan/freelance-matcher/internal/types"
)

// DetectPhase derives the current intake phase from the accumulated job data.
// It is a pure function re-evaluated every turn; there is no stored transition
// history, so the phase can never desynchronize from the data. A single turn
// that supplies description, city and date at once jumps straight to
// confirmation, skipping logistics.
//
// PhaseComplete is never returned here: it is reached only by an explicit
// confirmation action.
func DetectPhase(data *types.JobData) types.Phase {
	if !data.HasCore() {
		return types.PhaseUnderstanding
	}
	if data.HasCity() && data.HasDate() {
		return types.PhaseConfirmation
	}
	return types.PhaseLogistics
}

// InstructionSet returns the fixed assistant instruction template for a phase.
// PhaseComplete has no instruction set; the session is over.
func InstructionSet(phase types.Phase) (string, error) {
	switch phase {
	case types.PhaseUnderstanding, types.PhaseLogistics, types.PhaseConfirmation:
		return prompts.Get("intake.json", "phase-"+string(phase))
	default:
		return "", fmt.Errorf("no instruction set for phase %q", phase)
	}
}
