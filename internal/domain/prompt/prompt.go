// Package prompt renders rubric parameters and transcripts into
// instruction strings for the completion capability.
package prompt

import (
	"fmt"
	"strings"

	"github.com/evalio/callaudit/internal/domain/rubric"
)

// ForParameter builds the scoring instruction for a single rubric
// parameter. The output is a pure function of its inputs; the transcript is
// included verbatim.
func ForParameter(p rubric.Parameter, transcript string) string {
	var b strings.Builder
	b.WriteString("You are a call-center quality analyst.\n")
	fmt.Fprintf(&b, "Evaluate the parameter %q: %s\n\n", p.Name, p.Description)
	b.WriteString("Call transcript:\n")
	b.WriteString(transcript)
	b.WriteString("\n\n")
	switch p.Kind {
	case rubric.PassFail:
		fmt.Fprintf(&b, "This is a pass/fail check. Answer %d if the agent passed, 0 if they failed.\n", p.Weight)
	default:
		fmt.Fprintf(&b, "Rate the agent on a scale from 0 to %d.\n", p.Weight)
	}
	b.WriteString("Respond with only a number, nothing else.")
	return b.String()
}

// ForFeedback builds the open-ended overall-feedback instruction.
func ForFeedback(transcript string) string {
	return "You are a call-center quality analyst.\n" +
		"Give brief overall feedback (2-3 sentences) on the agent's handling of this call:\n\n" +
		transcript
}

// ForObservation builds the open-ended observation instruction.
func ForObservation(transcript string) string {
	return "You are a call-center quality analyst.\n" +
		"Note the single most important observation a supervisor should know about this call, in one sentence:\n\n" +
		transcript
}
