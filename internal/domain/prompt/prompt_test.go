package prompt_test

import (
	"strconv"
	"testing"

	"github.com/evalio/callaudit/internal/domain/prompt"
	"github.com/evalio/callaudit/internal/domain/rubric"
	. "github.com/smartystreets/goconvey/convey"
)

func TestForParameter(t *testing.T) {
	Convey("Given a transcript", t, func() {
		transcript := "Agent: hello. Customer: my invoice is wrong."

		Convey("When building a prompt for a Score parameter", func() {
			p, _ := rubric.Find("resolution")
			out := prompt.ForParameter(p, transcript)

			Convey("Then it carries the parameter name and description", func() {
				So(out, ShouldContainSubstring, p.Name)
				So(out, ShouldContainSubstring, p.Description)
			})

			Convey("Then it carries the transcript verbatim", func() {
				So(out, ShouldContainSubstring, transcript)
			})

			Convey("Then it states the 0..weight range", func() {
				So(out, ShouldContainSubstring, "from 0 to "+strconv.Itoa(p.Weight))
			})

			Convey("Then it asks for a bare number", func() {
				So(out, ShouldContainSubstring, "only a number")
			})
		})

		Convey("When building a prompt for a PassFail parameter", func() {
			p, _ := rubric.Find("greeting")
			out := prompt.ForParameter(p, transcript)

			Convey("Then it states the binary choice", func() {
				So(out, ShouldContainSubstring, "pass/fail")
				So(out, ShouldContainSubstring, strconv.Itoa(p.Weight)+" if the agent passed")
			})
		})

		Convey("When building the same prompt twice", func() {
			p, _ := rubric.Find("empathy")

			Convey("Then the output is deterministic", func() {
				So(prompt.ForParameter(p, transcript), ShouldEqual, prompt.ForParameter(p, transcript))
			})
		})
	})
}

func TestSummaryPrompts(t *testing.T) {
	Convey("Given a transcript", t, func() {
		transcript := "Agent: hello."

		Convey("Then the feedback prompt includes it", func() {
			So(prompt.ForFeedback(transcript), ShouldContainSubstring, transcript)
		})

		Convey("Then the observation prompt includes it", func() {
			So(prompt.ForObservation(transcript), ShouldContainSubstring, transcript)
		})

		Convey("Then the two prompts differ", func() {
			So(prompt.ForFeedback(transcript), ShouldNotEqual, prompt.ForObservation(transcript))
		})
	})
}
