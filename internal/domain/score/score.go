// Package score normalizes free-text completion replies into bounded
// integer scores.
package score

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/evalio/callaudit/internal/domain/rubric"
)

// Sentinel replies substituted by the orchestrator when a completion call
// fails. The parser maps both to a zero score so a partial result is never
// reported as a success.
const (
	ReplyQuotaError = "ERROR_QUOTA"
	ReplyAPIError   = "ERROR_API"
)

var firstInt = regexp.MustCompile(`-?\d+`)

// Parse extracts a score from a raw completion reply and bounds it to
// [0, weight]. It is a pure function: identical inputs always yield the
// same result, and it never returns an error.
//
// Resolution order:
//  1. error sentinels yield 0
//  2. the first signed integer substring is the candidate
//  3. with no digits, pass/fail replies fall back to keyword matching
//  4. the candidate is clamped to the parameter's legal range
func Parse(reply string, weight int, kind rubric.InputKind) int {
	if reply == ReplyQuotaError || reply == ReplyAPIError {
		return 0
	}

	if m := firstInt.FindString(reply); m != "" {
		// ParseInt saturates on overflow; the saturated value clamps the
		// same way the exact one would.
		candidate, _ := strconv.ParseInt(m, 10, 64)
		return clamp(candidate, weight, kind)
	}

	if kind == rubric.PassFail {
		lower := strings.ToLower(reply)
		switch {
		case strings.Contains(lower, "pass"), strings.Contains(lower, "yes"),
			strings.Contains(lower, strconv.Itoa(weight)):
			return weight
		case strings.Contains(lower, "fail"), strings.Contains(lower, "no"),
			strings.Contains(lower, "0"):
			return 0
		}
	}
	return 0
}

// clamp bounds a candidate to the parameter's legal range. PassFail is
// binary: any strictly positive candidate collapses to the full weight.
func clamp(candidate int64, weight int, kind rubric.InputKind) int {
	if kind == rubric.PassFail {
		if candidate > 0 {
			return weight
		}
		return 0
	}
	if candidate < 0 {
		return 0
	}
	if candidate > int64(weight) {
		return weight
	}
	return int(candidate)
}
