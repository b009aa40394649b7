// Package strength scores candidate passwords for the password-hygiene
// training module. Scoring is pure: persistence of submitted samples is the
// caller's job.
package strength

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SpecialChars is the set accepted by the "special character" check.
const SpecialChars = "!@#$%^&*()_+-=[]{}|;:,.<>?"

type check struct {
	passes   func(string) bool
	feedback string
}

// Each check is worth 20 points. Order matters: feedback for failing
// checks is reported in this order.
var checks = []check{
	{func(p string) bool { return utf8.RuneCountInString(p) >= 8 }, "Use at least 8 characters"},
	{func(p string) bool { return strings.ContainsFunc(p, unicode.IsUpper) }, "Add uppercase letters"},
	{func(p string) bool { return strings.ContainsFunc(p, unicode.IsLower) }, "Add lowercase letters"},
	{func(p string) bool { return strings.ContainsFunc(p, unicode.IsDigit) }, "Add numbers"},
	{func(p string) bool { return strings.ContainsAny(p, SpecialChars) }, "Add special characters"},
}

// Evaluate scores a password in 20-point steps and returns feedback for
// every failed check. A perfect password scores 100 with no feedback; the
// empty string scores 0 with all five messages.
func Evaluate(password string) (int, []string) {
	score := 0
	feedback := []string{}
	for _, c := range checks {
		if c.passes(password) {
			score += 20
		} else {
			feedback = append(feedback, c.feedback)
		}
	}
	return score, feedback
}

// Message maps a score to the advice line shown under the strength meter.
// Thresholds are inclusive lower bounds, highest first.
func Message(score int) string {
	switch {
	case score >= 80:
		return "Excellent! Very strong password."
	case score >= 60:
		return "Good password, but could be stronger."
	case score >= 40:
		return "Fair password. Add more variety."
	default:
		return "Weak password. Needs improvement."
	}
}
