package strength

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateEmptyPassword(t *testing.T) {
	score, feedback := Evaluate("")

	assert.Equal(t, 0, score)
	assert.Equal(t, []string{
		"Use at least 8 characters",
		"Add uppercase letters",
		"Add lowercase letters",
		"Add numbers",
		"Add special characters",
	}, feedback)
}

func TestEvaluateStrongPassword(t *testing.T) {
	score, feedback := Evaluate("Password1!")

	assert.Equal(t, 100, score)
	assert.Empty(t, feedback)
	assert.Equal(t, "Excellent! Very strong password.", Message(score))
}

func TestEvaluateIndividualChecks(t *testing.T) {
	tests := []struct {
		name     string
		password string
		score    int
		feedback []string
	}{
		{
			name:     "missing special characters",
			password: "Password1",
			score:    80,
			feedback: []string{"Add special characters"},
		},
		{
			name:     "missing digit",
			password: "Password!",
			score:    80,
			feedback: []string{"Add numbers"},
		},
		{
			name:     "missing uppercase",
			password: "password1!",
			score:    80,
			feedback: []string{"Add uppercase letters"},
		},
		{
			name:     "missing lowercase",
			password: "PASSWORD1!",
			score:    80,
			feedback: []string{"Add lowercase letters"},
		},
		{
			name:     "too short",
			password: "Pas1!",
			score:    80,
			feedback: []string{"Use at least 8 characters"},
		},
		{
			name:     "lowercase only",
			password: "abc",
			score:    20,
			feedback: []string{
				"Use at least 8 characters",
				"Add uppercase letters",
				"Add numbers",
				"Add special characters",
			},
		},
		{
			name:     "digits only but long",
			password: "12345678",
			score:    40,
			feedback: []string{
				"Add uppercase letters",
				"Add lowercase letters",
				"Add special characters",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, feedback := Evaluate(tt.password)
			assert.Equal(t, tt.score, score)
			assert.Equal(t, tt.feedback, feedback)
		})
	}
}

func TestEvaluateCountsRunesNotBytes(t *testing.T) {
	// 8 two-byte runes must pass the length check
	score, feedback := Evaluate("éééééééé")
	assert.Equal(t, 40, score) // length + lowercase
	assert.NotContains(t, feedback, "Use at least 8 characters")
}

func TestEvaluateIsDeterministic(t *testing.T) {
	score1, feedback1 := Evaluate("Tr1cky-pass")
	score2, feedback2 := Evaluate("Tr1cky-pass")

	assert.Equal(t, score1, score2)
	assert.Equal(t, feedback1, feedback2)
}

func TestMessageThresholds(t *testing.T) {
	tests := []struct {
		score   int
		message string
	}{
		{100, "Excellent! Very strong password."},
		{80, "Excellent! Very strong password."},
		{79, "Good password, but could be stronger."},
		{60, "Good password, but could be stronger."},
		{59, "Fair password. Add more variety."},
		{40, "Fair password. Add more variety."},
		{39, "Weak password. Needs improvement."},
		{0, "Weak password. Needs improvement."},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.message, Message(tt.score), "score %d", tt.score)
	}
}
