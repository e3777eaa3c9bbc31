package cardgen

import (
	"fmt"

	"github.com/ksuda/kioku/internal/card"
)

// Validator checks a generated card for correctness.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator, e.g. "structural".
	Name() string

	// Validate checks the card and returns nil if it passes.
	Validate(c *card.Card) *ValidationError
}

// ValidationError describes why a card failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

const (
	maxQuestionLen = 120
	maxAnswerLen   = 400
)

// StructuralValidator checks that required fields are present, within
// length limits, and have valid enum values.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(c *card.Card) *ValidationError {
	if c.Question == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "question is empty",
		}
	}
	if len([]rune(c.Question)) > maxQuestionLen {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("question exceeds %d characters", maxQuestionLen),
		}
	}
	if c.Answer == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "answer is empty",
		}
	}
	if len([]rune(c.Answer)) > maxAnswerLen {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("answer exceeds %d characters", maxAnswerLen),
		}
	}
	if c.Difficulty < 1 || c.Difficulty > 5 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "difficulty must be between 1 and 5",
		}
	}
	switch c.Type {
	case card.TypeQuick, card.TypeDecision, card.TypeProcess:
	default:
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("unknown card type %q", c.Type),
		}
	}
	return nil
}
