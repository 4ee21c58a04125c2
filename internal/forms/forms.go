// Package forms holds the client-side validation the screens run
// before enabling a submit action. The backend enforces the same rules;
// validating here keeps bad submissions from ever leaving the device,
// which is how the original screens behaved.
package forms

import (
	"fmt"
	"strings"

	"council/internal/api"
)

// ValidateSubject checks the create-subject form.
func ValidateSubject(name, code string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("subject name must not be empty")
	}
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("subject code must not be empty")
	}
	return nil
}

// ValidateUnit checks the create-unit form.
func ValidateUnit(name string, unitNumber int) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("unit name must not be empty")
	}
	if unitNumber < 1 {
		return fmt.Errorf("unit number must be at least 1, got %d", unitNumber)
	}
	return nil
}

// ValidateCourseOutcome checks a CO form: at least one level, all
// levels valid.
func ValidateCourseOutcome(bloomsLevels []string) error {
	if len(bloomsLevels) == 0 {
		return fmt.Errorf("select at least one Bloom's level")
	}
	for _, level := range bloomsLevels {
		if !validBloomsLevel(level) {
			return fmt.Errorf("invalid Bloom's level: %s", level)
		}
	}
	return nil
}

func validBloomsLevel(level string) bool {
	for _, l := range api.BloomsLevels {
		if l == level {
			return true
		}
	}
	return false
}

// ValidateRubric checks the create-rubric form. The save button stays
// disabled until this returns nil.
func ValidateRubric(r api.RubricCreate) error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("rubric name must not be empty")
	}
	if strings.TrimSpace(r.ExamType) == "" {
		return fmt.Errorf("exam type must not be empty")
	}
	if r.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %d", r.Duration)
	}
	if r.MCQCount < 0 || r.ShortCount < 0 || r.EssayCount < 0 {
		return fmt.Errorf("question counts must not be negative")
	}
	if r.MCQMarksEach < 0 || r.ShortMarksEach < 0 || r.EssayMarksEach < 0 {
		return fmt.Errorf("marks must not be negative")
	}
	if r.MCQCount+r.ShortCount+r.EssayCount == 0 {
		return fmt.Errorf("at least one question section must have a count")
	}
	return nil
}

// RubricTotalMarks computes the total the server will derive, for
// display in the form before submission.
func RubricTotalMarks(r api.RubricCreate) int {
	return r.MCQCount*r.MCQMarksEach +
		r.ShortCount*r.ShortMarksEach +
		r.EssayCount*r.EssayMarksEach
}

// ValidateBlooms enforces the sum-to-100 rule on the six sliders. The
// error names the offending sum so the screen can show it.
func ValidateBlooms(d api.BloomsDistribution) error {
	for _, w := range []struct {
		name  string
		value int
	}{
		{"Knowledge", d.Knowledge},
		{"Comprehension", d.Comprehension},
		{"Application", d.Application},
		{"Analysis", d.Analysis},
		{"Synthesis", d.Synthesis},
		{"Evaluation", d.Evaluation},
	} {
		if w.value < 0 || w.value > 100 {
			return fmt.Errorf("%s weight must be between 0 and 100, got %d", w.name, w.value)
		}
	}
	if sum := d.Sum(); sum != 100 {
		return fmt.Errorf("Bloom's distribution must sum to 100, current sum: %d", sum)
	}
	return nil
}

// ValidateVetting checks a review decision before submission:
// approvals need a CO mapping, rejections need a reason, edits need
// replacement text.
func ValidateVetting(sub api.VettingSubmission) error {
	if sub.QuestionID <= 0 {
		return fmt.Errorf("missing question id")
	}
	switch sub.Action {
	case api.VettingApproved:
		if len(sub.COMappings) == 0 {
			return fmt.Errorf("select at least one course outcome before approving")
		}
	case api.VettingRejected:
		if strings.TrimSpace(sub.RejectionReason) == "" {
			return fmt.Errorf("rejection requires a reason")
		}
	case api.VettingEdited:
		if strings.TrimSpace(sub.EditedText) == "" {
			return fmt.Errorf("edited submission requires replacement text")
		}
		if len(sub.COMappings) == 0 {
			return fmt.Errorf("select at least one course outcome before submitting an edit")
		}
	default:
		return fmt.Errorf("action must be %q, %q, or %q", api.VettingApproved, api.VettingRejected, api.VettingEdited)
	}
	return nil
}
