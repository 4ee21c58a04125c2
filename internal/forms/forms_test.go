package forms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"council/internal/api"
)

func validRubric() api.RubricCreate {
	return api.RubricCreate{
		Name:           "Midterm",
		ExamType:       "Internal",
		Duration:       90,
		MCQCount:       10,
		MCQMarksEach:   1,
		ShortCount:     5,
		ShortMarksEach: 4,
		EssayCount:     2,
		EssayMarksEach: 10,
	}
}

func TestValidateRubric(t *testing.T) {
	assert.NoError(t, ValidateRubric(validRubric()))

	r := validRubric()
	r.Name = "   "
	err := ValidateRubric(r)
	assert.Error(t, err, "submission must stay disabled until name is non-empty")

	r = validRubric()
	r.Duration = 0
	assert.Error(t, ValidateRubric(r))

	r = validRubric()
	r.MCQCount, r.ShortCount, r.EssayCount = 0, 0, 0
	assert.Error(t, ValidateRubric(r))

	r = validRubric()
	r.ShortMarksEach = -1
	assert.Error(t, ValidateRubric(r))
}

func TestRubricTotalMarks(t *testing.T) {
	// 10*1 + 5*4 + 2*10 = 50, matching the server's derivation.
	if got := RubricTotalMarks(validRubric()); got != 50 {
		t.Errorf("RubricTotalMarks = %d, want 50", got)
	}
}

func TestValidateBlooms(t *testing.T) {
	ok := api.BloomsDistribution{
		Knowledge: 20, Comprehension: 20, Application: 20,
		Analysis: 20, Synthesis: 10, Evaluation: 10,
	}
	assert.NoError(t, ValidateBlooms(ok))

	short := ok
	short.Evaluation = 5
	err := ValidateBlooms(short)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "95", "error should name the offending sum")

	over := ok
	over.Knowledge = 120
	assert.Error(t, ValidateBlooms(over))

	neg := ok
	neg.Analysis = -20
	neg.Knowledge = 60
	assert.Error(t, ValidateBlooms(neg), "negative weights are invalid even when the sum is 100")
}

func TestValidateVetting(t *testing.T) {
	tests := []struct {
		name    string
		sub     api.VettingSubmission
		wantErr string
	}{
		{
			name: "approve with mapping",
			sub:  api.VettingSubmission{QuestionID: 1, Action: api.VettingApproved, COMappings: []int{2}},
		},
		{
			name:    "approve without mapping",
			sub:     api.VettingSubmission{QuestionID: 1, Action: api.VettingApproved},
			wantErr: "course outcome",
		},
		{
			name: "reject with reason",
			sub:  api.VettingSubmission{QuestionID: 1, Action: api.VettingRejected, RejectionReason: "off syllabus"},
		},
		{
			name:    "reject without reason",
			sub:     api.VettingSubmission{QuestionID: 1, Action: api.VettingRejected},
			wantErr: "reason",
		},
		{
			name: "edit with text and mapping",
			sub: api.VettingSubmission{
				QuestionID: 1, Action: api.VettingEdited,
				EditedText: "Rewritten question", COMappings: []int{3},
			},
		},
		{
			name:    "edit without text",
			sub:     api.VettingSubmission{QuestionID: 1, Action: api.VettingEdited, COMappings: []int{3}},
			wantErr: "replacement text",
		},
		{
			name:    "edit without mapping",
			sub:     api.VettingSubmission{QuestionID: 1, Action: api.VettingEdited, EditedText: "Rewritten"},
			wantErr: "before submitting an edit",
		},
		{
			name:    "unknown action",
			sub:     api.VettingSubmission{QuestionID: 1, Action: "maybe"},
			wantErr: "action",
		},
		{
			name:    "missing question id",
			sub:     api.VettingSubmission{Action: api.VettingApproved, COMappings: []int{1}},
			wantErr: "question id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVetting(tt.sub)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantErr),
				"error %q should mention %q", err, tt.wantErr)
		})
	}
}

func TestValidateSubjectAndUnit(t *testing.T) {
	assert.NoError(t, ValidateSubject("Operating Systems", "CS301"))
	assert.Error(t, ValidateSubject("", "CS301"))
	assert.Error(t, ValidateSubject("Operating Systems", " "))

	assert.NoError(t, ValidateUnit("Memory Management", 3))
	assert.Error(t, ValidateUnit("", 1))
	assert.Error(t, ValidateUnit("Memory Management", 0))
}

func TestValidateCourseOutcome(t *testing.T) {
	assert.NoError(t, ValidateCourseOutcome([]string{"Knowledge", "Analysis"}))
	assert.Error(t, ValidateCourseOutcome(nil))
	assert.Error(t, ValidateCourseOutcome([]string{"Memorization"}))
}
