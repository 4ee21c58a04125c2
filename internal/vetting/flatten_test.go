package vetting

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestExtractQuestionText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain text passes through",
			raw:  "Explain the difference between paging and segmentation.",
			want: "Explain the difference between paging and segmentation.",
		},
		{
			name: "markdown passes through",
			raw:  "**Q1.** Explain *virtual memory*.",
			want: "**Q1.** Explain *virtual memory*.",
		},
		{
			name: "top-level question_text",
			raw:  `{"question_text": "Define a process control block.", "marks": 5}`,
			want: "Define a process control block.",
		},
		{
			name: "string question key",
			raw:  `{"question": "What is a race condition?", "options": []}`,
			want: "What is a race condition?",
		},
		{
			name: "chairman json wrapper",
			raw:  `{"json": {"question_text": "State Amdahl's law."}}`,
			want: "State Amdahl's law.",
		},
		{
			name: "nested selected_question wrapper",
			raw:  `{"response": {"selected_question": {"question_text": "Compare TCP and UDP."}}}`,
			want: "Compare TCP and UDP.",
		},
		{
			name: "question type wrapper",
			raw:  `{"MCQ": {"question": "Which scheduler minimizes turnaround time?"}}`,
			want: "Which scheduler minimizes turnaround time?",
		},
		{
			name: "generic nesting",
			raw:  `{"payload": {"inner": {"question_text": "Describe a deadlock."}}}`,
			want: "Describe a deadlock.",
		},
		{
			name: "object without text yields placeholder",
			raw:  `{"confidence": 7.5, "models": ["a", "b"]}`,
			want: ExtractionFailed,
		},
		{
			name: "malformed json shown as-is",
			raw:  `{"question_text": "truncated...`,
			want: `{"question_text": "truncated...`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractQuestionText(tt.raw)
			if got != tt.want {
				t.Errorf("ExtractQuestionText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractOptions(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		qtype string
		text  string
		want  []string
	}{
		{
			name:  "json array",
			raw:   `["A) 1", "B) 2", "C) 3", "D) 4"]`,
			qtype: "MCQ",
			want:  []string{"A) 1", "B) 2", "C) 3", "D) 4"},
		},
		{
			name:  "stringified array",
			raw:   `"[\"A) yes\", \"B) no\"]"`,
			qtype: "MCQ",
			want:  []string{"A) yes", "B) no"},
		},
		{
			name:  "bare string wrapped",
			raw:   `"A single option"`,
			qtype: "MCQ",
			want:  []string{"A single option"},
		},
		{
			name:  "recovered from text lines",
			raw:   ``,
			qtype: "MCQ",
			text:  "Which is fastest?\nA) Registers\nB) Cache\nC) RAM\nD) Disk",
			want:  []string{"A) Registers", "B) Cache", "C) RAM", "D) Disk"},
		},
		{
			name:  "dotted markers",
			raw:   ``,
			qtype: "MCQ",
			text:  "Pick one.\nA. First\nB. Second",
			want:  []string{"A. First", "B. Second"},
		},
		{
			name:  "non-mcq gets no recovery",
			raw:   ``,
			qtype: "Essay",
			text:  "A) this is prose, not an option list",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractOptions(json.RawMessage(tt.raw), tt.qtype, tt.text)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ExtractOptions() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFlattenMarkdown(t *testing.T) {
	in := "## Question\n\n\n**Define** a `mutex` and *explain* its use.\n\n- point one   \n* point two\n"
	want := "Question\n\nDefine a mutex and explain its use.\n\n• point one\n• point two"
	got := FlattenMarkdown(in)
	assert.Equal(t, want, got)

	// Idempotent: flattening flattened text changes nothing.
	assert.Equal(t, got, FlattenMarkdown(got))
}

func TestSummary(t *testing.T) {
	raw := `{"question_text": "# Long question\nwith multiple    lines and **bold** text that keeps going"}`
	got := Summary(raw, 40)
	assert.LessOrEqual(t, len(got), 42, "unicode ellipsis adds bytes, not visible width")
	assert.NotContains(t, got, "\n")
	assert.NotContains(t, got, "**")

	assert.Equal(t, "short", Summary("short", 80))
}

func TestSummaryTruncatesOnRuneBoundary(t *testing.T) {
	text := strings.Repeat("概念の説明を述べよ。", 10)
	got := Summary(text, 20)

	assert.True(t, utf8.ValidString(got), "truncation must not split a character")
	assert.Equal(t, 20, utf8.RuneCountInString(got))
	assert.Equal(t, "…", string([]rune(got)[19]))
}
