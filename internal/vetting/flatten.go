// Package vetting normalizes council output for review screens. The
// council's agents emit question text in whatever shape their model
// produced: plain prose, markdown, a JSON object, or JSON nested
// inside named wrappers. These helpers flatten all of that into
// display text without ever showing a serialized object to a reviewer.
package vetting

import (
	"encoding/json"
	"regexp"
	"strings"
)

// ExtractionFailed is shown when a JSON payload holds no recognizable
// question text.
const ExtractionFailed = "[EXTRACTION FAILED] Could not parse question text."

// wrapperKeys are the envelope names the council is known to nest
// payloads under, tried in order before generic descent.
var wrapperKeys = []string{
	"json", "response", "selected_question", "draft",
	"MCQ", "Short Notes", "Essay", "result", "output",
}

// ExtractQuestionText returns display text for a raw question field.
// Non-JSON input passes through unchanged. A JSON object is searched
// for question text; if none is found the fixed placeholder is
// returned rather than the serialized object.
func ExtractQuestionText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return raw
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(trimmed), &obj); err != nil {
		// Looks like JSON but isn't; show it as-is.
		return raw
	}

	if payload := findPayload(obj, 0); payload != nil {
		if text := payloadText(payload); text != "" {
			return text
		}
	}
	return ExtractionFailed
}

// maxDepth bounds generic descent; council wrappers are shallow.
const maxDepth = 6

// findPayload locates the innermost object carrying question text.
func findPayload(obj map[string]any, depth int) map[string]any {
	if depth > maxDepth {
		return nil
	}
	if payloadText(obj) != "" {
		return obj
	}
	for _, k := range wrapperKeys {
		if child, ok := obj[k].(map[string]any); ok {
			if found := findPayload(child, depth+1); found != nil {
				return found
			}
		}
	}
	for _, v := range obj {
		if child, ok := v.(map[string]any); ok {
			if found := findPayload(child, depth+1); found != nil {
				return found
			}
		}
	}
	return nil
}

// payloadText pulls the text field out of a candidate payload.
// question_text wins; a string-valued "question" is accepted too.
func payloadText(obj map[string]any) string {
	if s, ok := obj["question_text"].(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	if s, ok := obj["question"].(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return ""
}

// optionLine matches one lettered MCQ option at the start of a line:
// "A) ...", "B. ...".
var optionLine = regexp.MustCompile(`(?m)^\s*([A-D][.)]\s+.*)$`)

// optionInline matches options run together on a single line.
var optionInline = regexp.MustCompile(`([A-D][.)]\s+[^A-D\n]+)`)

// ExtractOptions resolves an MCQ's option list. The wire value may be
// a JSON array, a JSON-encoded string holding an array, or a bare
// string. When the wire carries nothing and the question is an MCQ,
// options are recovered from lettered markers in the question text.
func ExtractOptions(raw json.RawMessage, questionType, text string) []string {
	if opts := decodeOptions(raw); len(opts) > 0 {
		return opts
	}
	if !strings.Contains(questionType, "MCQ") {
		return nil
	}

	matches := optionLine.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		matches = optionInline.FindAllStringSubmatch(text, -1)
	}
	var opts []string
	for _, m := range matches {
		opts = append(opts, strings.TrimSpace(m[1]))
	}
	return opts
}

func decodeOptions(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var list []any
	if err := json.Unmarshal(raw, &list); err == nil {
		var opts []string
		for _, item := range list {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				opts = append(opts, s)
			}
		}
		return opts
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "[") {
		var inner []string
		if err := json.Unmarshal([]byte(s), &inner); err == nil {
			return inner
		}
	}
	return []string{s}
}

var (
	headingMarker = regexp.MustCompile(`(?m)^\s{0,3}#{1,6}\s+`)
	boldMarker    = regexp.MustCompile(`\*\*([^*]+)\*\*|__([^_]+)__`)
	italicMarker  = regexp.MustCompile(`(^|[^*_\w])[*_]([^*_\n]+)[*_]`)
	codeMarker    = regexp.MustCompile("`([^`]*)`")
	bulletMarker  = regexp.MustCompile(`(?m)^(\s*)[-*+]\s+`)
	excessBlank   = regexp.MustCompile(`\n{3,}`)
	trailingSpace = regexp.MustCompile(`(?m)[ \t]+$`)
)

// FlattenMarkdown strips markdown decoration for plain display
// contexts (table cells, single-line summaries). It is a display
// heuristic and idempotent; glamour handles rich rendering.
func FlattenMarkdown(s string) string {
	out := headingMarker.ReplaceAllString(s, "")
	out = boldMarker.ReplaceAllString(out, "$1$2")
	out = italicMarker.ReplaceAllString(out, "$1$2")
	out = codeMarker.ReplaceAllString(out, "$1")
	out = bulletMarker.ReplaceAllString(out, "$1• ")
	out = excessBlank.ReplaceAllString(out, "\n\n")
	out = trailingSpace.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}

// Summary returns a single-line preview of question text, flattened
// and truncated for list rows.
func Summary(raw string, limit int) string {
	text := FlattenMarkdown(ExtractQuestionText(raw))
	text = strings.Join(strings.Fields(text), " ")
	if limit <= 0 {
		return text
	}
	// Truncate by runes so a multi-byte character is never split.
	runes := []rune(text)
	if len(runes) > limit {
		return string(runes[:limit-1]) + "…"
	}
	return text
}
