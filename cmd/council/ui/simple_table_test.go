package ui

import (
	"strings"
	"testing"
)

func TestSimpleTable(t *testing.T) {
	table := NewSimpleTable("Subjects", []string{"ID", "Name"})
	table.AddRow("1", "Operating Systems")

	styles := DefaultStyles()
	view := table.View(styles)

	if !strings.Contains(view, "Subjects") {
		t.Error("View missing title")
	}
	if !strings.Contains(view, "Operating Systems") {
		t.Error("View missing cell content")
	}
}

func TestSimpleTableEmpty(t *testing.T) {
	table := NewSimpleTable("Empty", []string{"A"})
	if got := table.View(DefaultStyles()); got != "" {
		t.Errorf("empty table should render nothing, got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	if got := truncate("a very long subject name", 10); got != "a very ..." {
		t.Errorf("truncate = %q", got)
	}
}
