package main

import (
	"testing"
)

func TestParseID(t *testing.T) {
	if _, err := parseID("0", "subject id"); err == nil {
		t.Error("zero id should be rejected")
	}
	if _, err := parseID("abc", "subject id"); err == nil {
		t.Error("non-numeric id should be rejected")
	}
	id, err := parseID("42", "subject id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 42 {
		t.Errorf("parseID = %d, want 42", id)
	}
}

func TestCommandRegistration(t *testing.T) {
	wanted := []string{
		"subjects", "materials", "samples", "outcomes",
		"rubrics", "generate", "jobs", "vetting",
		"training", "benchmarks", "tools", "status",
	}
	have := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		have[c.Name()] = true
	}
	for _, name := range wanted {
		if !have[name] {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestOutcomesSubcommands(t *testing.T) {
	wanted := []string{
		"co-list", "co-add", "co-update", "co-delete",
		"lo-list", "lo-add", "lo-update", "lo-delete",
		"map-unit", "map-show", "blooms-show", "blooms-set",
	}
	have := map[string]bool{}
	for _, c := range outcomesCmd.Commands() {
		have[c.Name()] = true
	}
	for _, name := range wanted {
		if !have[name] {
			t.Errorf("outcomes subcommand %q not registered", name)
		}
	}
}
