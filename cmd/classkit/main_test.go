package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmoore/classkit/classes"
)

func TestRunCLIHelp(t *testing.T) {
	if err := runCLI([]string{"classkit", "help"}); err != nil {
		t.Fatalf("runCLI help failed: %v", err)
	}
}

func TestRunCLIInvalidCommand(t *testing.T) {
	err := runCLI([]string{"classkit", "unknown"})
	if err == nil {
		t.Fatalf("expected invalid command error")
	}
	if !strings.Contains(err.Error(), "invalid command") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCLIWithoutCommand(t *testing.T) {
	err := runCLI([]string{"classkit"})
	if err == nil {
		t.Fatalf("expected invalid command error")
	}
	if !strings.Contains(err.Error(), "invalid command") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunDemoPrintsHierarchyWalk(t *testing.T) {
	engine, err := newMenagerie(classes.Config{})
	if err != nil {
		t.Fatalf("newMenagerie failed: %v", err)
	}

	var buf bytes.Buffer
	if err := runDemo(engine, &buf); err != nil {
		t.Fatalf("runDemo failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"mio the Cat says meow",
		"rex the Dog says woof",
		"Cat.kingdom = Animalia",
		"instanceOf(myCat, Animal) = true",
		"instanceOf(myCat, Dog) = false",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("demo output missing %q:\n%s", want, out)
		}
	}
}

func TestParseEngineConfigReadsFile(t *testing.T) {
	path := writeConfig(t, "step_quota: 123\nrecursion_limit: 7\n")

	cfg, err := parseEngineConfig("demo", []string{"-config", path})
	if err != nil {
		t.Fatalf("parseEngineConfig failed: %v", err)
	}
	if cfg.StepQuota != 123 || cfg.RecursionLimit != 7 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestParseEngineConfigRejectsExtraArguments(t *testing.T) {
	_, err := parseEngineConfig("demo", []string{"leftover"})
	if err == nil {
		t.Fatalf("expected unexpected argument error")
	}
	if !strings.Contains(err.Error(), "unexpected argument") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func writeConfig(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "limits.yaml")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
