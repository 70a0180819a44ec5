package main

import (
	"strings"
	"testing"
)

func TestLoadConfigEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.StepQuota != 0 || cfg.RecursionLimit != 0 {
		t.Fatalf("expected zero config for empty path, got %+v", cfg)
	}
}

func TestLoadConfigParsesLimits(t *testing.T) {
	path := writeConfig(t, "step_quota: 2000\nrecursion_limit: 16\n")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.StepQuota != 2000 {
		t.Fatalf("unexpected step quota: %d", cfg.StepQuota)
	}
	if cfg.RecursionLimit != 16 {
		t.Fatalf("unexpected recursion limit: %d", cfg.RecursionLimit)
	}
}

func TestLoadConfigToleratesEmptyFile(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig failed on empty file: %v", err)
	}
	if cfg.StepQuota != 0 || cfg.RecursionLimit != 0 {
		t.Fatalf("expected zero config for empty file, got %+v", cfg)
	}
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "step_quota: 10\nmemory_limit: 99\n")

	_, err := loadConfig(path)
	if err == nil {
		t.Fatalf("expected unknown field error")
	}
	if !strings.Contains(err.Error(), "memory_limit") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadConfigRejectsNegativeValues(t *testing.T) {
	path := writeConfig(t, "step_quota: -1\n")

	_, err := loadConfig(path)
	if err == nil {
		t.Fatalf("expected negative value error")
	}
	if !strings.Contains(err.Error(), "cannot be negative") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig("/nonexistent/limits.yaml")
	if err == nil {
		t.Fatalf("expected read error for missing file")
	}
	if !strings.Contains(err.Error(), "read config") {
		t.Fatalf("unexpected error: %v", err)
	}
}
