package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/paulmoore/classkit/classes"
)

// fileConfig is the YAML shape of the optional -config file.
type fileConfig struct {
	StepQuota      int `yaml:"step_quota"`
	RecursionLimit int `yaml:"recursion_limit"`
}

func loadConfig(path string) (classes.Config, error) {
	if path == "" {
		return classes.Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return classes.Config{}, fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return classes.Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if fc.StepQuota < 0 {
		return classes.Config{}, fmt.Errorf("config %s: step_quota cannot be negative", path)
	}
	if fc.RecursionLimit < 0 {
		return classes.Config{}, fmt.Errorf("config %s: recursion_limit cannot be negative", path)
	}
	return classes.Config{StepQuota: fc.StepQuota, RecursionLimit: fc.RecursionLimit}, nil
}
