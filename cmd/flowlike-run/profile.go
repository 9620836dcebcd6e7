package main

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// runProfile is the YAML file the exec command reads: which node to invoke,
// the pin inputs, and the host services to stand up around the run.
type runProfile struct {
	Node     string `yaml:"node"`
	LogLevel string `yaml:"log_level"`
	Stream   bool   `yaml:"stream"`

	// Inputs are pin values. Scalars are encoded as their JSON forms;
	// nested maps and lists are converted to JSON objects and arrays.
	Inputs map[string]interface{} `yaml:"inputs"`

	StorageRoot string            `yaml:"storage_root"`
	Variables   map[string]string `yaml:"variables"`
	OAuthTokens map[string]string `yaml:"oauth_tokens"`

	IDs struct {
		Node  string `yaml:"node_id"`
		Run   string `yaml:"run_id"`
		App   string `yaml:"app_id"`
		Board string `yaml:"board_id"`
		User  string `yaml:"user_id"`
	} `yaml:"ids"`
}

func loadProfile(path string) (*runProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	var p runProfile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	return &p, nil
}

// wireLogLevel maps the profile's named level to the wire severity.
func (p *runProfile) wireLogLevel() (int32, error) {
	switch p.LogLevel {
	case "trace":
		return 0, nil
	case "debug":
		return 1, nil
	case "", "info":
		return 2, nil
	case "warn":
		return 3, nil
	case "error":
		return 4, nil
	}
	return 0, fmt.Errorf("unknown log level %q", p.LogLevel)
}

// wireInputs converts profile inputs to raw JSON pin values.
func (p *runProfile) wireInputs() (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage, len(p.Inputs))
	for name, value := range p.Inputs {
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("input %q: %w", name, err)
		}
		out[name] = raw
	}
	return out, nil
}
