package graph

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// MarshalLayoutYAML serializes a Layout to YAML bytes.
func MarshalLayoutYAML(l Layout) ([]byte, error) {
	return yaml.Marshal(l)
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates that required fields are present.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	return l, validate(l)
}

// UnmarshalLayoutYAML deserializes YAML bytes into a Layout.
func UnmarshalLayoutYAML(data []byte) (Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	return l, validate(l)
}

func validate(l Layout) error {
	if l.Category == "" {
		return fmt.Errorf("layout must name a category")
	}
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("layout must have positive dimensions, got %vx%v", l.Width, l.Height)
	}
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// WriteLayoutFile writes a Layout to a file, as YAML if the extension is
// .yaml or .yml and JSON otherwise.
func WriteLayoutFile(l Layout, path string) error {
	marshal := MarshalLayout
	if isYAML(path) {
		marshal = MarshalLayoutYAML
	}
	data, err := marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON or YAML file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	if isYAML(path) {
		return UnmarshalLayoutYAML(data)
	}
	return UnmarshalLayout(data)
}
