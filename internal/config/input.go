package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hjson/hjson-go/v4"
	"github.com/rgehrsitz/retireright/internal/domain"
	"gopkg.in/yaml.v3"
)

// Format identifies a configuration file encoding
type Format string

const (
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatHJSON Format = "hjson"
)

// FormatFromFilename picks the decoder from the file extension (YAML by default)
func FormatFromFilename(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return FormatJSON
	case ".hjson":
		return FormatHJSON
	default:
		return FormatYAML
	}
}

// InputParser handles parsing of household configuration files
type InputParser struct {
	Rules *domain.RegulatoryConfig
}

// NewInputParser creates a new input parser using the embedded rule set
func NewInputParser() *InputParser {
	return &InputParser{Rules: MustDefaultRegulatory()}
}

// NewInputParserWithRules creates an input parser validating against a specific rule set
func NewInputParserWithRules(rules *domain.RegulatoryConfig) *InputParser {
	if rules == nil {
		return NewInputParser()
	}
	return &InputParser{Rules: rules}
}

// LoadFromFile loads configuration from a YAML, JSON or HJSON file.
// The returned configuration is normalized and validated.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data, FormatFromFilename(filename))
}

// Parse decodes and prepares a configuration
func (ip *InputParser) Parse(data []byte, format Format) (*domain.Configuration, error) {
	cfg, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	prepared, err := Prepare(cfg, ip.Rules)
	if err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return prepared, nil
}

// Decode unmarshals a configuration without validating it
func Decode(data []byte, format Format) (*domain.Configuration, error) {
	var cfg domain.Configuration
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case FormatHJSON:
		// Hjson is decoded generically and re-encoded so the json tags and
		// decimal unmarshalers apply exactly as for plain JSON.
		var generic any
		if err := hjson.Unmarshal(data, &generic); err != nil {
			return nil, fmt.Errorf("failed to parse HJSON: %w", err)
		}
		raw, err := json.Marshal(generic)
		if err != nil {
			return nil, fmt.Errorf("failed to convert HJSON: %w", err)
		}
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse HJSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}
	return &cfg, nil
}

// Prepare returns a normalized copy of cfg and validates it against rules.
// The caller's configuration is never modified.
func Prepare(cfg *domain.Configuration, rules *domain.RegulatoryConfig) (*domain.Configuration, error) {
	if cfg == nil {
		return nil, domain.NewValidationError("configuration", "is required")
	}
	out := Normalize(cfg)
	if err := ValidateConfiguration(out, rules); err != nil {
		return nil, err
	}
	return out, nil
}
