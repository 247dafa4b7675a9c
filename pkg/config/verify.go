package config

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var schema map[string]any
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// every top-level section of the config must be declared by the schema
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	props := schemaProperties(schema)
	for key := range configMap {
		if _, ok := props[key]; !ok {
			return fmt.Errorf("config section %q is not described by schema", key)
		}
	}

	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// schemaProperties returns properties of the root Config definition
func schemaProperties(schema map[string]any) map[string]any {
	if defs, ok := schema["$defs"].(map[string]any); ok {
		if root, ok := defs["Config"].(map[string]any); ok {
			if props, ok := root["properties"].(map[string]any); ok {
				return props
			}
		}
	}
	if props, ok := schema["properties"].(map[string]any); ok {
		return props
	}
	return map[string]any{}
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return fmt.Errorf("server.timeout is required")
	}
	if cfg.Embedding.Model == "" {
		return fmt.Errorf("embedding.model is required")
	}
	if cfg.Schedule.Cron == "" {
		return fmt.Errorf("schedule.cron is required")
	}
	if cfg.Schedule.MaxWorkers < 1 {
		return fmt.Errorf("schedule.max_workers must be at least 1")
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
