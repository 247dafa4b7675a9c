package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	newConfig := func() *Config {
		cfg := &Config{LLM: LLMConfig{Endpoint: "http://localhost:8080", APIKey: "test-key", Model: "test-model"}}
		setDefaults(cfg)
		return cfg
	}

	tests := []struct {
		name   string
		modify func(c *Config)
		errMsg string
	}{
		{name: "valid config", modify: func(c *Config) {}},
		{name: "missing server listen", modify: func(c *Config) { c.Server.Listen = "" }, errMsg: "server.listen is required"},
		{name: "missing server timeout", modify: func(c *Config) { c.Server.Timeout = 0 }, errMsg: "server.timeout is required"},
		{name: "missing embedding model", modify: func(c *Config) { c.Embedding.Model = "" }, errMsg: "embedding.model is required"},
		{name: "missing cron", modify: func(c *Config) { c.Schedule.Cron = "" }, errMsg: "schedule.cron is required"},
		{name: "no workers", modify: func(c *Config) { c.Schedule.MaxWorkers = 0 }, errMsg: "max_workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newConfig()
			tt.modify(cfg)
			err := VerifyAgainstEmbeddedSchema(cfg)
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestGenerateSchema(t *testing.T) {
	schema, err := GenerateSchema()
	require.NoError(t, err)
	require.NotNil(t, schema)
	assert.NotEmpty(t, schema.Definitions)
	assert.Contains(t, schema.Definitions, "Config")
	assert.Contains(t, schema.Definitions, "SummaryConfig")
}

func TestSchemaProperties(t *testing.T) {
	props := schemaProperties(map[string]any{"properties": map[string]any{"server": map[string]any{}}})
	assert.Contains(t, props, "server")
	assert.Empty(t, schemaProperties(map[string]any{}))
}
