package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"symmetrica/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	require.Positive(t, cfg.MaxRecursionDepth)
	require.Positive(t, cfg.MaxNodes)
}

func TestLoadConfig_PartialOverride(t *testing.T) {
	yaml := "max_recursion_depth: 8\n"
	cfg, err := config.LoadConfig(strings.NewReader(yaml))
	require.NoError(t, err)
	require.Equal(t, 8, cfg.MaxRecursionDepth)
	require.Equal(t, config.DefaultConfig().MaxNodes, cfg.MaxNodes)
}

func TestLoadConfig_Empty(t *testing.T) {
	cfg, err := config.LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, config.DefaultConfig(), cfg)
}

func TestApplyOverrides(t *testing.T) {
	cfg := config.DefaultConfig()
	out, err := cfg.ApplyOverrides(map[string]interface{}{
		"max_recursion_depth": "16",
		"max_nodes":           1000,
		"unknown_key":         "ignored",
	})
	require.NoError(t, err)
	require.Equal(t, 16, out.MaxRecursionDepth)
	require.Equal(t, 1000, out.MaxNodes)
}

func TestApplyOverrides_BadValue(t *testing.T) {
	cfg := config.DefaultConfig()
	_, err := cfg.ApplyOverrides(map[string]interface{}{
		"max_nodes": "not-a-number",
	})
	require.Error(t, err)
}

func TestValidate_RejectsNonPositiveLimits(t *testing.T) {
	cfg := config.Config{MaxRecursionDepth: 0, MaxNodes: -1}
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "max_recursion_depth")
	require.Contains(t, err.Error(), "max_nodes")
}

func TestLoadConfig_RejectsNonPositiveOverride(t *testing.T) {
	yaml := "max_nodes: 0\n"
	_, err := config.LoadConfig(strings.NewReader(yaml))
	require.Error(t, err)
}

func TestApplyOverrides_RejectsNonPositiveResult(t *testing.T) {
	cfg := config.DefaultConfig()
	_, err := cfg.ApplyOverrides(map[string]interface{}{
		"max_recursion_depth": -5,
	})
	require.Error(t, err)
}
