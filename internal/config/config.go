// Package config loads the engine configuration from YAML with environment
// overrides and struct-tag validation.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/candlepad/candlepad/internal/chart"
	"github.com/candlepad/candlepad/internal/codec"
	"github.com/candlepad/candlepad/internal/session"
)

// Config holds all engine configuration.
type Config struct {
	Chart   ChartConfig   `yaml:"chart" json:"chart"`
	Eval    EvalConfig    `yaml:"eval" json:"eval"`
	Session SessionConfig `yaml:"session" json:"session"`
	Server  ServerConfig  `yaml:"server" json:"server"`
}

// ChartConfig controls the renderer grid.
type ChartConfig struct {
	Height  int    `yaml:"height" json:"height" jsonschema:"title=Height,description=Number of grid rows in the rendered chart,minimum=2" validate:"gte=2"`
	Bullish string `yaml:"bullish_glyph" json:"bullishGlyph" jsonschema:"title=Bullish Glyph,description=Body glyph for candles closing at or above their open" validate:"len=1"`
	Bearish string `yaml:"bearish_glyph" json:"bearishGlyph" jsonschema:"title=Bearish Glyph,description=Body glyph for candles closing below their open" validate:"len=1"`
	Wick    string `yaml:"wick_glyph" json:"wickGlyph" jsonschema:"title=Wick Glyph,description=Glyph for the high-low span" validate:"len=1"`
}

// EvalConfig bounds buffer evaluation.
type EvalConfig struct {
	MaxSteps uint64 `yaml:"max_steps" json:"maxSteps" jsonschema:"title=Max Steps,description=Execution step budget for one buffer evaluation" validate:"gt=0"`
}

// SessionConfig controls the session store.
type SessionConfig struct {
	Capacity int `yaml:"capacity" json:"capacity" jsonschema:"title=Capacity,description=Maximum live sessions before LRU eviction" validate:"gt=0"`
}

// ServerConfig controls the HTTP host.
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr" json:"listenAddr" jsonschema:"title=Listen Address,description=Address the HTTP host binds to" validate:"required"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Chart: ChartConfig{
			Height:  chart.DefaultHeight,
			Bullish: string(chart.BullishGlyph),
			Bearish: string(chart.BearishGlyph),
			Wick:    string(chart.WickGlyph),
		},
		Eval: EvalConfig{
			MaxSteps: codec.DefaultMaxSteps,
		},
		Session: SessionConfig{
			Capacity: session.DefaultCapacity,
		},
		Server: ServerConfig{
			ListenAddr: ":8710",
		},
	}
}

// Load reads config from a YAML file over the defaults, then applies
// environment variable overrides and validates the result. A missing file is
// not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CANDLEPAD_LISTEN_ADDR"); v != "" {
		cfg.Server.ListenAddr = v
	}

	if v := os.Getenv("CANDLEPAD_CHART_HEIGHT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Chart.Height = n
		}
	}

	if v := os.Getenv("CANDLEPAD_SESSION_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Session.Capacity = n
		}
	}

	if v := os.Getenv("CANDLEPAD_EVAL_MAX_STEPS"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Eval.MaxSteps = n
		}
	}
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// Renderer builds a chart renderer from the chart settings.
func (c *Config) Renderer() *chart.Renderer {
	return &chart.Renderer{
		Height:  c.Chart.Height,
		Bullish: []rune(c.Chart.Bullish)[0],
		Bearish: []rune(c.Chart.Bearish)[0],
		Wick:    []rune(c.Chart.Wick)[0],
	}
}

// Evaluator builds a buffer evaluator from the eval settings.
func (c *Config) Evaluator() *codec.Evaluator {
	e := codec.NewEvaluator()
	e.MaxSteps = c.Eval.MaxSteps

	return e
}
