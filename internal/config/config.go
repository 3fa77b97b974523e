// Package config loads process configuration for the occlusion server,
// in the teacher's tolerant Default()+Normalize() style: a malformed or
// partial config file never fails startup — only a malformed data
// source does, per the loader's contract.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the full set of knobs the server binary reads at startup.
type Config struct {
	DataSource             string `yaml:"data_source" json:"data_source"`
	Backend                string `yaml:"backend" json:"backend"`
	BindAddr               string `yaml:"bind_addr" json:"bind_addr"`
	ProgressEvery          uint64 `yaml:"progress_every" json:"progress_every"`
	BatchParallelThreshold int    `yaml:"batch_parallel_threshold" json:"batch_parallel_threshold"`
	JSONLogs               bool   `yaml:"json_logs" json:"json_logs"`
}

// Default returns the hard-coded defaults every field falls back to.
func Default() Config {
	return Config{
		DataSource:             "",
		Backend:                "hashmap",
		BindAddr:               ":8080",
		ProgressEvery:          100_000,
		BatchParallelThreshold: 256,
		JSONLogs:               false,
	}
}

// Normalize replaces invalid or zero-valued fields with defaults. It
// never returns an error: a malformed config file is not a fatal
// condition, unlike a malformed data source.
func (c *Config) Normalize() {
	d := Default()

	if strings.TrimSpace(c.DataSource) == "" {
		c.DataSource = d.DataSource
	}

	switch c.Backend {
	case "hashmap", "vec", "hybrid", "fullhash":
		// ok
	default:
		c.Backend = d.Backend
	}

	if strings.TrimSpace(c.BindAddr) == "" {
		c.BindAddr = d.BindAddr
	}

	if c.ProgressEvery == 0 {
		c.ProgressEvery = d.ProgressEvery
	}

	if c.BatchParallelThreshold <= 0 {
		c.BatchParallelThreshold = d.BatchParallelThreshold
	}
}

// Load reads path (YAML by default, JSON also parses fine since YAML
// is a JSON superset) into a Config seeded with defaults, then
// normalizes the result. A missing file is not an error — it yields
// the default configuration, the same tolerant behavior as an
// unreadable or malformed one.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		cfg.Normalize()
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		cfg.Normalize()
		return cfg, nil
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config: malformed config at %s, falling back to defaults: %v\n", path, err)
		cfg = Default()
	}

	cfg.Normalize()
	return cfg, nil
}
