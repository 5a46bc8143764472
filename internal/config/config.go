// Package config defines the on-disk settings surface: an optional YAML
// file naming the log/CDR inputs and the same windowing options the CLI
// flags expose, so a recurring ingestion can be run without repeating
// flags every time.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config mirrors the ingestion options the CLI accepts, field for field.
type Config struct {
	LogFile      string `yaml:"log_file"`
	CDRFile      string `yaml:"cdr_file"`
	FromWhen     string `yaml:"from_when"`
	ToWhen       string `yaml:"to_when"`
	TailMinutes  int    `yaml:"tail_minutes"`
	UseMemoryPct int    `yaml:"use_memory_pct"`
	Encoding     string `yaml:"encoding"`
}

// Load reads and parses a YAML config file. A missing file is not an
// error: it returns the zero Config so flag defaults take over entirely.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Merge overrides cfg's fields with any non-zero value from override,
// the precedence CLI flags need over a loaded file.
func (cfg Config) Merge(override Config) Config {
	out := cfg
	if override.LogFile != "" {
		out.LogFile = override.LogFile
	}
	if override.CDRFile != "" {
		out.CDRFile = override.CDRFile
	}
	if override.FromWhen != "" {
		out.FromWhen = override.FromWhen
	}
	if override.ToWhen != "" {
		out.ToWhen = override.ToWhen
	}
	if override.TailMinutes != 0 {
		out.TailMinutes = override.TailMinutes
	}
	if override.UseMemoryPct != 0 {
		out.UseMemoryPct = override.UseMemoryPct
	}
	if override.Encoding != "" {
		out.Encoding = override.Encoding
	}
	return out
}
