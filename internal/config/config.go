// Package config loads entity-fusion's run configuration from an optional
// YAML file plus CLI flag overrides, via koanf.
package config

import (
	"fmt"
	"runtime"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the run configuration surface named in §6: worker/queue/batch
// sizing, output location, and verbosity.
type Config struct {
	Workers      int           `koanf:"workers"`
	QueueSize    int           `koanf:"queue_size"`
	BatchSize    int           `koanf:"batch_size"`
	OutputDir    string        `koanf:"output"`
	Verbosity    int           `koanf:"verbosity"`
	Timeout      time.Duration `koanf:"timeout"`
	PatternsDir  string        `koanf:"patterns_dir"`
	GazetteerDir string        `koanf:"gazetteer_dir"`
}

// Default returns the configuration used when no file and no flags
// override it, matching pkg/pipeline.DefaultConfig's queue/batch sizing;
// Workers defaults to the CPU count.
func Default() Config {
	return Config{
		Workers:   runtime.NumCPU(),
		QueueSize: 64,
		BatchSize: 32,
		OutputDir: ".",
		Verbosity: 0,
		Timeout:   0,
	}
}

// Load reads path (if non-empty) over Default, returning the merged
// configuration. A missing or empty path is not an error; it just yields
// the defaults.
func Load(path string) (Config, error) {
	out := Default()
	if path == "" {
		return out, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := k.Unmarshal("", &out); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	return out, nil
}
